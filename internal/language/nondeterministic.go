package language

import (
	"iter"
	"slices"

	"github.com/roach88/facore/internal/automaton"
	"github.com/roach88/facore/internal/symbol"
)

// NonDeterministic is the language of a non-deterministic automaton from a set
// of start states.
//
// Membership simulates the automaton directly: the frontier of reachable
// states is recomputed from the relation at every symbol. Nothing is cached
// between steps or queries, so a query costs
// O(len(seq) × frontier size × out-degree).
type NonDeterministic struct {
	automaton *automaton.NonDeterministic
	starts    []automaton.StateID
}

// NewNonDeterministic creates a view over a (non-nil) automaton. Duplicate
// start states are collapsed; with no start states the language is empty.
func NewNonDeterministic(a *automaton.NonDeterministic, starts ...automaton.StateID) NonDeterministic {
	set := slices.Clone(starts)
	slices.Sort(set)
	return NonDeterministic{automaton: a, starts: slices.Compact(set)}
}

// Contains reports whether some path labelled by seq ends in a final state.
func (l NonDeterministic) Contains(seq iter.Seq[symbol.Symbol]) bool {
	return l.anyFinal(l.walk(seq, nil))
}

// ContainsWord reports whether word is accepted.
func (l NonDeterministic) ContainsWord(word []symbol.Symbol) bool {
	return l.Contains(symbol.Word(word...))
}

// ContainsNumber reports whether the LSB-first base-A digits of value are
// accepted. Panics if the alphabet has fewer than two symbols.
func (l NonDeterministic) ContainsNumber(value uint64) bool {
	return l.Contains(symbol.Digits(value, l.automaton.AlphabetSize()))
}

// Reachable returns the frontier after consuming seq, in ascending order.
func (l NonDeterministic) Reachable(seq iter.Seq[symbol.Symbol]) []automaton.StateID {
	return l.walk(seq, nil).sorted()
}

// Trace records the frontier after every symbol.
func (l NonDeterministic) Trace(seq iter.Seq[symbol.Symbol]) Trace {
	t := Trace{Steps: []Step{}}
	last := l.walk(seq, func(step int, s symbol.Symbol, f *frontier) {
		if step == 0 {
			t.Start = f.sorted()
			return
		}
		t.Steps = append(t.Steps, Step{Symbol: s, States: f.sorted()})
	})
	t.Accepted = l.anyFinal(last)
	return t
}

// Starts returns a copy of the deduplicated start states.
func (l NonDeterministic) Starts() []automaton.StateID {
	return slices.Clone(l.starts)
}

// AlphabetSize returns the alphabet size of the automaton.
func (l NonDeterministic) AlphabetSize() uint32 {
	return l.automaton.AlphabetSize()
}

// walk runs the subset simulation and returns the final frontier. observe, if
// set, sees the start frontier (step 0) and the frontier after each symbol.
func (l NonDeterministic) walk(seq iter.Seq[symbol.Symbol], observe func(step int, s symbol.Symbol, f *frontier)) *frontier {
	n := l.automaton.NumStates()
	current, next := newFrontier(n), newFrontier(n)
	for _, s := range l.starts {
		current.insert(s)
	}
	if observe != nil {
		observe(0, 0, current)
	}
	if current.len() == 0 {
		return current
	}

	step := 0
	for sym := range seq {
		step++
		next.clear()
		for _, src := range current.dense {
			for dest := range l.automaton.GetNext(src, sym).Destinations() {
				next.insert(dest)
			}
		}
		current, next = next, current
		if observe != nil {
			observe(step, sym, current)
		}
		if current.len() == 0 {
			break
		}
	}
	return current
}

func (l NonDeterministic) anyFinal(f *frontier) bool {
	for _, s := range f.dense {
		if l.automaton.IsFinal(s) {
			return true
		}
	}
	return false
}
