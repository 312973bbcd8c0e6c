package language

import (
	"iter"

	"github.com/roach88/facore/internal/automaton"
	"github.com/roach88/facore/internal/symbol"
)

// Deterministic is the language of a deterministic automaton from one start
// state.
type Deterministic struct {
	automaton *automaton.Deterministic
	start     automaton.StateID
}

// NewDeterministic creates a view over a (non-nil) automaton. start need not
// be a valid state; an invalid start denotes the empty language.
func NewDeterministic(a *automaton.Deterministic, start automaton.StateID) Deterministic {
	return Deterministic{automaton: a, start: start}
}

// Contains walks seq through the transition table. The walk stops consuming
// symbols as soon as it falls off the automaton.
func (l Deterministic) Contains(seq iter.Seq[symbol.Symbol]) bool {
	state := l.start
	if state != automaton.NoState {
		for s := range seq {
			state = l.automaton.GetNext(state, s)
			if state == automaton.NoState {
				break
			}
		}
	}
	return l.automaton.IsFinal(state)
}

// ContainsWord reports whether word is accepted.
func (l Deterministic) ContainsWord(word []symbol.Symbol) bool {
	return l.Contains(symbol.Word(word...))
}

// ContainsNumber reports whether the LSB-first base-A digits of value are
// accepted. Panics if the alphabet has fewer than two symbols.
func (l Deterministic) ContainsNumber(value uint64) bool {
	return l.Contains(symbol.Digits(value, l.automaton.AlphabetSize()))
}

// Trace records the walk; each step holds the single state reached, or no
// state once the walk has fallen off.
func (l Deterministic) Trace(seq iter.Seq[symbol.Symbol]) Trace {
	t := Trace{Start: l.stateSet(l.start), Steps: []Step{}}
	state := l.start
	if state != automaton.NoState {
		for s := range seq {
			state = l.automaton.GetNext(state, s)
			t.Steps = append(t.Steps, Step{Symbol: s, States: l.stateSet(state)})
			if state == automaton.NoState {
				break
			}
		}
	}
	t.Accepted = l.automaton.IsFinal(state)
	return t
}

// Start returns the start state.
func (l Deterministic) Start() automaton.StateID {
	return l.start
}

// AlphabetSize returns the alphabet size of the automaton.
func (l Deterministic) AlphabetSize() uint32 {
	return l.automaton.AlphabetSize()
}

// stateSet is the one-element state set for s, empty when s is not a state.
func (l Deterministic) stateSet(s automaton.StateID) []automaton.StateID {
	if !l.automaton.IsValid(s) {
		return []automaton.StateID{}
	}
	return []automaton.StateID{s}
}
