// Package language answers membership queries against automata.
//
// A language view pairs an automaton with start-state data. Views are small
// values, cheap to create and copy. They hold a non-owning pointer to the
// automaton and never mutate it; the automaton must stay frozen while views
// query it. Any number of goroutines may query views over the same frozen
// automaton concurrently.
//
// Integer queries (ContainsNumber) walk the base-A digits of the number least
// significant digit first, see symbol.Digits. For automata whose acceptance
// depends on symbol order this differs from reading a written numeral left to
// right: ContainsNumber(2) over a binary alphabet walks {0,1}.
package language

import (
	"iter"

	"github.com/roach88/facore/internal/automaton"
	"github.com/roach88/facore/internal/symbol"
)

// Language is a membership-testing view over an automaton.
type Language interface {
	// Contains reports whether the sequence is accepted.
	Contains(seq iter.Seq[symbol.Symbol]) bool

	// ContainsWord reports whether the explicit word is accepted.
	ContainsWord(word []symbol.Symbol) bool

	// ContainsNumber reports whether the LSB-first digits of value are accepted.
	ContainsNumber(value uint64) bool

	// Trace walks the sequence and records the state set after every symbol.
	Trace(seq iter.Seq[symbol.Symbol]) Trace

	// AlphabetSize returns the alphabet size of the underlying automaton.
	AlphabetSize() uint32
}

var (
	_ Language = Deterministic{}
	_ Language = NonDeterministic{}
)

// Step is the state set reached after consuming one symbol.
type Step struct {
	Symbol symbol.Symbol       `json:"symbol"`
	States []automaton.StateID `json:"states"`
}

// Trace is the record of one membership walk.
//
// Steps stops at the first empty state set: once a walk falls off the
// automaton no further symbol is consumed.
type Trace struct {
	Start    []automaton.StateID `json:"start"`
	Steps    []Step              `json:"steps"`
	Accepted bool                `json:"accepted"`
}

// FrontierSize returns the size of the state set after step symbols; step 0
// is the start set. Steps past an early stop have an empty set.
func (t Trace) FrontierSize(step int) int {
	switch {
	case step < 0:
		return 0
	case step == 0:
		return len(t.Start)
	case step <= len(t.Steps):
		return len(t.Steps[step-1].States)
	default:
		return 0
	}
}
