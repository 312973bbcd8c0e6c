package language

import (
	"iter"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/facore/internal/automaton"
	"github.com/roach88/facore/internal/symbol"
)

// emptyDeterministic is the language of an automaton with no states.
func emptyDeterministic(alphabet uint32) Deterministic {
	return NewDeterministic(automaton.NewDeterministic(alphabet), 0)
}

func emptyNonDeterministic(alphabet uint32) NonDeterministic {
	return NewNonDeterministic(automaton.NewNonDeterministic(alphabet), 0)
}

// fullDeterministic is one final state looping on every symbol.
func fullDeterministic(t *testing.T, alphabet uint32) Deterministic {
	t.Helper()
	a := automaton.NewDeterministic(alphabet)
	s, err := a.AddState(true)
	require.NoError(t, err)
	for c := range alphabet {
		require.NoError(t, a.SetArc(s, symbol.Symbol(c), s))
	}
	return NewDeterministic(a, s)
}

func fullNonDeterministic(t *testing.T, alphabet uint32) NonDeterministic {
	t.Helper()
	a := automaton.NewNonDeterministic(alphabet)
	s, err := a.AddState(true)
	require.NoError(t, err)
	for c := range alphabet {
		require.NoError(t, a.AddArc(s, symbol.Symbol(c), s))
	}
	return NewNonDeterministic(a, s)
}

// parityDeterministic accepts words with an odd number of 1s (Thue-Morse).
func parityDeterministic(t *testing.T) Deterministic {
	t.Helper()
	a := automaton.NewDeterministic(2)
	even, err := a.AddState(false)
	require.NoError(t, err)
	odd, err := a.AddState(true)
	require.NoError(t, err)

	require.NoError(t, a.SetArc(even, 0, even))
	require.NoError(t, a.SetArc(even, 1, odd))
	require.NoError(t, a.SetArc(odd, 0, odd))
	require.NoError(t, a.SetArc(odd, 1, even))
	return NewDeterministic(a, even)
}

func parityNonDeterministic(t *testing.T) NonDeterministic {
	t.Helper()
	a := automaton.NewNonDeterministic(2)
	even, err := a.AddState(false)
	require.NoError(t, err)
	odd, err := a.AddState(true)
	require.NoError(t, err)

	require.NoError(t, a.AddArc(even, 0, even))
	require.NoError(t, a.AddArc(even, 1, odd))
	require.NoError(t, a.AddArc(odd, 0, odd))
	require.NoError(t, a.AddArc(odd, 1, even))
	return NewNonDeterministic(a, even)
}

// repeat is an unbounded sequence of s.
func repeat(s symbol.Symbol) iter.Seq[symbol.Symbol] {
	return func(yield func(symbol.Symbol) bool) {
		for yield(s) {
		}
	}
}

func word(symbols ...symbol.Symbol) []symbol.Symbol {
	return symbols
}
