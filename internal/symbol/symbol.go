// Package symbol defines alphabet symbols and the lazy symbol sequences that
// automaton membership queries consume.
//
// A sequence is an iter.Seq[Symbol]. Sequences built by this package are
// restartable: ranging over the same value twice yields the same symbols.
package symbol

import (
	"fmt"
	"iter"
	"slices"
	"strconv"
	"strings"
)

// Symbol is an element of a bounded alphabet [0, A).
// The alphabet size A is owned by the automaton, not by the symbol.
type Symbol uint32

// Digits returns the base-base decomposition of value, least-significant
// digit first. Zero decomposes to the empty sequence, not to a single 0.
//
// The order matters for automata whose acceptance depends on symbol order:
// Digits(2, 2) yields 0 then 1, i.e. the word {0,1}, not {1,0}.
//
// Panics if base < 2.
func Digits(value uint64, base uint32) iter.Seq[Symbol] {
	if base < 2 {
		panic(fmt.Sprintf("symbol: digit base %d is below 2", base))
	}
	b := uint64(base)
	return func(yield func(Symbol) bool) {
		for v := value; v != 0; v /= b {
			if !yield(Symbol(v % b)) {
				return
			}
		}
	}
}

// Compose reassembles a least-significant-first digit sequence into the
// number it represents: Σ digit_i · base^i. It is the inverse of Digits.
func Compose(digits iter.Seq[Symbol], base uint32) uint64 {
	var value uint64
	place := uint64(1)
	for d := range digits {
		value += uint64(d) * place
		place *= uint64(base)
	}
	return value
}

// Word adapts an explicit list of symbols to a sequence.
func Word(symbols ...Symbol) iter.Seq[Symbol] {
	return slices.Values(symbols)
}

// ParseWord parses a comma-separated list of symbols such as "1,0,1".
// Blank input is the empty word.
func ParseWord(s string) ([]Symbol, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return []Symbol{}, nil
	}

	parts := strings.Split(s, ",")
	word := make([]Symbol, 0, len(parts))
	for i, p := range parts {
		n, err := strconv.ParseUint(strings.TrimSpace(p), 10, 32)
		if err != nil {
			return nil, fmt.Errorf("symbol %d: %w", i, err)
		}
		word = append(word, Symbol(n))
	}
	return word, nil
}

// FormatWord renders a word the way ParseWord reads it.
func FormatWord(word []Symbol) string {
	parts := make([]string, len(word))
	for i, s := range word {
		parts[i] = strconv.FormatUint(uint64(s), 10)
	}
	return strings.Join(parts, ",")
}
