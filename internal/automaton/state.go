package automaton

import "math"

// StateID identifies a state. Ids are dense and zero-based: the n-th state
// added gets id n-1.
type StateID uint32

// NoState is the reserved sentinel meaning "no such state". It is never
// assigned to a real state.
const NoState StateID = math.MaxUint32

// Option configures an automaton at construction.
type Option func(*states)

// WithMaxStates caps the number of states an automaton may hold.
// The cap can only lower the default ceiling, which is NoState itself.
func WithMaxStates(n uint32) Option {
	return func(s *states) {
		if n < s.limit {
			s.limit = n
		}
	}
}

// states is the bookkeeping shared by both automaton representations:
// alphabet size, state ceiling and the final-flag vector.
type states struct {
	alphabet uint32
	limit    uint32
	final    []bool
}

func newStates(alphabetSize uint32, opts []Option) states {
	s := states{
		alphabet: alphabetSize,
		limit:    uint32(NoState),
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// addState appends a state and returns its id, or a capacity error if the
// state count would reach the ceiling.
func (s *states) addState(final bool) (StateID, error) {
	if uint64(len(s.final)) >= uint64(s.limit) {
		return NoState, &CapacityError{Limit: s.limit}
	}
	id := StateID(len(s.final))
	s.final = append(s.final, final)
	return id, nil
}

// AlphabetSize returns A; valid labels are [0, A).
func (s *states) AlphabetSize() uint32 {
	return s.alphabet
}

// NumStates returns the number of states created so far.
func (s *states) NumStates() int {
	return len(s.final)
}

// IsValid reports whether state is an existing state. NoState never is.
func (s *states) IsValid(state StateID) bool {
	return uint64(state) < uint64(len(s.final))
}

// IsFinal reports whether state is final. Invalid states, including NoState,
// are never final.
func (s *states) IsFinal(state StateID) bool {
	if !s.IsValid(state) {
		return false
	}
	return s.final[state]
}
