package automaton

import (
	"errors"
	"fmt"

	"github.com/roach88/facore/internal/symbol"
)

// Sentinel errors matched with errors.Is.
var (
	ErrInvalidLabel  = errors.New("invalid label")
	ErrInvalidSource = errors.New("invalid source state")
	ErrInvalidDest   = errors.New("invalid dest state")
	ErrCapacity      = errors.New("state capacity exhausted")
)

// ArcErrorCode categorizes a rejected arc.
type ArcErrorCode string

const (
	CodeInvalidLabel  ArcErrorCode = "invalid_label"
	CodeInvalidSource ArcErrorCode = "invalid_source"
	CodeInvalidDest   ArcErrorCode = "invalid_dest"
)

// ArcError is returned by SetArc and AddArc when an arc is rejected.
// These are programmer errors: retrying with the same inputs fails again.
type ArcError struct {
	Code   ArcErrorCode
	Source StateID
	Label  symbol.Symbol
	Dest   StateID

	// AlphabetSize and NumStates describe the automaton at rejection time.
	AlphabetSize uint32
	NumStates    int
}

func (e *ArcError) Error() string {
	switch e.Code {
	case CodeInvalidLabel:
		return fmt.Sprintf("%s: label %d outside alphabet of size %d", ErrInvalidLabel, e.Label, e.AlphabetSize)
	case CodeInvalidSource:
		return fmt.Sprintf("%s: %d (automaton has %d states)", ErrInvalidSource, e.Source, e.NumStates)
	case CodeInvalidDest:
		return fmt.Sprintf("%s: %d (automaton has %d states)", ErrInvalidDest, e.Dest, e.NumStates)
	default:
		return fmt.Sprintf("invalid arc (%d, %d, %d)", e.Source, e.Label, e.Dest)
	}
}

// Is matches the sentinel corresponding to the error code.
func (e *ArcError) Is(target error) bool {
	switch e.Code {
	case CodeInvalidLabel:
		return target == ErrInvalidLabel
	case CodeInvalidSource:
		return target == ErrInvalidSource
	case CodeInvalidDest:
		return target == ErrInvalidDest
	}
	return false
}

// CapacityError is returned by AddState when the automaton is full.
type CapacityError struct {
	Limit uint32
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("%s: limit is %d states", ErrCapacity, e.Limit)
}

func (e *CapacityError) Is(target error) bool {
	return target == ErrCapacity
}

// checkArc validates an arc against the automaton: label first, then source,
// then destination.
func (s *states) checkArc(src StateID, label symbol.Symbol, dest StateID) error {
	var code ArcErrorCode
	switch {
	case uint32(label) >= s.alphabet:
		code = CodeInvalidLabel
	case !s.IsValid(src):
		code = CodeInvalidSource
	case !s.IsValid(dest):
		code = CodeInvalidDest
	default:
		return nil
	}
	return &ArcError{
		Code:         code,
		Source:       src,
		Label:        label,
		Dest:         dest,
		AlphabetSize: s.alphabet,
		NumStates:    len(s.final),
	}
}
