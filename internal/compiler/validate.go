package compiler

import (
	"fmt"
	"regexp"

	"github.com/roach88/facore/internal/ir"
)

// Validation error codes (E100-E199)
const (
	ErrInvalidKind     = "E101" // kind is not deterministic/nondeterministic
	ErrEmptyAlphabet   = "E102" // alphabet size must be positive
	ErrDuplicateState  = "E103" // state declared twice
	ErrUnknownArcState = "E104" // arc endpoint is not a declared state
	ErrLabelOutOfRange = "E105" // arc label >= alphabet size
	ErrMultipleStarts  = "E106" // deterministic automaton with several starts
	ErrUnknownStart    = "E107" // start is not a declared state
	ErrInvalidName     = "E108" // malformed automaton or state name
)

// ValidationError represents a schema validation error.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
	Line    int    `json:"line,omitempty"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("[%s] line %d: %s: %s", e.Code, e.Line, e.Field, e.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

// namePattern matches automaton and state names: a letter or underscore
// followed by letters, digits, underscores or dashes.
var namePattern = regexp.MustCompile(`^[\p{L}_][\p{L}\p{N}_-]*$`)

// Validate checks a compiled definition before it is built.
// Returns all errors found (does not fail-fast).
func Validate(def *ir.AutomatonDef) []ValidationError {
	var errs []ValidationError

	// E108: automaton name
	if !namePattern.MatchString(def.Name) {
		errs = append(errs, ValidationError{
			Field:   "name",
			Message: fmt.Sprintf("invalid automaton name %q", def.Name),
			Code:    ErrInvalidName,
		})
	}

	// E101: kind
	if !ir.ValidKinds[def.Kind] {
		errs = append(errs, ValidationError{
			Field:   "kind",
			Message: fmt.Sprintf("invalid kind %q, must be %q or %q", def.Kind, ir.KindDeterministic, ir.KindNonDeterministic),
			Code:    ErrInvalidKind,
		})
	}

	// E102: alphabet
	if def.Alphabet == 0 {
		errs = append(errs, ValidationError{
			Field:   "alphabet",
			Message: "alphabet size must be at least 1",
			Code:    ErrEmptyAlphabet,
		})
	}

	stateNames := make(map[string]bool, len(def.States))
	for i, state := range def.States {
		// E108: state name
		if !namePattern.MatchString(state.Name) {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("states[%d]", i),
				Message: fmt.Sprintf("invalid state name %q", state.Name),
				Code:    ErrInvalidName,
			})
		}
		// E103: duplicate state
		if stateNames[state.Name] {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("states[%d]", i),
				Message: fmt.Sprintf("duplicate state name: %q", state.Name),
				Code:    ErrDuplicateState,
			})
		}
		stateNames[state.Name] = true
	}

	for i, arc := range def.Arcs {
		// E104: arc endpoints
		if !stateNames[arc.From] {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("arcs[%d].from", i),
				Message: fmt.Sprintf("unknown state %q", arc.From),
				Code:    ErrUnknownArcState,
			})
		}
		if !stateNames[arc.To] {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("arcs[%d].to", i),
				Message: fmt.Sprintf("unknown state %q", arc.To),
				Code:    ErrUnknownArcState,
			})
		}
		// E105: label range
		if arc.Label >= def.Alphabet {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("arcs[%d].label", i),
				Message: fmt.Sprintf("label %d out of range for alphabet size %d", arc.Label, def.Alphabet),
				Code:    ErrLabelOutOfRange,
			})
		}
	}

	// E106: deterministic automata have at most one start
	if def.IsDeterministic() && len(def.Start) > 1 {
		errs = append(errs, ValidationError{
			Field:   "start",
			Message: fmt.Sprintf("deterministic automaton takes at most one start state, got %d", len(def.Start)),
			Code:    ErrMultipleStarts,
		})
	}

	// E107: start states exist
	for i, name := range def.Start {
		if !stateNames[name] {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("start[%d]", i),
				Message: fmt.Sprintf("unknown start state %q", name),
				Code:    ErrUnknownStart,
			})
		}
	}

	return errs
}
