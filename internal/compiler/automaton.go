package compiler

import (
	"fmt"
	"math"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
	"golang.org/x/text/unicode/norm"

	"github.com/roach88/facore/internal/ir"
)

// CompileAutomaton parses a CUE value into an AutomatonDef.
// Uses CUE SDK's Go API directly (not CLI subprocess).
//
// The CUE value should be the automaton struct itself, e.g.:
//
//	ctx := cuecontext.New()
//	v := ctx.CompileString(`automaton: parity: { ... }`)
//	def, err := CompileAutomaton(v.LookupPath(cue.ParsePath("automaton.parity")))
//
// CompileAutomaton only checks shapes and types. Cross references (arc
// endpoints, start states, label ranges) are checked by Validate.
func CompileAutomaton(v cue.Value) (*ir.AutomatonDef, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	def := &ir.AutomatonDef{
		States: []ir.StateDef{},
		Arcs:   []ir.ArcDef{},
		Start:  []string{},
	}

	// Name comes from the struct label (the path selector)
	labels := v.Path().Selectors()
	if len(labels) > 0 {
		def.Name = norm.NFC.String(selectorName(labels[len(labels)-1]))
	}

	kindVal := v.LookupPath(cue.ParsePath("kind"))
	if !kindVal.Exists() {
		return nil, &CompileError{
			Field:   "kind",
			Message: "kind is required",
			Pos:     v.Pos(),
		}
	}
	kind, err := kindVal.String()
	if err != nil {
		return nil, formatCUEError(err)
	}
	def.Kind = kind

	def.Alphabet, err = parseAlphabet(v)
	if err != nil {
		return nil, err
	}

	def.States, err = parseStates(v)
	if err != nil {
		return nil, err
	}

	def.Arcs, err = parseArcs(v)
	if err != nil {
		return nil, err
	}

	def.Start, err = parseStart(v)
	if err != nil {
		return nil, err
	}

	return def, nil
}

func selectorName(sel cue.Selector) string {
	if sel.LabelType() == cue.StringLabel {
		return sel.Unquoted()
	}
	return sel.String()
}

// parseAlphabet reads the alphabet size. Zero is rejected by Validate, not
// here, so that all definition errors are reported together.
func parseAlphabet(v cue.Value) (uint32, error) {
	val := v.LookupPath(cue.ParsePath("alphabet"))
	if !val.Exists() {
		return 0, &CompileError{
			Field:   "alphabet",
			Message: "alphabet is required",
			Pos:     v.Pos(),
		}
	}
	if val.IncompleteKind() != cue.IntKind {
		return 0, &CompileError{
			Field:   "alphabet",
			Message: fmt.Sprintf("alphabet must be an integer, got %v", val.IncompleteKind()),
			Pos:     val.Pos(),
		}
	}
	n, err := val.Uint64()
	if err != nil {
		return 0, formatCUEError(err)
	}
	if n > math.MaxUint32 {
		return 0, &CompileError{
			Field:   "alphabet",
			Message: fmt.Sprintf("alphabet size %d does not fit in 32 bits", n),
			Pos:     val.Pos(),
		}
	}
	return uint32(n), nil
}

// parseStates extracts states in declaration order.
func parseStates(v cue.Value) ([]ir.StateDef, error) {
	states := []ir.StateDef{}

	statesVal := v.LookupPath(cue.ParsePath("states"))
	if !statesVal.Exists() {
		return states, nil // no states: the empty language
	}

	iter, err := statesVal.Fields()
	if err != nil {
		return nil, formatCUEError(err)
	}

	for iter.Next() {
		state := ir.StateDef{Name: norm.NFC.String(iter.Label())}

		finalVal := iter.Value().LookupPath(cue.ParsePath("final"))
		if finalVal.Exists() {
			final, err := finalVal.Bool()
			if err != nil {
				return nil, &CompileError{
					Field:   fmt.Sprintf("states.%s.final", state.Name),
					Message: "final must be a bool",
					Pos:     finalVal.Pos(),
				}
			}
			state.Final = final
		}

		states = append(states, state)
	}

	return states, nil
}

// parseArcs extracts arcs in declaration order.
func parseArcs(v cue.Value) ([]ir.ArcDef, error) {
	arcs := []ir.ArcDef{}

	arcsVal := v.LookupPath(cue.ParsePath("arcs"))
	if !arcsVal.Exists() {
		return arcs, nil
	}

	iter, err := arcsVal.List()
	if err != nil {
		return nil, formatCUEError(err)
	}

	for i := 0; iter.Next(); i++ {
		arc, err := parseArc(iter.Value(), i)
		if err != nil {
			return nil, err
		}
		arcs = append(arcs, arc)
	}

	return arcs, nil
}

func parseArc(v cue.Value, index int) (ir.ArcDef, error) {
	var arc ir.ArcDef
	field := fmt.Sprintf("arcs[%d]", index)

	for _, name := range []string{"from", "to"} {
		val := v.LookupPath(cue.ParsePath(name))
		if !val.Exists() {
			return arc, &CompileError{
				Field:   field + "." + name,
				Message: name + " is required",
				Pos:     v.Pos(),
			}
		}
		s, err := val.String()
		if err != nil {
			return arc, formatCUEError(err)
		}
		if name == "from" {
			arc.From = norm.NFC.String(s)
		} else {
			arc.To = norm.NFC.String(s)
		}
	}

	labelVal := v.LookupPath(cue.ParsePath("label"))
	if !labelVal.Exists() {
		return arc, &CompileError{
			Field:   field + ".label",
			Message: "label is required",
			Pos:     v.Pos(),
		}
	}
	if labelVal.IncompleteKind() != cue.IntKind {
		return arc, &CompileError{
			Field:   field + ".label",
			Message: fmt.Sprintf("label must be an integer, got %v", labelVal.IncompleteKind()),
			Pos:     labelVal.Pos(),
		}
	}
	label, err := labelVal.Uint64()
	if err != nil {
		return arc, formatCUEError(err)
	}
	if label > math.MaxUint32 {
		return arc, &CompileError{
			Field:   field + ".label",
			Message: fmt.Sprintf("label %d does not fit in 32 bits", label),
			Pos:     labelVal.Pos(),
		}
	}
	arc.Label = uint32(label)

	return arc, nil
}

// parseStart accepts a single state name or a list of names.
func parseStart(v cue.Value) ([]string, error) {
	start := []string{}

	startVal := v.LookupPath(cue.ParsePath("start"))
	if !startVal.Exists() {
		return start, nil
	}

	if s, err := startVal.String(); err == nil {
		return append(start, norm.NFC.String(s)), nil
	}

	iter, err := startVal.List()
	if err != nil {
		return nil, &CompileError{
			Field:   "start",
			Message: "start must be a state name or a list of state names",
			Pos:     startVal.Pos(),
		}
	}
	for iter.Next() {
		s, err := iter.Value().String()
		if err != nil {
			return nil, formatCUEError(err)
		}
		start = append(start, norm.NFC.String(s))
	}

	return start, nil
}

// CompileError represents a compilation error with source position.
type CompileError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *CompileError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}

	// CUE errors may contain multiple errors
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	// Return first error with position info
	firstErr := errs[0]
	positions := errors.Positions(firstErr)
	if len(positions) > 0 {
		return &CompileError{
			Field:   "cue",
			Message: firstErr.Error(),
			Pos:     positions[0],
		}
	}

	return err
}
