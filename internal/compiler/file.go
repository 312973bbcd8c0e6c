package compiler

import (
	"errors"
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"

	"github.com/roach88/facore/internal/ir"
)

// CompileAll compiles every definition under the top-level automaton struct
// of v, in declaration order. Errors are collected (does not fail-fast);
// each one names the definition it came from.
func CompileAll(v cue.Value) ([]*ir.AutomatonDef, []error) {
	defs := []*ir.AutomatonDef{}

	autoVal := v.LookupPath(cue.ParsePath("automaton"))
	if !autoVal.Exists() {
		return defs, nil
	}

	iter, err := autoVal.Fields()
	if err != nil {
		return nil, []error{formatCUEError(err)}
	}

	var errs []error
	for iter.Next() {
		def, err := CompileAutomaton(iter.Value())
		if err != nil {
			errs = append(errs, fmt.Errorf("automaton %q: %w", iter.Label(), err))
			continue
		}
		defs = append(defs, def)
	}

	return defs, errs
}

// CompileFile compiles the definitions of a single CUE file.
func CompileFile(path string) ([]*ir.AutomatonDef, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read definition file: %w", err)
	}

	ctx := cuecontext.New()
	v := ctx.CompileBytes(data, cue.Filename(path))
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	defs, errs := CompileAll(v)
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return defs, nil
}
