package compiler

import (
	"fmt"

	"github.com/roach88/facore/internal/automaton"
	"github.com/roach88/facore/internal/ir"
	"github.com/roach88/facore/internal/language"
	"github.com/roach88/facore/internal/symbol"
)

// Compiled is a built automaton together with the definition it came from.
type Compiled struct {
	Def      *ir.AutomatonDef
	Hash     string
	Language language.Language
}

// Build validates def and drives the automaton construction API with it:
// one AddState per declared state (the i-th state becomes StateID i), then
// one SetArc or AddArc per arc in declaration order.
//
// The first validation error is returned; call Validate for the full list.
func Build(def *ir.AutomatonDef, opts ...automaton.Option) (*Compiled, error) {
	if errs := Validate(def); len(errs) > 0 {
		return nil, fmt.Errorf("automaton %q: %w", def.Name, errs[0])
	}

	hash, err := ir.DefinitionHash(def)
	if err != nil {
		return nil, fmt.Errorf("automaton %q: %w", def.Name, err)
	}

	index := def.StateIndex()
	starts := make([]automaton.StateID, len(def.Start))
	for i, name := range def.Start {
		starts[i] = automaton.StateID(index[name])
	}

	var lang language.Language
	if def.IsDeterministic() {
		lang, err = buildDeterministic(def, index, starts, opts)
	} else {
		lang, err = buildNonDeterministic(def, index, starts, opts)
	}
	if err != nil {
		return nil, fmt.Errorf("automaton %q: %w", def.Name, err)
	}

	return &Compiled{Def: def, Hash: hash, Language: lang}, nil
}

func buildDeterministic(def *ir.AutomatonDef, index map[string]int, starts []automaton.StateID, opts []automaton.Option) (language.Language, error) {
	a := automaton.NewDeterministic(def.Alphabet, opts...)
	for _, s := range def.States {
		if _, err := a.AddState(s.Final); err != nil {
			return nil, fmt.Errorf("state %q: %w", s.Name, err)
		}
	}
	for i, arc := range def.Arcs {
		err := a.SetArc(automaton.StateID(index[arc.From]), symbol.Symbol(arc.Label), automaton.StateID(index[arc.To]))
		if err != nil {
			return nil, fmt.Errorf("arcs[%d]: %w", i, err)
		}
	}

	start := automaton.NoState
	if len(starts) > 0 {
		start = starts[0]
	}
	return language.NewDeterministic(a, start), nil
}

func buildNonDeterministic(def *ir.AutomatonDef, index map[string]int, starts []automaton.StateID, opts []automaton.Option) (language.Language, error) {
	a := automaton.NewNonDeterministic(def.Alphabet, opts...)
	for _, s := range def.States {
		if _, err := a.AddState(s.Final); err != nil {
			return nil, fmt.Errorf("state %q: %w", s.Name, err)
		}
	}
	for i, arc := range def.Arcs {
		err := a.AddArc(automaton.StateID(index[arc.From]), symbol.Symbol(arc.Label), automaton.StateID(index[arc.To]))
		if err != nil {
			return nil, fmt.Errorf("arcs[%d]: %w", i, err)
		}
	}
	return language.NewNonDeterministic(a, starts...), nil
}

// StateName returns the declared name of id, or "" when id is not a state.
func (c *Compiled) StateName(id automaton.StateID) string {
	if id == automaton.NoState || int(id) >= len(c.Def.States) {
		return ""
	}
	return c.Def.States[id].Name
}

// StateNames maps ids to declared names.
func (c *Compiled) StateNames(ids []automaton.StateID) []string {
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = c.StateName(id)
	}
	return names
}
