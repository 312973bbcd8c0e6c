package compiler

import (
	"errors"
	"testing"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/facore/internal/ir"
)

func compileCUE(t *testing.T, src, path string) (*ir.AutomatonDef, error) {
	t.Helper()
	ctx := cuecontext.New()
	v := ctx.CompileString(src)
	require.NoError(t, v.Err())
	return CompileAutomaton(v.LookupPath(cue.ParsePath(path)))
}

func TestCompileAutomatonBasic(t *testing.T) {
	def, err := compileCUE(t, `
		automaton: parity: {
			kind:     "deterministic"
			alphabet: 2
			start:    "even"
			states: {
				even: final: false
				odd: final:  true
			}
			arcs: [
				{from: "even", label: 0, to: "even"},
				{from: "even", label: 1, to: "odd"},
				{from: "odd", label: 0, to: "odd"},
				{from: "odd", label: 1, to: "even"},
			]
		}
	`, "automaton.parity")
	require.NoError(t, err)

	assert.Equal(t, "parity", def.Name)
	assert.Equal(t, ir.KindDeterministic, def.Kind)
	assert.Equal(t, uint32(2), def.Alphabet)
	assert.Equal(t, []ir.StateDef{{Name: "even"}, {Name: "odd", Final: true}}, def.States)
	assert.Len(t, def.Arcs, 4)
	assert.Equal(t, ir.ArcDef{From: "even", Label: 1, To: "odd"}, def.Arcs[1])
	assert.Equal(t, []string{"even"}, def.Start)
}

func TestCompileAutomatonStartList(t *testing.T) {
	def, err := compileCUE(t, `
		automaton: multi: {
			kind:     "nondeterministic"
			alphabet: 3
			start: ["a", "b"]
			states: {
				a: {}
				b: final: true
			}
		}
	`, "automaton.multi")
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b"}, def.Start)
	assert.False(t, def.States[0].Final, "final defaults to false")
	assert.Empty(t, def.Arcs)
}

func TestCompileAutomatonOptionalFields(t *testing.T) {
	def, err := compileCUE(t, `
		automaton: empty: {
			kind:     "deterministic"
			alphabet: 2
		}
	`, "automaton.empty")
	require.NoError(t, err)

	assert.Empty(t, def.States)
	assert.Empty(t, def.Arcs)
	assert.Empty(t, def.Start)
}

func TestCompileAutomatonQuotedName(t *testing.T) {
	def, err := compileCUE(t, `
		automaton: "thue-morse": {
			kind:     "deterministic"
			alphabet: 2
		}
	`, `automaton."thue-morse"`)
	require.NoError(t, err)
	assert.Equal(t, "thue-morse", def.Name)
}

func TestCompileAutomatonNFCNames(t *testing.T) {
	// decomposed e + combining acute in the source
	def, err := compileCUE(t, `
		automaton: accents: {
			kind:     "deterministic"
			alphabet: 2
			start:    "cafe\u0301"
			states: "cafe\u0301": final: true
			arcs: [{from: "cafe\u0301", label: 0, to: "caf\u00e9"}]
		}
	`, "automaton.accents")
	require.NoError(t, err)

	assert.Equal(t, "caf\u00e9", def.States[0].Name)
	assert.Equal(t, []string{"caf\u00e9"}, def.Start)
	assert.Equal(t, def.Arcs[0].From, def.Arcs[0].To)
}

func TestCompileAutomatonMissingFields(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		field string
	}{
		{
			name:  "kind",
			src:   `automaton: x: { alphabet: 2 }`,
			field: "kind",
		},
		{
			name:  "alphabet",
			src:   `automaton: x: { kind: "deterministic" }`,
			field: "alphabet",
		},
		{
			name:  "arc label",
			src:   `automaton: x: { kind: "deterministic", alphabet: 2, arcs: [{from: "a", to: "a"}] }`,
			field: "arcs[0].label",
		},
		{
			name:  "arc to",
			src:   `automaton: x: { kind: "deterministic", alphabet: 2, arcs: [{from: "a", label: 0}] }`,
			field: "arcs[0].to",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := compileCUE(t, tt.src, "automaton.x")
			require.Error(t, err)

			var compileErr *CompileError
			require.True(t, errors.As(err, &compileErr))
			assert.Equal(t, tt.field, compileErr.Field)
			assert.Contains(t, compileErr.Message, "required")
		})
	}
}

func TestCompileAutomatonWrongTypes(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"float alphabet", `automaton: x: { kind: "deterministic", alphabet: 2.5 }`},
		{"string label", `automaton: x: { kind: "deterministic", alphabet: 2, arcs: [{from: "a", label: "0", to: "a"}] }`},
		{"negative label", `automaton: x: { kind: "deterministic", alphabet: 2, arcs: [{from: "a", label: -1, to: "a"}] }`},
		{"numeric kind", `automaton: x: { kind: 1, alphabet: 2 }`},
		{"bool start", `automaton: x: { kind: "deterministic", alphabet: 2, start: true }`},
		{"string final", `automaton: x: { kind: "deterministic", alphabet: 2, states: a: final: "yes" }`},
		{"huge alphabet", `automaton: x: { kind: "deterministic", alphabet: 4294967296 }`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := compileCUE(t, tt.src, "automaton.x")
			assert.Error(t, err)
		})
	}
}

func TestCompileAutomatonErrorPosition(t *testing.T) {
	ctx := cuecontext.New()
	v := ctx.CompileString(`
automaton: x: {
	kind:     "deterministic"
	alphabet: "two"
}
`, cue.Filename("bad.cue"))
	require.NoError(t, v.Err())

	_, err := CompileAutomaton(v.LookupPath(cue.ParsePath("automaton.x")))
	require.Error(t, err)

	var compileErr *CompileError
	require.True(t, errors.As(err, &compileErr))
	assert.Equal(t, "alphabet", compileErr.Field)
	assert.True(t, compileErr.Pos.IsValid())
	assert.Equal(t, 4, compileErr.Pos.Line())
	assert.Contains(t, err.Error(), "bad.cue:4:")
}

func TestCompileAutomatonValueError(t *testing.T) {
	ctx := cuecontext.New()
	v := ctx.CompileString(`
		automaton: x: {
			alphabet: 2
			alphabet: 3
		}
	`)

	_, err := CompileAutomaton(v.LookupPath(cue.ParsePath("automaton.x")))
	require.Error(t, err)
}

func TestCompileErrorFormat(t *testing.T) {
	err := &CompileError{
		Field:   "kind",
		Message: "kind is required",
	}
	assert.Equal(t, "kind: kind is required", err.Error())
}
