package compiler

import (
	"os"
	"path/filepath"
	"testing"

	"cuelang.org/go/cue/cuecontext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileAll(t *testing.T) {
	ctx := cuecontext.New()
	v := ctx.CompileString(`
		automaton: b: { kind: "deterministic", alphabet: 2 }
		automaton: a: { kind: "nondeterministic", alphabet: 3 }
		other: "ignored"
	`)
	require.NoError(t, v.Err())

	defs, errs := CompileAll(v)
	require.Empty(t, errs)
	require.Len(t, defs, 2)
	assert.ElementsMatch(t, []string{"a", "b"}, []string{defs[0].Name, defs[1].Name})
}

func TestCompileAll_CollectsErrors(t *testing.T) {
	ctx := cuecontext.New()
	v := ctx.CompileString(`
		automaton: good: { kind: "deterministic", alphabet: 2 }
		automaton: bad1: { alphabet: 2 }
		automaton: bad2: { kind: "deterministic" }
	`)
	require.NoError(t, v.Err())

	defs, errs := CompileAll(v)
	assert.Len(t, defs, 1)
	require.Len(t, errs, 2)
	joined := errs[0].Error() + errs[1].Error()
	assert.Contains(t, joined, `automaton "bad1"`)
	assert.Contains(t, joined, `automaton "bad2"`)
}

func TestCompileAll_NoAutomata(t *testing.T) {
	ctx := cuecontext.New()
	defs, errs := CompileAll(ctx.CompileString(`x: 1`))
	assert.Empty(t, errs)
	assert.Empty(t, defs)
}

func TestCompileFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "parity.cue")
	err := os.WriteFile(path, []byte(`
automaton: parity: {
	kind:     "deterministic"
	alphabet: 2
	start:    "even"
	states: {
		even: {}
		odd: final: true
	}
	arcs: [
		{from: "even", label: 1, to: "odd"},
		{from: "odd", label: 1, to: "even"},
	]
}
`), 0644)
	require.NoError(t, err)

	defs, err := CompileFile(path)
	require.NoError(t, err)
	require.Len(t, defs, 1)
	assert.Equal(t, "parity", defs[0].Name)
	assert.Len(t, defs[0].Arcs, 2)
}

func TestCompileFile_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := CompileFile(filepath.Join(dir, "missing.cue"))
	assert.ErrorContains(t, err, "failed to read")

	syntax := filepath.Join(dir, "syntax.cue")
	require.NoError(t, os.WriteFile(syntax, []byte("automaton: {"), 0644))
	_, err = CompileFile(syntax)
	assert.Error(t, err)
}
