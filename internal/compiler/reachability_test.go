package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/facore/internal/ir"
)

func TestAnalyzeReachability_Clean(t *testing.T) {
	assert.Empty(t, AnalyzeReachability(parityDef()))
}

func TestAnalyzeReachability_NoStates(t *testing.T) {
	def := &ir.AutomatonDef{Name: "empty", Kind: ir.KindDeterministic, Alphabet: 2}
	assert.Empty(t, AnalyzeReachability(def))
}

func TestAnalyzeReachability_NoStart(t *testing.T) {
	def := parityDef()
	def.Start = nil

	warnings := AnalyzeReachability(def)
	require.Len(t, warnings, 1)
	assert.Equal(t, LevelWarning, warnings[0].Level)
	assert.Contains(t, warnings[0].Message, "empty")
}

func TestAnalyzeReachability_Unreachable(t *testing.T) {
	def := parityDef()
	def.States = append(def.States, ir.StateDef{Name: "island", Final: true})

	warnings := AnalyzeReachability(def)
	require.Len(t, warnings, 1)
	assert.Equal(t, []string{"island"}, warnings[0].States)
	assert.Equal(t, LevelWarning, warnings[0].Level)
}

func TestAnalyzeReachability_Trap(t *testing.T) {
	// accepts words starting with 1; "dead" absorbs everything else
	def := &ir.AutomatonDef{
		Name:     "leading_one",
		Kind:     ir.KindDeterministic,
		Alphabet: 2,
		States:   []ir.StateDef{{Name: "start"}, {Name: "ok", Final: true}, {Name: "dead"}},
		Arcs: []ir.ArcDef{
			{From: "start", Label: 1, To: "ok"},
			{From: "start", Label: 0, To: "dead"},
			{From: "ok", Label: 0, To: "ok"},
			{From: "ok", Label: 1, To: "ok"},
			{From: "dead", Label: 0, To: "dead"},
			{From: "dead", Label: 1, To: "dead"},
		},
		Start: []string{"start"},
	}

	warnings := AnalyzeReachability(def)
	require.Len(t, warnings, 1)
	assert.Equal(t, []string{"dead"}, warnings[0].States)
	assert.Equal(t, LevelInfo, warnings[0].Level)
}

func TestAnalyzeReachability_MultiStateTrap(t *testing.T) {
	def := &ir.AutomatonDef{
		Name:     "loop",
		Kind:     ir.KindNonDeterministic,
		Alphabet: 2,
		States:   []ir.StateDef{{Name: "s"}, {Name: "a"}, {Name: "b"}, {Name: "sink"}},
		Arcs: []ir.ArcDef{
			{From: "s", Label: 0, To: "b"},
			{From: "s", Label: 1, To: "sink"},
			{From: "a", Label: 0, To: "b"},
			{From: "b", Label: 1, To: "a"},
		},
		Start: []string{"s"},
	}

	warnings := AnalyzeReachability(def)
	require.Len(t, warnings, 2)
	assert.Equal(t, []string{"a", "b"}, warnings[0].States)
	assert.Equal(t, []string{"sink"}, warnings[1].States)
}

func TestTarjanSCC_CoversEveryState(t *testing.T) {
	graph := stateGraph{{1}, {0}, {2}, {}}
	sccs := tarjanSCC(graph)

	seen := map[int]bool{}
	for _, scc := range sccs {
		for _, s := range scc {
			assert.False(t, seen[s])
			seen[s] = true
		}
	}
	assert.Len(t, seen, 4)
	assert.Len(t, sccs, 3)
}
