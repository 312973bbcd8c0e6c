package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parityDef() *AutomatonDef {
	return &AutomatonDef{
		Name:     "parity",
		Kind:     KindDeterministic,
		Alphabet: 2,
		States:   []StateDef{{Name: "even"}, {Name: "odd", Final: true}},
		Arcs: []ArcDef{
			{From: "even", Label: 0, To: "even"},
			{From: "even", Label: 1, To: "odd"},
			{From: "odd", Label: 0, To: "odd"},
			{From: "odd", Label: 1, To: "even"},
		},
		Start: []string{"even"},
	}
}

func TestDefinitionHash_Stable(t *testing.T) {
	h1, err := DefinitionHash(parityDef())
	require.NoError(t, err)
	h2, err := DefinitionHash(parityDef())
	require.NoError(t, err)

	assert.Equal(t, h1, h2)
	assert.Len(t, h1, 64)
}

func TestDefinitionHash_ContentSensitive(t *testing.T) {
	base := MustDefinitionHash(parityDef())

	changed := parityDef()
	changed.States[1].Final = false
	assert.NotEqual(t, base, MustDefinitionHash(changed))

	reordered := parityDef()
	reordered.Arcs[0], reordered.Arcs[1] = reordered.Arcs[1], reordered.Arcs[0]
	assert.NotEqual(t, base, MustDefinitionHash(reordered), "arc order is significant")
}

func TestQueryID(t *testing.T) {
	def := MustDefinitionHash(parityDef())
	input := map[string]any{"number": uint64(5)}

	id1, err := QueryID("run-1", 1, def, input)
	require.NoError(t, err)
	id2, err := QueryID("run-1", 2, def, input)
	require.NoError(t, err)

	assert.NotEqual(t, id1, id2)
	assert.Equal(t, id1, mustQueryID(t, "run-1", 1, def, input))
}

func mustQueryID(t *testing.T, runID string, seq int64, def string, input map[string]any) string {
	t.Helper()
	id, err := QueryID(runID, seq, def, input)
	require.NoError(t, err)
	return id
}

func TestStateIndex(t *testing.T) {
	idx := parityDef().StateIndex()
	assert.Equal(t, map[string]int{"even": 0, "odd": 1}, idx)
	assert.True(t, parityDef().IsDeterministic())
}
