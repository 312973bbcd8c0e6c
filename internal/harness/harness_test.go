package harness

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/facore/internal/automaton"
	"github.com/roach88/facore/internal/ir"
	"github.com/roach88/facore/internal/store"
	"github.com/roach88/facore/internal/testutil"
)

const automataFile = "testdata/definitions/automata.cue"

func boolPtr(b bool) *bool { return &b }
func numPtr(n uint64) *uint64 { return &n }

func binaryScenario(t *testing.T) *Scenario {
	t.Helper()
	s, err := LoadScenario("testdata/scenarios/binary.yaml")
	require.NoError(t, err)
	return s
}

func openStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func TestRun_BinaryScenario(t *testing.T) {
	result, err := Run(binaryScenario(t))
	require.NoError(t, err)

	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.Empty(t, result.Errors)
	assert.Equal(t, "test-run-binary", result.RunID)
	require.Len(t, result.Queries, 5)

	q := result.Queries[0]
	assert.Equal(t, "parity", q.Automaton)
	assert.Equal(t, map[string]any{"number": uint64(5)}, q.Input)
	assert.False(t, q.Accepted)
	assert.Equal(t, 3, q.Symbols)
	assert.Equal(t, []string{"even"}, q.Start)
	assert.Equal(t, []Step{
		{Symbol: 1, States: []string{"odd"}},
		{Symbol: 0, States: []string{"odd"}},
		{Symbol: 1, States: []string{"even"}},
	}, q.Steps)

	empty := result.Queries[2]
	assert.Equal(t, map[string]any{"word": []any{}}, empty.Input)
	assert.Equal(t, 0, empty.Symbols)
	assert.Empty(t, empty.Steps)

	nfa := result.Queries[3]
	assert.True(t, nfa.Accepted)
	assert.Equal(t, []string{"scan", "one", "seen"}, nfa.Steps[1].States)
}

func TestRun_DeterministicIDs(t *testing.T) {
	run := func() *Result {
		h := New(WithClock(testutil.NewDeterministicClock()))
		result, err := h.Run(context.Background(), binaryScenario(t))
		require.NoError(t, err)
		return result
	}

	first, second := run(), run()
	require.Len(t, second.Queries, len(first.Queries))
	for i := range first.Queries {
		assert.Equal(t, first.Queries[i].ID, second.Queries[i].ID)
		assert.Len(t, first.Queries[i].ID, 64)
	}
	assert.NotEqual(t, first.Queries[0].ID, first.Queries[1].ID)
}

func TestRun_GeneratedRunID(t *testing.T) {
	scenario := binaryScenario(t)
	scenario.RunID = ""

	h := New(WithRunIDGenerator(testutil.NewFixedRunIDGenerator("generated")))
	result, err := h.Run(context.Background(), scenario)
	require.NoError(t, err)
	assert.Equal(t, "generated", result.RunID)

	result, err = New().Run(context.Background(), scenario)
	require.NoError(t, err)
	assert.Len(t, result.RunID, 36)
}

func TestRun_RecordsInStore(t *testing.T) {
	ctx := context.Background()
	st := openStore(t)

	h := New(
		WithStore(st),
		WithClock(testutil.NewDeterministicClock()),
	)
	result, err := h.Run(ctx, binaryScenario(t))
	require.NoError(t, err)
	require.True(t, result.Pass)

	run, err := st.ReadRun(ctx, "test-run-binary")
	require.NoError(t, err)
	assert.Equal(t, "binary", run.Scenario)
	assert.Equal(t, ir.RunPassed, run.Status)
	assert.Equal(t, int64(1), run.Seq)

	queries, err := st.ReadQueries(ctx, "test-run-binary")
	require.NoError(t, err)
	require.Len(t, queries, 5)
	for i, q := range queries {
		assert.Equal(t, result.Queries[i].ID, q.ID)
		assert.Equal(t, int64(i+2), q.Seq)
		assert.True(t, q.Passed())
	}
	assert.Equal(t, `{"number":5}`, queries[0].Input)
	assert.Equal(t, `{"word":[1,1]}`, queries[3].Input)

	summary, err := st.SummarizeRun(ctx, "test-run-binary")
	require.NoError(t, err)
	assert.Equal(t, store.RunSummary{Total: 5, Accepted: 2, Failed: 0}, summary)
}

func TestRun_FailedRunStatus(t *testing.T) {
	ctx := context.Background()
	st := openStore(t)

	scenario := &Scenario{
		Name:        "wrong_expectation",
		Description: "expects the wrong outcome",
		Definitions: []string{automataFile},
		RunID:       "run-wrong",
		Queries: []QueryStep{
			{Automaton: "parity", Number: numPtr(1), Expect: boolPtr(false)},
		},
	}

	result, err := New(WithStore(st)).Run(ctx, scenario)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "queries[0]: parity on number 1: expected accepted=false, got true")

	run, err := st.ReadRun(ctx, "run-wrong")
	require.NoError(t, err)
	assert.Equal(t, ir.RunFailed, run.Status)

	queries, err := st.ReadQueries(ctx, "run-wrong")
	require.NoError(t, err)
	require.Len(t, queries, 1)
	assert.False(t, queries[0].Passed())
}

func TestRun_BudgetExceeded(t *testing.T) {
	scenario, err := LoadScenario("testdata/scenarios/budget.yaml")
	require.NoError(t, err)

	result, err := Run(scenario)
	require.NoError(t, err)

	assert.False(t, result.Pass)
	require.Len(t, result.Queries, 1, "an overrun query has no result")
	assert.Equal(t, 2, result.Queries[0].Symbols)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "queries[1]")
	assert.Contains(t, result.Errors[0], "exceeds budget of 2 symbols")
}

func TestRun_QueryErrors(t *testing.T) {
	dir := t.TempDir()
	unary := filepath.Join(dir, "unary.cue")
	require.NoError(t, os.WriteFile(unary, []byte(`
automaton: unary: {
	kind:     "deterministic"
	alphabet: 1
	start:    "a"
	states: a: final: true
	arcs: [{from: "a", label: 0, to: "a"}]
}
`), 0644))

	scenario := &Scenario{
		Name:        "errors",
		Description: "queries that cannot be evaluated",
		Definitions: []string{unary},
		Queries: []QueryStep{
			{Automaton: "missing", Expect: boolPtr(true)},
			{Automaton: "unary", Number: numPtr(3), Expect: boolPtr(true)},
			{Automaton: "unary", Word: nil, Expect: boolPtr(true)},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 2)
	assert.Contains(t, result.Errors[0], `unknown automaton "missing"`)
	assert.Contains(t, result.Errors[1], "alphabet of at least 2")
	require.Len(t, result.Queries, 1)
	assert.Equal(t, 2, result.Queries[0].Index)
	assert.True(t, result.Queries[0].Accepted)
}

func TestRun_DefinitionErrors(t *testing.T) {
	dir := t.TempDir()
	invalid := filepath.Join(dir, "invalid.cue")
	require.NoError(t, os.WriteFile(invalid, []byte(`
automaton: broken: {
	kind:     "deterministic"
	alphabet: 2
	start:    "nowhere"
}
`), 0644))

	tests := []struct {
		name  string
		files []string
		want  string
	}{
		{"duplicate names", []string{automataFile, automataFile}, "defined more than once"},
		{"invalid definition", []string{invalid}, "failed to build"},
		{"missing file", []string{filepath.Join(dir, "missing.cue")}, "failed to compile"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scenario := &Scenario{
				Name:        tt.name,
				Description: tt.name,
				Definitions: tt.files,
				Queries:     []QueryStep{{Automaton: "parity", Expect: boolPtr(false)}},
			}
			_, err := Run(scenario)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestRun_BuildOptions(t *testing.T) {
	scenario := binaryScenario(t)
	_, err := New(WithBuildOptions(automaton.WithMaxStates(2))).Run(context.Background(), scenario)
	require.Error(t, err)
	assert.ErrorIs(t, err, automaton.ErrCapacity)
}

func TestRun_Logging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, err := New(WithLogger(logger)).Run(context.Background(), binaryScenario(t))
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "query evaluated")
	assert.Contains(t, out, "automaton=contains_11")
	assert.Contains(t, out, "scenario completed")
	assert.Contains(t, out, "pass=true")
}

func TestRun_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New().Run(ctx, binaryScenario(t))
	assert.ErrorIs(t, err, context.Canceled)
}
