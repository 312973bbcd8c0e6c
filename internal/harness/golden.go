package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/facore/internal/ir"
)

// Snapshot renders a scenario result as canonical JSON for golden
// comparison. The run id is included only when the scenario fixes it. Query
// ids are left out: they depend on the clock, which a shared run log
// advances between runs.
func Snapshot(scenario *Scenario, result *Result) ([]byte, error) {
	queries := make([]any, len(result.Queries))
	for i, q := range result.Queries {
		start := make([]any, len(q.Start))
		for j, s := range q.Start {
			start[j] = s
		}
		steps := make([]any, len(q.Steps))
		for j, s := range q.Steps {
			states := make([]any, len(s.States))
			for k, name := range s.States {
				states[k] = name
			}
			steps[j] = map[string]any{"symbol": s.Symbol, "states": states}
		}
		entry := map[string]any{
			"index":     q.Index,
			"automaton": q.Automaton,
			"input":     q.Input,
			"accepted":  q.Accepted,
			"expected":  q.Expected,
			"symbols":   q.Symbols,
			"start":     start,
			"steps":     steps,
		}
		queries[i] = entry
	}

	snapshot := map[string]any{
		"scenario_name": scenario.Name,
		"pass":          result.Pass,
		"queries":       queries,
	}
	if scenario.RunID != "" {
		snapshot["run_id"] = result.RunID
	}
	return ir.MarshalCanonical(snapshot)
}

// RunWithGolden executes a scenario and compares its snapshot against
// testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns error if scenario execution fails. Test failure (via goldie)
// occurs if the snapshot doesn't match the golden file.
func RunWithGolden(t *testing.T, scenario *Scenario) error {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return err
	}
	return AssertGolden(t, scenario, result)
}

// AssertGolden compares an existing result against its golden file without
// re-running the scenario.
func AssertGolden(t *testing.T, scenario *Scenario, result *Result) error {
	t.Helper()

	data, err := Snapshot(scenario, result)
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, data)

	return nil
}
