package store

import (
	"context"
	"fmt"

	"github.com/roach88/facore/internal/ir"
)

// WriteRun records the start of a run. An empty status is stored as
// ir.RunRunning.
//
// Writing an existing id starts that run over: scenario, seq, status and
// versions are replaced, so a scenario with a fixed run id re-run into the
// same log reports its latest run. Queries already recorded under the id are
// kept.
func (s *Store) WriteRun(ctx context.Context, run ir.RunRecord) error {
	status := run.Status
	if status == "" {
		status = ir.RunRunning
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs
		(id, scenario, seq, status, tool_version, ir_version)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			scenario = excluded.scenario,
			seq = excluded.seq,
			status = excluded.status,
			tool_version = excluded.tool_version,
			ir_version = excluded.ir_version
	`,
		run.ID,
		run.Scenario,
		run.Seq,
		status,
		run.ToolVersion,
		run.IRVersion,
	)
	if err != nil {
		return fmt.Errorf("write run: %w", err)
	}

	return nil
}

// FinishRun records the final status of a run.
// Returns an error if the run does not exist.
func (s *Store) FinishRun(ctx context.Context, runID string, passed bool) error {
	status := ir.RunFailed
	if passed {
		status = ir.RunPassed
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE runs SET status = ? WHERE id = ?
	`, status, runID)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("finish run: run %q not found", runID)
	}

	return nil
}

// WriteQuery inserts a query record into the store.
// Uses ON CONFLICT DO NOTHING for idempotency - rewriting the same query is
// silently ignored.
//
// Note: The run referenced by RunID must exist (foreign key constraint).
func (s *Store) WriteQuery(ctx context.Context, q ir.QueryRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO queries
		(id, run_id, seq, automaton, definition_hash, input, symbols, accepted, expected)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT DO NOTHING
	`,
		q.ID,
		q.RunID,
		q.Seq,
		q.Automaton,
		q.DefinitionHash,
		q.Input,
		q.Symbols,
		boolToInt(q.Accepted),
		boolToInt(q.Expected),
	)
	if err != nil {
		return fmt.Errorf("write query: %w", err)
	}

	return nil
}
