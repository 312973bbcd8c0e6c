package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/facore/internal/ir"
)

// ListRuns returns every recorded run.
// Results are ordered deterministically: ORDER BY seq ASC, id ASC COLLATE BINARY.
//
// Returns an empty slice (not nil) if no runs exist.
func (s *Store) ListRuns(ctx context.Context) ([]ir.RunRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, scenario, seq, status, tool_version, ir_version
		FROM runs
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []ir.RunRecord{}
	for rows.Next() {
		var run ir.RunRecord
		if err := rows.Scan(&run.ID, &run.Scenario, &run.Seq, &run.Status, &run.ToolVersion, &run.IRVersion); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}

	return runs, nil
}

// ReadRun retrieves a single run by ID.
// Returns sql.ErrNoRows if not found.
func (s *Store) ReadRun(ctx context.Context, id string) (ir.RunRecord, error) {
	var run ir.RunRecord
	err := s.db.QueryRowContext(ctx, `
		SELECT id, scenario, seq, status, tool_version, ir_version
		FROM runs
		WHERE id = ?
	`, id).Scan(&run.ID, &run.Scenario, &run.Seq, &run.Status, &run.ToolVersion, &run.IRVersion)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ir.RunRecord{}, err
		}
		return ir.RunRecord{}, fmt.Errorf("read run: %w", err)
	}
	return run, nil
}

// ReadQueries returns all queries of a run with deterministic ordering.
//
// Returns an empty slice (not nil) if the run has no queries.
func (s *Store) ReadQueries(ctx context.Context, runID string) ([]ir.QueryRecord, error) {
	return s.readQueries(ctx, `
		SELECT id, run_id, seq, automaton, definition_hash, input, symbols, accepted, expected
		FROM queries
		WHERE run_id = ?
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`, runID)
}

// ReadQueriesByDefinition returns every query recorded against one
// definition hash, across runs.
func (s *Store) ReadQueriesByDefinition(ctx context.Context, definitionHash string) ([]ir.QueryRecord, error) {
	return s.readQueries(ctx, `
		SELECT q.id, q.run_id, q.seq, q.automaton, q.definition_hash, q.input, q.symbols, q.accepted, q.expected
		FROM queries q
		JOIN runs r ON q.run_id = r.id
		WHERE q.definition_hash = ?
		ORDER BY r.seq ASC, q.seq ASC, q.id COLLATE BINARY ASC
	`, definitionHash)
}

func (s *Store) readQueries(ctx context.Context, query string, arg string) ([]ir.QueryRecord, error) {
	rows, err := s.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("query queries: %w", err)
	}
	defer rows.Close()

	queries := []ir.QueryRecord{}
	for rows.Next() {
		q, err := scanQuery(rows)
		if err != nil {
			return nil, err
		}
		queries = append(queries, q)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate queries: %w", err)
	}

	return queries, nil
}

func scanQuery(rows *sql.Rows) (ir.QueryRecord, error) {
	var (
		q                  ir.QueryRecord
		accepted, expected int
	)
	err := rows.Scan(
		&q.ID,
		&q.RunID,
		&q.Seq,
		&q.Automaton,
		&q.DefinitionHash,
		&q.Input,
		&q.Symbols,
		&accepted,
		&expected,
	)
	if err != nil {
		return ir.QueryRecord{}, fmt.Errorf("scan query: %w", err)
	}
	q.Accepted = accepted == 1
	q.Expected = expected == 1
	return q, nil
}

// RunSummary aggregates the queries of one run.
type RunSummary struct {
	Total    int `json:"total"`
	Accepted int `json:"accepted"`
	Failed   int `json:"failed"` // accepted != expected
}

// SummarizeRun counts the queries of a run.
func (s *Store) SummarizeRun(ctx context.Context, runID string) (RunSummary, error) {
	var sum RunSummary
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
		       COALESCE(SUM(accepted), 0),
		       COALESCE(SUM(CASE WHEN accepted != expected THEN 1 ELSE 0 END), 0)
		FROM queries
		WHERE run_id = ?
	`, runID).Scan(&sum.Total, &sum.Accepted, &sum.Failed)
	if err != nil {
		return RunSummary{}, fmt.Errorf("summarize run: %w", err)
	}
	return sum, nil
}

// LastSeq returns the highest seq recorded in the run log, 0 when empty.
// A clock resumed from it stamps new records after all existing ones.
func (s *Store) LastSeq(ctx context.Context) (int64, error) {
	var seq int64
	err := s.db.QueryRowContext(ctx, `
		SELECT MAX(
			COALESCE((SELECT MAX(seq) FROM runs), 0),
			COALESCE((SELECT MAX(seq) FROM queries), 0)
		)
	`).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("last seq: %w", err)
	}
	return seq, nil
}
