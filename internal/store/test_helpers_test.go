package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/roach88/facore/internal/ir"
)

// createTestStore creates a new temp-file store for testing.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestRun creates a run record with minimal required fields.
func createTestRun(id, scenario string, seq int64) ir.RunRecord {
	return ir.RunRecord{
		ID:          id,
		Scenario:    scenario,
		Seq:         seq,
		ToolVersion: "0.1.0",
		IRVersion:   "1",
	}
}

// createTestQuery creates a query record with minimal required fields.
func createTestQuery(id, runID string, seq int64, accepted, expected bool) ir.QueryRecord {
	return ir.QueryRecord{
		ID:             id,
		RunID:          runID,
		Seq:            seq,
		Automaton:      "parity",
		DefinitionHash: "test-hash",
		Input:          `{"number":5}`,
		Symbols:        3,
		Accepted:       accepted,
		Expected:       expected,
	}
}

// mustWriteRun writes a run or fails the test.
func mustWriteRun(t *testing.T, s *Store, run ir.RunRecord) {
	t.Helper()
	if err := s.WriteRun(context.Background(), run); err != nil {
		t.Fatalf("WriteRun() failed: %v", err)
	}
}
