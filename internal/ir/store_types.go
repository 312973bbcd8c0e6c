package ir

// NOTE: These are store-layer records of harness runs, not definitions.
// Automata themselves are never persisted.

// Run statuses.
const (
	RunRunning = "running"
	RunPassed  = "passed"
	RunFailed  = "failed"
)

// RunRecord is one scenario run (store-layer).
type RunRecord struct {
	ID          string `json:"id"` // UUIDv7, or fixed in tests
	Scenario    string `json:"scenario"`
	Seq         int64  `json:"seq"` // Logical clock at run start
	Status      string `json:"status"`
	ToolVersion string `json:"tool_version"`
	IRVersion   string `json:"ir_version"`
}

// QueryRecord is the outcome of one membership query within a run
// (store-layer).
type QueryRecord struct {
	ID             string `json:"id"` // Content-addressed, see QueryID
	RunID          string `json:"run_id"`
	Seq            int64  `json:"seq"`
	Automaton      string `json:"automaton"`
	DefinitionHash string `json:"definition_hash"`
	Input          string `json:"input"`   // Canonical JSON of the query input
	Symbols        int    `json:"symbols"` // Symbols consumed
	Accepted       bool   `json:"accepted"`
	Expected       bool   `json:"expected"`
}

// Passed reports whether the query matched its expectation.
func (q QueryRecord) Passed() bool {
	return q.Accepted == q.Expected
}
