package harness

// Step is the state set, by state name, after one consumed symbol.
type Step struct {
	Symbol uint32   `json:"symbol"`
	States []string `json:"states"`
}

// QueryResult is the outcome of one membership query.
type QueryResult struct {
	Index     int            `json:"index"`
	ID        string         `json:"id"`
	Automaton string         `json:"automaton"`
	Input     map[string]any `json:"input"` // {"word": [...]} or {"number": n}
	Accepted  bool           `json:"accepted"`
	Expected  bool           `json:"expected"`
	Symbols   int            `json:"symbols"` // symbols consumed
	Start     []string       `json:"start"`
	Steps     []Step         `json:"steps"`
}

// Passed reports whether the query matched its expectation.
func (q QueryResult) Passed() bool {
	return q.Accepted == q.Expected
}

// FrontierSize returns the size of the state set after step symbols; step 0
// is the start set. Steps past the end of the walk have an empty set.
func (q QueryResult) FrontierSize(step int) int {
	switch {
	case step < 0:
		return 0
	case step == 0:
		return len(q.Start)
	case step <= len(q.Steps):
		return len(q.Steps[step-1].States)
	default:
		return 0
	}
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass indicates overall scenario success: every query matched its
	// expectation and every assertion held.
	Pass bool `json:"pass"`

	// RunID identifies the run in the run log.
	RunID string `json:"run_id"`

	// Queries holds one entry per evaluated query, in scenario order.
	Queries []QueryResult `json:"queries"`

	// Errors contains failure messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
// Used as the starting point for scenario execution.
func NewResult(runID string) *Result {
	return &Result{
		Pass:    true,
		RunID:   runID,
		Queries: []QueryResult{},
		Errors:  []string{},
	}
}

// AddError adds a failure message and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
