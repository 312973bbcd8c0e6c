package harness

import (
	"fmt"
	"strings"
)

// AssertionError is returned when an assertion fails.
// It includes the evaluated queries to help debug the failure.
type AssertionError struct {
	Type     string        // Assertion type for categorization
	Expected string        // Human-readable expected outcome
	Actual   string        // Human-readable actual outcome
	Queries  []QueryResult // Evaluated queries for context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if len(e.Queries) > 0 {
		fmt.Fprintf(&buf, "\nQueries:\n")
		for _, q := range e.Queries {
			fmt.Fprintf(&buf, "  [%d] %s %s accepted=%t\n", q.Index, q.Automaton, formatInput(q.Input), q.Accepted)
		}
	}

	return buf.String()
}

// assertOutcomeCount checks how many queries were accepted (or rejected),
// optionally restricted to one automaton.
func assertOutcomeCount(queries []QueryResult, assertion Assertion, accepted bool) error {
	count := 0
	for _, q := range queries {
		if assertion.Automaton != "" && q.Automaton != assertion.Automaton {
			continue
		}
		if q.Accepted == accepted {
			count++
		}
	}

	if count == assertion.Count {
		return nil
	}

	outcome := "rejected"
	if accepted {
		outcome = "accepted"
	}
	scope := "all automata"
	if assertion.Automaton != "" {
		scope = assertion.Automaton
	}
	return &AssertionError{
		Type:     assertion.Type,
		Expected: fmt.Sprintf("%d %s queries for %s", assertion.Count, outcome, scope),
		Actual:   fmt.Sprintf("%d %s queries", count, outcome),
		Queries:  queries,
	}
}

// assertFrontierSize checks the state set size after Step symbols of query
// Query.
func assertFrontierSize(queries []QueryResult, assertion Assertion) error {
	for _, q := range queries {
		if q.Index != assertion.Query {
			continue
		}
		size := q.FrontierSize(assertion.Step)
		if size == assertion.Count {
			return nil
		}
		return &AssertionError{
			Type:     assertion.Type,
			Expected: fmt.Sprintf("%d states after %d symbols of query %d", assertion.Count, assertion.Step, assertion.Query),
			Actual:   fmt.Sprintf("%d states", size),
			Queries:  []QueryResult{q},
		}
	}

	return &AssertionError{
		Type:     assertion.Type,
		Expected: fmt.Sprintf("query %d evaluated", assertion.Query),
		Actual:   "query has no result",
		Queries:  queries,
	}
}

// EvaluateAssertions runs all assertions against a scenario result.
// Returns one message per failed assertion; nil if all pass.
func EvaluateAssertions(result *Result, assertions []Assertion) []string {
	var errors []string

	for i, assertion := range assertions {
		var err error

		switch assertion.Type {
		case AssertAcceptedCount:
			err = assertOutcomeCount(result.Queries, assertion, true)
		case AssertRejectedCount:
			err = assertOutcomeCount(result.Queries, assertion, false)
		case AssertFrontierSize:
			err = assertFrontierSize(result.Queries, assertion)
		default:
			err = fmt.Errorf("assertion[%d]: unknown assertion type %q", i, assertion.Type)
		}

		if err != nil {
			errors = append(errors, err.Error())
		}
	}

	return errors
}

func formatInput(input map[string]any) string {
	if n, ok := input["number"]; ok {
		return fmt.Sprintf("number=%v", n)
	}
	if w, ok := input["word"].([]any); ok {
		parts := make([]string, len(w))
		for i, s := range w {
			parts[i] = fmt.Sprint(s)
		}
		return "word=[" + strings.Join(parts, ",") + "]"
	}
	return fmt.Sprint(input)
}
