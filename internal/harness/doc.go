// Package harness runs membership scenarios against compiled automata.
//
// The harness compiles the CUE definitions a scenario names, runs each
// membership query through the language view of its automaton, checks the
// expected outcome, and evaluates scenario-level assertions.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: scenario_name
//	description: "What this scenario validates"
//	definitions:
//	  - parity.cue
//	max_symbols: 64
//	queries:
//	  - automaton: parity
//	    number: 5
//	    expect: false
//	  - automaton: parity
//	    word: [1, 0, 1]
//	    expect: false
//	assertions:
//	  - type: accepted_count
//	    automaton: parity
//	    count: 0
//	  - type: frontier_size
//	    query: 1
//	    step: 1
//	    count: 1
//
// A query reads either a number (walked as its least-significant-first
// digits in base A) or an explicit word. A query with neither is the empty
// word.
//
// # Assertion Types
//
//   - accepted_count: number of accepted queries, optionally for one automaton
//   - rejected_count: number of rejected queries, optionally for one automaton
//   - frontier_size: size of the state set after step symbols of query
//     (0-based index; step 0 is the start set)
//
// # Deterministic Testing
//
// Query ids are content-addressed from the run id, a logical seq and the
// definition hash, so a scenario with a fixed run_id and a fresh
// testutil.DeterministicClock produces identical records and golden traces
// on every run.
//
// # Usage
//
//	scenario, err := harness.LoadScenario("testdata/scenarios/parity.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := harness.New(harness.WithLogger(logger)).Run(ctx, scenario)
//	if !result.Pass {
//	    for _, e := range result.Errors {
//	        log.Println(e)
//	    }
//	}
package harness
