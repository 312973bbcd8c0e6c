package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/roach88/facore/internal/symbol"
)

// DefaultMaxSymbols bounds every query of a scenario that sets no
// max_symbols.
const DefaultMaxSymbols = 10000

// Scenario defines a membership test scenario.
type Scenario struct {
	// Name uniquely identifies this scenario.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Definitions lists CUE files holding automaton definitions.
	// Paths are relative to the scenario file location.
	Definitions []string `yaml:"definitions"`

	// MaxSymbols bounds the symbols fed into any one query.
	// Zero means DefaultMaxSymbols.
	MaxSymbols int `yaml:"max_symbols,omitempty"`

	// RunID is an optional fixed run id. When set, the run id appears in
	// golden snapshots; when empty the harness generates one.
	RunID string `yaml:"run_id,omitempty"`

	// Queries are evaluated in order.
	Queries []QueryStep `yaml:"queries"`

	// Assertions are evaluated after all queries.
	Assertions []Assertion `yaml:"assertions,omitempty"`
}

// QueryStep is one membership query with its expected outcome.
type QueryStep struct {
	// Automaton names a definition from the scenario's files.
	Automaton string `yaml:"automaton"`

	// Word is an explicit symbol sequence.
	Word []symbol.Symbol `yaml:"word,omitempty"`

	// Number is walked as its LSB-first digits in the alphabet's base.
	// Mutually exclusive with Word.
	Number *uint64 `yaml:"number,omitempty"`

	// Expect is the expected membership outcome. Required.
	Expect *bool `yaml:"expect"`
}

// IsNumber reports whether the step queries a number rather than a word.
func (q QueryStep) IsNumber() bool {
	return q.Number != nil
}

// Assertion validates aggregate query outcomes.
type Assertion struct {
	// Type specifies the assertion type:
	// - "accepted_count": number of accepted queries
	// - "rejected_count": number of rejected queries
	// - "frontier_size": state set size at one step of one query
	Type string `yaml:"type"`

	// Automaton restricts accepted_count and rejected_count to one
	// automaton. Empty means all queries.
	Automaton string `yaml:"automaton,omitempty"`

	// Query is the 0-based query index (used by frontier_size).
	Query int `yaml:"query,omitempty"`

	// Step is the number of consumed symbols (used by frontier_size).
	Step int `yaml:"step,omitempty"`

	// Count is the expected number.
	Count int `yaml:"count"`
}

// Assertion type constants.
const (
	AssertAcceptedCount = "accepted_count"
	AssertRejectedCount = "rejected_count"
	AssertFrontierSize  = "frontier_size"
)

// LoadScenario reads and parses a scenario YAML file, resolving definition
// paths relative to the file's directory.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	return LoadScenarioWithBasePath(path, filepath.Dir(path))
}

// LoadScenarioWithBasePath reads and parses a scenario YAML file,
// resolving definition paths relative to the provided base path.
func LoadScenarioWithBasePath(path, basePath string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	scenario, err := ParseScenario(data)
	if err != nil {
		return nil, err
	}

	for i, def := range scenario.Definitions {
		if !filepath.IsAbs(def) && basePath != "" {
			scenario.Definitions[i] = filepath.Join(basePath, def)
		}
	}

	if err := validateDefinitionPaths(scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return scenario, nil
}

// ParseScenario parses scenario YAML without touching the filesystem.
// Definition paths are left as written.
func ParseScenario(data []byte) (*Scenario, error) {
	// Strict decoding catches typos like "assertion:" vs "assertions:"
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	if scenario.MaxSymbols == 0 {
		scenario.MaxSymbols = DefaultMaxSymbols
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if len(s.Definitions) == 0 {
		return fmt.Errorf("definitions list is required and must be non-empty")
	}

	if len(s.Queries) == 0 {
		return fmt.Errorf("queries list is required and must be non-empty")
	}

	if s.MaxSymbols < 0 {
		return fmt.Errorf("max_symbols must be non-negative")
	}

	for i, q := range s.Queries {
		if q.Automaton == "" {
			return fmt.Errorf("queries[%d]: automaton is required", i)
		}
		if q.Expect == nil {
			return fmt.Errorf("queries[%d]: expect is required", i)
		}
		if q.Number != nil && len(q.Word) > 0 {
			return fmt.Errorf("queries[%d]: word and number are mutually exclusive", i)
		}
	}

	for i, a := range s.Assertions {
		if err := validateAssertion(i, &a, len(s.Queries)); err != nil {
			return err
		}
	}

	return nil
}

func validateDefinitionPaths(s *Scenario) error {
	for _, def := range s.Definitions {
		if _, err := os.Stat(def); os.IsNotExist(err) {
			return fmt.Errorf("definition file not found: %s", def)
		}
	}
	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion, queries int) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	if a.Count < 0 {
		return fmt.Errorf("assertions[%d]: count must be non-negative", index)
	}

	switch a.Type {
	case AssertAcceptedCount, AssertRejectedCount:
	case AssertFrontierSize:
		if a.Query < 0 || a.Query >= queries {
			return fmt.Errorf("assertions[%d]: query index %d out of range for frontier_size", index, a.Query)
		}
		if a.Step < 0 {
			return fmt.Errorf("assertions[%d]: step must be non-negative for frontier_size", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}
