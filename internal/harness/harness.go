package harness

import (
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"log/slog"

	"github.com/roach88/facore/internal/automaton"
	"github.com/roach88/facore/internal/compiler"
	"github.com/roach88/facore/internal/ir"
	"github.com/roach88/facore/internal/store"
	"github.com/roach88/facore/internal/symbol"
)

// Harness is the scenario execution engine.
type Harness struct {
	store    *store.Store
	clock    Clock
	runIDs   RunIDGenerator
	logger   *slog.Logger
	buildOpt []automaton.Option
}

// Option configures a Harness.
type Option func(*Harness)

// WithStore records runs and queries in st. Without a store nothing is
// persisted.
func WithStore(st *store.Store) Option {
	return func(h *Harness) { h.store = st }
}

// WithClock replaces the default atomic clock.
func WithClock(c Clock) Option {
	return func(h *Harness) { h.clock = c }
}

// WithRunIDGenerator replaces the default UUIDv7 generator. A scenario's
// run_id still takes precedence.
func WithRunIDGenerator(g RunIDGenerator) Option {
	return func(h *Harness) { h.runIDs = g }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(h *Harness) { h.logger = l }
}

// WithBuildOptions passes options through to automaton construction.
func WithBuildOptions(opts ...automaton.Option) Option {
	return func(h *Harness) { h.buildOpt = append(h.buildOpt, opts...) }
}

// New creates a harness.
func New(opts ...Option) *Harness {
	h := &Harness{
		clock:  NewClock(),
		runIDs: UUIDv7Generator{},
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Run executes a scenario with a fresh in-memory store and the default
// clock and run id generator.
func Run(scenario *Scenario) (*Result, error) {
	st, err := store.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	return New(WithStore(st)).Run(context.Background(), scenario)
}

// Run executes a scenario and returns the result.
//
// An error return means the scenario could not be executed at all (bad
// definitions, store failure). Failed expectations and assertions are
// reported through Result.Errors with Pass set to false.
//
// Execution flow:
// 1. Compile and build every definition file
// 2. Open a run in the store
// 3. Evaluate each query under the symbol budget
// 4. Evaluate assertions
// 5. Close the run as passed or failed
func (h *Harness) Run(ctx context.Context, scenario *Scenario) (*Result, error) {
	automata, err := h.loadAutomata(scenario.Definitions)
	if err != nil {
		return nil, err
	}

	runID := scenario.RunID
	if runID == "" {
		runID = h.runIDs.Generate()
	}

	if h.store != nil {
		run := ir.RunRecord{
			ID:          runID,
			Scenario:    scenario.Name,
			Seq:         h.clock.Next(),
			Status:      ir.RunRunning,
			ToolVersion: ir.ToolVersion,
			IRVersion:   ir.IRVersion,
		}
		if err := h.store.WriteRun(ctx, run); err != nil {
			return nil, fmt.Errorf("failed to write run: %w", err)
		}
	}

	result := NewResult(runID)
	maxSymbols := scenario.MaxSymbols
	if maxSymbols == 0 {
		maxSymbols = DefaultMaxSymbols
	}

	for i, step := range scenario.Queries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := h.runQuery(ctx, i, step, automata, maxSymbols, scenario.Name, result); err != nil {
			return nil, err
		}
	}

	for _, msg := range EvaluateAssertions(result, scenario.Assertions) {
		result.AddError(msg)
	}

	if h.store != nil {
		if err := h.store.FinishRun(ctx, runID, result.Pass); err != nil {
			return nil, fmt.Errorf("failed to finish run: %w", err)
		}
	}

	h.logger.Info("scenario completed",
		"scenario", scenario.Name,
		"run_id", runID,
		"queries", len(result.Queries),
		"pass", result.Pass,
	)

	return result, nil
}

// loadAutomata compiles and builds every definition in files. Names must be
// unique across the files.
func (h *Harness) loadAutomata(files []string) (map[string]*compiler.Compiled, error) {
	automata := make(map[string]*compiler.Compiled)
	for _, path := range files {
		defs, err := compiler.CompileFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to compile %s: %w", path, err)
		}
		for _, def := range defs {
			if _, dup := automata[def.Name]; dup {
				return nil, fmt.Errorf("%s: automaton %q defined more than once", path, def.Name)
			}
			c, err := compiler.Build(def, h.buildOpt...)
			if err != nil {
				return nil, fmt.Errorf("failed to build %s: %w", path, err)
			}
			automata[def.Name] = c
		}
	}
	return automata, nil
}

// runQuery evaluates one query. Problems with the query itself become
// result errors; only store failures abort the run.
func (h *Harness) runQuery(ctx context.Context, index int, step QueryStep, automata map[string]*compiler.Compiled, maxSymbols int, scenario string, result *Result) error {
	c, ok := automata[step.Automaton]
	if !ok {
		result.AddError(fmt.Sprintf("queries[%d]: unknown automaton %q", index, step.Automaton))
		return nil
	}

	alphabet := c.Language.AlphabetSize()
	input, seq, err := queryInput(step, alphabet)
	if err != nil {
		result.AddError(fmt.Sprintf("queries[%d]: %v", index, err))
		return nil
	}

	budget := symbol.NewBudget(maxSymbols)
	trace := c.Language.Trace(budget.Wrap(seq))
	if err := budget.Err(); err != nil {
		result.AddError(fmt.Sprintf("queries[%d]: %v", index, err))
		return nil
	}

	querySeq := h.clock.Next()
	id, err := ir.QueryID(result.RunID, querySeq, c.Hash, input)
	if err != nil {
		return fmt.Errorf("queries[%d]: %w", index, err)
	}

	qr := QueryResult{
		Index:     index,
		ID:        id,
		Automaton: step.Automaton,
		Input:     input,
		Accepted:  trace.Accepted,
		Expected:  *step.Expect,
		Symbols:   budget.Consumed(),
		Start:     c.StateNames(trace.Start),
		Steps:     make([]Step, len(trace.Steps)),
	}
	for i, s := range trace.Steps {
		qr.Steps[i] = Step{Symbol: uint32(s.Symbol), States: c.StateNames(s.States)}
	}
	result.Queries = append(result.Queries, qr)

	if !qr.Passed() {
		result.AddError(fmt.Sprintf("queries[%d]: %s on %s: expected accepted=%t, got %t",
			index, step.Automaton, describeInput(step), qr.Expected, qr.Accepted))
	}

	h.logger.Debug("query evaluated",
		"scenario", scenario,
		"automaton", step.Automaton,
		"input", describeInput(step),
		"accepted", qr.Accepted,
		"steps", len(qr.Steps),
	)

	if h.store == nil {
		return nil
	}

	encoded, err := store.MarshalInput(input)
	if err != nil {
		return fmt.Errorf("queries[%d]: %w", index, err)
	}
	rec := ir.QueryRecord{
		ID:             id,
		RunID:          result.RunID,
		Seq:            querySeq,
		Automaton:      step.Automaton,
		DefinitionHash: c.Hash,
		Input:          encoded,
		Symbols:        qr.Symbols,
		Accepted:       qr.Accepted,
		Expected:       qr.Expected,
	}
	if err := h.store.WriteQuery(ctx, rec); err != nil {
		return fmt.Errorf("queries[%d]: failed to write query: %w", index, err)
	}
	return nil
}

var errNumberNeedsBase = errors.New("number queries need an alphabet of at least 2 symbols")

// queryInput returns the canonical input of step and the symbols it walks.
func queryInput(step QueryStep, alphabet uint32) (map[string]any, iter.Seq[symbol.Symbol], error) {
	if step.IsNumber() {
		if alphabet < 2 {
			return nil, nil, errNumberNeedsBase
		}
		return map[string]any{"number": *step.Number}, symbol.Digits(*step.Number, alphabet), nil
	}
	word := make([]any, len(step.Word))
	for i, s := range step.Word {
		word[i] = uint32(s)
	}
	return map[string]any{"word": word}, symbol.Word(step.Word...), nil
}

func describeInput(step QueryStep) string {
	if step.IsNumber() {
		return fmt.Sprintf("number %d", *step.Number)
	}
	return fmt.Sprintf("word [%s]", symbol.FormatWord(step.Word))
}
