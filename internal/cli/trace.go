package cli

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/facore/internal/ir"
	"github.com/roach88/facore/internal/store"
)

// TraceOptions holds flags for the trace command.
type TraceOptions struct {
	*RootOptions
	Database   string
	RunID      string // optional - show the queries of one run
	Definition string // optional - show every query against one definition hash
}

// RunListing is one run in the run listing.
type RunListing struct {
	ir.RunRecord
	store.RunSummary
}

// TraceResult holds the queries of one run, or of one definition.
type TraceResult struct {
	Run        *ir.RunRecord     `json:"run,omitempty"`
	Definition string            `json:"definition,omitempty"`
	Queries    []ir.QueryRecord  `json:"queries"`
	Stats      *store.RunSummary `json:"stats,omitempty"`
}

// NewTraceCommand creates the trace command.
func NewTraceCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TraceOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "trace",
		Short: "Inspect the run log",
		Long: `Inspect runs recorded by "facore test --db".

Without --run, lists every run with its query counts. With --run, shows the
queries of that run in the order they were evaluated. With --definition,
shows every recorded query against one definition hash across all runs.

Examples:
  facore trace --db ./runs.db
  facore trace --db ./runs.db --run 0192d3c4-...
  facore trace --db ./runs.db --definition 3f2a... --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrace(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().StringVar(&opts.RunID, "run", "", "run id to show")
	cmd.Flags().StringVar(&opts.Definition, "definition", "", "definition hash to show")
	cmd.MarkFlagsMutuallyExclusive("run", "definition")

	return cmd
}

func runTrace(opts *TraceOptions, cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	formatter := newFormatter(opts.RootOptions, cmd)

	if _, err := os.Stat(opts.Database); err != nil {
		return WrapExitError(ExitCommandError, "database not found", err)
	}

	st, err := store.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer st.Close()

	switch {
	case opts.RunID != "":
		return traceRun(ctx, st, opts.RunID, formatter)
	case opts.Definition != "":
		return traceDefinition(ctx, st, opts.Definition, formatter)
	default:
		return listRuns(ctx, st, formatter)
	}
}

func listRuns(ctx context.Context, st *store.Store, formatter *OutputFormatter) error {
	runs, err := st.ListRuns(ctx)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to list runs", err)
	}

	summaries := make([]RunListing, 0, len(runs))
	for _, run := range runs {
		sum, err := st.SummarizeRun(ctx, run.ID)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to summarize run", err)
		}
		summaries = append(summaries, RunListing{RunRecord: run, RunSummary: sum})
	}

	return formatter.Success(summaries, func(w io.Writer) {
		if len(summaries) == 0 {
			fmt.Fprintln(w, "No runs recorded.")
			return
		}
		for _, s := range summaries {
			fmt.Fprintf(w, "%-6s %s  %s  queries=%d accepted=%d failed=%d\n",
				s.Status, s.ID, s.Scenario, s.Total, s.Accepted, s.Failed)
		}
	})
}

func traceRun(ctx context.Context, st *store.Store, runID string, formatter *OutputFormatter) error {
	run, err := st.ReadRun(ctx, runID)
	if errors.Is(err, sql.ErrNoRows) {
		return NewExitError(ExitCommandError, fmt.Sprintf("run not found: %s", runID))
	}
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read run", err)
	}

	queries, err := st.ReadQueries(ctx, runID)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read queries", err)
	}
	sum, err := st.SummarizeRun(ctx, runID)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to summarize run", err)
	}

	result := TraceResult{Run: &run, Queries: queries, Stats: &sum}
	return formatter.Success(result, func(w io.Writer) {
		fmt.Fprintf(w, "Run %s (%s) %s\n", run.ID, run.Scenario, run.Status)
		fmt.Fprintln(w)
		printQueries(w, queries)
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Stats: %d queries, %d accepted, %d failed\n", sum.Total, sum.Accepted, sum.Failed)
	})
}

func traceDefinition(ctx context.Context, st *store.Store, hash string, formatter *OutputFormatter) error {
	queries, err := st.ReadQueriesByDefinition(ctx, hash)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read queries", err)
	}

	result := TraceResult{Definition: hash, Queries: queries}
	return formatter.Success(result, func(w io.Writer) {
		if len(queries) == 0 {
			fmt.Fprintf(w, "No queries found for definition: %s\n", hash)
			return
		}
		printQueries(w, queries)
	})
}

func printQueries(w io.Writer, queries []ir.QueryRecord) {
	for _, q := range queries {
		mark := "✓"
		if !q.Passed() {
			mark = "✗"
		}
		fmt.Fprintf(w, "[seq=%d] %s %s %s accepted=%t expected=%t symbols=%d\n",
			q.Seq, mark, q.Automaton, q.Input, q.Accepted, q.Expected, q.Symbols)
	}
}
