package cli

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/facore/internal/compiler"
	"github.com/roach88/facore/internal/harness"
	"github.com/roach88/facore/internal/symbol"
)

// CheckOptions holds flags for the check command.
type CheckOptions struct {
	*RootOptions
	Automaton  string
	Word       string
	Number     string
	Trace      bool
	MaxSymbols int
}

// CheckStep is one consumed symbol in check output.
type CheckStep struct {
	Symbol uint32   `json:"symbol"`
	States []string `json:"states"`
}

// CheckResult holds the outcome of one membership query.
type CheckResult struct {
	Automaton string      `json:"automaton"`
	Input     string      `json:"input"`
	Accepted  bool        `json:"accepted"`
	Symbols   int         `json:"symbols"`
	Start     []string    `json:"start,omitempty"`
	Steps     []CheckStep `json:"steps,omitempty"`
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CheckOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "check <defs-dir>",
		Short: "Test membership of a word or number",
		Long: `Build one automaton from a directory of CUE definitions and test
whether it accepts a word or an integer.

Numbers are decomposed into base-A digits least significant first, where A
is the automaton's alphabet size: --number 6 on a binary automaton walks
0,1,1.

Exit codes:
  0 - Input accepted
  1 - Input rejected
  2 - Command error (invalid definitions, unknown automaton, bad input)

Examples:
  facore check ./defs --automaton parity --number 5
  facore check ./defs --automaton parity --word 1,0,1 --trace`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Automaton, "automaton", "", "automaton name (required)")
	_ = cmd.MarkFlagRequired("automaton")
	cmd.Flags().StringVar(&opts.Word, "word", "", "comma-separated symbols, e.g. 1,0,1")
	cmd.Flags().StringVar(&opts.Number, "number", "", "non-negative integer")
	cmd.MarkFlagsMutuallyExclusive("word", "number")
	cmd.Flags().BoolVar(&opts.Trace, "trace", false, "print the state set after every symbol")
	cmd.Flags().IntVar(&opts.MaxSymbols, "max-symbols", harness.DefaultMaxSymbols, "maximum symbols to consume (0 = unlimited)")

	return cmd
}

func runCheck(opts *CheckOptions, defsDir string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)
	logger := formatter.Logger()

	loadResult, loadErrors := LoadDefinitions(defsDir, LoadModeFailFast)
	if len(loadErrors) > 0 {
		return commandError(formatter, loadErrors[0])
	}

	compiled, err := BuildDefinition(loadResult, opts.Automaton)
	if err != nil {
		return commandError(formatter, err)
	}
	lang := compiled.Language

	var (
		seq   iter.Seq[symbol.Symbol]
		input string
	)
	switch {
	case cmd.Flags().Changed("number"):
		value, err := strconv.ParseUint(strings.TrimSpace(opts.Number), 10, 64)
		if err != nil {
			return commandError(formatter, &LoadError{Code: ErrCodeBadInput, Message: fmt.Sprintf("invalid number %q: %v", opts.Number, err)})
		}
		if lang.AlphabetSize() < 2 {
			return commandError(formatter, &LoadError{Code: ErrCodeBadInput, Message: fmt.Sprintf("automaton %q has alphabet size %d; number queries need at least 2", opts.Automaton, lang.AlphabetSize())})
		}
		seq = symbol.Digits(value, lang.AlphabetSize())
		input = fmt.Sprintf("number %d", value)
	default:
		word, err := symbol.ParseWord(opts.Word)
		if err != nil {
			return commandError(formatter, &LoadError{Code: ErrCodeBadInput, Message: err.Error()})
		}
		seq = symbol.Word(word...)
		input = fmt.Sprintf("word [%s]", symbol.FormatWord(word))
	}

	budget := symbol.NewBudget(opts.MaxSymbols)
	trace := lang.Trace(budget.Wrap(seq))
	if err := budget.Err(); err != nil {
		return commandError(formatter, &LoadError{Code: ErrCodeBudget, Message: err.Error()})
	}

	result := CheckResult{
		Automaton: opts.Automaton,
		Input:     input,
		Accepted:  trace.Accepted,
		Symbols:   budget.Consumed(),
	}
	if opts.Trace {
		result.Start = compiled.StateNames(trace.Start)
		result.Steps = make([]CheckStep, len(trace.Steps))
		for i, s := range trace.Steps {
			result.Steps[i] = CheckStep{Symbol: uint32(s.Symbol), States: compiled.StateNames(s.States)}
		}
	}

	logger.Debug("membership query",
		"automaton", opts.Automaton,
		"input", input,
		"accepted", result.Accepted,
		"symbols", result.Symbols,
	)

	if err := outputCheck(formatter, result); err != nil {
		return err
	}
	if !result.Accepted {
		return reported(NewExitError(ExitFailure, fmt.Sprintf("%s rejects %s", opts.Automaton, input)))
	}
	return nil
}

func outputCheck(formatter *OutputFormatter, result CheckResult) error {
	return formatter.Success(result, func(w io.Writer) {
		if result.Start != nil {
			fmt.Fprintf(w, "start: {%s}\n", strings.Join(result.Start, ", "))
			for _, s := range result.Steps {
				fmt.Fprintf(w, "  %d -> {%s}\n", s.Symbol, strings.Join(s.States, ", "))
			}
		}
		verdict := "rejected"
		if result.Accepted {
			verdict = "accepted"
		}
		fmt.Fprintf(w, "%s: %s %s (%d symbols)\n", result.Automaton, result.Input, verdict, result.Symbols)
	})
}

// commandError reports err through the formatter and maps it to exit code 2.
// The returned error is marked reported.
func commandError(formatter *OutputFormatter, err error) error {
	code := ErrCodeGeneric
	var loadErr *LoadError
	var validationErr compiler.ValidationError
	switch {
	case errors.As(err, &loadErr):
		code = loadErr.Code
	case errors.As(err, &validationErr):
		code = validationErr.Code
	}
	return formatter.Fail(ExitCommandError, code, err)
}
