package cli

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/facore/internal/symbol"
)

// DigitsOptions holds flags for the digits command.
type DigitsOptions struct {
	*RootOptions
	Base uint32
}

// DigitsResult is the LSB-first decomposition of a value.
type DigitsResult struct {
	Value  uint64   `json:"value"`
	Base   uint32   `json:"base"`
	Digits []uint32 `json:"digits"`
}

// NewDigitsCommand creates the digits command.
func NewDigitsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DigitsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "digits <value>",
		Short: "Print the symbol sequence of an integer",
		Long: `Print the digits of a non-negative integer in the given base, least
significant digit first. This is the exact symbol sequence a number query
feeds to an automaton. Zero is the empty sequence.

Examples:
  facore digits 6 --base 2     # 0,1,1
  facore digits 255 --base 16  # 15,15`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDigits(opts, args[0], cmd)
		},
	}

	cmd.Flags().Uint32Var(&opts.Base, "base", 2, "digit base (alphabet size, at least 2)")

	return cmd
}

func runDigits(opts *DigitsOptions, arg string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	value, err := strconv.ParseUint(strings.TrimSpace(arg), 10, 64)
	if err != nil {
		return commandError(formatter, &LoadError{Code: ErrCodeBadInput, Message: fmt.Sprintf("invalid number %q: %v", arg, err)})
	}
	if opts.Base < 2 {
		return commandError(formatter, &LoadError{Code: ErrCodeBadInput, Message: fmt.Sprintf("base must be at least 2, got %d", opts.Base)})
	}

	word := slices.Collect(symbol.Digits(value, opts.Base))
	if back := symbol.Compose(symbol.Word(word...), opts.Base); back != value {
		return NewExitError(ExitFailure, fmt.Sprintf("round trip of %d produced %d", value, back))
	}

	result := DigitsResult{Value: value, Base: opts.Base, Digits: make([]uint32, len(word))}
	for i, s := range word {
		result.Digits[i] = uint32(s)
	}

	formatter.VerboseLog("%d in base %d, least significant digit first", value, opts.Base)
	return formatter.Success(result, func(w io.Writer) {
		fmt.Fprintln(w, symbol.FormatWord(word))
	})
}
