package cli

import (
	"errors"
	"fmt"
	"io"

	"cuelang.org/go/cue/token"
	"github.com/spf13/cobra"

	"github.com/roach88/facore/internal/compiler"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid    bool                                      `json:"valid"`
	Automata []string                                  `json:"automata"`
	Errors   []compiler.ValidationError                `json:"errors,omitempty"`
	Warnings map[string][]compiler.ReachabilityWarning `json:"warnings,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <defs-dir>",
		Short: "Validate automaton definitions",
		Long: `Compile every automaton definition in a directory of CUE files and
report all errors: CUE syntax, schema problems, unknown states, labels
outside the alphabet and misplaced start states.

Valid definitions are also checked for unreachable and trap states; those
are reported as warnings and do not fail validation.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, defsDir string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	loadResult, loadErrors := LoadDefinitions(defsDir, LoadModeCollectAll)
	if loadResult == nil {
		var loadErr *LoadError
		if errors.As(loadErrors[0], &loadErr) {
			return outputValidateError(formatter, loadErr.Code, loadErr.Message, nil)
		}
		return outputValidateError(formatter, ErrCodeGeneric, loadErrors[0].Error(), nil)
	}

	formatter.VerboseLog("Found %d CUE file(s) in %s", loadResult.FileCount, defsDir)

	var validationErrors []compiler.ValidationError
	for _, err := range loadErrors {
		var loadErr *LoadError
		if errors.As(err, &loadErr) {
			validationErrors = append(validationErrors, compiler.ValidationError{
				Field:   "load",
				Message: loadErr.Message,
				Code:    loadErr.Code,
				Line:    getLineFromCuePos(loadErr.Pos),
			})
		}
	}

	result := ValidationResult{
		Automata: loadResult.Names(),
		Warnings: map[string][]compiler.ReachabilityWarning{},
	}
	for _, def := range loadResult.Definitions {
		formatter.VerboseLog("Validating automaton: %s", def.Name)

		errs := compiler.Validate(def)
		for _, e := range errs {
			e.Field = def.Name + "." + e.Field
			validationErrors = append(validationErrors, e)
		}
		if len(errs) > 0 {
			continue
		}
		if warnings := compiler.AnalyzeReachability(def); len(warnings) > 0 {
			result.Warnings[def.Name] = warnings
		}
	}

	if len(validationErrors) > 0 {
		result.Errors = validationErrors
		return outputValidationErrors(formatter, result)
	}

	result.Valid = true
	return outputValidateSuccess(formatter, result)
}

// getLineFromCuePos extracts line number from a token.Pos.
func getLineFromCuePos(pos token.Pos) int {
	if pos.IsValid() {
		return pos.Line()
	}
	return 0
}

// outputValidateSuccess outputs successful validation results.
func outputValidateSuccess(formatter *OutputFormatter, result ValidationResult) error {
	return formatter.Success(result, func(w io.Writer) {
		fmt.Fprintf(w, "✓ %d automata valid\n", len(result.Automata))
		for _, name := range result.Automata {
			for _, warn := range result.Warnings[name] {
				fmt.Fprintf(w, "  %s %s: %s\n", warn.Level, name, warn.Message)
			}
		}
	})
}

// outputValidateError outputs a single load error. Load errors are
// command-level errors (exit code 2).
func outputValidateError(formatter *OutputFormatter, code, message string, details any) error {
	if err := formatter.Error(code, message, details); err != nil {
		return err
	}
	return reported(NewExitError(ExitCommandError, fmt.Sprintf("%s: %s", code, message)))
}

// outputValidationErrors outputs multiple validation errors.
func outputValidationErrors(formatter *OutputFormatter, result ValidationResult) error {
	errs := result.Errors
	failed := reported(NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs))))

	if formatter.JSON() {
		if err := formatter.Respond(CLIResponse{
			Status: "error",
			Data:   result,
			Error: &CLIError{
				Code:    errs[0].Code,
				Message: errs[0].Message,
			},
		}); err != nil {
			return err
		}
		return failed
	}

	w := formatter.Writer
	fmt.Fprintln(w, "✗ Validation failed")
	fmt.Fprintln(w)
	for _, err := range errs {
		if err.Line > 0 {
			fmt.Fprintf(w, "line %d\n", err.Line)
		}
		fmt.Fprintf(w, "  %s: %s: %s\n\n", err.Code, err.Field, err.Message)
	}
	return failed
}

// ValidateDefinitionsDir validates all definitions in a directory.
// This is a helper function for external callers.
func ValidateDefinitionsDir(defsDir string) ([]compiler.ValidationError, error) {
	loadResult, loadErrors := LoadDefinitions(defsDir, LoadModeFailFast)
	if loadResult == nil {
		return nil, loadErrors[0]
	}
	if len(loadErrors) > 0 {
		return nil, loadErrors[0]
	}

	var errs []compiler.ValidationError
	for _, def := range loadResult.Definitions {
		errs = append(errs, compiler.Validate(def)...)
	}
	return errs, nil
}
