package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/roach88/bondgen/internal/codegen"
	"github.com/roach88/bondgen/internal/config"
	"github.com/roach88/bondgen/internal/schema"
)

// ValidateOptions holds flags for the validate command.
type ValidateOptions struct {
	*RootOptions
	Target   string
	FailFast bool
}

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid bool             `json:"valid"`
	Files []FileValidation `json:"files"`
}

// FileValidation reports one schema document.
type FileValidation struct {
	Input   string    `json:"input"`
	Structs int       `json:"structs"`
	Enums   int       `json:"enums"`
	Error   *CLIError `json:"error,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ValidateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "validate <schema...>",
		Short: "Validate schema documents without writing output",
		Long: `Load and validate schema documents without generating any files.

With --target, the documents are also rendered in memory so that
target-specific restrictions (such as name clashes in the flattened Go
package) are reported.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(opts, args, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Target, "target", "t", "", "also check restrictions of a target (cpp|go)")
	cmd.Flags().BoolVar(&opts.FailFast, "fail-fast", false, "stop at the first invalid document")

	return cmd
}

func runValidate(opts *ValidateOptions, args []string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	var target codegen.Target
	if opts.Target != "" {
		if !slices.Contains(config.Targets, opts.Target) {
			return formatter.fail(ExitCommandError, ErrCodeUsage,
				fmt.Sprintf("target %q is not one of %v", opts.Target, config.Targets))
		}
		target = newTarget(&config.Config{Target: opts.Target})
	}

	inputs, err := ExpandInputs(args)
	if err != nil {
		return failInput(formatter, err)
	}

	log := opts.logger()
	result := ValidationResult{Valid: true}
	for _, input := range inputs {
		fv := validateFile(input, target)
		result.Files = append(result.Files, fv)
		if fv.Error != nil {
			result.Valid = false
			log.Debug("invalid schema", zap.String("input", input), zap.String("code", fv.Error.Code))
			if opts.FailFast {
				break
			}
		}
	}

	return outputValidate(formatter, result)
}

func validateFile(input string, target codegen.Target) FileValidation {
	fv := FileValidation{Input: input}

	s, err := schema.Load(input)
	if err != nil {
		fv.Error = newCLIError(err)
		return fv
	}
	fv.Structs = len(s.Structs())
	fv.Enums = len(s.Enums())

	if target != nil {
		if _, err := codegen.Generate(s, target); err != nil {
			fv.Error = newCLIError(err)
		}
	}
	return fv
}

func outputValidate(formatter *OutputFormatter, result ValidationResult) error {
	invalid := 0
	for _, fv := range result.Files {
		if fv.Error != nil {
			invalid++
		}
	}

	if formatter.Format == "json" {
		resp := CLIResponse{Status: "ok", Data: result}
		if !result.Valid {
			resp.Status = "error"
			for _, fv := range result.Files {
				if fv.Error != nil {
					resp.Error = fv.Error
					break
				}
			}
		}
		if err := formatter.encode(resp); err != nil {
			return err
		}
	} else {
		for _, fv := range result.Files {
			if fv.Error != nil {
				fmt.Fprintf(formatter.Writer, "✗ %s\n  %s: %s\n", fv.Input, fv.Error.Code, fv.Error.Message)
				continue
			}
			fmt.Fprintf(formatter.Writer, "✓ %s (%d structs, %d enums)\n", fv.Input, fv.Structs, fv.Enums)
		}
		if result.Valid {
			fmt.Fprintln(formatter.Writer, "✓ All schemas valid")
		} else {
			fmt.Fprintln(formatter.Writer, "✗ Validation failed")
		}
	}

	if !result.Valid {
		return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", invalid))
	}
	return nil
}
