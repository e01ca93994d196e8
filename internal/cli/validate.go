package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mvarley/riposte/internal/rulespec"
)

// ValidationResult holds validate output for the JSON format.
type ValidationResult struct {
	Valid   bool                       `json:"valid"`
	Signals []string                   `json:"signals,omitempty"`
	Errors  []rulespec.ValidationError `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <pack.yaml>",
		Short: "Validate a rule pack without running it",
		Long: `Validate a YAML rule pack: schema conformance, actor type names, and
expression compilation. All problems are reported in one pass.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	pack, verrs := rulespec.LoadFile(path)

	if len(verrs) > 0 {
		if formatter.Format == "json" {
			if err := formatter.JSON(Response{
				Status: "error",
				Data:   ValidationResult{Valid: false, Errors: verrs},
				Error:  &Error{Code: verrs[0].Code, Message: verrs[0].Message},
			}); err != nil {
				return err
			}
			return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(verrs)))
		}

		fmt.Fprintln(formatter.Writer, "✗ Validation failed")
		fmt.Fprintln(formatter.Writer)
		for _, verr := range verrs {
			fmt.Fprintf(formatter.Writer, "  %s\n", verr.Error())
		}
		return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(verrs)))
	}

	signals := signalIDs(pack)
	formatter.VerboseLog("Loaded %d signal(s) from %s", len(signals), path)

	if formatter.Format == "json" {
		return formatter.JSON(Response{
			Status: "ok",
			Data:   ValidationResult{Valid: true, Signals: signals},
		})
	}

	fmt.Fprintf(formatter.Writer, "✓ Pack valid (%d signal(s))\n", len(signals))
	for _, id := range signals {
		fmt.Fprintf(formatter.Writer, "  %s: %d immediate, %d combo\n",
			id, len(pack.Signals[id].Immediate), len(pack.Signals[id].Combo))
	}
	return nil
}

func signalIDs(pack *rulespec.Pack) []string {
	return rulespec.NewStore(pack).Signals()
}
