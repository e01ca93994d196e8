package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mvarley/riposte/internal/harness"
	"github.com/mvarley/riposte/internal/journal"
)

// SimulateResult holds simulate output for the JSON format.
type SimulateResult struct {
	Scenario string         `json:"scenario"`
	Passed   bool           `json:"passed"`
	Steps    []SimulateStep `json:"steps"`
	Failures []string       `json:"failures,omitempty"`
}

// SimulateStep is one step's recorded event trace.
type SimulateStep struct {
	Label  string   `json:"label"`
	Events []string `json:"events"`
}

// SimulateOptions holds flags for the simulate command.
type SimulateOptions struct {
	*RootOptions
	Journal string
}

// NewSimulateCommand creates the simulate command.
func NewSimulateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SimulateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "simulate <scenario.yaml>",
		Short: "Replay a signal scenario deterministically",
		Long: `Replay a scripted signal scenario against a real engine with recording
ports, a frozen clock, and fixed run tokens, then print the event trace.

Scenarios bundle a rule pack, target fact sheets, and a signal script;
steps may carry expected event lines, which turn the replay into a
self-checking test.

Examples:
  riposte simulate scenarios/heart.yaml
  riposte simulate scenarios/heart.yaml --journal ./riposte.db
  riposte simulate scenarios/heart.yaml --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulate(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Journal, "journal", "", "record the replay into a journal database")

	return cmd
}

func runSimulate(opts *SimulateOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	scenario, err := harness.LoadScenario(path)
	if err != nil {
		return &ExitError{Code: ExitCommandError, Message: "load scenario", Err: err}
	}

	formatter.VerboseLog("Replaying %q: %d step(s)", scenario.Name, len(scenario.Steps))

	var runOpts []harness.Option
	if opts.Journal != "" {
		store, err := journal.Open(opts.Journal)
		if err != nil {
			return &ExitError{Code: ExitCommandError, Message: "open journal", Err: err}
		}
		defer store.Close()
		runOpts = append(runOpts, harness.WithJournal(journal.NewSink(store)))
	}

	result, err := harness.Run(scenario, runOpts...)
	if err != nil {
		return &ExitError{Code: ExitCommandError, Message: "run scenario", Err: err}
	}

	if formatter.Format == "json" {
		out := SimulateResult{
			Scenario: scenario.Name,
			Passed:   result.Passed(),
			Failures: result.Failures,
		}
		for _, step := range result.Steps {
			out.Steps = append(out.Steps, SimulateStep{Label: step.Label, Events: step.Events})
		}
		status := "ok"
		if !result.Passed() {
			status = "error"
		}
		if err := formatter.JSON(Response{Status: status, Data: out}); err != nil {
			return err
		}
	} else {
		fmt.Fprint(formatter.Writer, harness.RenderTrace(result))
		for _, failure := range result.Failures {
			fmt.Fprintf(formatter.Writer, "✗ %s\n", failure)
		}
		if result.Passed() && hasExpectations(scenario) {
			fmt.Fprintln(formatter.Writer, "✓ All expectations held")
		}
	}

	if !result.Passed() {
		return NewExitError(ExitFailure, fmt.Sprintf("%d expectation(s) failed", len(result.Failures)))
	}
	return nil
}

func hasExpectations(s *harness.Scenario) bool {
	for _, step := range s.Steps {
		if step.Expect != nil {
			return true
		}
	}
	return false
}
