package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mvarley/riposte/internal/journal"
)

// TraceOptions holds flags for the trace command.
type TraceOptions struct {
	*RootOptions
	Database  string
	Initiator string
	Target    string
	Signal    string
	Limit     int
	Rewards   bool
}

// TraceResult holds trace output for the JSON format.
type TraceResult struct {
	Reactions []journal.Reaction `json:"reactions,omitempty"`
	Rewards   []journal.Reward   `json:"rewards,omitempty"`
}

// NewTraceCommand creates the trace command.
func NewTraceCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TraceOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "trace",
		Short: "Read the reaction journal",
		Long: `Read executed reactions (or reward grants with --rewards) back from the
SQLite journal. Records order by run token then sequence so one run's
steps read contiguously.

Examples:
  riposte trace --db ./riposte.db
  riposte trace --db ./riposte.db --target Abigail --signal heart
  riposte trace --db ./riposte.db --rewards --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrace(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to the journal database (required)")
	cmd.Flags().StringVar(&opts.Initiator, "initiator", "", "filter by initiator id")
	cmd.Flags().StringVar(&opts.Target, "target", "", "filter by target id")
	cmd.Flags().StringVar(&opts.Signal, "signal", "", "filter by signal id")
	cmd.Flags().IntVar(&opts.Limit, "limit", 0, "maximum records to return (0 = all)")
	cmd.Flags().BoolVar(&opts.Rewards, "rewards", false, "list reward grants instead of reactions")
	cmd.MarkFlagRequired("db")

	return cmd
}

func runTrace(opts *TraceOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	if _, err := os.Stat(opts.Database); err != nil {
		return &ExitError{Code: ExitCommandError, Message: fmt.Sprintf("journal database not found: %s", opts.Database), Err: err}
	}

	store, err := journal.Open(opts.Database)
	if err != nil {
		return &ExitError{Code: ExitCommandError, Message: "open journal", Err: err}
	}
	defer store.Close()

	filter := journal.Filter{
		Initiator: opts.Initiator,
		Target:    opts.Target,
		Signal:    opts.Signal,
		Limit:     opts.Limit,
	}
	ctx := cmd.Context()

	if opts.Rewards {
		rewards, err := store.ListRewards(ctx, filter)
		if err != nil {
			return &ExitError{Code: ExitCommandError, Message: "read rewards", Err: err}
		}
		return outputRewards(formatter, rewards)
	}

	reactions, err := store.ListReactions(ctx, filter)
	if err != nil {
		return &ExitError{Code: ExitCommandError, Message: "read reactions", Err: err}
	}
	return outputReactions(formatter, reactions)
}

func outputReactions(f *OutputFormatter, reactions []journal.Reaction) error {
	if f.Format == "json" {
		return f.JSON(Response{Status: "ok", Data: TraceResult{Reactions: reactions}})
	}

	if len(reactions) == 0 {
		fmt.Fprintln(f.Writer, "no reactions recorded")
		return nil
	}
	for _, r := range reactions {
		kind := "immediate"
		if r.Combo {
			kind = fmt.Sprintf("combo x%d", r.Streak)
		}
		fmt.Fprintf(f.Writer, "%s #%d  %s -> %s  signal=%s  %s", r.RunToken, r.Seq, r.Initiator, r.Target, r.Signal, kind)
		if r.Emote != "" {
			fmt.Fprintf(f.Writer, "  emote=%s", r.Emote)
		}
		if r.TextKey != "" {
			fmt.Fprintf(f.Writer, "  text=%s", r.TextKey)
		}
		fmt.Fprintln(f.Writer)
	}
	return nil
}

func outputRewards(f *OutputFormatter, rewards []journal.Reward) error {
	if f.Format == "json" {
		return f.JSON(Response{Status: "ok", Data: TraceResult{Rewards: rewards}})
	}

	if len(rewards) == 0 {
		fmt.Fprintln(f.Writer, "no rewards recorded")
		return nil
	}
	for _, r := range rewards {
		fmt.Fprintf(f.Writer, "day %d  %s -> %s  +%d  (%s #%d)\n",
			r.Day, r.Initiator, r.Target, r.Amount, r.RunToken, r.Seq)
	}
	return nil
}
