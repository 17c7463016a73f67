package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"rootsweep/internal/journal"
	"rootsweep/internal/logging"
)

const defaultHistoryLimit = 20

type runDetail struct {
	Run     journal.Run     `json:"run"`
	Actions []journal.Entry `json:"actions"`
}

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded sweep runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openJournal()
			if err != nil {
				return err
			}
			defer store.Close()

			runs, err := store.ListRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if jsonOutput {
				if runs == nil {
					runs = []journal.Run{}
				}
				return printJSON(cmd.OutOrStdout(), runs)
			}
			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, "No runs recorded")
				return nil
			}
			fmt.Fprintln(out, renderRunsTable(runs, time.Now()))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", defaultHistoryLimit, "Maximum number of runs to show (0 for all)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.AddCommand(newHistoryShowCommand(ctx))
	return cmd
}

func newHistoryShowCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show RUN_ID",
		Short: "Show one run and the actions it took (accepts a unique id prefix)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openJournal()
			if err != nil {
				return err
			}
			defer store.Close()

			run, err := store.GetRun(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			entries, err := store.Actions(cmd.Context(), run.ID)
			if err != nil {
				return err
			}
			if jsonOutput {
				if entries == nil {
					entries = []journal.Entry{}
				}
				return printJSON(cmd.OutOrStdout(), runDetail{Run: *run, Actions: entries})
			}

			out := cmd.OutOrStdout()
			writeRunSummary(newReport(out), *run)
			if len(entries) > 0 {
				fmt.Fprintln(out, renderEntriesTable(entries))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func renderRunsTable(runs []journal.Run, now time.Time) string {
	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		rows = append(rows, []string{
			logging.FormatSubject(run.ID, ""),
			humanize.RelTime(run.StartedAt, now, "ago", "from now"),
			string(run.Status),
			strconv.Itoa(run.Deleted),
			strconv.Itoa(run.Moved),
			strconv.Itoa(run.Skipped),
			formatDuration(run.Duration()),
			run.Root,
		})
	}
	cols := []column{
		left("Run"), left("Started"), left("Status"),
		right("Deleted"), right("Moved"), right("Skipped"), right("Took"),
		left("Root"),
	}
	return renderTable(cols, rows, nil)
}

func writeRunSummary(r *report, run journal.Run) {
	r.section("Run " + run.ID)
	r.line("Status", runStatusKind(run.Status), string(run.Status))
	r.line("Root", statusInfo, run.Root)
	r.line("Policy", statusInfo, run.Policy)
	r.line("Started", statusInfo, run.StartedAt.Local().Format(time.DateTime))
	if run.Finished() && !run.FinishedAt.IsZero() {
		r.line("Took", statusInfo, formatDuration(run.Duration()))
	}
	r.line("Counts", statusInfo, fmt.Sprintf("deleted %d, moved %d, skipped %d", run.Deleted, run.Moved, run.Skipped))
	if run.Error != "" {
		r.line("Error", statusError, run.Error)
	}
}

func renderEntriesTable(entries []journal.Entry) string {
	rows := make([][]string, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, []string{
			strconv.Itoa(entry.Seq),
			entry.Kind,
			entry.Filename,
			entry.TargetDir,
			humanize.IBytes(uint64(max(entry.SizeBytes, 0))),
		})
	}
	cols := []column{right("#"), left("Action"), left("File"), left("Target"), right("Size")}
	return renderTable(cols, rows, nil)
}

func runStatusKind(status journal.Status) statusKind {
	switch status {
	case journal.StatusCompleted:
		return statusOK
	case journal.StatusCanceled, journal.StatusRunning:
		return statusWarn
	default:
		return statusError
	}
}

func formatDuration(d time.Duration) string {
	if d <= 0 {
		return "-"
	}
	if d < time.Second {
		return d.Round(time.Millisecond).String()
	}
	return d.Round(100 * time.Millisecond).String()
}
