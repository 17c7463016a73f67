package main

import (
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/spf13/cobra"

	"rootsweep/internal/logging"
	"rootsweep/internal/reorganizer"
)

type planReport struct {
	Root    string               `json:"root"`
	Policy  string               `json:"policy"`
	Deleted int                  `json:"deleted"`
	Moved   int                  `json:"moved"`
	Skipped int                  `json:"skipped"`
	Actions []reorganizer.Action `json:"actions"`
}

func newPlanCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Show what a sweep would do without changing anything",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.requireRoot()
			if err != nil {
				return err
			}
			table, err := ctx.layoutTable()
			if err != nil {
				return err
			}

			sweeper := reorganizer.New(osfs.New(cfg.Paths.RootDir), table, reorganizer.Options{
				DuplicatePolicy:  cfg.Sweep.DuplicatePolicy,
				CreateTargetDirs: cfg.Sweep.CreateTargetDirs,
			}, logging.NewNop())
			actions, err := sweeper.Plan(cmd.Context())
			if err != nil {
				return err
			}

			report := planReport{Root: cfg.Paths.RootDir, Policy: cfg.Sweep.DuplicatePolicy, Actions: actions}
			if report.Actions == nil {
				report.Actions = []reorganizer.Action{}
			}
			for _, action := range actions {
				switch action.Kind {
				case reorganizer.ActionMove:
					report.Moved++
				case reorganizer.ActionRemoveDuplicate:
					report.Deleted++
				case reorganizer.ActionSkipConflict:
					report.Skipped++
				}
			}

			if jsonOutput {
				return printJSON(cmd.OutOrStdout(), report)
			}
			out := cmd.OutOrStdout()
			if len(actions) == 0 {
				fmt.Fprintf(out, "Nothing to do in %s\n", report.Root)
				return nil
			}
			fmt.Fprintln(out, renderPlanTable(actions))
			fmt.Fprintf(out, "Would delete %d and move %d", report.Deleted, report.Moved)
			if report.Skipped > 0 {
				fmt.Fprintf(out, "; %d conflicting duplicates stay at the root", report.Skipped)
			}
			fmt.Fprintln(out)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func renderPlanTable(actions []reorganizer.Action) string {
	rows := make([][]string, 0, len(actions))
	var total int64
	for i, action := range actions {
		total += action.Size
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			actionLabel(action.Kind),
			action.Name,
			action.Target(),
			humanize.IBytes(uint64(max(action.Size, 0))),
		})
	}
	footer := []string{"", "", fmt.Sprintf("%d files", len(actions)), "", humanize.IBytes(uint64(max(total, 0)))}
	cols := []column{right("#"), left("Action"), left("File"), left("Target"), right("Size")}
	return renderTable(cols, rows, footer)
}

func actionLabel(kind reorganizer.ActionKind) string {
	switch kind {
	case reorganizer.ActionMove:
		return "move"
	case reorganizer.ActionRemoveDuplicate:
		return "remove duplicate"
	case reorganizer.ActionSkipConflict:
		return "skip (differs)"
	default:
		return string(kind)
	}
}
