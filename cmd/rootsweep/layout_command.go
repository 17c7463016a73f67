package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"rootsweep/internal/layout"
)

const layoutPreviewNames = 4

func newLayoutCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool
	var full bool
	var dirsOnly bool

	cmd := &cobra.Command{
		Use:   "layout [FILE...]",
		Short: "Print the active mapping, or where the named files belong",
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := ctx.layoutTable()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			switch {
			case len(args) > 0:
				return printPlacements(cmd, table, args, jsonOutput)
			case dirsOnly && jsonOutput:
				return printJSON(out, table.Dirs())
			case dirsOnly:
				for _, dir := range table.Dirs() {
					fmt.Fprintln(out, dir)
				}
				return nil
			case jsonOutput:
				return printJSON(out, table.Entries())
			}
			fmt.Fprintln(out, renderLayoutTable(table, full))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().BoolVar(&full, "full", false, "List every filename instead of a preview")
	cmd.Flags().BoolVar(&dirsOnly, "dirs", false, "List only the target directories, in sweep order")
	return cmd
}

// placement reports where a filename is swept to. Dir is empty for files the
// layout does not mention, which stay at the root.
type placement struct {
	File string `json:"file"`
	Dir  string `json:"dir"`
}

func printPlacements(cmd *cobra.Command, table layout.Layout, names []string, jsonOutput bool) error {
	placements := make([]placement, 0, len(names))
	for _, name := range names {
		dir, _ := table.Lookup(name)
		placements = append(placements, placement{File: name, Dir: dir})
	}
	out := cmd.OutOrStdout()
	if jsonOutput {
		return printJSON(out, placements)
	}
	for _, p := range placements {
		if p.Dir == "" {
			fmt.Fprintf(out, "%s: not mapped (stays at the root)\n", p.File)
			continue
		}
		fmt.Fprintf(out, "%s: %s\n", p.File, layout.TargetPath(p.Dir, p.File))
	}
	return nil
}

func renderLayoutTable(table layout.Layout, full bool) string {
	entries := table.Entries()
	rows := make([][]string, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, []string{entry.Dir, strconv.Itoa(len(entry.Files)), previewNames(entry.Files, full)})
	}
	footer := []string{fmt.Sprintf("%d directories", table.Len()), strconv.Itoa(table.FileCount()), ""}
	return renderTable([]column{left("Directory"), right("Files"), left("Names")}, rows, footer)
}

func previewNames(names []string, full bool) string {
	if full || len(names) <= layoutPreviewNames {
		return strings.Join(names, ", ")
	}
	return fmt.Sprintf("%s, … (+%d)", strings.Join(names[:layoutPreviewNames], ", "), len(names)-layoutPreviewNames)
}
