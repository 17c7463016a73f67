package main

import (
	"errors"

	"github.com/spf13/cobra"

	"rootsweep/internal/preflight"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify the root and every target directory before sweeping",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			table, err := ctx.layoutTable()
			if err != nil {
				return err
			}

			results := preflight.RunAll(cfg, table)
			r := newReport(cmd.OutOrStdout())
			r.section("Preflight")
			for _, result := range results {
				kind := statusOK
				if !result.Passed {
					kind = statusError
				}
				r.line(result.Name, kind, result.Detail)
			}
			r.line("Duplicate policy", statusInfo, cfg.Sweep.DuplicatePolicy)
			r.line("Create target dirs", statusInfo, yesNo(cfg.Sweep.CreateTargetDirs))

			if preflight.Failed(results) {
				return errors.New("preflight checks failed")
			}
			return nil
		},
	}
}
