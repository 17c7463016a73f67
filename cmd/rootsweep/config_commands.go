package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"rootsweep/internal/config"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the rootsweep configuration file",
	}
	configCmd.AddCommand(newConfigInitCommand(), newConfigValidateCommand(ctx))
	return configCmd
}

func newConfigInitCommand() *cobra.Command {
	var pathFlag string
	var overwrite bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Write a commented sample configuration",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := initTargetPath(pathFlag)
			if err != nil {
				return err
			}
			if !overwrite {
				_, statErr := os.Stat(target)
				switch {
				case statErr == nil:
					return fmt.Errorf("%s already exists (pass --overwrite to replace it)", target)
				case !errors.Is(statErr, fs.ErrNotExist):
					return fmt.Errorf("check %s: %w", target, statErr)
				}
			}
			if err := config.CreateSample(target); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote sample configuration to %s\n", target)
			fmt.Fprintln(out, "Without [[layout]] entries rootsweep uses its built-in mapping; run `rootsweep layout` to see it.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&pathFlag, "path", "p", "", "Where to write the file (defaults to ~/.config/rootsweep/config.toml)")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace an existing file")
	return cmd
}

func initTargetPath(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return config.DefaultConfigPath()
	}
	return config.ExpandPath(raw)
}

func newConfigValidateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Load the configuration and report what rootsweep would use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			table, err := cfg.LayoutTable()
			if err != nil {
				return err
			}

			source := ctx.configPath
			if !ctx.configSeen {
				source += " (not found, using defaults)"
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Config path: %s\n", source)
			fmt.Fprintf(out, "Root: %s\n", cfg.Paths.RootDir)
			fmt.Fprintf(out, "State: %s (journal %s, lock %s)\n", cfg.Paths.StateDir, yesNo(cfg.Sweep.Journal), yesNo(cfg.Sweep.Lock))
			fmt.Fprintf(out, "Duplicate policy: %s\n", cfg.Sweep.DuplicatePolicy)
			fmt.Fprintf(out, "Layout: %d directories, %d files\n", table.Len(), table.FileCount())
			fmt.Fprintln(out, "Configuration valid")
			return nil
		},
	}
}
