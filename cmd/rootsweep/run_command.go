package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"rootsweep/internal/faults"
	"rootsweep/internal/journal"
	"rootsweep/internal/logging"
	"rootsweep/internal/reorganizer"
	"rootsweep/internal/runlock"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Sweep the root directory (same as running rootsweep without a command)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSweep(cmd, ctx)
		},
	}
}

func runSweep(cmd *cobra.Command, ctx *commandContext) error {
	cfg, err := ctx.requireRoot()
	if err != nil {
		return err
	}
	table, err := ctx.layoutTable()
	if err != nil {
		return err
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return fmt.Errorf("ensure directories: %w", err)
	}
	logger, err := ctx.ensureLogger()
	if err != nil {
		return err
	}

	if cfg.Sweep.Lock {
		lock, err := runlock.Acquire(cfg.LockPath())
		if err != nil {
			return err
		}
		defer func() {
			if releaseErr := lock.Release(); releaseErr != nil {
				logger.Warn("failed to release run lock", logging.Error(releaseErr))
			}
		}()
	}

	runID := uuid.NewString()
	opts := reorganizer.Options{
		DuplicatePolicy:  cfg.Sweep.DuplicatePolicy,
		CreateTargetDirs: cfg.Sweep.CreateTargetDirs,
		RunID:            runID,
		Output:           cmd.OutOrStdout(),
	}

	var store *journal.Store
	if cfg.Sweep.Journal {
		store, err = journal.Open(cfg.JournalPath())
		if err != nil {
			return fmt.Errorf("open journal: %w", err)
		}
		defer store.Close()
		if _, err := store.BeginRun(cmd.Context(), runID, cfg.Paths.RootDir, cfg.Sweep.DuplicatePolicy); err != nil {
			return fmt.Errorf("journal run start: %w", err)
		}
		opts.Recorder = journalRecorder{store: store}
	}

	sweeper := reorganizer.New(osfs.New(cfg.Paths.RootDir), table, opts, logger)
	result, runErr := sweeper.Run(cmd.Context())

	if store != nil {
		summary := journal.Summary{
			Status:  journal.ParseStatus(faults.Status(runErr)),
			Deleted: result.Deleted,
			Moved:   result.Moved,
			Skipped: result.Skipped,
		}
		if runErr != nil {
			summary.Error = runErr.Error()
		}
		// The sweep context may already be canceled; the run row still needs closing.
		if err := store.FinishRun(context.WithoutCancel(cmd.Context()), runID, summary); err != nil {
			logger.Warn("failed to finalize journal run", logging.Error(err))
		}
	}

	if runErr != nil {
		if errors.Is(runErr, faults.ErrCanceled) {
			return fmt.Errorf("sweep interrupted after %d deleted, %d moved: %w", result.Deleted, result.Moved, runErr)
		}
		return fmt.Errorf("sweep halted after %d deleted, %d moved: %w", result.Deleted, result.Moved, runErr)
	}
	return nil
}

// journalRecorder adapts the journal store to reorganizer.Recorder.
type journalRecorder struct {
	store *journal.Store
}

func (r journalRecorder) Record(ctx context.Context, runID string, seq int, action reorganizer.Action) error {
	return r.store.RecordAction(ctx, journal.Entry{
		RunID:     runID,
		Seq:       seq,
		Kind:      string(action.Kind),
		Filename:  action.Name,
		TargetDir: action.Dir,
		SizeBytes: action.Size,
	})
}
