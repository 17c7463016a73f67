package reorganizer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"path"
	"sort"

	"github.com/go-git/go-billy/v5"
	"github.com/google/uuid"

	"rootsweep/internal/config"
	"rootsweep/internal/faults"
	"rootsweep/internal/fileutil"
	"rootsweep/internal/layout"
	"rootsweep/internal/logging"
)

const stageName = "reorganizer"

// Recorder receives every applied action, numbered from 1 within a run.
type Recorder interface {
	Record(ctx context.Context, runID string, seq int, action Action) error
}

// Options tunes a pass.
type Options struct {
	// DuplicatePolicy is config.PolicyDelete (default) or config.PolicyVerify.
	DuplicatePolicy string
	// CreateTargetDirs creates missing target directories instead of failing.
	CreateTargetDirs bool
	// RunID labels the pass; a random UUID is used when empty.
	RunID string
	// Output receives the console lines. Nil discards them.
	Output io.Writer
	// Recorder, when set, is told about each applied action.
	Recorder Recorder
}

// Reorganizer applies a layout to the root of fsys.
type Reorganizer struct {
	fs     billy.Filesystem
	layout layout.Layout
	opts   Options
	logger *slog.Logger
}

// New constructs a Reorganizer. fsys must be rooted at the directory to sweep.
func New(fsys billy.Filesystem, table layout.Layout, opts Options, logger *slog.Logger) *Reorganizer {
	if opts.DuplicatePolicy == "" {
		opts.DuplicatePolicy = config.PolicyDelete
	}
	if opts.Output == nil {
		opts.Output = io.Discard
	}
	return &Reorganizer{
		fs:     fsys,
		layout: table,
		opts:   opts,
		logger: logging.NewComponentLogger(logger, stageName),
	}
}

// RootFiles lists the regular files directly under the root, sorted by name.
// Symlinks count when they resolve to a regular file.
func (r *Reorganizer) RootFiles() ([]string, error) {
	entries, err := r.fs.ReadDir(".")
	if err != nil {
		return nil, faults.Wrap(faults.ErrFilesystem, stageName, "list root", "", err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		mode := entry.Mode()
		if mode&fs.ModeSymlink != 0 {
			info, err := r.fs.Stat(entry.Name())
			if err != nil {
				continue
			}
			mode = info.Mode()
		}
		if mode.IsRegular() {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// Plan computes the actions a pass would take without touching the tree.
func (r *Reorganizer) Plan(ctx context.Context) ([]Action, error) {
	var actions []Action
	for _, entry := range r.layout.Entries() {
		for _, name := range entry.Files {
			if err := ctx.Err(); err != nil {
				return actions, faults.Wrap(faults.ErrCanceled, stageName, "plan", "interrupted", err)
			}
			action, ok, err := r.decide(entry.Dir, name)
			if err != nil {
				return actions, err
			}
			if ok {
				actions = append(actions, action)
			}
		}
	}
	return actions, nil
}

// Run performs the pass. On failure the partial result gathered so far is
// returned together with the error.
func (r *Reorganizer) Run(ctx context.Context) (Result, error) {
	runID := r.opts.RunID
	if runID == "" {
		runID = uuid.NewString()
	}
	result := Result{RunID: runID}
	ctx = logging.WithRunID(ctx, runID)
	logger := logging.WithContext(ctx, r.logger)

	rootFiles, err := r.RootFiles()
	if err != nil {
		return result, err
	}
	logger.Info(
		"sweep started",
		logging.String("policy", r.opts.DuplicatePolicy),
		logging.Int("layout_entries", r.layout.Len()),
		logging.Int("mapped_files", r.layout.FileCount()),
		logging.Int("root_file_count", len(rootFiles)),
	)
	logger.Debug("root files", logging.Any("root_files", rootFiles))

	seq := 0
	for _, entry := range r.layout.Entries() {
		entryCtx := logging.WithTarget(ctx, entry.Dir)
		entryLogger := logging.WithContext(entryCtx, r.logger)
		for _, name := range entry.Files {
			if err := ctx.Err(); err != nil {
				return result, faults.Wrap(faults.ErrCanceled, stageName, "run", "interrupted", err)
			}
			action, ok, err := r.decide(entry.Dir, name)
			if err != nil {
				return result, err
			}
			if !ok {
				continue
			}
			if err := r.apply(action); err != nil {
				logging.ErrorWithContext(entryLogger, "sweep halted", "sweep_halted",
					logging.String(logging.FieldFile, name),
					logging.String(logging.FieldAction, string(action.Kind)),
					logging.Error(err),
					logging.String(logging.FieldErrorHint, "fix the target and rerun; files already handled stay where they are"),
				)
				return result, err
			}
			result.add(action)
			seq++
			fmt.Fprintln(r.opts.Output, action.Message())
			r.logAction(entryLogger, action)
			r.record(entryCtx, entryLogger, runID, seq, action)
		}
	}

	fmt.Fprintln(r.opts.Output, result.Summary())
	if result.Skipped > 0 {
		fmt.Fprintf(r.opts.Output, "Skipped conflicts: %d\n", result.Skipped)
	}
	logger.Info(
		"sweep completed",
		logging.Int("deleted", result.Deleted),
		logging.Int("moved", result.Moved),
		logging.Int("skipped", result.Skipped),
	)
	return result, nil
}

// decide reports what to do with name. ok is false when the root holds no
// regular file of that name.
func (r *Reorganizer) decide(dir, name string) (Action, bool, error) {
	info, err := r.fs.Stat(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Action{}, false, nil
		}
		return Action{}, false, faults.Wrap(faults.ErrFilesystem, stageName, "stat", name, err)
	}
	if !info.Mode().IsRegular() {
		r.logger.Debug("skipping non-regular root entry", logging.String(logging.FieldFile, name))
		return Action{}, false, nil
	}

	action := Action{Kind: ActionMove, Name: name, Dir: dir, Size: info.Size()}
	target := action.Target()
	if _, err := r.fs.Stat(target); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return action, true, nil
		}
		return Action{}, false, faults.Wrap(faults.ErrFilesystem, stageName, "stat", target, err)
	}

	action.Kind = ActionRemoveDuplicate
	if r.opts.DuplicatePolicy == config.PolicyVerify {
		same, err := fileutil.SameContent(r.fs, name, target)
		if err != nil {
			return Action{}, false, faults.Wrap(faults.ErrFilesystem, stageName, "compare", name, err)
		}
		if !same {
			action.Kind = ActionSkipConflict
		}
	}
	return action, true, nil
}

func (r *Reorganizer) apply(action Action) error {
	switch action.Kind {
	case ActionRemoveDuplicate:
		if err := r.fs.Remove(action.Name); err != nil {
			return faults.Wrap(faults.ErrFilesystem, stageName, "remove duplicate", action.Name, err)
		}
		return nil
	case ActionMove:
		if err := r.ensureTargetDir(action); err != nil {
			return err
		}
		if err := fileutil.MoveFile(r.fs, action.Name, action.Target()); err != nil {
			return faults.Wrap(faults.ErrFilesystem, stageName, "move", action.Name+" to "+action.Dir, err)
		}
		return nil
	default:
		return nil
	}
}

// ensureTargetDir checks the target directory explicitly since some billy
// backends create missing parents on rename.
func (r *Reorganizer) ensureTargetDir(action Action) error {
	dir := path.Clean(action.Dir)
	info, err := r.fs.Stat(dir)
	switch {
	case err == nil && info.IsDir():
		return nil
	case err == nil:
		return faults.Wrap(faults.ErrFilesystem, stageName, "move", action.Name,
			&fs.PathError{Op: "move", Path: dir, Err: errors.New("target is not a directory")})
	case !errors.Is(err, fs.ErrNotExist):
		return faults.Wrap(faults.ErrFilesystem, stageName, "move", action.Name, err)
	case !r.opts.CreateTargetDirs:
		return faults.Wrap(faults.ErrFilesystem, stageName, "move",
			fmt.Sprintf("%s: target directory %s does not exist", action.Name, action.Dir), err)
	}
	if err := r.fs.MkdirAll(dir, 0o755); err != nil {
		return faults.Wrap(faults.ErrFilesystem, stageName, "create target directory", action.Dir, err)
	}
	r.logger.Info("target directory created", logging.String(logging.FieldTarget, action.Dir))
	return nil
}

func (r *Reorganizer) logAction(logger *slog.Logger, action Action) {
	attrs := []logging.Attr{
		logging.String(logging.FieldFile, action.Name),
		logging.String(logging.FieldAction, string(action.Kind)),
		logging.Int64("size_bytes", action.Size),
	}
	switch action.Kind {
	case ActionSkipConflict:
		logging.WarnWithContext(logger, "conflicting duplicate left at root", "duplicate_conflict",
			append(attrs,
				logging.String(logging.FieldErrorHint, "compare the two copies and remove one by hand"),
				logging.String(logging.FieldImpact, "root copy kept"),
				logging.Error(action.Conflict()),
			)...,
		)
	case ActionRemoveDuplicate:
		logger.Info("duplicate removed", logging.Args(attrs...)...)
	default:
		logger.Info("file moved", logging.Args(attrs...)...)
	}
}

func (r *Reorganizer) record(ctx context.Context, logger *slog.Logger, runID string, seq int, action Action) {
	if r.opts.Recorder == nil {
		return
	}
	if err := r.opts.Recorder.Record(ctx, runID, seq, action); err != nil {
		logging.WarnWithContext(logger, "journal write failed", "journal_write_failed",
			logging.String(logging.FieldFile, action.Name),
			logging.Error(err),
			logging.String(logging.FieldImpact, "action applied but missing from history"),
		)
	}
}
