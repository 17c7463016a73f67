package reorganizer

import (
	"fmt"

	"rootsweep/internal/faults"
	"rootsweep/internal/layout"
)

// ActionKind identifies what a pass does with a root file.
type ActionKind string

const (
	ActionMove            ActionKind = "move"
	ActionRemoveDuplicate ActionKind = "remove_duplicate"
	ActionSkipConflict    ActionKind = "skip_conflict"
)

// Action is a decision for one root file.
type Action struct {
	Kind ActionKind `json:"kind"`
	Name string     `json:"name"`
	Dir  string     `json:"dir"`
	Size int64      `json:"size_bytes"`
}

// Target returns the slash-separated destination path relative to the root.
func (a Action) Target() string {
	return layout.TargetPath(a.Dir, a.Name)
}

// Message returns the console line announcing the action.
func (a Action) Message() string {
	switch a.Kind {
	case ActionRemoveDuplicate:
		return fmt.Sprintf("Removing duplicate: %s (already in %s)", a.Name, a.Dir)
	case ActionSkipConflict:
		return fmt.Sprintf("Skipping conflicting duplicate: %s (differs from %s)", a.Name, a.Target())
	default:
		return fmt.Sprintf("Moving %s to %s", a.Name, a.Dir)
	}
}

// Conflict returns an error marked faults.ErrConflict for a skipped
// duplicate, and nil for every other kind.
func (a Action) Conflict() error {
	if a.Kind != ActionSkipConflict {
		return nil
	}
	return faults.Wrap(faults.ErrConflict, stageName, "verify duplicate",
		fmt.Sprintf("%s differs from %s", a.Name, a.Target()), nil)
}

// Result accumulates the outcome of a pass.
type Result struct {
	RunID   string   `json:"run_id"`
	Deleted int      `json:"deleted"`
	Moved   int      `json:"moved"`
	Skipped int      `json:"skipped"`
	Actions []Action `json:"actions"`
}

// Total returns the number of root files acted upon.
func (r Result) Total() int {
	return r.Deleted + r.Moved + r.Skipped
}

// Summary returns the closing console line.
func (r Result) Summary() string {
	return fmt.Sprintf("Cleanup finished. Deleted: %d, Moved: %d", r.Deleted, r.Moved)
}

func (r *Result) add(action Action) {
	switch action.Kind {
	case ActionRemoveDuplicate:
		r.Deleted++
	case ActionMove:
		r.Moved++
	case ActionSkipConflict:
		r.Skipped++
	}
	r.Actions = append(r.Actions, action)
}
