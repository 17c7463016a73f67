package journal

import "time"

// Status represents the lifecycle of a run.
type Status string

const (
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
	StatusCanceled  Status = "canceled"
)

// ParseStatus maps a stored string to a Status. Unknown values map to
// StatusFailed so damaged rows never read as successful.
func ParseStatus(value string) Status {
	switch Status(value) {
	case StatusRunning, StatusCompleted, StatusFailed, StatusCanceled:
		return Status(value)
	default:
		return StatusFailed
	}
}

// Run is a persisted sweep run.
type Run struct {
	ID         string    `json:"id"`
	Root       string    `json:"root"`
	Policy     string    `json:"policy"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at,omitzero"`
	Status     Status    `json:"status"`
	Deleted    int       `json:"deleted"`
	Moved      int       `json:"moved"`
	Skipped    int       `json:"skipped"`
	Error      string    `json:"error,omitempty"`
}

// Finished reports whether the run reached a terminal status.
func (r Run) Finished() bool {
	return r.Status != StatusRunning
}

// Duration returns the wall time of a finished run, or zero.
func (r Run) Duration() time.Duration {
	if r.FinishedAt.IsZero() || r.StartedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// Entry is one recorded action of a run.
type Entry struct {
	RunID     string    `json:"run_id"`
	Seq       int       `json:"seq"`
	Kind      string    `json:"kind"`
	Filename  string    `json:"filename"`
	TargetDir string    `json:"target_dir"`
	SizeBytes int64     `json:"size_bytes"`
	At        time.Time `json:"at"`
}

// Summary carries the counters and outcome written by FinishRun.
type Summary struct {
	Status  Status
	Deleted int
	Moved   int
	Skipped int
	Error   string
}
