package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrRunNotFound is returned when no run matches an identifier.
var ErrRunNotFound = errors.New("run not found")

// ErrAmbiguousRun is returned when a run id prefix matches several runs.
var ErrAmbiguousRun = errors.New("run id prefix is ambiguous")

const runColumns = "id, root, policy, started_at, finished_at, status, deleted, moved, skipped, error"

// BeginRun records the start of a run.
func (s *Store) BeginRun(ctx context.Context, id, root, policy string) (*Run, error) {
	if strings.TrimSpace(id) == "" {
		return nil, errors.New("run id is empty")
	}
	started := time.Now().UTC()
	_, err := s.exec(
		ctx,
		`INSERT INTO runs (id, root, policy, started_at, status) VALUES (?, ?, ?, ?, ?)`,
		id,
		root,
		policy,
		formatTime(started),
		StatusRunning,
	)
	if err != nil {
		return nil, fmt.Errorf("insert run: %w", err)
	}
	return &Run{ID: id, Root: root, Policy: policy, StartedAt: started, Status: StatusRunning}, nil
}

// FinishRun stores the counters and terminal status of a run.
func (s *Store) FinishRun(ctx context.Context, id string, summary Summary) error {
	status := summary.Status
	if status == "" || status == StatusRunning {
		status = StatusCompleted
	}
	res, err := s.exec(
		ctx,
		`UPDATE runs SET finished_at = ?, status = ?, deleted = ?, moved = ?, skipped = ?, error = ? WHERE id = ?`,
		formatTime(time.Now()),
		status,
		summary.Deleted,
		summary.Moved,
		summary.Skipped,
		nullableString(summary.Error),
		id,
	)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("finish run %s: %w", id, ErrRunNotFound)
	}
	return nil
}

// GetRun fetches a run by full id or unique id prefix.
func (s *Store) GetRun(ctx context.Context, idOrPrefix string) (*Run, error) {
	idOrPrefix = strings.TrimSpace(idOrPrefix)
	if idOrPrefix == "" || strings.ContainsAny(idOrPrefix, `%_\`) {
		return nil, fmt.Errorf("%w: %q", ErrRunNotFound, idOrPrefix)
	}

	row := s.db.QueryRowContext(ensureContext(ctx), `SELECT `+runColumns+` FROM runs WHERE id = ?`, idOrPrefix)
	run, err := scanRun(row)
	if err == nil {
		return run, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get run: %w", err)
	}

	rows, err := s.db.QueryContext(
		ensureContext(ctx),
		`SELECT `+runColumns+` FROM runs WHERE id LIKE ? ORDER BY started_at DESC LIMIT 2`,
		idOrPrefix+"%",
	)
	if err != nil {
		return nil, fmt.Errorf("get run by prefix: %w", err)
	}
	defer rows.Close()
	matches, err := collectRuns(rows)
	if err != nil {
		return nil, err
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, idOrPrefix)
	case 1:
		return &matches[0], nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrAmbiguousRun, idOrPrefix)
	}
}

// ListRuns returns the most recent runs first. limit <= 0 returns all runs.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	query := `SELECT ` + runColumns + ` FROM runs ORDER BY started_at DESC, id DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ensureContext(ctx), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()
	return collectRuns(rows)
}

func collectRuns(rows *sql.Rows) ([]Run, error) {
	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, *run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

func scanRun(scanner interface{ Scan(dest ...any) error }) (*Run, error) {
	var (
		id          string
		root        string
		policy      string
		startedRaw  sql.NullString
		finishedRaw sql.NullString
		statusStr   string
		deleted     int
		moved       int
		skipped     int
		errorMsg    sql.NullString
	)
	if err := scanner.Scan(
		&id,
		&root,
		&policy,
		&startedRaw,
		&finishedRaw,
		&statusStr,
		&deleted,
		&moved,
		&skipped,
		&errorMsg,
	); err != nil {
		return nil, err
	}
	return &Run{
		ID:         id,
		Root:       root,
		Policy:     policy,
		StartedAt:  parseTime(startedRaw),
		FinishedAt: parseTime(finishedRaw),
		Status:     ParseStatus(statusStr),
		Deleted:    deleted,
		Moved:      moved,
		Skipped:    skipped,
		Error:      errorMsg.String,
	}, nil
}
