package journal

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// RecordAction appends one action to a run. A zero At is stamped with the
// current time.
func (s *Store) RecordAction(ctx context.Context, entry Entry) error {
	at := entry.At
	if at.IsZero() {
		at = time.Now()
	}
	_, err := s.exec(
		ctx,
		`INSERT INTO actions (run_id, seq, kind, filename, target_dir, size_bytes, at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		entry.RunID,
		entry.Seq,
		entry.Kind,
		entry.Filename,
		entry.TargetDir,
		entry.SizeBytes,
		formatTime(at),
	)
	if err != nil {
		return fmt.Errorf("record action %s %s: %w", entry.Kind, entry.Filename, err)
	}
	return nil
}

// Actions lists the recorded actions of a run in sequence order.
func (s *Store) Actions(ctx context.Context, runID string) ([]Entry, error) {
	rows, err := s.db.QueryContext(
		ensureContext(ctx),
		`SELECT run_id, seq, kind, filename, target_dir, size_bytes, at FROM actions WHERE run_id = ? ORDER BY seq`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("list actions: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			entry Entry
			atRaw sql.NullString
		)
		if err := rows.Scan(&entry.RunID, &entry.Seq, &entry.Kind, &entry.Filename, &entry.TargetDir, &entry.SizeBytes, &atRaw); err != nil {
			return nil, fmt.Errorf("scan action: %w", err)
		}
		entry.At = parseTime(atRaw)
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate actions: %w", err)
	}
	return entries, nil
}
