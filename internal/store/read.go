package store

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"time"

	"mvbench/internal/harness"
)

// RunInfo summarizes one persisted benchmark run.
type RunInfo struct {
	ID        string
	PlanName  string
	CreatedAt time.Time
	Rows      int
}

// ErrRunNotFound is returned when a run ID has no stored rows.
var ErrRunNotFound = fmt.Errorf("run not found")

// ListRuns returns all persisted runs, newest first.
func (s *Store) ListRuns(ctx context.Context) ([]RunInfo, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT r.id, r.plan_name, r.created_at, COUNT(res.id)
		FROM runs r
		LEFT JOIN results res ON res.run_id = r.id
		GROUP BY r.id
		ORDER BY r.created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var out []RunInfo
	for rows.Next() {
		var info RunInfo
		var createdAt string
		if err := rows.Scan(&info.ID, &info.PlanName, &createdAt, &info.Rows); err != nil {
			return nil, fmt.Errorf("list runs: %w", err)
		}
		info.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, fmt.Errorf("list runs: parsing created_at: %w", err)
		}
		out = append(out, info)
	}
	return out, rows.Err()
}

// ReadRun loads a persisted run back into the harness representation,
// with rows in insertion order.
func (s *Store) ReadRun(ctx context.Context, runID string) (*harness.RunResult, error) {
	res := &harness.RunResult{RunID: runID}

	var createdAt string
	err := s.db.QueryRowContext(ctx,
		`SELECT plan_name, created_at FROM runs WHERE id = ?`, runID,
	).Scan(&res.PlanName, &createdAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	if err != nil {
		return nil, fmt.Errorf("read run %s: %w", runID, err)
	}
	res.StartedAt, err = time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, fmt.Errorf("read run %s: parsing created_at: %w", runID, err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT algorithm, size, distribution, rep,
		       comparisons, array_accesses, time_ns, memory_allocations, calls,
		       majority_found, majority_value
		FROM results
		WHERE run_id = ?
		ORDER BY id
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("read run %s: %w", runID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var row harness.Row
		var dist string
		var value sql.NullInt64
		err := rows.Scan(
			&row.Algorithm, &row.Size, &dist, &row.Rep,
			&row.Comparisons, &row.Accesses, &row.TimeNs, &row.Allocations, &row.Calls,
			&row.Found, &value,
		)
		if err != nil {
			return nil, fmt.Errorf("read run %s: %w", runID, err)
		}
		row.Distribution = harness.Distribution(dist)
		if value.Valid {
			row.Value = int(value.Int64)
		}
		res.Rows = append(res.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read run %s: %w", runID, err)
	}
	return res, nil
}

// ExportCSV writes a persisted run to w in the harness's fixed-column CSV
// format. A stored run exports byte-identically to the live run it came from.
func (s *Store) ExportCSV(ctx context.Context, w io.Writer, runID string) error {
	res, err := s.ReadRun(ctx, runID)
	if err != nil {
		return err
	}
	return harness.WriteCSV(w, res)
}
