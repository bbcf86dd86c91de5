package store

import (
	"context"
	"fmt"
	"time"

	"mvbench/internal/harness"
)

// SaveRun persists a benchmark run and all of its result rows in one
// transaction. Saving the same run ID twice is an error (runs are
// immutable once written).
func (s *Store) SaveRun(ctx context.Context, res *harness.RunResult) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save run: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, plan_name, created_at)
		VALUES (?, ?, ?)
	`,
		res.RunID,
		res.PlanName,
		res.StartedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("save run %s: %w", res.RunID, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO results
		(run_id, algorithm, size, distribution, rep,
		 comparisons, array_accesses, time_ns, memory_allocations, calls,
		 majority_found, majority_value)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("save run %s: %w", res.RunID, err)
	}
	defer stmt.Close()

	for _, row := range res.Rows {
		var value any
		if row.Found {
			value = row.Value
		}
		_, err := stmt.ExecContext(ctx,
			res.RunID,
			row.Algorithm,
			row.Size,
			string(row.Distribution),
			row.Rep,
			row.Comparisons,
			row.Accesses,
			row.TimeNs,
			row.Allocations,
			row.Calls,
			row.Found,
			value,
		)
		if err != nil {
			return fmt.Errorf("save run %s: inserting result: %w", res.RunID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save run %s: %w", res.RunID, err)
	}
	return nil
}
