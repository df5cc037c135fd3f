package database

import (
	"fmt"
	"time"
)

// fixed width so that text ordering matches time ordering
const timeLayout = "2006-01-02T15:04:05.000000Z"

type runRepository struct {
	db *DB
}

func NewRunRepository(db *DB) RunRepository {
	return &runRepository{db: db}
}

func (r *runRepository) InsertRun(run Run) error {
	_, err := r.db.Exec(`
		INSERT INTO runs (id, started_at, finished_at, fetched, merged, pruned, stored, entries)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, run.ID,
		run.StartedAt.UTC().Format(timeLayout),
		run.FinishedAt.UTC().Format(timeLayout),
		run.Fetched, run.Merged, run.Pruned, run.Stored, run.Entries)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}
	return nil
}

// GetRecentRuns returns up to limit runs, newest first.
func (r *runRepository) GetRecentRuns(limit int) ([]Run, error) {
	rows, err := r.db.Query(`
		SELECT id, started_at, finished_at, fetched, merged, pruned, stored, entries
		FROM runs
		ORDER BY started_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var startedAt, finishedAt string
		if err := rows.Scan(&run.ID, &startedAt, &finishedAt,
			&run.Fetched, &run.Merged, &run.Pruned, &run.Stored, &run.Entries); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}

		if run.StartedAt, err = time.Parse(timeLayout, startedAt); err != nil {
			return nil, fmt.Errorf("failed to parse started_at of run %s: %w", run.ID, err)
		}
		if run.FinishedAt, err = time.Parse(timeLayout, finishedAt); err != nil {
			return nil, fmt.Errorf("failed to parse finished_at of run %s: %w", run.ID, err)
		}

		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate runs: %w", err)
	}

	return runs, nil
}

func (r *runRepository) GetRunCount() (int, error) {
	var count int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM runs`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count runs: %w", err)
	}
	return count, nil
}
