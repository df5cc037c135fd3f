package database

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := NewConnection(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if _, _, err := RunMigrations(db); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}
	return db
}

func TestNewConnection_InvalidPath(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, nil, 0644); err != nil {
		t.Fatal(err)
	}

	_, err := NewConnection(filepath.Join(blocker, "history.db"))
	if err == nil {
		t.Error("Expected error for a database path under a regular file")
	}
}

func TestRunMigrations(t *testing.T) {
	db := setupTestDB(t)

	version, dirty, err := RunMigrations(db)
	if err != nil {
		t.Fatalf("Expected re-running migrations to be a no-op, got %v", err)
	}
	if version != 1 {
		t.Errorf("Expected version 1, got %d", version)
	}
	if dirty {
		t.Error("Expected clean migration state")
	}

	if err := db.Ping(); err != nil {
		t.Errorf("Expected database to stay open after migrations, got %v", err)
	}
}

func TestRunRepository(t *testing.T) {
	repo := NewRunRepository(setupTestDB(t))
	base := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

	count, err := repo.GetRunCount()
	if err != nil {
		t.Fatal(err)
	}
	if count != 0 {
		t.Errorf("Expected 0 runs, got %d", count)
	}

	for i, id := range []string{"run-a", "run-b", "run-c"} {
		started := base.Add(time.Duration(i) * time.Hour)
		err := repo.InsertRun(Run{
			ID:         id,
			StartedAt:  started,
			FinishedAt: started.Add(1500 * time.Millisecond),
			Fetched:    300,
			Merged:     120 + i,
			Pruned:     i,
			Stored:     400,
			Entries:    50,
		})
		if err != nil {
			t.Fatalf("Failed to insert run %s: %v", id, err)
		}
	}

	count, err = repo.GetRunCount()
	if err != nil {
		t.Fatal(err)
	}
	if count != 3 {
		t.Errorf("Expected 3 runs, got %d", count)
	}

	runs, err := repo.GetRecentRuns(2)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 2 {
		t.Fatalf("Expected 2 runs, got %d", len(runs))
	}
	if runs[0].ID != "run-c" || runs[1].ID != "run-b" {
		t.Errorf("Expected newest runs first, got %s, %s", runs[0].ID, runs[1].ID)
	}
	if runs[0].Merged != 122 || runs[0].Pruned != 2 {
		t.Errorf("Unexpected counters %+v", runs[0])
	}
	if !runs[0].StartedAt.Equal(base.Add(2 * time.Hour)) {
		t.Errorf("Expected started_at %v, got %v", base.Add(2*time.Hour), runs[0].StartedAt)
	}
	if runs[0].FinishedAt.Sub(runs[0].StartedAt) != 1500*time.Millisecond {
		t.Errorf("Expected sub-second precision preserved, got %v", runs[0].FinishedAt.Sub(runs[0].StartedAt))
	}
}

func TestRunRepository_DuplicateID(t *testing.T) {
	repo := NewRunRepository(setupTestDB(t))
	run := Run{ID: "same", StartedAt: time.Now(), FinishedAt: time.Now()}

	if err := repo.InsertRun(run); err != nil {
		t.Fatal(err)
	}
	if err := repo.InsertRun(run); err == nil {
		t.Error("Expected error for a duplicate run id")
	}
}
