package database

import (
	"time"
)

// Run is one completed, non-dry-run pipeline execution.
type Run struct {
	ID         string
	StartedAt  time.Time
	FinishedAt time.Time
	Fetched    int
	Merged     int
	Pruned     int
	Stored     int
	Entries    int
}
