package database

type RunRepository interface {
	InsertRun(run Run) error
	GetRecentRuns(limit int) ([]Run, error)
	GetRunCount() (int, error)
}
