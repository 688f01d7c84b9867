package store

import (
	"context"
	"database/sql"
)

// Driver is an interface for store driver.
// It contains all methods that store database driver should implement.
type Driver interface {
	GetDB() *sql.DB
	Close() error

	IsInitialized(ctx context.Context) (bool, error)

	// Schedule model related methods.
	UpsertSchedule(ctx context.Context, upsert *UpsertSchedule) (*Schedule, error)
	ListSchedules(ctx context.Context, find *FindSchedule) ([]*Schedule, error)
	DeleteSchedule(ctx context.Context, delete *DeleteSchedule) error

	// WeekSelection model related methods.
	UpsertWeekSelection(ctx context.Context, upsert *UpsertWeekSelection) (*WeekSelection, error)
	ListWeekSelections(ctx context.Context, find *FindWeekSelection) ([]*WeekSelection, error)
	DeleteWeekSelection(ctx context.Context, delete *DeleteWeekSelection) error
}
