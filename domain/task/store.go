package task

import "context"

// Store is the persistence capability the task service depends on.
type Store interface {
	// FindByID returns ErrNotFound when no task has the given id.
	FindByID(ctx context.Context, id string) (*Task, error)
	// Save inserts t when it has no id yet, assigning id and timestamps,
	// and otherwise overwrites the stored record.
	Save(ctx context.Context, t *Task) error
	// DeleteByID returns ErrNotFound when no task has the given id.
	DeleteByID(ctx context.Context, id string) error
	FindAll(ctx context.Context) ([]Task, error)
	FindByOwner(ctx context.Context, userID string) ([]Task, error)
	Counts(ctx context.Context) (Counts, error)
}

// Counts are the store-side counters over the whole collection.
type Counts struct {
	Total        int64 `json:"total"`
	Pending      int64 `json:"pending"`
	Completed    int64 `json:"completed"`
	UrgentActive int64 `json:"urgent"`
}
