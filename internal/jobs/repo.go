package jobs

import "context"

// Repo defines persistence operations for jobs. Every operation is
// scoped to the owning user id.
type Repo interface {
	ListByUser(ctx context.Context, userID string) ([]Job, error)
	GetByID(ctx context.Context, userID, id string) (Job, error)
	Upsert(ctx context.Context, job Job) (Job, error)
	Delete(ctx context.Context, userID, id string) error
}
