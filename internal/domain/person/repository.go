package person

import "context"

// Repository defines the remote operations for persons.
//
// GetByID returns (nil, nil) when the record cannot be fetched: absence is a
// first-class outcome for that operation, not a failure. Delete likewise
// reports success as a plain boolean and never propagates an error.
type Repository interface {
	GetAll(ctx context.Context, skip, limit int) ([]Person, error)
	GetByID(ctx context.Context, id int64) (*Person, error)
	Create(ctx context.Context, data FormData) (*Person, error)
	CreateMultiple(ctx context.Context, data []FormData) ([]Person, error)
	Update(ctx context.Context, id int64, data FormData) (*Person, error)
	Delete(ctx context.Context, id int64) bool
	Search(ctx context.Context, query string) ([]Person, error)
	GetStats(ctx context.Context) (*Stats, error)
}
