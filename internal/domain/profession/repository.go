package profession

import "context"

// Repository defines the remote operations for professions.
// GetAll is paginated (page is 1-based); GetAllForSelector returns the whole
// catalog for selection widgets. Update transmits only the fields set in the
// input.
type Repository interface {
	GetAll(ctx context.Context, page, size int) (*ListResponse, error)
	GetAllForSelector(ctx context.Context) ([]Profession, error)
	GetByID(ctx context.Context, id int64) (*Profession, error)
	Create(ctx context.Context, input CreateInput) (*Profession, error)
	Update(ctx context.Context, id int64, input UpdateInput) (*Profession, error)
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, query string) ([]Profession, error)
}
