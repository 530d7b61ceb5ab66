package query

import (
	"context"

	professionapp "github.com/registro/client/internal/application/profession"
	"github.com/registro/client/internal/domain/profession"
	"github.com/registro/client/internal/infrastructure/cache"
)

// ProfessionQueries serves profession reads from the cache and keeps it
// consistent after profession mutations.
type ProfessionQueries struct {
	svc   *professionapp.Service
	cache *cache.QueryCache
}

// NewProfessionQueries creates the profession query facade
func NewProfessionQueries(svc *professionapp.Service, c *cache.QueryCache) *ProfessionQueries {
	return &ProfessionQueries{svc: svc, cache: c}
}

// List fetches one page of professions, cached by (page, size)
func (q *ProfessionQueries) List(ctx context.Context, page, size int) (*profession.ListResponse, error) {
	return fetch(ctx, q.cache, professionsKey(page, size), func(ctx context.Context) (*profession.ListResponse, error) {
		return q.svc.GetAll(ctx, page, size)
	})
}

// All fetches the full catalog for selector widgets. The entry is refreshed
// only by its own staleness window, never by mutations.
func (q *ProfessionQueries) All(ctx context.Context) ([]profession.Profession, error) {
	return fetch(ctx, q.cache, professionsAllKey, func(ctx context.Context) ([]profession.Profession, error) {
		return q.svc.GetAllForSelector(ctx)
	})
}

// Get fetches one profession by id, cached per id
func (q *ProfessionQueries) Get(ctx context.Context, id int64) (*profession.Profession, error) {
	return fetch(ctx, q.cache, professionKey(id), func(ctx context.Context) (*profession.Profession, error) {
		return q.svc.GetByID(ctx, id)
	})
}

// Search runs a free-text profession search, cached per query string
func (q *ProfessionQueries) Search(ctx context.Context, text string) ([]profession.Profession, error) {
	return fetch(ctx, q.cache, professionSearchKey(text), func(ctx context.Context) ([]profession.Profession, error) {
		return q.svc.Search(ctx, text)
	})
}

// Create submits one profession and, on success, marks every cached
// profession page stale so the next access refetches.
func (q *ProfessionQueries) Create(ctx context.Context, input profession.CreateInput) (*profession.Profession, error) {
	created, err := q.svc.Create(ctx, input)
	if err != nil {
		return nil, err
	}
	q.cache.InvalidateFamily(professionsFamily)
	return created, nil
}

// Update submits a partial change; a success additionally invalidates the
// single-profession entry for the updated id.
func (q *ProfessionQueries) Update(ctx context.Context, id int64, input profession.UpdateInput) (*profession.Profession, error) {
	updated, err := q.svc.Update(ctx, id, input)
	if err != nil {
		return nil, err
	}
	q.cache.InvalidateFamily(professionsFamily)
	q.cache.InvalidateKey(professionKey(id))
	return updated, nil
}

// Delete removes one profession. The server may refuse while persons still
// reference it; only a confirmed deletion invalidates.
func (q *ProfessionQueries) Delete(ctx context.Context, id int64) error {
	if err := q.svc.Delete(ctx, id); err != nil {
		return err
	}
	q.cache.InvalidateFamily(professionsFamily)
	return nil
}
