package query

import (
	"context"

	personapp "github.com/registro/client/internal/application/person"
	"github.com/registro/client/internal/domain/person"
	"github.com/registro/client/internal/infrastructure/cache"
)

// PersonQueries serves person reads from the cache and keeps it consistent
// after person mutations.
type PersonQueries struct {
	svc   *personapp.Service
	cache *cache.QueryCache
}

// NewPersonQueries creates the person query facade
func NewPersonQueries(svc *personapp.Service, c *cache.QueryCache) *PersonQueries {
	return &PersonQueries{svc: svc, cache: c}
}

// List fetches one page of persons, cached by (skip, limit)
func (q *PersonQueries) List(ctx context.Context, skip, limit int) ([]person.Person, error) {
	return fetch(ctx, q.cache, personsKey(skip, limit), func(ctx context.Context) ([]person.Person, error) {
		return q.svc.GetAll(ctx, skip, limit)
	})
}

// Get fetches one person by id, cached per id. Absence is a nil person, not
// an error.
func (q *PersonQueries) Get(ctx context.Context, id int64) (*person.Person, error) {
	return fetch(ctx, q.cache, personKey(id), func(ctx context.Context) (*person.Person, error) {
		return q.svc.GetByID(ctx, id)
	})
}

// Search runs a free-text person search, cached per query string
func (q *PersonQueries) Search(ctx context.Context, text string) ([]person.Person, error) {
	return fetch(ctx, q.cache, personSearchKey(text), func(ctx context.Context) ([]person.Person, error) {
		return q.svc.Search(ctx, text)
	})
}

// Stats fetches the dashboard aggregate, cached under a single key
func (q *PersonQueries) Stats(ctx context.Context) (*person.Stats, error) {
	return fetch(ctx, q.cache, statsKey, func(ctx context.Context) (*person.Stats, error) {
		return q.svc.GetStats(ctx)
	})
}

// Create submits one person and, on success, marks every cached person page
// and the dashboard aggregate stale. Mutations are never retried.
func (q *PersonQueries) Create(ctx context.Context, data person.FormData) (*person.Person, error) {
	created, err := q.svc.Create(ctx, data)
	if err != nil {
		return nil, err
	}
	q.invalidateListings()
	return created, nil
}

// CreateMultiple submits a batch in one request; a success invalidates the
// same entries a single create does.
func (q *PersonQueries) CreateMultiple(ctx context.Context, batch []person.FormData) ([]person.Person, error) {
	created, err := q.svc.CreateMultiple(ctx, batch)
	if err != nil {
		return nil, err
	}
	q.invalidateListings()
	return created, nil
}

// Update submits a replacement record; a success additionally invalidates the
// single-person entry for the updated id.
func (q *PersonQueries) Update(ctx context.Context, id int64, data person.FormData) (*person.Person, error) {
	updated, err := q.svc.Update(ctx, id, data)
	if err != nil {
		return nil, err
	}
	q.invalidateListings()
	q.cache.InvalidateKey(personKey(id))
	return updated, nil
}

// Delete removes one person. Only a confirmed deletion invalidates; a false
// outcome leaves the cache untouched.
func (q *PersonQueries) Delete(ctx context.Context, id int64) bool {
	if !q.svc.Delete(ctx, id) {
		return false
	}
	q.invalidateListings()
	return true
}

func (q *PersonQueries) invalidateListings() {
	q.cache.InvalidateFamily(personsFamily)
	q.cache.InvalidateKey(statsKey)
}
