package repository

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/registro/client/internal/domain/person"
	"github.com/registro/client/internal/infrastructure/gateway"
	"go.uber.org/zap"
)

const personsPath = "/persons"

// PersonRepository adapts person domain operations onto gateway calls.
// It owns all payload encoding; it holds no state of its own.
type PersonRepository struct {
	client *gateway.Client
	logger *zap.Logger
}

// NewPersonRepository creates a PersonRepository
func NewPersonRepository(client *gateway.Client, logger *zap.Logger) *PersonRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PersonRepository{client: client, logger: logger}
}

// GetAll fetches a page of persons using skip/limit addressing
func (r *PersonRepository) GetAll(ctx context.Context, skip, limit int) ([]person.Person, error) {
	query := url.Values{}
	query.Set("skip", strconv.Itoa(skip))
	query.Set("limit", strconv.Itoa(limit))

	var persons []person.Person
	if err := r.client.GetJSON(ctx, personsPath, query, &persons); err != nil {
		return nil, err
	}
	return persons, nil
}

// GetByID fetches one person. Absence is a first-class outcome: any fetch
// failure yields (nil, nil) rather than an error.
func (r *PersonRepository) GetByID(ctx context.Context, id int64) (*person.Person, error) {
	var p person.Person
	if err := r.client.GetJSON(ctx, fmt.Sprintf("%s/%d", personsPath, id), nil, &p); err != nil {
		r.logger.Debug("person fetch treated as absent", zap.Int64("id", id), zap.Error(err))
		return nil, nil
	}
	return &p, nil
}

// Create submits one person as multipart form data
func (r *PersonRepository) Create(ctx context.Context, data person.FormData) (*person.Person, error) {
	contentType, body, err := encodePersonForm(data)
	if err != nil {
		return nil, err
	}

	var created person.Person
	if err := r.client.DoRaw(ctx, http.MethodPost, personsPath, contentType, body, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// CreateMultiple submits a batch of persons in a single request
func (r *PersonRepository) CreateMultiple(ctx context.Context, batch []person.FormData) ([]person.Person, error) {
	contentType, body, err := encodePersonBatch(batch)
	if err != nil {
		return nil, err
	}

	var created []person.Person
	if err := r.client.DoRaw(ctx, http.MethodPost, personsPath+"/batch", contentType, body, &created); err != nil {
		return nil, err
	}
	return created, nil
}

// Update replaces the editable fields of one person (full replace, same
// multipart shape as Create).
func (r *PersonRepository) Update(ctx context.Context, id int64, data person.FormData) (*person.Person, error) {
	contentType, body, err := encodePersonForm(data)
	if err != nil {
		return nil, err
	}

	var updated person.Person
	path := fmt.Sprintf("%s/%d", personsPath, id)
	if err := r.client.DoRaw(ctx, http.MethodPut, path, contentType, body, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes one person. Failures are swallowed into false; callers
// treat a false result as a legitimate outcome, not a retryable error.
func (r *PersonRepository) Delete(ctx context.Context, id int64) bool {
	if err := r.client.Delete(ctx, fmt.Sprintf("%s/%d", personsPath, id)); err != nil {
		r.logger.Debug("person delete failed", zap.Int64("id", id), zap.Error(err))
		return false
	}
	return true
}

// Search runs a free-text query against persons
func (r *PersonRepository) Search(ctx context.Context, text string) ([]person.Person, error) {
	query := url.Values{}
	query.Set("query", text)

	var persons []person.Person
	if err := r.client.GetJSON(ctx, personsPath+"/search", query, &persons); err != nil {
		return nil, err
	}
	return persons, nil
}

// GetStats fetches the dashboard aggregate
func (r *PersonRepository) GetStats(ctx context.Context) (*person.Stats, error) {
	var stats person.Stats
	if err := r.client.GetJSON(ctx, personsPath+"/stats/dashboard", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// Ensure PersonRepository implements the domain interface
var _ person.Repository = (*PersonRepository)(nil)
