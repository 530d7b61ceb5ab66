package repository

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/registro/client/internal/domain/profession"
	"github.com/registro/client/internal/infrastructure/gateway"
	"go.uber.org/zap"
)

const professionsPath = "/professions"

// ProfessionRepository adapts profession domain operations onto gateway calls
type ProfessionRepository struct {
	client *gateway.Client
	logger *zap.Logger
}

// NewProfessionRepository creates a ProfessionRepository
func NewProfessionRepository(client *gateway.Client, logger *zap.Logger) *ProfessionRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProfessionRepository{client: client, logger: logger}
}

// GetAll fetches one page of professions (page is 1-based)
func (r *ProfessionRepository) GetAll(ctx context.Context, page, size int) (*profession.ListResponse, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("size", strconv.Itoa(size))

	var list profession.ListResponse
	if err := r.client.GetJSON(ctx, professionsPath, query, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// GetAllForSelector fetches the whole catalog for selection widgets
func (r *ProfessionRepository) GetAllForSelector(ctx context.Context) ([]profession.Profession, error) {
	var professions []profession.Profession
	if err := r.client.GetJSON(ctx, professionsPath+"/all", nil, &professions); err != nil {
		return nil, err
	}
	return professions, nil
}

// GetByID fetches one profession
func (r *ProfessionRepository) GetByID(ctx context.Context, id int64) (*profession.Profession, error) {
	var p profession.Profession
	if err := r.client.GetJSON(ctx, fmt.Sprintf("%s/%d", professionsPath, id), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Create submits a new profession as JSON
func (r *ProfessionRepository) Create(ctx context.Context, input profession.CreateInput) (*profession.Profession, error) {
	var created profession.Profession
	if err := r.client.PostJSON(ctx, professionsPath, input, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Update submits a partial update; only supplied fields are transmitted
func (r *ProfessionRepository) Update(ctx context.Context, id int64, input profession.UpdateInput) (*profession.Profession, error) {
	var updated profession.Profession
	if err := r.client.PutJSON(ctx, fmt.Sprintf("%s/%d", professionsPath, id), input, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes one profession
func (r *ProfessionRepository) Delete(ctx context.Context, id int64) error {
	return r.client.Delete(ctx, fmt.Sprintf("%s/%d", professionsPath, id))
}

// Search runs a free-text query against profession names
func (r *ProfessionRepository) Search(ctx context.Context, text string) ([]profession.Profession, error) {
	query := url.Values{}
	query.Set("query", text)

	var professions []profession.Profession
	if err := r.client.GetJSON(ctx, professionsPath+"/search", query, &professions); err != nil {
		return nil, err
	}
	return professions, nil
}

// Ensure ProfessionRepository implements the domain interface
var _ profession.Repository = (*ProfessionRepository)(nil)
