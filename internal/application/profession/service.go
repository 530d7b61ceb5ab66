package profession

import (
	"context"

	"github.com/registro/client/internal/domain/profession"
	"go.uber.org/zap"
)

// Service is a thin pass-through to the profession repository. Name
// normalization (trim + uppercase) happens at the schema boundary before the
// repository is involved.
type Service struct {
	repo   profession.Repository
	logger *zap.Logger
}

// NewService creates a profession Service
func NewService(repo profession.Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, logger: logger}
}

// GetAll fetches one page of professions
func (s *Service) GetAll(ctx context.Context, page, size int) (*profession.ListResponse, error) {
	return s.repo.GetAll(ctx, page, size)
}

// GetAllForSelector fetches the whole catalog
func (s *Service) GetAllForSelector(ctx context.Context) ([]profession.Profession, error) {
	return s.repo.GetAllForSelector(ctx)
}

// GetByID fetches one profession
func (s *Service) GetByID(ctx context.Context, id int64) (*profession.Profession, error) {
	return s.repo.GetByID(ctx, id)
}

// Create normalizes the input through the create schema and submits it
func (s *Service) Create(ctx context.Context, input profession.CreateInput) (*profession.Profession, error) {
	normalized, err := input.Normalized()
	if err != nil {
		s.logger.Debug("profession submission rejected", zap.Error(err))
		return nil, err
	}
	return s.repo.Create(ctx, normalized)
}

// Update normalizes the partial input through the update schema and submits it
func (s *Service) Update(ctx context.Context, id int64, input profession.UpdateInput) (*profession.Profession, error) {
	normalized, err := input.Normalized()
	if err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, id, normalized)
}

// Delete removes one profession
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// Search runs a free-text query against profession names
func (s *Service) Search(ctx context.Context, query string) ([]profession.Profession, error) {
	return s.repo.Search(ctx, query)
}
