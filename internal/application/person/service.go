package person

import (
	"context"
	"time"

	"github.com/registro/client/internal/domain/person"
	"github.com/registro/client/internal/domain/shared"
	"go.uber.org/zap"
)

// Service orchestrates validation and repository calls for persons. It is the
// only layer allowed to reject input, and it always does so before any
// network call is made.
type Service struct {
	repo   person.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewService creates a person Service
func NewService(repo person.Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, logger: logger, now: time.Now}
}

// Create validates the submission and, only if every rule passes, delegates
// to the repository.
func (s *Service) Create(ctx context.Context, data person.FormData) (*person.Person, error) {
	if err := data.Validate(s.now()); err != nil {
		s.logger.Debug("person submission rejected", zap.Error(err))
		return nil, err
	}
	return s.repo.Create(ctx, data)
}

// CreateMultiple validates every record up front and submits the batch in a
// single request. One invalid record aborts the whole batch with zero
// network calls; there is never a partial submission.
func (s *Service) CreateMultiple(ctx context.Context, batch []person.FormData) ([]person.Person, error) {
	if len(batch) == 0 {
		return nil, shared.NewValidationError("must supply at least one record")
	}
	if err := person.ValidateAll(batch, s.now()); err != nil {
		s.logger.Debug("batch submission rejected", zap.Int("size", len(batch)), zap.Error(err))
		return nil, err
	}
	return s.repo.CreateMultiple(ctx, batch)
}

// Update validates the replacement fields like Create, then delegates
func (s *Service) Update(ctx context.Context, id int64, data person.FormData) (*person.Person, error) {
	if err := data.Validate(s.now()); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, id, data)
}

// GetAll is a direct pass-through; read paths trust the server's shape
func (s *Service) GetAll(ctx context.Context, skip, limit int) ([]person.Person, error) {
	return s.repo.GetAll(ctx, skip, limit)
}

// GetByID passes through the repository's absence-as-nil semantics
func (s *Service) GetByID(ctx context.Context, id int64) (*person.Person, error) {
	return s.repo.GetByID(ctx, id)
}

// Delete passes through the repository's boolean outcome
func (s *Service) Delete(ctx context.Context, id int64) bool {
	return s.repo.Delete(ctx, id)
}

// Search is a direct pass-through
func (s *Service) Search(ctx context.Context, query string) ([]person.Person, error) {
	return s.repo.Search(ctx, query)
}

// GetStats is a direct pass-through
func (s *Service) GetStats(ctx context.Context) (*person.Stats, error) {
	return s.repo.GetStats(ctx)
}
