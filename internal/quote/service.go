package quote

import (
	"context"
	"errors"

	apperrors "github.com/skillsenselab/quotes/internal/errors"
)

// Paging bounds for List.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// NormalizePage clamps paging parameters to valid bounds. The service and the
// HTTP layer both go through it, so response metadata always reflects the
// effective values rather than the raw query input.
func NormalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > MaxPageSize {
		pageSize = DefaultPageSize
	}
	return page, pageSize
}

// Service wraps the repository and maps storage errors to application errors.
type Service struct {
	repo *Repository
}

// NewService creates the quotes service.
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// List returns a page of quotes and the total count.
func (s *Service) List(ctx context.Context, page, pageSize int) ([]Quote, int64, error) {
	page, pageSize = NormalizePage(page, pageSize)
	quotes, total, err := s.repo.List(ctx, page, pageSize)
	if err != nil {
		return nil, 0, apperrors.DatabaseError(err)
	}
	return quotes, total, nil
}

// Get returns a quote by id.
func (s *Service) Get(ctx context.Context, id string) (*Quote, error) {
	q, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, mapError(err, id)
	}
	return q, nil
}

// Create inserts a new quote attributed to the creating user.
func (s *Service) Create(ctx context.Context, req CreateRequest, createdBy string) (*Quote, error) {
	q := &Quote{
		Author:    req.Author,
		Content:   req.Content,
		CreatedBy: createdBy,
	}
	if err := s.repo.Create(ctx, q); err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return q, nil
}

// Update modifies an existing quote.
func (s *Service) Update(ctx context.Context, id string, req UpdateRequest) (*Quote, error) {
	q, err := s.repo.Update(ctx, id, req.Author, req.Content)
	if err != nil {
		return nil, mapError(err, id)
	}
	return q, nil
}

// Delete removes a quote.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapError(err, id)
	}
	return nil
}

// mapError keeps not-found distinct from infrastructure failures so a missing
// row never surfaces as a 5xx and a broken store never surfaces as a 404.
func mapError(err error, id string) error {
	if errors.Is(err, ErrNotFound) {
		return apperrors.NotFound("quote", id)
	}
	return apperrors.DatabaseError(err)
}
