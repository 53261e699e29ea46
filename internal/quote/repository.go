package quote

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrNotFound is returned when no quote matches the id.
var ErrNotFound = errors.New("quote: not found")

// Repository is the GORM-backed quotes store.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a repository over the database handle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns a page of quotes ordered by creation time, newest first,
// together with the total count.
func (r *Repository) List(ctx context.Context, page, pageSize int) ([]Quote, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&Quote{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("quote: count: %w", err)
	}

	var quotes []Quote
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&quotes).Error
	if err != nil {
		return nil, 0, fmt.Errorf("quote: list: %w", err)
	}
	return quotes, total, nil
}

// Get returns a quote by id.
func (r *Repository) Get(ctx context.Context, id string) (*Quote, error) {
	var q Quote
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&q).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("quote: get: %w", err)
	}
	return &q, nil
}

// Create inserts a new quote.
func (r *Repository) Create(ctx context.Context, q *Quote) error {
	if q.ID == "" {
		q.ID = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Create(q).Error; err != nil {
		return fmt.Errorf("quote: create: %w", err)
	}
	return nil
}

// Update modifies an existing quote's author and content.
func (r *Repository) Update(ctx context.Context, id string, author, content string) (*Quote, error) {
	q, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	q.Author = author
	q.Content = content
	if err := r.db.WithContext(ctx).Save(q).Error; err != nil {
		return nil, fmt.Errorf("quote: update: %w", err)
	}
	return q, nil
}

// Delete removes a quote by id. Deleting a missing quote returns ErrNotFound.
func (r *Repository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&Quote{})
	if res.Error != nil {
		return fmt.Errorf("quote: delete: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
