// Package quote implements the quotes resource: model, repository, service,
// and HTTP handlers.
package quote

import (
	"time"
)

// Quote is the stored quote record.
type Quote struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	Author    string    `gorm:"not null;index" json:"author"`
	Content   string    `gorm:"not null" json:"content"`
	CreatedBy string    `gorm:"index" json:"created_by,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateRequest is the payload for creating a quote.
type CreateRequest struct {
	Author  string `json:"author" validate:"required,min=1,max=255"`
	Content string `json:"content" validate:"required,min=1,max=4096"`
}

// UpdateRequest is the payload for updating a quote.
type UpdateRequest struct {
	Author  string `json:"author" validate:"required,min=1,max=255"`
	Content string `json:"content" validate:"required,min=1,max=4096"`
}
