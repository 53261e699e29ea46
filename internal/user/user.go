// Package user owns the user records: the GORM model, the store the
// authentication core reads from, and bootstrap seeding.
package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/skillsenselab/quotes/internal/auth"
	"github.com/skillsenselab/quotes/internal/auth/password"
)

// User is the stored user record. The password hash is excluded from JSON
// serialization; only the authentication core reads it.
type User struct {
	ID           string    `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"uniqueIndex;not null" json:"username"`
	Email        string    `json:"email,omitempty"`
	PasswordHash string    `gorm:"not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Store is the GORM-backed implementation of auth.UserStore.
type Store struct {
	db *gorm.DB
}

// NewStore creates a user store over the database handle.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// FindByUsername looks up a user record by username. Returns
// auth.ErrUserNotFound when no record matches; any other error is an
// infrastructure failure.
func (s *Store) FindByUsername(ctx context.Context, username string) (*auth.User, error) {
	var u User
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, auth.ErrUserNotFound
		}
		return nil, fmt.Errorf("user: find by username: %w", err)
	}
	return &auth.User{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
	}, nil
}

// Create inserts a new user record with a hashed password.
func (s *Store) Create(ctx context.Context, username, email, plaintext string, hasher password.Hasher) (*User, error) {
	hash, err := hasher.Hash(plaintext)
	if err != nil {
		return nil, fmt.Errorf("user: hash password: %w", err)
	}
	u := &User{
		ID:           uuid.New().String(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.db.WithContext(ctx).Create(u).Error; err != nil {
		return nil, fmt.Errorf("user: create: %w", err)
	}
	return u, nil
}

// Seed ensures a user with the given username exists, creating it with the
// given password when missing. Used at startup to bootstrap an initial
// account; it never updates an existing record.
func (s *Store) Seed(ctx context.Context, username, email, plaintext string, hasher password.Hasher) error {
	_, err := s.FindByUsername(ctx, username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, auth.ErrUserNotFound) {
		return err
	}
	_, err = s.Create(ctx, username, email, plaintext, hasher)
	return err
}
