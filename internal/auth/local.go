package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/skillsenselab/quotes/internal/auth/password"
)

// LocalPassword is the username/password CredentialStrategy backed by the
// user store and a password hasher.
type LocalPassword struct {
	store  UserStore
	hasher password.Hasher
}

// NewLocalPassword creates the local-password credential strategy.
func NewLocalPassword(store UserStore, hasher password.Hasher) *LocalPassword {
	return &LocalPassword{store: store, hasher: hasher}
}

// Validate looks up the user and verifies the password. Unknown username and
// wrong password both return ErrInvalidCredentials. A store infrastructure
// failure is wrapped and propagated as-is so it surfaces as a server error.
// The plaintext password is never logged and never stored.
func (s *LocalPassword) Validate(ctx context.Context, username, plaintext string) (*SafeUser, error) {
	user, err := s.store.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("auth: user lookup: %w", err)
	}

	if err := s.hasher.Verify(plaintext, user.PasswordHash); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user.Safe(), nil
}
