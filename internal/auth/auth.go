// Package auth implements the authentication core: credential verification,
// access-token issuance, and token verification.
//
// Two capabilities are injected explicitly rather than discovered:
//
//   - CredentialStrategy verifies a username/password pair against the user
//     store. LocalPassword is the only variant.
//   - TokenStrategy turns an already-validated user into a bearer token and
//     verifies such tokens back into a request identity. BearerJWT is the
//     only variant.
//
// The two are deliberately separate: issuing never re-validates, and
// validating never issues, so other login methods can be added without
// touching token handling.
package auth

import (
	"context"
	"errors"
)

// ErrInvalidCredentials is returned for an unknown username or a wrong
// password. The two cases are intentionally indistinguishable.
var ErrInvalidCredentials = errors.New("auth: invalid credentials")

// ErrUserNotFound is returned by UserStore implementations when no record
// matches the username. CredentialStrategy implementations fold it into
// ErrInvalidCredentials before it crosses the authentication boundary.
var ErrUserNotFound = errors.New("auth: user not found")

// User is the stored user record as the authentication core sees it. The
// core only ever reads it.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
}

// SafeUser is a User with the password hash stripped. Only SafeUser values
// cross the authentication boundary; the hash never appears in returns, logs,
// or serialized output.
type SafeUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
}

// Safe strips the password hash from a user record.
func (u *User) Safe() *SafeUser {
	return &SafeUser{ID: u.ID, Username: u.Username, Email: u.Email}
}

// Identity is the authenticated identity attached to a request after a token
// has been verified. It lives only for the request's lifetime.
type Identity struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
}

// UserStore is the read-only port to the user records.
// Implementations return ErrUserNotFound when no record matches; any other
// error is treated as an infrastructure failure and surfaces as a server
// error, never as invalid credentials.
type UserStore interface {
	FindByUsername(ctx context.Context, username string) (*User, error)
}

// CredentialStrategy verifies login credentials and returns the matching
// user with the password hash stripped.
type CredentialStrategy interface {
	Validate(ctx context.Context, username, plaintext string) (*SafeUser, error)
}

// TokenStrategy issues bearer tokens for validated users and verifies
// presented tokens back into identities.
type TokenStrategy interface {
	// Issue mints an access token for the user. The caller must have already
	// authenticated the user; Issue performs no re-validation.
	Issue(user *SafeUser) (string, error)

	// Verify checks a token string and returns the identity it encodes.
	Verify(tokenString string) (Identity, error)
}
