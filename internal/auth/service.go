package auth

import (
	"context"
)

// Service composes a credential strategy with a token strategy to implement
// login: verify credentials, then mint an access token for the verified user.
type Service struct {
	creds  CredentialStrategy
	tokens TokenStrategy
}

// NewService creates the login service.
func NewService(creds CredentialStrategy, tokens TokenStrategy) *Service {
	return &Service{creds: creds, tokens: tokens}
}

// Login validates the credentials and returns a signed access token.
// Returns ErrInvalidCredentials on rejection; any other error is an
// infrastructure failure.
func (s *Service) Login(ctx context.Context, username, plaintext string) (string, error) {
	user, err := s.creds.Validate(ctx, username, plaintext)
	if err != nil {
		return "", err
	}
	return s.tokens.Issue(user)
}
