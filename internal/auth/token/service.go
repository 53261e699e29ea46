// Package token signs and verifies the service's access tokens.
//
// Tokens are compact JWS strings (HS256) carrying the subject (user id), the
// username, and issued-at/expiry timestamps. Verification recomputes the
// signature, checks the algorithm, and enforces expiry; every failure
// collapses into ErrInvalidToken so the transport boundary cannot leak why a
// token was rejected.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is the single rejection outcome for any bad token:
// malformed structure, signature mismatch, wrong algorithm, or expiry.
var ErrInvalidToken = errors.New("token: invalid token")

// Claims is the payload embedded in access tokens. Subject carries the user
// id; Username mirrors the authenticated user's name. Nothing else from the
// user record is embedded.
type Claims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
}

// Service signs and parses access tokens.
type Service struct {
	cfg Config
}

// NewService creates a token service from config.
func NewService(cfg Config) (*Service, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Service{cfg: cfg}, nil
}

// TTL returns the configured access-token lifetime.
func (s *Service) TTL() time.Duration {
	return s.cfg.TTL
}

// Generate creates a signed token from the given claims. IssuedAt, ExpiresAt
// and Issuer are filled from config when unset, so callers normally only
// provide Subject and Username.
func (s *Service) Generate(claims *Claims) (string, error) {
	now := time.Now()
	if claims.IssuedAt == nil {
		claims.IssuedAt = jwt.NewNumericDate(now)
	}
	if claims.ExpiresAt == nil {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(s.cfg.TTL))
	}
	if claims.Issuer == "" {
		claims.Issuer = s.cfg.Issuer
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return "", fmt.Errorf("token: sign: %w", err)
	}
	return signed, nil
}

// Parse verifies a token string and returns its claims. The returned error is
// always ErrInvalidToken; the underlying cause is wrapped for logging only.
func (s *Service) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(tokenString, claims, s.keyFunc, s.parserOptions()...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !tok.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// keyFunc rejects tokens whose header names any algorithm other than the one
// we sign with, before the signature is even checked.
func (s *Service) keyFunc(tok *jwt.Token) (interface{}, error) {
	if tok.Method.Alg() != jwt.SigningMethodHS256.Alg() {
		return nil, fmt.Errorf("token: unexpected signing method: %s", tok.Method.Alg())
	}
	return []byte(s.cfg.Secret), nil
}

func (s *Service) parserOptions() []jwt.ParserOption {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if s.cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.cfg.Issuer))
	}
	return opts
}
