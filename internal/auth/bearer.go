package auth

import (
	"github.com/golang-jwt/jwt/v5"

	"github.com/skillsenselab/quotes/internal/auth/token"
)

// BearerJWT is the TokenStrategy backed by the HMAC JWT codec. It is the
// session issuer: it builds the token payload from a validated user and
// delegates signing and verification to the token service.
type BearerJWT struct {
	tokens *token.Service
}

// NewBearerJWT creates the JWT bearer-token strategy.
func NewBearerJWT(tokens *token.Service) *BearerJWT {
	return &BearerJWT{tokens: tokens}
}

// Issue builds the token payload from the user and signs it. Subject and
// username are exactly the values from the validated user; no other state is
// embedded. Issue trusts the caller's prior credential validation.
func (b *BearerJWT) Issue(user *SafeUser) (string, error) {
	return b.tokens.Generate(&token.Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: user.ID},
		Username:         user.Username,
	})
}

// Verify parses and verifies the token, mapping its claims to an Identity.
// Any failure surfaces as token.ErrInvalidToken.
func (b *BearerJWT) Verify(tokenString string) (Identity, error) {
	claims, err := b.tokens.Parse(tokenString)
	if err != nil {
		return Identity{}, err
	}
	return Identity{UserID: claims.Subject, Username: claims.Username}, nil
}
