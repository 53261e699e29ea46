package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/quotes/internal/auth"
	"github.com/skillsenselab/quotes/internal/auth/authctx"
	"github.com/skillsenselab/quotes/internal/errors"
	"github.com/skillsenselab/quotes/internal/logger"
	"github.com/skillsenselab/quotes/internal/server/access"
)

// IdentityKey is the gin context key the gate stores the verified identity
// under. Handlers can also read it from the request context via authctx.
const IdentityKey = "identity"

// AccessGate returns the global bearer-token gate. It is installed on every
// route; the public markers in the registry are the only opt-out.
//
// Per request: consult the registry (route marker first, group fallback,
// default deny); if public, pass through unauthenticated. Otherwise extract
// the bearer token from the Authorization header, verify it, and attach the
// resulting identity to the request context. Every failure — missing header,
// malformed scheme, bad signature, expiry — produces the same 401 body; the
// distinction is logged, never returned.
func AccessGate(registry *access.Registry, tokens auth.TokenStrategy, log *logger.Logger) gin.HandlerFunc {
	log = log.WithComponent("access-gate")

	return func(c *gin.Context) {
		if registry.IsPublic(c.Request.Method, c.FullPath()) {
			c.Next()
			return
		}

		raw, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			log.Debug("Missing or malformed Authorization header", map[string]interface{}{
				"method": c.Request.Method,
				"path":   c.Request.URL.Path,
			})
			reject(c)
			return
		}

		identity, err := tokens.Verify(raw)
		if err != nil {
			log.Debug("Token rejected", map[string]interface{}{
				"method": c.Request.Method,
				"path":   c.Request.URL.Path,
				"reason": err.Error(),
			})
			reject(c)
			return
		}

		c.Set(IdentityKey, identity)
		c.Request = c.Request.WithContext(authctx.Set(c.Request.Context(), identity))
		c.Next()
	}
}

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header. Any other scheme, or a missing header, is a rejection.
func bearerToken(header string) (string, bool) {
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func reject(c *gin.Context) {
	appErr := errors.Unauthorized("")
	c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToResponse())
}
