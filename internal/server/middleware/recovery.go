// Package middleware provides the Gin middleware stack for the quotes
// service: panic recovery, request IDs, CORS, request logging, and the
// bearer-token access gate.
package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/quotes/internal/errors"
	"github.com/skillsenselab/quotes/internal/logger"
)

// Recovery returns middleware that recovers from panics, logs the stack, and
// responds with the service's standard error envelope. The panic value stays
// in the logs; the client sees only the generic internal-error body.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				fields := map[string]interface{}{
					"error":     fmt.Sprintf("%v", r),
					"stack":     string(debug.Stack()),
					"path":      c.Request.URL.Path,
					"method":    c.Request.Method,
					"client_ip": c.ClientIP(),
				}
				if id := c.GetString(logger.FieldRequestID); id != "" {
					fields[logger.FieldRequestID] = id
				}
				logger.Error("Panic recovered", fields)

				appErr := errors.Internal(fmt.Errorf("panic: %v", r))
				c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToResponse())
			}
		}()
		c.Next()
	}
}
