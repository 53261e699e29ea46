package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/skillsenselab/quotes/internal/logger"
)

// RequestIDHeader is the header a request id is read from and echoed to.
const RequestIDHeader = "X-Request-Id"

// RequestID ensures every request carries an id: an incoming X-Request-Id is
// kept, otherwise one is generated. The id is stored on the gin context under
// logger.FieldRequestID so the request logger and recovery middleware pick it
// up, and echoed in the response header.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		c.Set(logger.FieldRequestID, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}
