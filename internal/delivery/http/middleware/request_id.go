package middleware

import (
	"context"

	"go-contact-backend/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// RequestIDKey is the gin context key holding the request ID
	RequestIDKey = "RequestID"
	// RequestIDHeader is echoed on every response
	RequestIDHeader = "X-Request-ID"
)

// RequestID tags each request with an ID, reusing a sane incoming X-Request-ID.
// The ID, client IP and user agent are also stored on the request context.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" || len(requestID) > 64 {
			requestID = uuid.New().String()
		}

		c.Set(RequestIDKey, requestID)
		c.Header(RequestIDHeader, requestID)

		ctx := context.WithValue(c.Request.Context(), domain.KeyRequestID, requestID)
		ctx = context.WithValue(ctx, domain.KeyClientIP, c.ClientIP())
		ctx = context.WithValue(ctx, domain.KeyUserAgent, c.Request.UserAgent())
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
