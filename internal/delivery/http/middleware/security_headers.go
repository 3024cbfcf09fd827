package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// contentSecurityPolicy covers the embedded contact page; the API itself only returns JSON
const contentSecurityPolicy = "default-src 'self'; " +
	"script-src 'self'; " +
	"style-src 'self' 'unsafe-inline'; " +
	"img-src 'self' data:; " +
	"connect-src 'self'; " +
	"frame-ancestors 'none'; " +
	"base-uri 'self'; " +
	"form-action 'self'"

// SecurityHeadersMiddleware adds baseline security headers to all responses.
// The swagger UI bootstraps with inline scripts, so it is served without a CSP.
func SecurityHeadersMiddleware(swaggerPrefix string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Header("Permissions-Policy", "camera=(), microphone=(), geolocation=(), payment=()")

		if swaggerPrefix == "" || !strings.HasPrefix(c.Request.URL.Path, swaggerPrefix) {
			c.Header("Content-Security-Policy", contentSecurityPolicy)
		}

		// Submission results must never be cached
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.Header("Cache-Control", "no-store")
		}

		c.Next()
	}
}
