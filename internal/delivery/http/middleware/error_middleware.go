package middleware

import (
	"errors"
	"net/http"

	"go-contact-backend/internal/delivery/http/response"
	"go-contact-backend/pkg/apperror"
	"go-contact-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ErrorHandler renders the last error pushed with c.Error.
// Details are only sent to the client when exposeDetails is set.
func ErrorHandler(exposeDetails bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		requestID := c.GetString(RequestIDKey)

		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			if appErr.Code >= http.StatusInternalServerError {
				logger.Log.Error("Request failed", "status", appErr.Code, "error", appErr.Err, "request_id", requestID)
			}
			details := ""
			if exposeDetails {
				details = appErr.Details
			}
			response.Error(c, appErr.Code, appErr.Message, details)
			return
		}

		// Never expose internal error details for unclassified errors
		logger.Log.Error("Internal Server Error", "error", err, "request_id", requestID)
		response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", "")
	}
}
