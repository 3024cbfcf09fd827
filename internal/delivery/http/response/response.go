package response

import (
	"github.com/gin-gonic/gin"
)

// Response is the JSON body of every /api/contact result:
// {"success":true} on success, {"error":"...","details":"..."} on failure.
type Response struct {
	Success bool   `json:"success,omitempty"`
	Error   string `json:"error,omitempty"`
	Details string `json:"details,omitempty"`
}

// Success sends a success response
func Success(c *gin.Context, code int) {
	c.JSON(code, Response{Success: true})
}

// Error sends an error response
func Error(c *gin.Context, code int, message, details string) {
	c.JSON(code, Response{
		Error:   message,
		Details: details,
	})
}
