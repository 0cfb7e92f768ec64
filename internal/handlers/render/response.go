package render

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the failure envelope every endpoint returns: a status
// code, a human-readable message and an optional detail string. No stack
// traces or internal identifiers leave the process.
type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// Error writes the failure envelope and aborts the handler chain.
func Error(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, ErrorResponse{
		Status:  status,
		Message: message,
	})
}

// ErrorWithDetail writes the failure envelope with a diagnostic detail.
func ErrorWithDetail(c *gin.Context, status int, message, detail string) {
	c.AbortWithStatusJSON(status, ErrorResponse{
		Status:  status,
		Message: message,
		Error:   detail,
	})
}

// JSON writes a 200 response with the given payload.
func JSON(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}
