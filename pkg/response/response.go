package response

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// ErrorBody is the error payload returned on every failed request.
type ErrorBody struct {
	Timestamp time.Time `json:"timestamp"`
	Code      int       `json:"code"`
	Detail    string    `json:"detail"`
}

// Success writes data as the response body with the given status.
func Success(c *gin.Context, status int, data any) {
	c.JSON(status, data)
}

// Error writes the standard error payload.
func Error(c *gin.Context, status int, detail string) {
	c.JSON(status, ErrorBody{Timestamp: time.Now(), Code: status, Detail: detail})
}

// AbortError writes the standard error payload and aborts the handler
// chain; for middleware use.
func AbortError(c *gin.Context, status int, detail string) {
	c.AbortWithStatusJSON(status, ErrorBody{Timestamp: time.Now(), Code: status, Detail: detail})
}

// Internal hides the cause behind a generic 500 payload so internal
// detail never leaks to the caller.
func Internal(c *gin.Context) {
	Error(c, http.StatusInternalServerError, "unexpected error")
}
