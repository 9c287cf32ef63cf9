package response

import (
	"github.com/gin-gonic/gin"

	"go-cv-backend/internal/domain"
)

// Response is the envelope of every JSON body the API returns.
type Response struct {
	Success   bool       `json:"success"`
	Message   string     `json:"message"`
	Data      any        `json:"data,omitempty"`
	Error     *ErrorBody `json:"error,omitempty"`
	RequestID string     `json:"request_id,omitempty"`
}

// ErrorBody carries the machine-readable kind of a failure.
type ErrorBody struct {
	Kind    string   `json:"kind"`
	Details []string `json:"details,omitempty"`
}

func write(c *gin.Context, code int, r Response) {
	r.RequestID = c.GetString(string(domain.KeyRequestID))
	c.JSON(code, r)
}

// Success sends a success response
func Success(c *gin.Context, code int, message string, data any) {
	write(c, code, Response{Success: true, Message: message, Data: data})
}

// Error sends a failure with its kind and no payload.
func Error(c *gin.Context, code int, message string, body ErrorBody) {
	write(c, code, Response{Message: message, Error: &body})
}

// Partial sends a failure that still carries data, such as a degraded health report.
func Partial(c *gin.Context, code int, message string, data any, body ErrorBody) {
	write(c, code, Response{Message: message, Data: data, Error: &body})
}
