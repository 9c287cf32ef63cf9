package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	"go-cv-backend/internal/delivery/http/response"
	"go-cv-backend/internal/domain"
	"go-cv-backend/pkg/apperror"
	"go-cv-backend/pkg/logger"
)

// DetailedError is attached by handlers that have per-field messages to return.
type DetailedError struct {
	*apperror.AppError
	Details []string
}

func (e *DetailedError) Unwrap() error { return e.AppError }

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err

		var details []string
		var detailed *DetailedError
		if errors.As(err, &detailed) {
			details = detailed.Details
		}

		appErr := apperror.FromDomain(err)
		if appErr.Kind == apperror.KindInternal {
			// Never expose internal error details to clients.
			logger.Log.Error("request failed",
				"method", c.Request.Method,
				"path", c.FullPath(),
				"request_id", c.GetString(string(domain.KeyRequestID)),
				"error", err)
		}
		response.Error(c, appErr.Code, appErr.Message, response.ErrorBody{Kind: string(appErr.Kind), Details: details})
	}
}
