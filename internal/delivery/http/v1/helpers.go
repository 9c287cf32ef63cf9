package v1

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"go-cv-backend/internal/delivery/http/middleware"
	"go-cv-backend/pkg/apperror"
	"go-cv-backend/pkg/validation"
)

// bindJSON binds the body and records a 400 with per-field messages on failure.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.Error(&middleware.DetailedError{
			AppError: apperror.New(http.StatusBadRequest, apperror.KindValidation, "Données invalides", err),
			Details:  validation.FormatValidationErrors(err),
		})
		return false
	}
	return true
}

// splitIDs parses a comma-separated path segment, dropping blanks.
func splitIDs(raw string) []string {
	var ids []string
	for _, part := range strings.Split(raw, ",") {
		if id := strings.TrimSpace(part); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}
