package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"go-cv-backend/internal/domain"
)

func TestFromDomain(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
		kind Kind
	}{
		{"not found", fmt.Errorf("%w: no rows", domain.ErrNotFound), http.StatusNotFound, KindNotFound},
		{"duplicate", fmt.Errorf("%w: uq_collections_name", domain.ErrDuplicateKey), http.StatusConflict, KindDuplicateKey},
		{"foreign key", domain.ErrForeignKey, http.StatusBadRequest, KindForeignKey},
		{"validation", domain.NewValidationError("nom requis"), http.StatusBadRequest, KindValidation},
		{"credentials", domain.ErrInvalidCredentials, http.StatusBadRequest, KindInvalidCredentials},
		{"not activated", domain.ErrAccountNotActivated, http.StatusForbidden, KindAccountNotActivated},
		{"blocked", domain.ErrLoginBlocked, http.StatusTooManyRequests, KindTooManyRequests},
		{"storage", domain.ErrStorageDisabled, http.StatusServiceUnavailable, KindUnavailable},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, KindInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromDomain(tt.err)
			assert.Equal(t, tt.code, got.Code)
			assert.Equal(t, tt.kind, got.Kind)
		})
	}
}

func TestFromDomain_KeepsAppErrorAndMessage(t *testing.T) {
	orig := Forbidden("nope")
	assert.Same(t, orig, FromDomain(fmt.Errorf("wrapped: %w", orig)))

	assert.Equal(t, "nom requis", FromDomain(domain.NewValidationError("nom requis")).Message)
	assert.Equal(t, "Internal Server Error", FromDomain(errors.New("secret detail")).Message)
}
