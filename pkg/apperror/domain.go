package apperror

import (
	"errors"
	"net/http"

	"go-cv-backend/internal/domain"
)

// FromDomain maps domain sentinels onto HTTP-facing errors. Unknown errors become Internal.
func FromDomain(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	var vErr *domain.ValidationError
	switch {
	case errors.As(err, &vErr):
		return New(http.StatusBadRequest, KindValidation, vErr.Message, err)
	case errors.Is(err, domain.ErrNotFound):
		return New(http.StatusNotFound, KindNotFound, "Ressource introuvable", err)
	case errors.Is(err, domain.ErrDuplicateKey):
		return New(http.StatusConflict, KindDuplicateKey, "DUPLICATION_KEY", err)
	case errors.Is(err, domain.ErrEmailTaken):
		return New(http.StatusConflict, KindDuplicateKey, "Cet email est déjà utilisé", err)
	case errors.Is(err, domain.ErrForeignKey):
		return New(http.StatusBadRequest, KindForeignKey, "Référence vers une entité inexistante", err)
	case errors.Is(err, domain.ErrNotNull), errors.Is(err, domain.ErrValidation):
		return New(http.StatusBadRequest, KindValidation, "Champ obligatoire manquant", err)
	case errors.Is(err, domain.ErrInvalidCredentials):
		return New(http.StatusBadRequest, KindInvalidCredentials, "Email ou mot de passe incorrect", err)
	case errors.Is(err, domain.ErrAccountNotActivated):
		return New(http.StatusForbidden, KindAccountNotActivated, "Compte non activé", err)
	case errors.Is(err, domain.ErrLoginBlocked):
		return New(http.StatusTooManyRequests, KindTooManyRequests, "Trop de tentatives, réessayez plus tard", err)
	case errors.Is(err, domain.ErrForbidden):
		return New(http.StatusForbidden, KindForbidden, "Accès refusé", err)
	case errors.Is(err, domain.ErrStorageDisabled):
		return New(http.StatusServiceUnavailable, KindUnavailable, "Stockage non configuré", err)
	}
	return Internal(err)
}
