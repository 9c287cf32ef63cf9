package postgres

import (
	"errors"
	"fmt"

	"go-cv-backend/internal/domain"
	"go-cv-backend/pkg/database"
)

// translate maps storage errors onto domain sentinels, keeping the cause in the chain.
func translate(err error) error {
	if err == nil {
		return nil
	}
	err = database.MapError(err)
	switch {
	case errors.Is(err, database.ErrNotFound):
		return fmt.Errorf("%w: %w", domain.ErrNotFound, err)
	case errors.Is(err, database.ErrUniqueViolation):
		return fmt.Errorf("%w: %w", domain.ErrDuplicateKey, err)
	case errors.Is(err, database.ErrForeignKeyViolation):
		return fmt.Errorf("%w: %w", domain.ErrForeignKey, err)
	case errors.Is(err, database.ErrNotNullViolation):
		return fmt.Errorf("%w: %w", domain.ErrNotNull, err)
	}
	return err
}
