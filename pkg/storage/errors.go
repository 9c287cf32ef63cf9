package storage

import (
	"fmt"

	"go-cv-backend/internal/domain"
)

// ErrDisabled matches domain.ErrStorageDisabled.
var ErrDisabled = fmt.Errorf("storage: %w", domain.ErrStorageDisabled)
