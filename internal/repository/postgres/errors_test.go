package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"go-cv-backend/internal/domain"
)

func TestTranslate(t *testing.T) {
	unique := &pgconn.PgError{Code: "23505", ConstraintName: "uq_collections_name"}
	fk := &pgconn.PgError{Code: "23503", ConstraintName: "collection_profiles_profil_id_fkey"}
	other := errors.New("connection reset")

	assert.NoError(t, translate(nil))
	assert.ErrorIs(t, translate(pgx.ErrNoRows), domain.ErrNotFound)
	assert.ErrorIs(t, translate(unique), domain.ErrDuplicateKey)
	assert.ErrorIs(t, translate(fmt.Errorf("insert: %w", fk)), domain.ErrForeignKey)
	assert.ErrorIs(t, translate(&pgconn.PgError{Code: "23502"}), domain.ErrNotNull)

	got := translate(other)
	assert.Equal(t, other, got)
	assert.NotErrorIs(t, got, domain.ErrNotFound)

	var pgErr *pgconn.PgError
	assert.ErrorAs(t, translate(unique), &pgErr)
	assert.Equal(t, "uq_collections_name", pgErr.ConstraintName)
}
