package database

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL error codes
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgNotNullViolation    = "23502"
)

// Normalised storage error kinds. Anything else is reported as-is (unknown).
var (
	ErrUniqueViolation     = errors.New("unique constraint violation")
	ErrForeignKeyViolation = errors.New("foreign key violation")
	ErrNotNullViolation    = errors.New("not null violation")
	ErrNotFound            = errors.New("no rows")
)

// Error is a normalised storage error. errors.Is matches its Kind.
type Error struct {
	Kind       error
	Constraint string
	Err        error
}

func (e *Error) Error() string {
	if e.Constraint != "" {
		return e.Kind.Error() + " (" + e.Constraint + ")"
	}
	return e.Kind.Error()
}

func (e *Error) Is(target error) bool { return target == e.Kind }

func (e *Error) Unwrap() error { return e.Err }

// MapError converts driver errors into *Error values. It is idempotent.
func MapError(err error) error {
	if err == nil {
		return nil
	}
	var dbErr *Error
	if errors.As(err, &dbErr) {
		return err
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return &Error{Kind: ErrNotFound, Err: err}
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case pgUniqueViolation:
		return &Error{Kind: ErrUniqueViolation, Constraint: pgErr.ConstraintName, Err: err}
	case pgForeignKeyViolation:
		return &Error{Kind: ErrForeignKeyViolation, Constraint: pgErr.ConstraintName, Err: err}
	case pgNotNullViolation:
		return &Error{Kind: ErrNotNullViolation, Constraint: pgErr.ColumnName, Err: err}
	}
	return err
}

// ExpectRows returns ErrNotFound when a statement touched no rows.
func ExpectRows(tag pgconn.CommandTag) error {
	if tag.RowsAffected() == 0 {
		return &Error{Kind: ErrNotFound}
	}
	return nil
}
