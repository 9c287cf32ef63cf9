package database

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	// registers the postgres:// database driver
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

// Migrator applies the embedded SQL schema with golang-migrate.
type Migrator struct {
	fsys   fs.FS
	dbURL  string
	logger *slog.Logger
}

// NewMigrator builds a migrator over fsys (files named <version>_<name>.up.sql / .down.sql).
func NewMigrator(fsys fs.FS, dbURL string, opts ...MigratorOption) *Migrator {
	m := &Migrator{fsys: fsys, dbURL: dbURL, logger: slog.Default()}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

type MigratorOption func(*Migrator)

func WithLogger(l *slog.Logger) MigratorOption {
	return func(m *Migrator) {
		if l != nil {
			m.logger = l
		}
	}
}

func (m *Migrator) open() (*migrate.Migrate, error) {
	src, err := iofs.New(m.fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("open migration source: %w", err)
	}
	mg, err := migrate.NewWithSourceInstance("iofs", src, m.dbURL)
	if err != nil {
		return nil, fmt.Errorf("open migration target: %w", err)
	}
	return mg, nil
}

// Up applies all pending migrations. No pending migration is not an error.
func (m *Migrator) Up() error {
	mg, err := m.open()
	if err != nil {
		return err
	}
	defer closeMigrate(mg)

	if err := mg.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate up: %w", err)
	}
	v, dirty, _ := mg.Version()
	m.logger.Info("Migrations applied", "version", v, "dirty", dirty)
	return nil
}

// Down rolls back the given number of migrations (all when steps <= 0).
func (m *Migrator) Down(steps int) error {
	mg, err := m.open()
	if err != nil {
		return err
	}
	defer closeMigrate(mg)

	if steps > 0 {
		err = mg.Steps(-steps)
	} else {
		err = mg.Down()
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate down: %w", err)
	}
	m.logger.Info("Migrations rolled back", "steps", steps)
	return nil
}

// Version reports the current schema version. ok is false on an empty database.
func (m *Migrator) Version() (version uint, dirty bool, ok bool, err error) {
	mg, err := m.open()
	if err != nil {
		return 0, false, false, err
	}
	defer closeMigrate(mg)

	version, dirty, err = mg.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, false, nil
	}
	if err != nil {
		return 0, false, false, err
	}
	return version, dirty, true, nil
}

func closeMigrate(mg *migrate.Migrate) {
	if srcErr, dbErr := mg.Close(); srcErr != nil || dbErr != nil {
		slog.Default().Warn("Closing migrator", "source_error", srcErr, "db_error", dbErr)
	}
}
