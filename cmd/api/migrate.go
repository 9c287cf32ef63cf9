package main

import (
	"fmt"
	"strconv"

	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"

	"go-cv-backend/migrations"
	"go-cv-backend/pkg/database"
	"go-cv-backend/pkg/logger"
)

func newMigrateCommand() *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}
	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			m, err := newMigrator()
			if err != nil {
				return err
			}
			return m.Up()
		},
	}
	downCmd := &cobra.Command{
		Use:   "down [steps]",
		Short: "Roll back migrations (all when steps is omitted)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			steps := 0
			if len(args) == 1 {
				n, err := strconv.Atoi(args[0])
				if err != nil || n < 1 {
					return fmt.Errorf("steps must be a positive integer, got %q", args[0])
				}
				steps = n
			}
			m, err := newMigrator()
			if err != nil {
				return err
			}
			return m.Down(steps)
		},
	}
	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the current schema version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, err := newMigrator()
			if err != nil {
				return err
			}
			version, dirty, ok, err := m.Version()
			if err != nil {
				return err
			}
			if !ok {
				cmd.Println("no migration applied")
				return nil
			}
			cmd.Printf("version %d (dirty: %t)\n", version, dirty)
			return nil
		},
	}
	for _, sub := range []*cobra.Command{upCmd, downCmd, versionCmd} {
		cobraflags.RegisterMap(sub, serverFlags)
		migrateCmd.AddCommand(sub)
	}
	return migrateCmd
}

func newMigrator() (*database.Migrator, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if cfg.DBUrl == "" {
		return nil, fmt.Errorf("DATABASE_URL or --%s is required", databaseURLFlag)
	}
	return database.NewMigrator(migrations.FS, cfg.DBUrl, database.WithLogger(logger.Log)), nil
}
