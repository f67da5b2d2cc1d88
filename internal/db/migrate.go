package db

import (
	"errors"
	"fmt"

	"github.com/archivo-digital/apiserver/config"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// DefaultMigrationsURL points at the schema files relative to the repo root.
const DefaultMigrationsURL = "file://internal/db/migrations"

// MigrateUp applies every pending up migration.
func MigrateUp(cfg config.DatabaseConfig, migrationsURL string) error {
	return runMigrations(cfg, migrationsURL, func(m *migrate.Migrate) error {
		return m.Up()
	})
}

// MigrateDown rolls back the given number of migrations.
func MigrateDown(cfg config.DatabaseConfig, migrationsURL string, steps int) error {
	if steps < 1 {
		return errors.New("steps must be positive")
	}
	return runMigrations(cfg, migrationsURL, func(m *migrate.Migrate) error {
		return m.Steps(-steps)
	})
}

func runMigrations(cfg config.DatabaseConfig, migrationsURL string, apply func(*migrate.Migrate) error) error {
	if migrationsURL == "" {
		migrationsURL = DefaultMigrationsURL
	}

	migrator, err := migrate.New(migrationsURL, PostgresURL(cfg))
	if err != nil {
		return fmt.Errorf("init migrator failed: %w", err)
	}
	defer func() {
		_, _ = migrator.Close()
	}()

	if err := apply(migrator); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			return nil
		}
		return fmt.Errorf("migration failed: %w", err)
	}
	return nil
}
