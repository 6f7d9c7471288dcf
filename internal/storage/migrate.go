package storage

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/qr-tracker/internal/config"
)

// Migrator applies the schema migrations under migrations/postgres.
// Postgres is the only migrated backend: Redis holds ephemeral session
// tokens and carries no schema.
type Migrator struct {
	sourceURL   string
	databaseURL string
}

// NewMigrator creates a migrator for the given Postgres instance and
// migration directory
func NewMigrator(cfg *config.PostgresConfig, migrationsPath string) *Migrator {
	return &Migrator{
		sourceURL:   "file://" + migrationsPath,
		databaseURL: cfg.PostgresURL(),
	}
}

func (m *Migrator) open() (*migrate.Migrate, error) {
	instance, err := migrate.New(m.sourceURL, m.databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}
	return instance, nil
}

// Up applies all pending migrations. An already current schema is not an
// error.
func (m *Migrator) Up() error {
	instance, err := m.open()
	if err != nil {
		return err
	}
	defer func() {
		_, _ = instance.Close() // nolint:errcheck // cleanup in defer
	}()

	if err := instance.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// Down rolls back the most recent migration
func (m *Migrator) Down() error {
	instance, err := m.open()
	if err != nil {
		return err
	}
	defer func() {
		_, _ = instance.Close() // nolint:errcheck // cleanup in defer
	}()

	if err := instance.Steps(-1); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to rollback migration: %w", err)
	}
	return nil
}

// Version reports the current schema version and whether a failed
// migration left it dirty. A fresh database reports version 0.
func (m *Migrator) Version() (version uint, dirty bool, err error) {
	instance, openErr := m.open()
	if openErr != nil {
		return 0, false, openErr
	}
	defer func() {
		_, _ = instance.Close() // nolint:errcheck // cleanup in defer
	}()

	version, dirty, err = instance.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, fmt.Errorf("failed to get migration version: %w", err)
	}
	return version, dirty, nil
}
