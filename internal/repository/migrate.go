package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	log "github.com/sirupsen/logrus"
)

const migrationsTable = "warranty_schema_migrations"

// Migrate applies pending schema migrations. It keeps its own migrations table
// so it can share a database with other services.
func Migrate(sourceURL, dbURL string) error {
	migrationDBURL := dbURL
	if strings.Contains(dbURL, "?") {
		migrationDBURL = dbURL + "&x-migrations-table=" + migrationsTable
	} else {
		migrationDBURL = dbURL + "?x-migrations-table=" + migrationsTable
	}

	m, err := migrate.New(sourceURL, migrationDBURL)
	if err != nil {
		return fmt.Errorf("could not create migration instance: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("could not apply migration: %w", err)
	}
	log.Info("Database migration successfully applied")
	return nil
}
