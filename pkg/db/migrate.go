package db

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file" // file:// source driver
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/roleready/roleready-api/config"
)

// MigrationDirection selects which way RunMigrations moves the schema.
type MigrationDirection string

const (
	MigrateUp   MigrationDirection = "up"
	MigrateDown MigrationDirection = "down"
)

// RunMigrations applies migrations from migrationsPath (e.g. "file://migrations").
// ErrNoChange is not an error. MigrateDown rolls back a single step.
func RunMigrations(cfg config.DatabaseConfig, migrationsPath string, direction MigrationDirection) error {
	if direction != MigrateUp && direction != MigrateDown {
		return fmt.Errorf("unknown migration direction %q", direction)
	}

	m, closeDB, err := newMigrator(cfg, migrationsPath)
	if err != nil {
		return err
	}
	defer closeDB()

	if direction == MigrateUp {
		err = m.Up()
	} else {
		err = m.Steps(-1)
	}

	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

// MigrationVersion reports the applied schema version and whether the last
// migration left it dirty. version is 0 when nothing has been applied.
func MigrationVersion(cfg config.DatabaseConfig, migrationsPath string) (version uint, dirty bool, err error) {
	m, closeDB, err := newMigrator(cfg, migrationsPath)
	if err != nil {
		return 0, false, err
	}
	defer closeDB()

	version, dirty, err = m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to read migration version: %w", err)
	}
	return version, dirty, nil
}

func newMigrator(cfg config.DatabaseConfig, migrationsPath string) (*migrate.Migrate, func(), error) {
	connConfig, err := pgx.ParseConfig(cfg.URL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	tlsConfig, err := configureTLS(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to configure TLS: %w", err)
	}
	if tlsConfig != nil {
		connConfig.TLSConfig = tlsConfig
	}

	sqlDB := stdlib.OpenDB(*connConfig)
	closeDB := func() { _ = sqlDB.Close() }

	if pingErr := sqlDB.Ping(); pingErr != nil {
		closeDB()
		return nil, nil, fmt.Errorf("failed to ping database: %w", pingErr)
	}

	driver, err := postgres.WithInstance(sqlDB, &postgres.Config{})
	if err != nil {
		closeDB()
		return nil, nil, fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(migrationsPath, "postgres", driver)
	if err != nil {
		closeDB()
		return nil, nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}
	return m, closeDB, nil
}
