// Command db_migrations applies the schema migrations to the configured
// Postgres instance. Usage: db_migrations [up|down]; the default is up.
// The migrations directory defaults to ./migrations and can be overridden
// with MIGRATIONS_DIR.
package main

import (
	"database/sql"
	"errors"
	"fmt"
	"os"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/fintrack-server/internal/config"
	"github.com/carson-networks/fintrack-server/internal/logging"
)

func main() {
	log := logging.SetupLogging()

	env, err := config.ProcessEnvironmentVariables()
	if err != nil {
		log.WithError(err).Fatal("config.ProcessEnvironmentVariables")
		return
	}

	migrationsDir := os.Getenv("MIGRATIONS_DIR")
	if migrationsDir == "" {
		migrationsDir = "migrations"
	}

	direction := "up"
	if len(os.Args) > 1 {
		direction = os.Args[1]
	}

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		env.PostgresUsername, env.PostgresPassword,
		env.PostgresAddress, env.PostgresPort, env.PostgresDB)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.WithError(err).Fatal("sql.Open")
		return
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		log.WithError(err).Fatal("postgres.WithInstance")
		return
	}

	m, err := migrate.NewWithDatabaseInstance("file://"+migrationsDir, env.PostgresDB, driver)
	if err != nil {
		log.WithError(err).Fatal("migrate.NewWithDatabaseInstance")
		return
	}

	switch direction {
	case "up":
		err = m.Up()
	case "down":
		err = m.Down()
	default:
		log.Fatalf("unknown direction %q, want up or down", direction)
		return
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		log.WithError(err).Fatalf("migrate.%s", direction)
		return
	}

	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		version, dirty, err = 0, false, nil
	}
	if err != nil {
		log.WithError(err).Fatal("migrate.Version")
		return
	}

	log.WithFields(logrus.Fields{
		"direction": direction,
		"dir":       migrationsDir,
		"version":   version,
		"dirty":     dirty,
	}).Info("migrations applied")
}
