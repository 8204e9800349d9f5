package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/sirupsen/logrus"
	"twentyone-server/internal/config"

	_ "github.com/golang-migrate/migrate/v4/source/file" // needed
	_ "github.com/lib/pq"                                // needed
)

var (
	instance     *sql.DB
	instanceErr  error
	instanceOnce sync.Once
)

// Instance returns the shared handle for the configured pgDsn
func Instance() (*sql.DB, error) {
	instanceOnce.Do(func() {
		instance, instanceErr = Open(config.Instance().PGDSN)
	})

	return instance, instanceErr
}

// Open connects to postgres and verifies the connection
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// WaitForOpen retries Open until it succeeds or ctx is done
func WaitForOpen(ctx context.Context, dsn string, interval time.Duration) (*sql.DB, error) {
	for {
		db, err := Open(dsn)
		if err == nil {
			return db, nil
		}

		logrus.WithError(err).Debug("database is not ready")
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("could not connect to database: %w", err)
		case <-time.After(interval):
		}
	}
}

// Migrate runs the migrations in migrationsPath against db
func Migrate(db *sql.DB, migrationsPath string) error {
	logrus.WithField("migrationsPath", migrationsPath).Info("running migrations")
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance(fmt.Sprintf("file://%s", migrationsPath), "postgres", driver)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}

	return nil
}

// Scanner is an interface that sql should've provided
// No snark here...
type Scanner interface {
	Scan(...interface{}) error
}
