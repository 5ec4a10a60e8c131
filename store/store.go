// Package store owns all access to the post and user tables. It is the single
// source of truth: there is no cache in front of it and no state beside it.
package store

import (
	"database/sql"
	"errors"
	"fmt"

	"topthought/config"
	migrations "topthought/db"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	pgxmigrate "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	sqlitemigrate "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when an operation addresses a record that does not
// exist. Handlers map it to 404; it is distinct from validation failures.
var ErrNotFound = errors.New("record not found")

type Store struct {
	DB     *sql.DB
	driver string
}

// Open connects to the configured database and brings the schema up to the
// latest version. SQLite is the default driver; postgres is selected with
// DB_DRIVER=postgres.
func Open(cfg config.Config) (*Store, error) {
	var db *sql.DB
	var err error

	switch cfg.DBDriver {
	case "sqlite":
		db, err = sql.Open("sqlite", cfg.DBURL)
		if err != nil {
			return nil, fmt.Errorf("opening sqlite database: %w", err)
		}
		// modernc sqlite does not tolerate concurrent writers on one file.
		db.SetMaxOpenConns(1)
	case "postgres":
		db, err = sql.Open("pgx", cfg.DBURL)
		if err != nil {
			return nil, fmt.Errorf("opening postgres database: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.DBDriver)
	}

	s := &Store{DB: db, driver: cfg.DBDriver}
	if err := s.migrateUp(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running schema migrations: %w", err)
	}

	return s, nil
}

func (s *Store) migrateUp() error {
	var driver database.Driver
	var err error

	switch s.driver {
	case "sqlite":
		driver, err = sqlitemigrate.WithInstance(s.DB, &sqlitemigrate.Config{})
	case "postgres":
		driver, err = pgxmigrate.WithInstance(s.DB, &pgxmigrate.Config{})
	}
	if err != nil {
		return err
	}

	src, err := iofs.New(migrations.Migrations, "migrations")
	if err != nil {
		return err
	}

	m, err := migrate.NewWithInstance("iofs", src, s.driver, driver)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

func (s *Store) Close() error {
	return s.DB.Close()
}
