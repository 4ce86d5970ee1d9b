package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"time"

	pq "github.com/lib/pq"

	"github.com/julianstephens/mealplan/internal/constants"
	"github.com/julianstephens/mealplan/internal/logger"
	"github.com/julianstephens/mealplan/internal/migration"
	"github.com/julianstephens/mealplan/internal/models"
	"github.com/julianstephens/mealplan/internal/storage"
	"github.com/julianstephens/mealplan/migrations"
)

// retryable SQLSTATE codes: deadlock, lock not available, serialization failure
var retryableCodes = map[pq.ErrorCode]bool{
	"40P01": true,
	"55P03": true,
	"40001": true,
}

type Store struct {
	connStr string
	db      *sql.DB
}

func New(connStr string) *Store {
	return &Store{
		connStr: withSearchPath(connStr),
	}
}

func (s *Store) open() (*sql.DB, error) {
	db, err := sql.Open("postgres", s.connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)
	return db, nil
}

func (s *Store) Init() error {
	db, err := s.open()
	if err != nil {
		return err
	}

	if _, err := db.Exec("CREATE SCHEMA IF NOT EXISTS " + constants.AppName); err != nil {
		db.Close()
		return connectError(s.connStr, fmt.Errorf("failed to create schema: %w", err))
	}
	s.db = db

	if _, err := s.runMigrations(func(msg string) { logger.Debug(msg) }); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if _, err := s.GetSettings(); err != nil {
		if err := s.SaveSettings(models.DefaultSettings()); err != nil {
			return fmt.Errorf("failed to save default settings: %w", err)
		}
	}

	return nil
}

func (s *Store) Load() error {
	if s.db != nil {
		return nil
	}

	db, err := s.open()
	if err != nil {
		return err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return connectError(s.connStr, err)
	}
	s.db = db

	runner, err := s.runner()
	if err != nil {
		return err
	}
	return runner.ValidateVersion(context.Background())
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *Store) runner() (*migration.Runner, error) {
	subFS, err := fs.Sub(migrations.FS, "postgres")
	if err != nil {
		return nil, fmt.Errorf("failed to access postgres migrations: %w", err)
	}
	return migration.NewRunner(s.db, subFS, migration.DriverPostgres), nil
}

func (s *Store) runMigrations(logFn func(string)) (int, error) {
	runner, err := s.runner()
	if err != nil {
		return 0, err
	}
	return runner.ApplyMigrations(context.Background(), logFn)
}

func (s *Store) Migrate(logFn func(string)) (int, error) {
	if err := s.Load(); err != nil {
		return 0, err
	}
	return s.runMigrations(logFn)
}

func (s *Store) SchemaStatus() (migration.Status, error) {
	if s.db == nil {
		return migration.Status{}, fmt.Errorf("database not loaded")
	}
	runner, err := s.runner()
	if err != nil {
		return migration.Status{}, err
	}
	return runner.Status(context.Background())
}

// IsRetryable reports deadlocks, lock timeouts and serialization failures
func (s *Store) IsRetryable(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return retryableCodes[pqErr.Code]
	}
	return false
}

// GetConfigPath returns a non-sensitive identifier instead of the connection string
func (s *Store) GetConfigPath() string {
	return "postgresql"
}

var _ storage.Provider = (*Store)(nil)
