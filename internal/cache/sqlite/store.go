package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/ChandelAnish/NutriTrack/internal/logger"
	"github.com/ChandelAnish/NutriTrack/internal/migration"
	"github.com/ChandelAnish/NutriTrack/migrations"
)

// ErrNotInitialized is returned by Load when the cache file does not exist yet.
var ErrNotInitialized = errors.New("cache not initialized, run 'nutritrack init' first")

type Store struct {
	path string
	db   *sql.DB
}

func NewStore(path string) *Store {
	return &Store{
		path: path,
	}
}

func (s *Store) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if s.db == nil {
		db, err := sql.Open("sqlite", s.path)
		if err != nil {
			return fmt.Errorf("failed to open cache: %w", err)
		}
		// A single connection keeps read-after-write ordering trivial.
		db.SetMaxOpenConns(1)
		s.db = db
	}

	runner, err := s.runner()
	if err != nil {
		return err
	}
	if _, err := runner.Apply(context.Background(), func(msg string) {
		logger.Debug(msg)
	}); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

func (s *Store) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return ErrNotInitialized
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open cache: %w", err)
	}
	db.SetMaxOpenConns(1)
	s.db = db

	runner, err := s.runner()
	if err != nil {
		return err
	}
	return runner.Validate(context.Background())
}

func (s *Store) Close() error {
	if s.db != nil {
		err := s.db.Close()
		s.db = nil
		return err
	}
	return nil
}

func (s *Store) Location() string {
	return s.path
}

// DB returns the underlying connection, or nil before Init/Load.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Runner exposes the migration runner for diagnostics.
func (s *Store) Runner() (*migration.Runner, error) {
	if s.db == nil {
		return nil, ErrNotInitialized
	}
	return s.runner()
}

func (s *Store) runner() (*migration.Runner, error) {
	subFS, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		return nil, fmt.Errorf("failed to access sqlite migrations: %w", err)
	}
	return migration.NewRunner(s.db, subFS, migration.DialectSQLite), nil
}

func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	if s.db == nil {
		return "", false, ErrNotInitialized
	}
	var value string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM kv_cache WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	if s.db == nil {
		return ErrNotInitialized
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO kv_cache (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UTC().Format(time.RFC3339))
	return err
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if s.db == nil {
		return ErrNotInitialized
	}
	_, err := s.db.ExecContext(ctx, "DELETE FROM kv_cache WHERE key = ?", key)
	return err
}

func (s *Store) Clear(ctx context.Context) error {
	if s.db == nil {
		return ErrNotInitialized
	}
	_, err := s.db.ExecContext(ctx, "DELETE FROM kv_cache")
	return err
}

func (s *Store) Keys(ctx context.Context) ([]string, error) {
	if s.db == nil {
		return nil, ErrNotInitialized
	}
	rows, err := s.db.QueryContext(ctx, "SELECT key FROM kv_cache ORDER BY key")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}
