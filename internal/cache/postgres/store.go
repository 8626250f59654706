package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"
	"time"

	pq "github.com/lib/pq"

	"github.com/ChandelAnish/NutriTrack/internal/constants"
	"github.com/ChandelAnish/NutriTrack/internal/logger"
	"github.com/ChandelAnish/NutriTrack/internal/migration"
	"github.com/ChandelAnish/NutriTrack/migrations"
)

type Store struct {
	connStr string
	db      *sql.DB
}

var (
	ErrInvalidConnectionString = errors.New("invalid PostgreSQL connection string")
	ErrEmbeddedCredentials     = errors.New("connection string must not contain a password")
	ErrNotConnected            = errors.New("postgres cache is not connected")
)

// IsConnString reports whether value looks like a postgres connection string
// rather than a file path.
func IsConnString(value string) bool {
	v := strings.TrimSpace(value)
	return strings.HasPrefix(v, "postgres://") ||
		strings.HasPrefix(v, "postgresql://") ||
		strings.Contains(v, "host=")
}

func New(connStr string) *Store {
	s := &Store{
		connStr: connStr,
	}
	s.ensureSearchPath()
	return s
}

func (s *Store) ensureSearchPath() {
	if isURL(s.connStr) {
		u, err := url.Parse(s.connStr)
		if err != nil {
			logger.Warn("Failed to parse Postgres connection string", "error", err)
			return
		}
		q := u.Query()
		if q.Get("search_path") == "" {
			q.Set("search_path", constants.AppName)
			u.RawQuery = q.Encode()
			s.connStr = u.String()
		}
	} else if !hasParam(s.connStr, "search_path") {
		s.connStr = strings.TrimSpace(s.connStr) + " search_path=" + constants.AppName
	}
}

func isURL(connStr string) bool {
	return strings.HasPrefix(connStr, "postgres://") || strings.HasPrefix(connStr, "postgresql://")
}

// hasParam reports whether a DSN or URL connection string sets key (case-insensitive).
func hasParam(connStr, key string) bool {
	if u, err := url.Parse(connStr); err == nil && u.Scheme != "" {
		for k := range u.Query() {
			if strings.EqualFold(k, key) {
				return true
			}
		}
	}
	for _, part := range strings.Fields(connStr) {
		kv := strings.SplitN(part, "=", 2)
		if len(kv) != 2 {
			continue
		}
		if strings.EqualFold(kv[0], key) {
			return true
		}
	}
	return false
}

// ValidateConnString checks that connStr is a valid PostgreSQL URI or DSN
// and that it carries no password.
func ValidateConnString(connStr string) (bool, error) {
	if strings.TrimSpace(connStr) == "" {
		return false, fmt.Errorf("%w: connection string cannot be empty", ErrInvalidConnectionString)
	}

	if _, err := pq.NewConnector(connStr); err != nil {
		return false, fmt.Errorf("%w: invalid connection string format: %v", ErrInvalidConnectionString, err)
	}

	if isURL(connStr) {
		parsedURL, err := url.Parse(connStr)
		if err != nil {
			return false, fmt.Errorf("%w: failed to parse connection URL: %v", ErrInvalidConnectionString, err)
		}
		if _, isSet := parsedURL.User.Password(); isSet {
			return false, ErrEmbeddedCredentials
		}
		if parsedURL.Host == "" && parsedURL.User == nil && (parsedURL.Path == "" || parsedURL.Path == "/") {
			return false, fmt.Errorf("%w: connection URL is incomplete", ErrInvalidConnectionString)
		}
		return true, nil
	}

	for _, pair := range strings.Fields(connStr) {
		parts := strings.SplitN(pair, "=", 2)
		if len(parts) == 2 && strings.EqualFold(strings.TrimSpace(parts[0]), "password") {
			return false, ErrEmbeddedCredentials
		}
	}
	return true, nil
}

func (s *Store) open() (*sql.DB, error) {
	db, err := sql.Open("postgres", s.connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		if strings.Contains(err.Error(), "SSL is not enabled on the server") && !hasParam(s.connStr, "sslmode") {
			return nil, fmt.Errorf("failed to connect to database: %w (hint: try adding ?sslmode=disable to your connection string)", err)
		}
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

func (s *Store) Init() error {
	db, err := s.open()
	if err != nil {
		return err
	}
	if _, err := db.Exec("CREATE SCHEMA IF NOT EXISTS " + constants.AppName); err != nil {
		db.Close()
		return fmt.Errorf("failed to create schema: %w", err)
	}
	s.db = db

	runner, err := s.Runner()
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
	db, err := s.open()
	if err != nil {
		return err
	}
	s.db = db

	runner, err := s.Runner()
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

// Location returns a non-sensitive identifier instead of the connection string.
func (s *Store) Location() string {
	return "postgresql"
}

func (s *Store) Runner() (*migration.Runner, error) {
	if s.db == nil {
		return nil, ErrNotConnected
	}
	subFS, err := fs.Sub(migrations.FS, "postgres")
	if err != nil {
		return nil, fmt.Errorf("failed to access postgres migrations: %w", err)
	}
	return migration.NewRunner(s.db, subFS, migration.DialectPostgres), nil
}

func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	if s.db == nil {
		return "", false, ErrNotConnected
	}
	var value string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM kv_cache WHERE key = $1", key).Scan(&value)
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
		return ErrNotConnected
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO kv_cache (key, value, updated_at) VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`,
		key, value)
	return err
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if s.db == nil {
		return ErrNotConnected
	}
	_, err := s.db.ExecContext(ctx, "DELETE FROM kv_cache WHERE key = $1", key)
	return err
}

func (s *Store) Clear(ctx context.Context) error {
	if s.db == nil {
		return ErrNotConnected
	}
	_, err := s.db.ExecContext(ctx, "DELETE FROM kv_cache")
	return err
}

func (s *Store) Keys(ctx context.Context) ([]string, error) {
	if s.db == nil {
		return nil, ErrNotConnected
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
