package migration

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Dialect selects the bind-parameter style of the target database.
type Dialect int

const (
	// DialectSQLite binds parameters with "?"
	DialectSQLite Dialect = iota
	// DialectPostgres binds parameters with "$1"
	DialectPostgres
)

func (d Dialect) placeholder(n int) string {
	if d == DialectPostgres {
		return "$" + strconv.Itoa(n)
	}
	return "?"
}

// Migration represents a single schema migration
type Migration struct {
	Version int
	Name    string
	SQL     string
}

// Runner applies the NNN_name.sql files of an fs.FS in version order and
// records the applied version in schema_version.
type Runner struct {
	db      *sql.DB
	fs      fs.FS
	dialect Dialect
}

func NewRunner(db *sql.DB, migrationFS fs.FS, dialect Dialect) *Runner {
	return &Runner{
		db:      db,
		fs:      migrationFS,
		dialect: dialect,
	}
}

func (r *Runner) ensureVersionTable(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		)
	`)
	return err
}

// CurrentVersion returns the applied schema version, or 0 for a fresh database.
func (r *Runner) CurrentVersion(ctx context.Context) (int, error) {
	if err := r.ensureVersionTable(ctx); err != nil {
		return 0, fmt.Errorf("failed to ensure schema_version table: %w", err)
	}

	var version int
	err := r.db.QueryRowContext(ctx, "SELECT version FROM schema_version").Scan(&version)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get current version: %w", err)
	}
	return version, nil
}

// Migrations reads and parses the migration files, sorted by version.
func (r *Runner) Migrations() ([]Migration, error) {
	entries, err := fs.ReadDir(r.fs, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations directory: %w", err)
	}

	var migrations []Migration
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}

		prefix, name, ok := strings.Cut(entry.Name(), "_")
		if !ok {
			return nil, fmt.Errorf("invalid migration filename format: %s (expected NNN_name.sql)", entry.Name())
		}
		version, err := strconv.Atoi(prefix)
		if err != nil {
			return nil, fmt.Errorf("invalid version number in filename %s: %w", entry.Name(), err)
		}
		if version < 1 {
			return nil, fmt.Errorf("invalid version number in filename %s: version must be at least 1", entry.Name())
		}

		content, err := fs.ReadFile(r.fs, entry.Name())
		if err != nil {
			return nil, fmt.Errorf("failed to read migration file %s: %w", entry.Name(), err)
		}

		migrations = append(migrations, Migration{
			Version: version,
			Name:    strings.TrimSuffix(name, ".sql"),
			SQL:     string(content),
		})
	}

	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].Version < migrations[j].Version
	})
	for i := 1; i < len(migrations); i++ {
		if migrations[i].Version == migrations[i-1].Version {
			return nil, fmt.Errorf("duplicate migration version %d", migrations[i].Version)
		}
	}

	return migrations, nil
}

// LatestVersion returns the highest migration version available.
func (r *Runner) LatestVersion() (int, error) {
	migrations, err := r.Migrations()
	if err != nil {
		return 0, err
	}
	if len(migrations) == 0 {
		return 0, nil
	}
	return migrations[len(migrations)-1].Version, nil
}

// Apply runs every pending migration, each in its own transaction together
// with the version bump. It returns the number of migrations applied.
func (r *Runner) Apply(ctx context.Context, logFn func(string)) (int, error) {
	if logFn == nil {
		logFn = func(string) {}
	}

	current, err := r.CurrentVersion(ctx)
	if err != nil {
		return 0, err
	}
	migrations, err := r.Migrations()
	if err != nil {
		return 0, fmt.Errorf("failed to read migrations: %w", err)
	}
	if len(migrations) == 0 {
		logFn("No migration files found")
		return 0, nil
	}

	latest := migrations[len(migrations)-1].Version
	if current > latest {
		return 0, newerSchemaError(current, latest)
	}

	var pending []Migration
	for _, m := range migrations {
		if m.Version > current {
			pending = append(pending, m)
		}
	}
	if len(pending) == 0 {
		logFn(fmt.Sprintf("Cache schema is up to date (version %d)", current))
		return 0, nil
	}

	logFn(fmt.Sprintf("Migrating cache schema from version %d to %d", current, latest))
	start := time.Now()
	applied := 0

	for _, m := range pending {
		if err := r.applyOne(ctx, m); err != nil {
			return applied, err
		}
		applied++
		logFn(fmt.Sprintf("  ✓ %03d %s", m.Version, m.Name))
	}

	logFn(fmt.Sprintf("Applied %d migration(s) in %v", applied, time.Since(start).Round(time.Millisecond)))
	return applied, nil
}

func (r *Runner) applyOne(ctx context.Context, m Migration) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction for migration %d: %w", m.Version, err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, m.SQL); err != nil {
		return fmt.Errorf("failed to apply migration %d (%s): %w", m.Version, m.Name, err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM schema_version"); err != nil {
		return fmt.Errorf("failed to clear version in migration %d: %w", m.Version, err)
	}
	insert := "INSERT INTO schema_version (version) VALUES (" + r.dialect.placeholder(1) + ")"
	if _, err := tx.ExecContext(ctx, insert, m.Version); err != nil {
		return fmt.Errorf("failed to set version in migration %d: %w", m.Version, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit migration %d: %w", m.Version, err)
	}
	return nil
}

// Validate checks that the database is not newer than this binary supports.
func (r *Runner) Validate(ctx context.Context) error {
	current, err := r.CurrentVersion(ctx)
	if err != nil {
		return err
	}
	latest, err := r.LatestVersion()
	if err != nil {
		return err
	}
	if current > latest {
		return newerSchemaError(current, latest)
	}
	return nil
}

// Pending reports how many migrations have not been applied yet.
func (r *Runner) Pending(ctx context.Context) (int, error) {
	current, err := r.CurrentVersion(ctx)
	if err != nil {
		return 0, err
	}
	migrations, err := r.Migrations()
	if err != nil {
		return 0, err
	}
	pending := 0
	for _, m := range migrations {
		if m.Version > current {
			pending++
		}
	}
	return pending, nil
}

func newerSchemaError(current, latest int) error {
	return fmt.Errorf("cache schema version (%d) is newer than supported version (%d) - please upgrade nutritrack", current, latest)
}
