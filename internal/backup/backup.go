// Package backup keeps rotated snapshots of a sqlite cache file next to it.
package backup

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/ChandelAnish/NutriTrack/internal/logger"
)

const (
	// MaxSnapshots is how many snapshots are kept after a new one is taken
	MaxSnapshots = 5
	DirName      = "backups"
	FilePrefix   = "nutritrack-cache-"
	FileSuffix   = ".db"

	timestampFormat = "20060102-150405"
)

// ErrNoCache is returned when there is no cache file to snapshot.
var ErrNoCache = errors.New("no cache file to back up")

// Snapshot describes one stored copy of the cache
type Snapshot struct {
	Path      string
	Timestamp time.Time
	Size      int64
}

func (s Snapshot) Name() string {
	return filepath.Base(s.Path)
}

type Manager struct {
	cachePath string
	dir       string
	now       func() time.Time
}

// NewManager returns a manager storing snapshots of cachePath in a
// "backups" directory beside it.
func NewManager(cachePath string) *Manager {
	return &Manager{
		cachePath: cachePath,
		dir:       filepath.Join(filepath.Dir(cachePath), DirName),
		now:       time.Now,
	}
}

func (m *Manager) Dir() string {
	return m.dir
}

// Create snapshots the cache and drops the oldest snapshots beyond
// MaxSnapshots.
func (m *Manager) Create() (Snapshot, error) {
	snap, err := m.create()
	if err != nil {
		return Snapshot{}, err
	}
	if err := m.rotate(); err != nil {
		logger.Warn("Failed to rotate cache snapshots", "error", err)
	}
	return snap, nil
}

func (m *Manager) create() (Snapshot, error) {
	if _, err := os.Stat(m.cachePath); os.IsNotExist(err) {
		return Snapshot{}, ErrNoCache
	}
	if err := os.MkdirAll(m.dir, 0700); err != nil {
		return Snapshot{}, fmt.Errorf("failed to create backup directory: %w", err)
	}

	ts := m.now()
	path, err := m.freePath(ts)
	if err != nil {
		return Snapshot{}, err
	}
	if err := vacuumInto(m.cachePath, path); err != nil {
		return Snapshot{}, fmt.Errorf("failed to back up cache: %w", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return Snapshot{}, err
	}
	logger.Info("Cache snapshot created", "path", path)
	return Snapshot{Path: path, Timestamp: ts.Truncate(time.Second), Size: info.Size()}, nil
}

// freePath picks a file name for ts, adding a counter when a snapshot
// was already taken within the same second.
func (m *Manager) freePath(ts time.Time) (string, error) {
	base := FilePrefix + ts.Format(timestampFormat)
	path := filepath.Join(m.dir, base+FileSuffix)
	for n := 1; ; n++ {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return path, nil
		}
		if n > 100 {
			return "", fmt.Errorf("failed to generate unique snapshot name")
		}
		path = filepath.Join(m.dir, fmt.Sprintf("%s-%d%s", base, n, FileSuffix))
	}
}

// List returns the stored snapshots, newest first.
func (m *Manager) List() ([]Snapshot, error) {
	entries, err := os.ReadDir(m.dir)
	if os.IsNotExist(err) {
		return []Snapshot{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	snaps := []Snapshot{}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, FilePrefix) || !strings.HasSuffix(name, FileSuffix) {
			continue
		}
		ts, ok := parseTimestamp(strings.TrimSuffix(strings.TrimPrefix(name, FilePrefix), FileSuffix))
		if !ok {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		snaps = append(snaps, Snapshot{
			Path:      filepath.Join(m.dir, name),
			Timestamp: ts,
			Size:      info.Size(),
		})
	}

	sort.SliceStable(snaps, func(i, j int) bool {
		if snaps[i].Timestamp.Equal(snaps[j].Timestamp) {
			return snaps[i].Path > snaps[j].Path
		}
		return snaps[i].Timestamp.After(snaps[j].Timestamp)
	})
	return snaps, nil
}

// parseTimestamp reads "20060102-150405" with an optional "-N" counter.
func parseTimestamp(s string) (time.Time, bool) {
	if len(s) > len(timestampFormat) && s[len(timestampFormat)] == '-' {
		s = s[:len(timestampFormat)]
	}
	ts, err := time.ParseInLocation(timestampFormat, s, time.Local)
	return ts, err == nil
}

func (m *Manager) rotate() error {
	snaps, err := m.List()
	if err != nil {
		return err
	}
	for i := MaxSnapshots; i < len(snaps); i++ {
		if err := os.Remove(snaps[i].Path); err != nil {
			return fmt.Errorf("failed to remove old snapshot %s: %w", snaps[i].Name(), err)
		}
	}
	return nil
}

// Resolve finds a snapshot by path or by its file name in Dir.
func (m *Manager) Resolve(name string) (string, error) {
	candidates := []string{name}
	if !filepath.IsAbs(name) {
		candidates = append(candidates, filepath.Join(m.dir, name))
	}
	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return filepath.Abs(c)
		}
	}
	return "", fmt.Errorf("snapshot not found: %s", name)
}

// Restore replaces the cache file with the snapshot at path. The current
// cache, if any, is snapshotted first and that snapshot is returned. The
// cache must be closed by the caller.
func (m *Manager) Restore(path string) (Snapshot, error) {
	if err := verify(path); err != nil {
		return Snapshot{}, fmt.Errorf("snapshot is corrupted or not a cache: %w", err)
	}

	var previous Snapshot
	if _, err := os.Stat(m.cachePath); err == nil {
		// Not rotated, so restoring never drops the snapshot being restored
		if previous, err = m.create(); err != nil {
			return Snapshot{}, fmt.Errorf("failed to back up current cache before restore: %w", err)
		}
	}

	tmp := m.cachePath + ".restore.tmp"
	if err := copyFile(path, tmp); err != nil {
		return Snapshot{}, fmt.Errorf("failed to copy snapshot: %w", err)
	}
	if err := os.Rename(tmp, m.cachePath); err != nil {
		_ = os.Remove(tmp)
		return Snapshot{}, fmt.Errorf("failed to restore cache: %w", err)
	}
	for _, p := range []string{m.cachePath + "-wal", m.cachePath + "-shm"} {
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			logger.Warn("Failed to remove stale sqlite file", "path", p, "error", err)
		}
	}
	logger.Info("Cache restored", "from", path)
	return previous, nil
}

// vacuumInto writes a compacted copy of src to dst, falling back to a plain
// file copy when VACUUM INTO is unsupported.
func vacuumInto(src, dst string) error {
	db, err := sql.Open("sqlite", src)
	if err != nil {
		return fmt.Errorf("failed to open cache: %w", err)
	}
	defer db.Close()

	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master").Scan(&n); err != nil {
		return fmt.Errorf("cache appears to be corrupted: %w", err)
	}
	if _, err := db.Exec("VACUUM INTO ?", dst); err != nil {
		logger.Debug("VACUUM INTO failed, copying file", "error", err)
		return copyFile(src, dst)
	}
	return nil
}

// verify checks that path is a sqlite file holding the cache table.
func verify(path string) error {
	if _, err := os.Stat(path); err != nil {
		return err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return err
	}
	defer db.Close()

	var n int
	err = db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'kv_cache'").Scan(&n)
	if err != nil {
		return err
	}
	if n == 0 {
		return errors.New("no cache table")
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := out.ReadFrom(in); err != nil {
		return err
	}
	return out.Sync()
}
