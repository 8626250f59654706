// Package lock keeps a single interactive session per cache. The lockfile
// holds "pid|executable"; a lock whose process is gone is reclaimed.
package lock

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mitchellh/go-ps"

	"github.com/ChandelAnish/NutriTrack/internal/constants"
	"github.com/ChandelAnish/NutriTrack/internal/logger"
)

var (
	findProcessFunc = ps.FindProcess
	executableFunc  = os.Executable
	getpidFunc      = os.Getpid
)

// ErrLocked is returned when another live session holds the lock.
var ErrLocked = errors.New("another nutritrack session is running")

type Lock struct {
	path string
	pid  int
}

// Path returns the lockfile location for a cache stored in dir.
func Path(dir string) string {
	return filepath.Join(dir, constants.LockfileName)
}

// Acquire takes the lock in dir, reclaiming it if its owner has exited.
func Acquire(dir string) (*Lock, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}
	path := Path(dir)

	if owner, err := readOwner(path); err == nil {
		if isAlive(owner) {
			return nil, fmt.Errorf("%w (pid %d)", ErrLocked, owner.pid)
		}
		logger.Info("Reclaiming stale lock", "pid", owner.pid)
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to remove stale lock: %w", err)
		}
	} else if !os.IsNotExist(err) {
		logger.Warn("Discarding unreadable lockfile", "path", path, "error", err)
		_ = os.Remove(path)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0600)
	if err != nil {
		if os.IsExist(err) {
			return nil, ErrLocked
		}
		return nil, fmt.Errorf("failed to create lockfile: %w", err)
	}
	defer f.Close()

	pid := getpidFunc()
	exe := constants.AppName
	if p, err := executableFunc(); err == nil {
		exe = filepath.Base(p)
	}
	if _, err := fmt.Fprintf(f, "%d|%s", pid, exe); err != nil {
		_ = os.Remove(path)
		return nil, fmt.Errorf("failed to write lockfile: %w", err)
	}
	return &Lock{path: path, pid: pid}, nil
}

// Release removes the lockfile if it still belongs to this process.
func (l *Lock) Release() error {
	if l == nil {
		return nil
	}
	owner, err := readOwner(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if owner.pid != l.pid {
		return nil
	}
	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove lockfile: %w", err)
	}
	return nil
}

// Holder reports the pid of a live session holding the lock in dir.
func Holder(dir string) (int, bool) {
	owner, err := readOwner(Path(dir))
	if err != nil || !isAlive(owner) {
		return 0, false
	}
	return owner.pid, true
}

type owner struct {
	pid        int
	executable string
}

func readOwner(path string) (owner, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return owner{}, err
	}
	parts := strings.SplitN(strings.TrimSpace(string(content)), "|", 2)
	if len(parts) != 2 {
		return owner{}, errors.New("lockfile is malformed")
	}
	pid, err := strconv.Atoi(parts[0])
	if err != nil || pid <= 0 {
		return owner{}, errors.New("invalid process ID in lockfile")
	}
	return owner{pid: pid, executable: parts[1]}, nil
}

// isAlive reports whether the recorded process still runs the same program.
// A recycled PID running something else does not hold the lock.
func isAlive(o owner) bool {
	process, err := findProcessFunc(o.pid)
	if err != nil || process == nil {
		return false
	}
	return strings.HasPrefix(process.Executable(), trimExt(o.executable))
}

func trimExt(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}
