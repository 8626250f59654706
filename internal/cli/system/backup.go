package system

import (
	"errors"
	"fmt"

	"github.com/ChandelAnish/NutriTrack/internal/backup"
	"github.com/ChandelAnish/NutriTrack/internal/cache/sqlite"
	"github.com/ChandelAnish/NutriTrack/internal/cli"
	"github.com/ChandelAnish/NutriTrack/internal/tui/handlers"
	"github.com/ChandelAnish/NutriTrack/internal/tui/state"
)

var errNotFileCache = errors.New("snapshots are only available for a sqlite cache file")

func snapshots(ctx *cli.Context) (*backup.Manager, error) {
	s, ok := ctx.Store.(*sqlite.Store)
	if !ok {
		return nil, errNotFileCache
	}
	return backup.NewManager(s.Location()), nil
}

// CacheBackupCmd takes a snapshot of the cache file
type CacheBackupCmd struct{}

func (c *CacheBackupCmd) Run(ctx *cli.Context) error {
	mgr, err := snapshots(ctx)
	if err != nil {
		return err
	}
	snap, err := mgr.Create()
	if err != nil {
		return fmt.Errorf("backup failed: %w", err)
	}
	ctx.Printf("✓ Snapshot created: %s\n", snap.Name())
	return nil
}

type CacheBackupsCmd struct{}

func (c *CacheBackupsCmd) Run(ctx *cli.Context) error {
	mgr, err := snapshots(ctx)
	if err != nil {
		return err
	}
	snaps, err := mgr.List()
	if err != nil {
		return fmt.Errorf("failed to list snapshots: %w", err)
	}

	if len(snaps) == 0 {
		ctx.Println("No snapshots found.")
		ctx.Printf("Snapshots are stored in: %s\n", mgr.Dir())
		return nil
	}

	ctx.Printf("Snapshots (%d total, keeping most recent %d):\n\n", len(snaps), backup.MaxSnapshots)
	for _, s := range snaps {
		ctx.Printf("  %s  %s  (%.1f KB)\n", s.Timestamp.Format("2006-01-02 15:04:05"), s.Name(), float64(s.Size)/1024.0)
	}
	ctx.Printf("\nSnapshot directory: %s\n", mgr.Dir())
	return nil
}

// CacheRestoreCmd replaces the cache with a snapshot
type CacheRestoreCmd struct {
	Snapshot string `arg:"" help:"Path or file name of the snapshot to restore."`
	Yes      bool   `help:"Skip the confirmation prompt." short:"y"`
}

func (c *CacheRestoreCmd) Run(ctx *cli.Context) error {
	mgr, err := snapshots(ctx)
	if err != nil {
		return err
	}
	path, err := mgr.Resolve(c.Snapshot)
	if err != nil {
		return err
	}

	if !c.Yes {
		fm := &state.ConfirmationFormModel{}
		if err := handlers.NewConfirmForm(fm, "Replace the current cache with this snapshot?").Run(); err != nil {
			return err
		}
		if !fm.Confirmed {
			ctx.Println("Restore cancelled.")
			return nil
		}
	}

	if err := ctx.Store.Close(); err != nil {
		return fmt.Errorf("failed to close cache: %w", err)
	}
	previous, err := mgr.Restore(path)
	if err != nil {
		return err
	}
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to open restored cache: %w", err)
	}
	ctx.Reconciler.Reset()

	if previous.Path != "" {
		ctx.Printf("Previous cache saved as: %s\n", previous.Name())
	}
	ctx.Printf("✓ Cache restored from %s\n", c.Snapshot)
	return nil
}
