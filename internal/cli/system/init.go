package system

import (
	"fmt"
	"os"

	"github.com/ChandelAnish/NutriTrack/internal/backup"
	"github.com/ChandelAnish/NutriTrack/internal/cache/sqlite"
	"github.com/ChandelAnish/NutriTrack/internal/cli"
)

type InitCmd struct {
	Force bool `help:"Delete the existing cache file before initializing."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if s, ok := ctx.Store.(*sqlite.Store); ok && c.Force {
		path := s.Location()
		if _, err := os.Stat(path); err == nil {
			snap, err := backup.NewManager(path).Create()
			if err != nil {
				return fmt.Errorf("failed to back up existing cache: %w", err)
			}
			ctx.Printf("Backed up existing cache to: %s\n", snap.Path)

			// Close first so the file is not held open while removing it
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing cache: %w", err)
			}
			for _, p := range []string{path, path + "-wal", path + "-shm"} {
				if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
					return fmt.Errorf("failed to delete existing cache: %w", err)
				}
			}
			ctx.Printf("Deleted existing cache at: %s\n", path)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing cache: %w", err)
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	ctx.Printf("Initialized nutritrack cache at: %s\n", ctx.Store.Location())
	return nil
}
