package system

import (
	"fmt"

	"github.com/ChandelAnish/NutriTrack/internal/cli"
	"github.com/ChandelAnish/NutriTrack/internal/keyring"
	"github.com/ChandelAnish/NutriTrack/internal/lock"
	"github.com/ChandelAnish/NutriTrack/internal/migration"
)

// migrator is implemented by stores with a versioned schema.
type migrator interface {
	Runner() (*migration.Runner, error)
}

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	hasError := false
	reachable := false

	// Check 1: cache reachable
	if err := checkCacheReachable(ctx); err != nil {
		ctx.Printf("❌ Cache reachable: FAIL\n")
		ctx.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		ctx.Printf("✓ Cache reachable: OK (%s)\n", ctx.Store.Location())
		reachable = true
	}

	// Check 2: schema version
	if reachable {
		if err := checkSchemaVersion(ctx); err != nil {
			ctx.Printf("❌ Schema version: FAIL\n")
			ctx.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			ctx.Printf("✓ Schema version: OK\n")
		}
	} else {
		ctx.Printf("⊘ Schema version: SKIPPED (cache not reachable)\n")
	}

	// Check 3: migrations complete
	if reachable {
		if err := checkMigrationsComplete(ctx); err != nil {
			ctx.Printf("❌ Migrations complete: FAIL\n")
			ctx.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			ctx.Printf("✓ Migrations complete: OK\n")
		}
	} else {
		ctx.Printf("⊘ Migrations complete: SKIPPED (cache not reachable)\n")
	}

	// Check 4: signed in (warning only)
	if reachable {
		if email, ok := ctx.Records.Identity(ctx.Ctx); ok {
			ctx.Printf("✓ Signed in: OK (%s)\n", email)
			if _, ok := ctx.Records.Plan(ctx.Ctx); ok {
				ctx.Printf("✓ Cached meal plan: OK\n")
			} else {
				ctx.Printf("⚠ Cached meal plan: WARNING\n")
				ctx.Printf("   none cached; the next 'plan show' contacts the server\n")
			}
		} else {
			ctx.Printf("⚠ Signed in: WARNING\n")
			ctx.Printf("   not signed in; run 'nutritrack login'\n")
		}
	} else {
		ctx.Printf("⊘ Signed in: SKIPPED (cache not reachable)\n")
	}

	// Check 5: server configured
	if err := ctx.Config.RequireServer(); err != nil {
		ctx.Printf("❌ Server configured: FAIL\n")
		ctx.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		ctx.Printf("✓ Server configured: OK (%s)\n", ctx.Config.ServerURL)
	}

	// Check 6: keyring (warning only)
	if keyring.IsAvailable() {
		ctx.Printf("✓ OS keyring: OK\n")
	} else {
		ctx.Printf("⚠ OS keyring: WARNING\n")
		ctx.Printf("   not available; passwords cannot be remembered\n")
	}

	// Check 7: instance lock (warning only)
	if pid, held := lock.Holder(ctx.Config.CacheDir()); held {
		ctx.Printf("⚠ Session lock: WARNING\n")
		ctx.Printf("   held by running session (pid %d)\n", pid)
	} else {
		ctx.Printf("✓ Session lock: OK\n")
	}

	ctx.Println()
	if hasError {
		ctx.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	ctx.Println("All diagnostics passed!")
	return nil
}

func checkCacheReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load cache: %w", err)
	}
	if _, err := ctx.Store.Keys(ctx.Ctx); err != nil {
		return fmt.Errorf("failed to query cache: %w", err)
	}
	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	m, ok := ctx.Store.(migrator)
	if !ok {
		// In-memory caches have no schema
		return nil
	}
	runner, err := m.Runner()
	if err != nil {
		return err
	}
	return runner.Validate(ctx.Ctx)
}

func checkMigrationsComplete(ctx *cli.Context) error {
	m, ok := ctx.Store.(migrator)
	if !ok {
		return nil
	}
	runner, err := m.Runner()
	if err != nil {
		return err
	}

	pending, err := runner.Pending(ctx.Ctx)
	if err != nil {
		return fmt.Errorf("failed to get current schema version: %w", err)
	}
	if pending > 0 {
		return fmt.Errorf("migrations incomplete: %d pending, run 'nutritrack init'", pending)
	}
	return nil
}
