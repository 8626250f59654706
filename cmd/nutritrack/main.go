package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ChandelAnish/NutriTrack/internal/cache"
	"github.com/ChandelAnish/NutriTrack/internal/cache/memory"
	"github.com/ChandelAnish/NutriTrack/internal/cache/postgres"
	"github.com/ChandelAnish/NutriTrack/internal/cache/sqlite"
	"github.com/ChandelAnish/NutriTrack/internal/cli"
	"github.com/ChandelAnish/NutriTrack/internal/cli/accounts"
	"github.com/ChandelAnish/NutriTrack/internal/cli/plans"
	"github.com/ChandelAnish/NutriTrack/internal/cli/profile"
	"github.com/ChandelAnish/NutriTrack/internal/cli/system"
	"github.com/ChandelAnish/NutriTrack/internal/config"
	"github.com/ChandelAnish/NutriTrack/internal/constants"
	apperrors "github.com/ChandelAnish/NutriTrack/internal/errors"
	"github.com/ChandelAnish/NutriTrack/internal/keyring"
	"github.com/ChandelAnish/NutriTrack/internal/logger"
)

var CLI struct {
	Version   kong.VersionFlag
	Config    string `help:"Cache file path, ':memory:' or a PostgreSQL connection string. Connection strings must NOT embed a password; store one with 'nutritrack keyring set' instead." type:"string" env:"NUTRITRACK_CACHE" default:"~/.config/nutritrack/nutritrack.db"`
	ServerURL string `help:"NutriTrack server URL." name:"server-url"`
	Policy    string `help:"How a missing plan is obtained: cache-first or fetch-then-generate."`
	Debug     bool   `help:"Enable debug logging."`
	Stats     bool   `help:"Print a summary of server requests after the command."`

	Init   system.InitCmd     `cmd:"" help:"Initialize the local cache."`
	Doctor system.DoctorCmd   `cmd:"" help:"Run health checks and diagnostics."`
	Tui    system.TuiCmd      `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Signup accounts.SignupCmd `cmd:"" help:"Create an account."`
	Login  accounts.LoginCmd  `cmd:"" help:"Sign in."`
	Logout accounts.LogoutCmd `cmd:"" help:"Sign out and clear cached data."`
	Plan   struct {
		Show       plans.ShowCmd       `cmd:"" help:"Show the meal plan." default:"1"`
		Refresh    plans.RefreshCmd    `cmd:"" help:"Fetch or generate the plan, skipping the cache."`
		Regenerate plans.RegenerateCmd `cmd:"" help:"Generate a new plan from your profile."`
		Edit       plans.EditCmd       `cmd:"" help:"Ask for changes to the plan."`
		Complete   plans.CompleteCmd   `cmd:"" help:"Mark meals as eaten and show progress."`
	} `cmd:"" help:"View and change the meal plan."`
	Profile struct {
		Show profile.ShowCmd `cmd:"" help:"Show your profile." default:"1"`
		Edit profile.EditCmd `cmd:"" help:"Edit your profile interactively."`
		Set  profile.SetCmd  `cmd:"" help:"Change individual profile fields."`
	} `cmd:"" help:"Manage your profile."`
	Cache struct {
		Clear   system.CacheClearCmd   `cmd:"" help:"Remove every cached record."`
		Keys    system.CacheKeysCmd    `cmd:"" help:"List cached keys."`
		Backup  system.CacheBackupCmd  `cmd:"" help:"Snapshot the cache file."`
		Backups system.CacheBackupsCmd `cmd:"" help:"List cache snapshots."`
		Restore system.CacheRestoreCmd `cmd:"" help:"Restore the cache from a snapshot."`
	} `cmd:"" help:"Manage the local cache."`
	Keyring struct {
		Set    system.KeyringSetCmd    `cmd:"" help:"Store a PostgreSQL cache connection string."`
		Get    system.KeyringGetCmd    `cmd:"" help:"Show the stored connection string (masked)."`
		Delete system.KeyringDeleteCmd `cmd:"" help:"Delete the stored connection string."`
		Status system.KeyringStatusCmd `cmd:"" help:"Check OS keyring availability."`
	} `cmd:"" help:"Manage credentials in the OS keyring."`
}

func main() {
	kctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("NutriTrack meal-plan client"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)
	command := topCommand(kctx.Command())

	cfg, err := config.Load(config.Overrides{
		Cache:     CLI.Config,
		ServerURL: CLI.ServerURL,
		Policy:    CLI.Policy,
		Debug:     CLI.Debug,
	})
	if err != nil {
		apperrors.Fatal(err)
	}

	logCfg := logger.Config{Debug: cfg.Debug, ConfigDir: cfg.CacheDir()}
	if command == "tui" {
		logCfg.Stderr = io.Discard
	}
	if err := logger.Init(logCfg); err != nil {
		logger.InitWriter(os.Stderr, cfg.Debug)
		logger.Warn("Log file unavailable, logging to stderr", "error", err)
	}

	store, err := openStore(cfg)
	if err != nil {
		apperrors.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	app, err := cli.NewContext(ctx, cfg, store)
	if err != nil {
		stop()
		apperrors.Fatal(err)
	}

	// init and doctor handle loading themselves; keyring commands must work
	// before any cache exists
	if command != "init" && command != "doctor" && command != "keyring" {
		if err := store.Load(); err != nil {
			stop()
			apperrors.Fatal(err)
		}
	}

	err = kctx.Run(app)
	if cfg.Debug {
		cli.LogRequests(prometheus.DefaultGatherer)
	}
	if CLI.Stats {
		if serr := app.ReportRequests(prometheus.DefaultGatherer); serr != nil {
			logger.Warn("Failed to report requests", "error", serr)
		}
	}
	if cerr := store.Close(); cerr != nil {
		logger.Warn("Failed to close cache", "error", cerr)
	}
	stop()
	apperrors.Fatal(err)
}

// openStore picks the cache backend named by the configuration. A cache
// left at its default location defers to a connection string stored in the
// OS keyring.
func openStore(cfg *config.Config) (cache.Store, error) {
	switch {
	case cfg.Cache == constants.MemoryConfigPath:
		return memory.NewStore(), nil

	case postgres.IsConnString(cfg.Cache):
		if _, err := postgres.ValidateConnString(cfg.Cache); err != nil {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return nil, fmt.Errorf("%w; store the connection string with 'nutritrack keyring set' instead", err)
			}
			return nil, err
		}
		return postgres.New(cfg.Cache), nil

	case cfg.IsDefaultCache():
		if connStr, err := keyring.GetConnectionString(); err == nil {
			logger.Debug("Using cache connection string from OS keyring")
			return postgres.New(connStr), nil
		} else if !errors.Is(err, keyring.ErrNotFound) {
			logger.Debug("OS keyring not consulted", "error", err)
		}
	}
	return sqlite.NewStore(cfg.Cache), nil
}

func topCommand(command string) string {
	if fields := strings.Fields(command); len(fields) > 0 {
		return fields[0]
	}
	return ""
}
