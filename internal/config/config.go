// Package config resolves runtime settings from NUTRITRACK_* environment
// variables, then applies command-line overrides on top.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/ChandelAnish/NutriTrack/internal/cache/postgres"
	"github.com/ChandelAnish/NutriTrack/internal/constants"
	"github.com/ChandelAnish/NutriTrack/internal/logger"
	"github.com/ChandelAnish/NutriTrack/internal/reconciler"
)

// ErrMissingServerURL is returned when no meal-plan service URL is configured.
var ErrMissingServerURL = errors.New("server URL is not configured (set NUTRITRACK_SERVER_URL or --server-url)")

type Config struct {
	// Cache is a file path, ":memory:" or a PostgreSQL connection string
	Cache string `envconfig:"CACHE" default:"~/.config/nutritrack/nutritrack.db"`

	ServerURL   string        `envconfig:"SERVER_URL"`
	HTTPTimeout time.Duration `envconfig:"HTTP_TIMEOUT" default:"60s"`
	UserAgent   string        `envconfig:"USER_AGENT"`

	PlanPolicy  string `envconfig:"PLAN_POLICY" default:"cache-first"`
	MirrorPlans bool   `envconfig:"MIRROR_PLANS" default:"false"`

	// EmailDomain, when set, restricts sign-up to addresses in that domain
	EmailDomain string `envconfig:"EMAIL_DOMAIN"`

	Debug bool `envconfig:"DEBUG" default:"false"`

	policy reconciler.Policy
}

// Overrides carries command-line values. Empty fields leave the environment
// value in place.
type Overrides struct {
	Cache     string
	ServerURL string
	Policy    string
	Debug     bool
}

// New reads the environment into a Config without validating it.
func New() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(constants.EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}
	return &cfg, nil
}

// Load reads the environment, applies overrides and validates the result.
func Load(o Overrides) (*Config, error) {
	cfg, err := New()
	if err != nil {
		return nil, err
	}
	cfg.Apply(o)
	if err := cfg.Resolve(); err != nil {
		return nil, err
	}
	logger.Debug("Configuration loaded",
		"cache", cfg.CacheLocation(),
		"server_url", cfg.ServerURL,
		"policy", cfg.policy.String(),
		"timeout", cfg.HTTPTimeout,
		"mirror_plans", cfg.MirrorPlans,
	)
	return cfg, nil
}

func (c *Config) Apply(o Overrides) {
	if o.Cache != "" {
		c.Cache = o.Cache
	}
	if o.ServerURL != "" {
		c.ServerURL = o.ServerURL
	}
	if o.Policy != "" {
		c.PlanPolicy = o.Policy
	}
	if o.Debug {
		c.Debug = true
	}
}

// Resolve normalizes paths and checks every setting that can be checked
// without touching the network. A missing server URL is not an error here;
// commands that talk to the service call RequireServer.
func (c *Config) Resolve() error {
	policy, err := reconciler.ParsePolicy(c.PlanPolicy)
	if err != nil {
		return err
	}
	c.policy = policy

	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("http timeout must be positive, got %s", c.HTTPTimeout)
	}

	c.ServerURL = strings.TrimRight(strings.TrimSpace(c.ServerURL), "/")
	if c.ServerURL != "" {
		u, err := url.Parse(c.ServerURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("invalid server URL %q: must be an absolute http(s) URL", c.ServerURL)
		}
	}

	c.EmailDomain = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(c.EmailDomain)), "@")

	if strings.TrimSpace(c.Cache) == "" {
		c.Cache = constants.DefaultConfigPath
	}
	expanded, err := ExpandPath(c.Cache)
	if err != nil {
		return err
	}
	c.Cache = expanded
	return nil
}

// RequireServer fails when no server URL is configured.
func (c *Config) RequireServer() error {
	if c.ServerURL == "" {
		return ErrMissingServerURL
	}
	return nil
}

// Policy returns the parsed plan policy. Valid after Resolve.
func (c *Config) Policy() reconciler.Policy {
	return c.policy
}

// CacheDir is the directory holding the cache file, logs and the lockfile.
// Non-file caches use the default config directory.
func (c *Config) CacheDir() string {
	if c.IsFileCache() {
		return filepath.Dir(c.Cache)
	}
	dir, err := ExpandPath(constants.DefaultConfigPath)
	if err != nil {
		return os.TempDir()
	}
	return filepath.Dir(dir)
}

// IsFileCache reports whether Cache names a sqlite file.
func (c *Config) IsFileCache() bool {
	return c.Cache != constants.MemoryConfigPath && !postgres.IsConnString(c.Cache)
}

// IsDefaultCache reports whether Cache was left at the default location.
func (c *Config) IsDefaultCache() bool {
	def, err := ExpandPath(constants.DefaultConfigPath)
	return err == nil && c.Cache == def
}

// CacheLocation describes the cache without leaking credentials.
func (c *Config) CacheLocation() string {
	if postgres.IsConnString(c.Cache) {
		return "postgresql"
	}
	return c.Cache
}

// ExpandPath replaces a leading "~" with the user's home directory.
func ExpandPath(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
