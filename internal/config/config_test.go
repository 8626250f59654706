package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ChandelAnish/NutriTrack/internal/reconciler"
)

func TestNewDefaults(t *testing.T) {
	cfg, err := New()
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	if cfg.HTTPTimeout != 60*time.Second {
		t.Errorf("HTTPTimeout = %s, want 60s", cfg.HTTPTimeout)
	}
	if cfg.PlanPolicy != "cache-first" {
		t.Errorf("PlanPolicy = %q, want cache-first", cfg.PlanPolicy)
	}
	if cfg.MirrorPlans {
		t.Error("MirrorPlans should default to false")
	}
}

func TestNewReadsEnvironment(t *testing.T) {
	t.Setenv("NUTRITRACK_SERVER_URL", "https://api.example.com/")
	t.Setenv("NUTRITRACK_HTTP_TIMEOUT", "5s")
	t.Setenv("NUTRITRACK_PLAN_POLICY", "fetch-then-generate")
	t.Setenv("NUTRITRACK_MIRROR_PLANS", "true")
	t.Setenv("NUTRITRACK_EMAIL_DOMAIN", "@Gmail.com")
	t.Setenv("NUTRITRACK_CACHE", ":memory:")

	cfg, err := Load(Overrides{})
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.ServerURL != "https://api.example.com" {
		t.Errorf("ServerURL = %q, trailing slash should be trimmed", cfg.ServerURL)
	}
	if cfg.HTTPTimeout != 5*time.Second {
		t.Errorf("HTTPTimeout = %s", cfg.HTTPTimeout)
	}
	if cfg.Policy() != reconciler.PolicyFetchThenGenerate {
		t.Errorf("Policy() = %v", cfg.Policy())
	}
	if !cfg.MirrorPlans {
		t.Error("MirrorPlans should be true")
	}
	if cfg.EmailDomain != "gmail.com" {
		t.Errorf("EmailDomain = %q, want gmail.com", cfg.EmailDomain)
	}
	if cfg.IsFileCache() {
		t.Error(":memory: is not a file cache")
	}
}

func TestOverridesWin(t *testing.T) {
	t.Setenv("NUTRITRACK_SERVER_URL", "https://env.example.com")
	t.Setenv("NUTRITRACK_PLAN_POLICY", "fetch-then-generate")

	cfg, err := Load(Overrides{
		Cache:     ":memory:",
		ServerURL: "http://localhost:8000",
		Policy:    "cache-first",
		Debug:     true,
	})
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.ServerURL != "http://localhost:8000" {
		t.Errorf("ServerURL = %q", cfg.ServerURL)
	}
	if cfg.Policy() != reconciler.PolicyCacheFirst {
		t.Errorf("Policy() = %v", cfg.Policy())
	}
	if !cfg.Debug {
		t.Error("Debug override not applied")
	}
}

func TestResolveRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"unknown policy", Config{PlanPolicy: "sometimes", HTTPTimeout: time.Second}},
		{"zero timeout", Config{PlanPolicy: "cache-first"}},
		{"relative url", Config{PlanPolicy: "cache-first", HTTPTimeout: time.Second, ServerURL: "api.example.com"}},
		{"ftp url", Config{PlanPolicy: "cache-first", HTTPTimeout: time.Second, ServerURL: "ftp://example.com"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Resolve(); err == nil {
				t.Error("Resolve() should fail")
			}
		})
	}
}

func TestRequireServer(t *testing.T) {
	cfg := Config{PlanPolicy: "cache-first", HTTPTimeout: time.Second, Cache: ":memory:"}
	if err := cfg.Resolve(); err != nil {
		t.Fatalf("Resolve() failed: %v", err)
	}
	if err := cfg.RequireServer(); !errors.Is(err, ErrMissingServerURL) {
		t.Errorf("RequireServer() = %v, want ErrMissingServerURL", err)
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	tests := []struct {
		in   string
		want string
	}{
		{"~/.config/nutritrack/nutritrack.db", filepath.Join(home, ".config/nutritrack/nutritrack.db")},
		{"~", home},
		{"/tmp/cache.db", "/tmp/cache.db"},
		{"relative/cache.db", "relative/cache.db"},
		{"~other/cache.db", "~other/cache.db"},
	}
	for _, tt := range tests {
		got, err := ExpandPath(tt.in)
		if err != nil {
			t.Fatalf("ExpandPath(%q) failed: %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ExpandPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCacheKinds(t *testing.T) {
	dir := t.TempDir()
	file := &Config{Cache: filepath.Join(dir, "cache.db")}
	if !file.IsFileCache() || file.CacheDir() != dir {
		t.Errorf("file cache: IsFileCache=%v CacheDir=%q", file.IsFileCache(), file.CacheDir())
	}

	pg := &Config{Cache: "postgres://user:secret@db/nutritrack"}
	if pg.IsFileCache() {
		t.Error("postgres cache reported as file")
	}
	if pg.CacheLocation() != "postgresql" {
		t.Errorf("CacheLocation() = %q, must not leak the connection string", pg.CacheLocation())
	}
}
