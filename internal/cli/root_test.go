package cli_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ChandelAnish/NutriTrack/internal/api"
	"github.com/ChandelAnish/NutriTrack/internal/cache/memory"
	"github.com/ChandelAnish/NutriTrack/internal/cli"
	"github.com/ChandelAnish/NutriTrack/internal/cli/clitest"
	"github.com/ChandelAnish/NutriTrack/internal/config"
	"github.com/ChandelAnish/NutriTrack/internal/reconciler"
)

func offlineConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := &config.Config{Cache: ":memory:", HTTPTimeout: time.Second}
	if err := cfg.Resolve(); err != nil {
		t.Fatal(err)
	}
	return cfg
}

func TestNewContext_OfflineBackend(t *testing.T) {
	app, err := cli.NewContext(context.Background(), offlineConfig(t), memory.NewStore())
	if err != nil {
		t.Fatalf("NewContext failed: %v", err)
	}
	if _, ok := app.Backend.(*api.Client); ok {
		t.Fatal("expected the offline backend without a server URL")
	}

	if _, err := app.Backend.GeneratePlan(app.Ctx, "a@b.com", clitest.SampleProfile()); !errors.Is(err, config.ErrMissingServerURL) {
		t.Errorf("GeneratePlan error = %v, want ErrMissingServerURL", err)
	}
	if err := app.Backend.SavePlan(app.Ctx, "a@b.com", clitest.SamplePlan()); !errors.Is(err, config.ErrMissingServerURL) {
		t.Errorf("SavePlan error = %v, want ErrMissingServerURL", err)
	}
}

func TestNewContext_OfflineServesCachedPlan(t *testing.T) {
	app, err := cli.NewContext(context.Background(), offlineConfig(t), memory.NewStore())
	if err != nil {
		t.Fatal(err)
	}
	clitest.SignIn(t, app, "a@b.com")
	if err := app.Records.SetPlan(app.Ctx, clitest.SamplePlan()); err != nil {
		t.Fatal(err)
	}

	plan, err := app.Reconciler.Load(app.Ctx)
	if err != nil {
		t.Fatalf("Load failed offline with a cached plan: %v", err)
	}
	if plan.Breakfast.Name != "Oats" {
		t.Errorf("Breakfast = %q, want Oats", plan.Breakfast.Name)
	}
	if app.Reconciler.Source() != reconciler.SourceCache {
		t.Errorf("Source = %s, want cache", app.Reconciler.Source())
	}
}

func TestNewContext_WithServerURL(t *testing.T) {
	cfg := offlineConfig(t)
	cfg.ServerURL = "http://localhost:8080"

	app, err := cli.NewContext(context.Background(), cfg, memory.NewStore())
	if err != nil {
		t.Fatalf("NewContext failed: %v", err)
	}
	if _, ok := app.Backend.(*api.Client); !ok {
		t.Errorf("Backend = %T, want *api.Client", app.Backend)
	}
}

func TestRequireIdentity(t *testing.T) {
	app := clitest.NewContext(t, clitest.NewBackend())

	if _, err := app.RequireIdentity(); !errors.Is(err, reconciler.ErrUnauthenticated) {
		t.Errorf("RequireIdentity() error = %v, want ErrUnauthenticated", err)
	}

	clitest.SignIn(t, app, "a@b.com")
	email, err := app.RequireIdentity()
	if err != nil || email != "a@b.com" {
		t.Errorf("RequireIdentity() = %q, %v", email, err)
	}
}

func TestFormatTags(t *testing.T) {
	tests := []struct {
		tags []string
		want string
	}{
		{nil, "none"},
		{[]string{}, "none"},
		{[]string{"veg"}, "veg"},
		{[]string{"veg", "keto"}, "veg, keto"},
	}
	for _, tt := range tests {
		if got := cli.FormatTags(tt.tags); got != tt.want {
			t.Errorf("FormatTags(%v) = %q, want %q", tt.tags, got, tt.want)
		}
	}
}

func TestPrintf_WritesToOut(t *testing.T) {
	app := clitest.NewContext(t, clitest.NewBackend())
	app.Printf("%d meals\n", 5)
	app.Println("done")

	if got := clitest.Output(app); got != "5 meals\ndone\n" {
		t.Errorf("output = %q", got)
	}
}
