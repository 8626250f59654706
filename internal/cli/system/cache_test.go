package system

import (
	"strings"
	"testing"

	"github.com/ChandelAnish/NutriTrack/internal/cli/clitest"
	"github.com/ChandelAnish/NutriTrack/internal/constants"
	"github.com/ChandelAnish/NutriTrack/internal/reconciler"
)

func TestCacheClearCmd(t *testing.T) {
	ctx := clitest.NewContext(t, clitest.NewBackend())
	clitest.SignIn(t, ctx, "a@b.com")
	if err := ctx.Records.SetPlan(ctx.Ctx, clitest.SamplePlan()); err != nil {
		t.Fatal(err)
	}
	if _, err := ctx.Reconciler.Load(ctx.Ctx); err != nil {
		t.Fatal(err)
	}

	if err := (&CacheClearCmd{Yes: true}).Run(ctx); err != nil {
		t.Fatalf("cache clear failed: %v", err)
	}

	keys, err := ctx.Store.Keys(ctx.Ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(keys) != 0 {
		t.Errorf("keys after clear = %v, want none", keys)
	}
	if _, ok := ctx.Reconciler.Current(); ok {
		t.Error("reconciler still holds a plan after clear")
	}
	if ctx.Reconciler.Source() != reconciler.SourceNone {
		t.Errorf("Source = %s, want none", ctx.Reconciler.Source())
	}
}

func TestCacheKeysCmd(t *testing.T) {
	ctx := clitest.NewContext(t, clitest.NewBackend())

	if err := (&CacheKeysCmd{}).Run(ctx); err != nil {
		t.Fatalf("cache keys failed: %v", err)
	}
	if !strings.Contains(clitest.Output(ctx), "(empty)") {
		t.Errorf("expected an empty listing, got %q", clitest.Output(ctx))
	}

	clitest.SignIn(t, ctx, "a@b.com")
	if err := (&CacheKeysCmd{}).Run(ctx); err != nil {
		t.Fatalf("cache keys failed: %v", err)
	}
	out := clitest.Output(ctx)
	for _, key := range []string{constants.CacheKeyIdentity, constants.CacheKeyProfile} {
		if !strings.Contains(out, key) {
			t.Errorf("listing missing %q:\n%s", key, out)
		}
	}
}
