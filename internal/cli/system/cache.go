package system

import (
	"github.com/ChandelAnish/NutriTrack/internal/cli"
	"github.com/ChandelAnish/NutriTrack/internal/tui/handlers"
	"github.com/ChandelAnish/NutriTrack/internal/tui/state"
)

// CacheClearCmd removes every cached record, which also signs the user out
type CacheClearCmd struct {
	Yes bool `help:"Skip the confirmation prompt." short:"y"`
}

func (c *CacheClearCmd) Run(ctx *cli.Context) error {
	if !c.Yes {
		fm := &state.ConfirmationFormModel{}
		if err := handlers.NewConfirmForm(fm, "Clear the local cache? You will be signed out.").Run(); err != nil {
			return err
		}
		if !fm.Confirmed {
			ctx.Println("Cancelled.")
			return nil
		}
	}

	if err := ctx.Records.Clear(ctx.Ctx); err != nil {
		return err
	}
	ctx.Reconciler.Reset()
	ctx.Println("✓ Cache cleared")
	return nil
}

// CacheKeysCmd lists the keys currently stored
type CacheKeysCmd struct{}

func (c *CacheKeysCmd) Run(ctx *cli.Context) error {
	keys, err := ctx.Store.Keys(ctx.Ctx)
	if err != nil {
		return err
	}
	ctx.Printf("Cache: %s\n", ctx.Store.Location())
	if len(keys) == 0 {
		ctx.Println("  (empty)")
		return nil
	}
	for _, k := range keys {
		ctx.Printf("  %s\n", k)
	}
	return nil
}
