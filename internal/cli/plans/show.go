package plans

import (
	"github.com/ChandelAnish/NutriTrack/internal/cli"
)

// ShowCmd prints the current meal plan, loading it per the plan policy
type ShowCmd struct{}

func (c *ShowCmd) Run(ctx *cli.Context) error {
	plan, err := ctx.Reconciler.Load(ctx.Ctx)
	if err != nil {
		return err
	}
	ctx.Printf("Meal plan (%s)\n\n", ctx.Reconciler.Source())
	printPlan(ctx, plan, nil)
	return nil
}

// RefreshCmd skips the cache and obtains a plan from the server
type RefreshCmd struct{}

func (c *RefreshCmd) Run(ctx *cli.Context) error {
	if err := ctx.Config.RequireServer(); err != nil {
		return err
	}
	plan, err := ctx.Reconciler.Retry(ctx.Ctx)
	if err != nil {
		return err
	}
	ctx.Printf("✓ Meal plan refreshed (%s)\n\n", ctx.Reconciler.Source())
	printPlan(ctx, plan, nil)
	return nil
}

// RegenerateCmd replaces the plan with a newly generated one
type RegenerateCmd struct{}

func (c *RegenerateCmd) Run(ctx *cli.Context) error {
	if err := ctx.Config.RequireServer(); err != nil {
		return err
	}
	ctx.Println("Generating a new meal plan...")
	plan, err := ctx.Reconciler.Regenerate(ctx.Ctx)
	if err != nil {
		return err
	}
	ctx.Println("✓ New meal plan generated")
	ctx.Println()
	printPlan(ctx, plan, nil)
	return nil
}
