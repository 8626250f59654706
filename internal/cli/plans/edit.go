package plans

import (
	"strings"

	"github.com/ChandelAnish/NutriTrack/internal/cli"
)

// EditCmd asks the server to revise the plan from a free-text request
type EditCmd struct {
	Prompt []string `arg:"" help:"What to change, e.g. \"swap lunch for something vegetarian\"."`
}

func (c *EditCmd) Run(ctx *cli.Context) error {
	prompt := strings.TrimSpace(strings.Join(c.Prompt, " "))
	if err := ctx.Validator.ValidatePrompt(prompt).Err(); err != nil {
		return err
	}
	if err := ctx.Config.RequireServer(); err != nil {
		return err
	}

	// The edit revises whatever plan is current, so load it first.
	if _, err := ctx.Reconciler.Load(ctx.Ctx); err != nil {
		return err
	}
	plan, err := ctx.Reconciler.SubmitEdit(ctx.Ctx, prompt)
	if err != nil {
		return err
	}
	ctx.Println("✓ Meal plan updated")
	ctx.Println()
	printPlan(ctx, plan, nil)
	return nil
}
