package profile

import (
	"github.com/ChandelAnish/NutriTrack/internal/cli"
	"github.com/ChandelAnish/NutriTrack/internal/models"
	"github.com/ChandelAnish/NutriTrack/internal/tui/handlers"
	"github.com/ChandelAnish/NutriTrack/internal/tui/state"
)

// EditCmd opens the interactive profile editor
type EditCmd struct{}

func (c *EditCmd) Run(ctx *cli.Context) error {
	if _, err := ctx.RequireIdentity(); err != nil {
		return err
	}
	current, _ := ctx.Accounts.Profile(ctx.Ctx)

	fm := state.NewProfileFormModel(current)
	if err := handlers.NewProfileForm(fm).Run(); err != nil {
		return err
	}
	updated, err := fm.Apply(current)
	if err != nil {
		return err
	}
	return save(ctx, updated)
}

// save stores the profile and reports the regenerated plan.
func save(ctx *cli.Context, p models.UserProfile) error {
	ctx.Println("Saving profile and generating a new meal plan...")
	user, plan, err := ctx.Accounts.SaveProfile(ctx.Ctx, p)
	if err != nil {
		return err
	}
	ctx.Println("✓ Profile updated")
	printProfile(ctx, user.Profile())
	ctx.Println()
	ctx.Printf("✓ New meal plan generated (%.0f kcal)\n", plan.TotalCalories)
	return nil
}
