package plans

import (
	"github.com/ChandelAnish/NutriTrack/internal/cli"
	"github.com/ChandelAnish/NutriTrack/internal/models"
)

// CompleteCmd marks meals as eaten and shows the day's progress. Completion
// is not stored, so every run starts from nothing done.
type CompleteCmd struct {
	Slots []string `arg:"" help:"Meal slots to toggle: breakfast, morning-snack, lunch, afternoon-snack, dinner."`
}

func (c *CompleteCmd) Run(ctx *cli.Context) error {
	slots := make([]models.MealSlot, 0, len(c.Slots))
	for _, s := range c.Slots {
		slot, err := models.ParseMealSlot(s)
		if err != nil {
			return err
		}
		slots = append(slots, slot)
	}

	plan, err := ctx.Reconciler.Load(ctx.Ctx)
	if err != nil {
		return err
	}

	completion := models.NewCompletionState()
	for _, slot := range slots {
		if err := completion.Toggle(slot); err != nil {
			return err
		}
	}
	printPlan(ctx, plan, &completion)
	return nil
}
