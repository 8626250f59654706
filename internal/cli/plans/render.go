package plans

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"

	"github.com/ChandelAnish/NutriTrack/internal/cli"
	"github.com/ChandelAnish/NutriTrack/internal/models"
)

// printPlan writes the plan as plain text. A nil completion hides the
// checkboxes and the progress bar.
func printPlan(ctx *cli.Context, plan models.MealPlan, completion *models.CompletionState) {
	calories, protein, carbs, fats := plan.MacroTotals()
	ctx.Printf("Daily total: %.0f kcal\n", plan.TotalCalories)
	ctx.Printf("Macros:      %.0f kcal, %.0fg protein, %.0fg carbs, %.0fg fats\n", calories, protein, carbs, fats)
	ctx.Println()

	for _, slot := range models.AllMealSlots {
		meal, _ := plan.Meal(slot)
		mark := ""
		if completion != nil {
			mark = "[ ] "
			if completion.Done(slot) {
				mark = "[✓] "
			}
		}
		title := slot.Title()
		if meal.Name != "" {
			title += ": " + meal.Name
		}
		ctx.Printf("%s%s (%.0f kcal)\n", mark, title, meal.Calories)
		for _, food := range meal.Foods {
			ctx.Printf("    %s\n", formatFood(food))
		}
		ctx.Printf("    P %.0fg  C %.0fg  F %.0fg\n", meal.Protein, meal.Carbs, meal.Fats)
	}

	if plan.Hydration != "" {
		ctx.Println()
		ctx.Printf("Hydration: %s\n", plan.Hydration)
	}
	if plan.Notes != "" {
		ctx.Printf("Notes:     %s\n", plan.Notes)
	}

	if completion != nil {
		bar := progress.New(progress.WithDefaultGradient(), progress.WithWidth(30))
		ctx.Println()
		ctx.Printf("Progress: %s %d/%d meals (%.0f%%)\n",
			bar.ViewAs(completion.Progress()/100),
			completion.CompletedCount(), len(models.AllMealSlots), completion.Progress())
	}
}

func formatFood(f models.FoodItem) string {
	var b strings.Builder
	if f.Emoji != "" {
		b.WriteString(f.Emoji + " ")
	}
	b.WriteString(f.Name)
	if f.PortionSize != "" {
		fmt.Fprintf(&b, " (%s)", f.PortionSize)
	}
	return b.String()
}
