package profile

import (
	"github.com/ChandelAnish/NutriTrack/internal/cli"
	"github.com/ChandelAnish/NutriTrack/internal/models"
)

type ShowCmd struct{}

func (c *ShowCmd) Run(ctx *cli.Context) error {
	if _, err := ctx.RequireIdentity(); err != nil {
		return err
	}
	p, ok := ctx.Accounts.Profile(ctx.Ctx)
	if !ok {
		ctx.Println("No profile cached yet; showing defaults.")
	}
	printProfile(ctx, p)
	return nil
}

func printProfile(ctx *cli.Context, p models.UserProfile) {
	ctx.Printf("Email:               %s\n", p.Email)
	ctx.Printf("Age:                 %d\n", p.Age)
	ctx.Printf("Weight:              %g kg\n", p.Weight)
	ctx.Printf("Target weight:       %g kg\n", p.TargetWeight)
	ctx.Printf("Height:              %g cm\n", p.Height)
	ctx.Printf("Gender:              %s\n", p.Gender)
	ctx.Printf("Activity:            %s\n", p.DailyPhysicalActivity)
	ctx.Printf("Dietary preferences: %s\n", cli.FormatTags(p.DietaryPreferences))
	ctx.Printf("Allergies:           %s\n", cli.FormatTags(p.Allergies))
}
