package profile

import (
	"github.com/ChandelAnish/NutriTrack/internal/cli"
	"github.com/ChandelAnish/NutriTrack/internal/models"
	"github.com/ChandelAnish/NutriTrack/internal/tui/state"
)

// SetCmd changes individual profile fields. Omitted flags keep their value.
type SetCmd struct {
	Age           string   `help:"Age in years."`
	Weight        string   `help:"Current weight in kg."`
	TargetWeight  string   `help:"Target weight in kg." name:"target-weight"`
	Height        string   `help:"Height in cm."`
	Gender        string   `help:"male, female or other."`
	Activity      string   `help:"Daily physical activity."`
	AddDiet       []string `help:"Dietary preferences to add." name:"add-diet" sep:","`
	RemoveDiet    []string `help:"Dietary preferences to remove." name:"remove-diet" sep:","`
	AddAllergy    []string `help:"Allergies to add." name:"add-allergy" sep:","`
	RemoveAllergy []string `help:"Allergies to remove." name:"remove-allergy" sep:","`
}

func (c *SetCmd) Run(ctx *cli.Context) error {
	if _, err := ctx.RequireIdentity(); err != nil {
		return err
	}
	current, _ := ctx.Accounts.Profile(ctx.Ctx)
	updated, err := c.apply(current)
	if err != nil {
		return err
	}
	return save(ctx, updated)
}

func (c *SetCmd) apply(p models.UserProfile) (models.UserProfile, error) {
	var err error
	if c.Age != "" {
		if p.Age, err = state.ParseAge(c.Age); err != nil {
			return p, err
		}
	}
	for _, f := range []struct {
		name  string
		raw   string
		field *float64
	}{
		{"weight", c.Weight, &p.Weight},
		{"target weight", c.TargetWeight, &p.TargetWeight},
		{"height", c.Height, &p.Height},
	} {
		if f.raw == "" {
			continue
		}
		if *f.field, err = state.ParseMeasure(f.name, f.raw); err != nil {
			return p, err
		}
	}
	if c.Gender != "" {
		if p.Gender, err = models.ParseGender(c.Gender); err != nil {
			return p, err
		}
	}
	if c.Activity != "" {
		p.DailyPhysicalActivity = c.Activity
	}
	for _, tag := range c.AddDiet {
		p.AddDietaryPreference(tag)
	}
	for _, tag := range c.RemoveDiet {
		p.RemoveDietaryPreference(tag)
	}
	for _, tag := range c.AddAllergy {
		p.AddAllergy(tag)
	}
	for _, tag := range c.RemoveAllergy {
		p.RemoveAllergy(tag)
	}
	return p, nil
}
