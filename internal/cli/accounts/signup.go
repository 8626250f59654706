package accounts

import (
	"github.com/ChandelAnish/NutriTrack/internal/cli"
	"github.com/ChandelAnish/NutriTrack/internal/models"
	"github.com/ChandelAnish/NutriTrack/internal/tui/handlers"
	"github.com/ChandelAnish/NutriTrack/internal/tui/state"
)

type SignupCmd struct {
	Email        string   `help:"Account email."`
	Password     string   `help:"Account password. Prompted for when omitted." env:"NUTRITRACK_PASSWORD"`
	Age          int      `help:"Age in years."`
	Weight       float64  `help:"Current weight in kg."`
	TargetWeight float64  `help:"Target weight in kg." name:"target-weight"`
	Height       float64  `help:"Height in cm."`
	Gender       string   `help:"male, female or other." default:"male"`
	Activity     string   `help:"Daily physical activity." default:"Sedentary"`
	Diet         []string `help:"Dietary preferences (comma-separated)." sep:","`
	Allergies    []string `help:"Allergies (comma-separated)." sep:","`
}

func (c *SignupCmd) Run(ctx *cli.Context) error {
	req, err := c.request()
	if err != nil {
		return err
	}

	if req.Email == "" || req.Password == "" {
		fm := &state.SignUpFormModel{
			Email:    req.Email,
			Password: req.Password,
			Profile:  state.NewProfileFormModel(req.UserProfile),
		}
		if err := handlers.NewSignUpForm(fm, ctx.Validator).Run(); err != nil {
			return err
		}
		profile, err := fm.Profile.Apply(req.UserProfile)
		if err != nil {
			return err
		}
		req = models.SignUpRequest{Password: fm.Password, UserProfile: profile}
		req.Email = fm.Email
	}

	user, err := ctx.Accounts.SignUp(ctx.Ctx, req)
	if err != nil {
		return err
	}
	ctx.Printf("✓ Account created for %s\n", user.Email)
	ctx.Println("  Run 'nutritrack login' to sign in.")
	return nil
}

func (c *SignupCmd) request() (models.SignUpRequest, error) {
	profile := models.DefaultProfile()
	gender, err := models.ParseGender(c.Gender)
	if err != nil {
		return models.SignUpRequest{}, err
	}
	profile.Email = c.Email
	profile.Age = c.Age
	profile.Weight = c.Weight
	profile.TargetWeight = c.TargetWeight
	profile.Height = c.Height
	profile.Gender = gender
	profile.DailyPhysicalActivity = c.Activity
	profile.DietaryPreferences = append(profile.DietaryPreferences, c.Diet...)
	profile.Allergies = append(profile.Allergies, c.Allergies...)
	profile.Normalize()
	return models.SignUpRequest{Password: c.Password, UserProfile: profile}, nil
}
