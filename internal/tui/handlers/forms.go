package handlers

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/ChandelAnish/NutriTrack/internal/constants"
	"github.com/ChandelAnish/NutriTrack/internal/models"
	"github.com/ChandelAnish/NutriTrack/internal/tui/state"
	"github.com/ChandelAnish/NutriTrack/internal/validation"
)

// NewSignInForm creates the sign-in form
func NewSignInForm(fm *state.SignInFormModel, v *validation.Validator) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Email").
				Value(&fm.Email).
				Validate(func(s string) error {
					return v.ValidateSignIn(s, "x").FirstErr()
				}),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&fm.Password).
				Validate(func(s string) error {
					return v.ValidateSignIn("x", s).FirstErr()
				}),
			huh.NewConfirm().
				Title("Remember password in the OS keyring?").
				Value(&fm.Remember),
		),
	).WithTheme(huh.ThemeDracula())
}

// NewSignUpForm creates the registration form: credentials first, then the
// profile the first meal plan is generated from.
func NewSignUpForm(fm *state.SignUpFormModel, v *validation.Validator) *huh.Form {
	groups := []*huh.Group{
		huh.NewGroup(
			huh.NewInput().
				Title("Email").
				Value(&fm.Email).
				Validate(func(s string) error {
					return v.ValidateEmail(s).FirstErr()
				}),
			huh.NewInput().
				Title("Password").
				Description(fmt.Sprintf("At least %d characters with an uppercase letter, a number and a special character", constants.MinPasswordLength)).
				EchoMode(huh.EchoModePassword).
				Value(&fm.Password).
				Validate(func(s string) error {
					return v.ValidatePassword(s).FirstErr()
				}),
		).Title("Account"),
	}
	groups = append(groups, profileGroups(fm.Profile)...)
	return huh.NewForm(groups...).WithTheme(huh.ThemeDracula())
}

// NewProfileForm creates the profile editor
func NewProfileForm(fm *state.ProfileFormModel) *huh.Form {
	return huh.NewForm(profileGroups(fm)...).WithTheme(huh.ThemeDracula())
}

// NewConfirmForm creates a yes/no confirmation
func NewConfirmForm(fm *state.ConfirmationFormModel, title string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Yes").
				Negative("No").
				Value(&fm.Confirmed),
		),
	).WithTheme(huh.ThemeDracula())
}

func profileGroups(fm *state.ProfileFormModel) []*huh.Group {
	return []*huh.Group{
		huh.NewGroup(
			huh.NewInput().
				Title("Age").
				Value(&fm.Age).
				Validate(func(s string) error {
					_, err := state.ParseAge(s)
					return err
				}),
			huh.NewInput().
				Title("Weight (kg)").
				Value(&fm.Weight).
				Validate(measure("weight")),
			huh.NewInput().
				Title("Target weight (kg)").
				Value(&fm.TargetWeight).
				Validate(measure("target weight")),
			huh.NewInput().
				Title("Height (cm)").
				Value(&fm.Height).
				Validate(measure("height")),
		).Title("Body"),
		huh.NewGroup(
			huh.NewSelect[models.Gender]().
				Title("Gender").
				Options(
					huh.NewOption("Male", models.GenderMale),
					huh.NewOption("Female", models.GenderFemale),
					huh.NewOption("Other", models.GenderOther),
				).
				Value(&fm.Gender),
			huh.NewSelect[string]().
				Title("Daily physical activity").
				Options(huh.NewOptions(withCurrent(constants.ActivityLevels, fm.Activity)...)...).
				Value(&fm.Activity),
		).Title("Lifestyle"),
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Dietary preferences").
				Options(tagOptions(constants.DietaryOptions, fm.Dietary)...).
				Value(&fm.Dietary),
			huh.NewMultiSelect[string]().
				Title("Allergies").
				Options(tagOptions(constants.AllergyOptions, fm.Allergies)...).
				Value(&fm.Allergies),
		).Title("Diet"),
	}
}

func measure(name string) func(string) error {
	return func(s string) error {
		_, err := state.ParseMeasure(name, s)
		return err
	}
}

// withCurrent appends a custom value that is not one of the presets, so
// an existing free-form entry survives the editor.
func withCurrent(presets []string, current string) []string {
	current = strings.TrimSpace(current)
	if current == "" || slices.Contains(presets, current) {
		return presets
	}
	return append(slices.Clone(presets), current)
}

// tagOptions offers the presets plus any custom tags already selected.
func tagOptions(presets, selected []string) []huh.Option[string] {
	values := slices.Clone(presets)
	for _, tag := range selected {
		if !slices.Contains(values, tag) {
			values = append(values, tag)
		}
	}
	opts := make([]huh.Option[string], len(values))
	for i, v := range values {
		opts[i] = huh.NewOption(v, v).Selected(slices.Contains(selected, v))
	}
	return opts
}
