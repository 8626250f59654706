package handlers

import (
	"slices"
	"testing"

	"github.com/ChandelAnish/NutriTrack/internal/models"
	"github.com/ChandelAnish/NutriTrack/internal/tui/state"
	"github.com/ChandelAnish/NutriTrack/internal/validation"
)

func TestWithCurrent(t *testing.T) {
	presets := []string{"Sedentary", "Very Active"}

	if got := withCurrent(presets, "Sedentary"); !slices.Equal(got, presets) {
		t.Errorf("withCurrent(preset) = %v", got)
	}
	if got := withCurrent(presets, "  "); !slices.Equal(got, presets) {
		t.Errorf("withCurrent(blank) = %v", got)
	}

	got := withCurrent(presets, "goes to gym")
	if !slices.Equal(got, []string{"Sedentary", "Very Active", "goes to gym"}) {
		t.Errorf("withCurrent(custom) = %v", got)
	}
	if len(presets) != 2 {
		t.Error("presets were modified")
	}
}

func TestTagOptions(t *testing.T) {
	opts := tagOptions([]string{"veg", "keto"}, []string{"keto", "halal"})

	var values []string
	for _, o := range opts {
		values = append(values, o.Value)
	}
	if !slices.Equal(values, []string{"veg", "keto", "halal"}) {
		t.Errorf("option values = %v", values)
	}
}

func TestFormsBuild(t *testing.T) {
	v := validation.New("")
	profile := state.NewProfileFormModel(models.DefaultProfile())

	if NewSignInForm(&state.SignInFormModel{}, v) == nil {
		t.Error("sign-in form is nil")
	}
	if NewSignUpForm(&state.SignUpFormModel{Profile: profile}, v) == nil {
		t.Error("sign-up form is nil")
	}
	if NewProfileForm(profile) == nil {
		t.Error("profile form is nil")
	}
	if NewConfirmForm(&state.ConfirmationFormModel{}, "Sure?") == nil {
		t.Error("confirm form is nil")
	}
}

func TestMeasure(t *testing.T) {
	check := measure("weight")
	if err := check("70"); err != nil {
		t.Errorf("measure(70) = %v", err)
	}
	if err := check("-70"); err == nil {
		t.Error("measure(-70) should fail")
	}
	if err := check("70.5"); err == nil {
		t.Error("measure(70.5) should fail")
	}
}
