package profile

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/ChandelAnish/NutriTrack/internal/api"
	"github.com/ChandelAnish/NutriTrack/internal/cli/clitest"
	"github.com/ChandelAnish/NutriTrack/internal/models"
	"github.com/ChandelAnish/NutriTrack/internal/reconciler"
)

func TestShowCmd(t *testing.T) {
	ctx := clitest.NewContext(t, clitest.NewBackend())
	clitest.SignIn(t, ctx, "a@b.com")

	if err := (&ShowCmd{}).Run(ctx); err != nil {
		t.Fatalf("show failed: %v", err)
	}
	out := clitest.Output(ctx)
	for _, want := range []string{"a@b.com", "80 kg", "180 cm", "Dietary preferences: veg", "Allergies:           none"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestShowCmd_Unauthenticated(t *testing.T) {
	ctx := clitest.NewContext(t, clitest.NewBackend())

	if err := (&ShowCmd{}).Run(ctx); !errors.Is(err, reconciler.ErrUnauthenticated) {
		t.Errorf("error = %v, want ErrUnauthenticated", err)
	}
}

func TestSetCmd_SavesAndRegenerates(t *testing.T) {
	backend := clitest.NewBackend()
	ctx := clitest.NewContext(t, backend)
	clitest.SignIn(t, ctx, "a@b.com")

	cmd := &SetCmd{
		Weight:     "78",
		Activity:   "Very Active",
		AddDiet:    []string{"keto"},
		RemoveDiet: []string{"veg"},
		AddAllergy: []string{"nuts"},
	}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	if n := backend.Calls(api.OpEditUser); n != 1 {
		t.Errorf("edit user called %d times, want 1", n)
	}
	if n := backend.Calls(api.OpGeneratePlan); n != 1 {
		t.Errorf("generate called %d times, want 1", n)
	}

	sent := backend.LastProfile
	if sent.Weight != 78 || sent.DailyPhysicalActivity != "Very Active" {
		t.Errorf("sent profile = %+v", sent)
	}
	if !slices.Equal(sent.DietaryPreferences, []string{"keto"}) {
		t.Errorf("DietaryPreferences = %v, want [keto]", sent.DietaryPreferences)
	}
	if !slices.Equal(sent.Allergies, []string{"nuts"}) {
		t.Errorf("Allergies = %v, want [nuts]", sent.Allergies)
	}
	if sent.Height != 180 {
		t.Errorf("Height = %v, omitted flags must keep their value", sent.Height)
	}

	cached, ok := ctx.Records.Profile(ctx.Ctx)
	if !ok || cached.Weight != 78 {
		t.Errorf("cached profile = %+v, %v", cached, ok)
	}
	if _, ok := ctx.Records.Plan(ctx.Ctx); !ok {
		t.Error("regenerated plan was not cached")
	}
}

func TestSetCmd_InvalidInput(t *testing.T) {
	tests := []struct {
		name string
		cmd  SetCmd
	}{
		{"non-numeric age", SetCmd{Age: "thirty"}},
		{"negative weight", SetCmd{Weight: "-1"}},
		{"fractional weight", SetCmd{Weight: "78.5"}},
		{"bad gender", SetCmd{Gender: "robot"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := clitest.NewBackend()
			ctx := clitest.NewContext(t, backend)
			clitest.SignIn(t, ctx, "a@b.com")

			if err := tt.cmd.Run(ctx); err == nil {
				t.Fatal("expected an error")
			}
			if backend.Total() != 0 {
				t.Errorf("backend called %d times, want 0", backend.Total())
			}
		})
	}
}

func TestSetCmd_Apply(t *testing.T) {
	base := models.DefaultProfile()
	base.DietaryPreferences = []string{"veg"}

	got, err := (&SetCmd{Age: "41", Gender: "Female", AddDiet: []string{"veg", " vegan "}}).apply(base)
	if err != nil {
		t.Fatal(err)
	}
	if got.Age != 41 || got.Gender != models.GenderFemale {
		t.Errorf("apply() = %+v", got)
	}
	if !slices.Equal(got.DietaryPreferences, []string{"veg", "vegan"}) {
		t.Errorf("DietaryPreferences = %v, want [veg vegan]", got.DietaryPreferences)
	}
}
