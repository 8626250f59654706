package accounts

import (
	"strings"
	"testing"

	"github.com/ChandelAnish/NutriTrack/internal/api"
	"github.com/ChandelAnish/NutriTrack/internal/cli/clitest"
	"github.com/ChandelAnish/NutriTrack/internal/keyring"
)

func TestLoginCmd_SeedsCache(t *testing.T) {
	backend := clitest.NewBackend()
	ctx := clitest.NewContext(t, backend)

	if err := (&LoginCmd{Email: "a@b.com", Password: "Secret1!"}).Run(ctx); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if email, ok := ctx.Records.Identity(ctx.Ctx); !ok || email != "a@b.com" {
		t.Errorf("cached identity = %q, %v", email, ok)
	}
	if _, ok := ctx.Records.Profile(ctx.Ctx); !ok {
		t.Error("profile was not cached")
	}
	if _, err := keyring.GetPassword("a@b.com"); err == nil {
		t.Error("password remembered without --remember")
	}
	if !strings.Contains(clitest.Output(ctx), "✓ Signed in as a@b.com") {
		t.Errorf("unexpected output: %q", clitest.Output(ctx))
	}
}

func TestLoginCmd_RememberedPassword(t *testing.T) {
	backend := clitest.NewBackend()
	ctx := clitest.NewContext(t, backend)

	if err := (&LoginCmd{Email: "a@b.com", Password: "Secret1!", Remember: true}).Run(ctx); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if err := ctx.Records.Clear(ctx.Ctx); err != nil {
		t.Fatal(err)
	}

	// Only the email: the keyring supplies the password
	if err := (&LoginCmd{Email: "a@b.com"}).Run(ctx); err != nil {
		t.Fatalf("remembered login failed: %v", err)
	}
	if n := backend.Calls(api.OpLogin); n != 2 {
		t.Errorf("login called %d times, want 2", n)
	}
	if _, ok := ctx.Records.Identity(ctx.Ctx); !ok {
		t.Error("identity not cached after remembered login")
	}
}

func TestLoginCmd_BackendError(t *testing.T) {
	backend := clitest.NewBackend()
	backend.Err = api.ErrNotFound
	ctx := clitest.NewContext(t, backend)

	if err := (&LoginCmd{Email: "a@b.com", Password: "wrong"}).Run(ctx); err == nil {
		t.Fatal("expected login to fail")
	}
	if _, ok := ctx.Records.Identity(ctx.Ctx); ok {
		t.Error("identity cached after a failed login")
	}
}

func TestLogoutCmd_ClearsCache(t *testing.T) {
	ctx := clitest.NewContext(t, clitest.NewBackend())
	clitest.SignIn(t, ctx, "a@b.com")
	if err := ctx.Records.SetPlan(ctx.Ctx, clitest.SamplePlan()); err != nil {
		t.Fatal(err)
	}

	if err := (&LogoutCmd{Yes: true}).Run(ctx); err != nil {
		t.Fatalf("logout failed: %v", err)
	}

	keys, err := ctx.Store.Keys(ctx.Ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(keys) != 0 {
		t.Errorf("keys after logout = %v, want none", keys)
	}
	if !strings.Contains(clitest.Output(ctx), "✓ Signed out of a@b.com") {
		t.Errorf("unexpected output: %q", clitest.Output(ctx))
	}
}

func TestLogoutCmd_NotSignedIn(t *testing.T) {
	ctx := clitest.NewContext(t, clitest.NewBackend())

	if err := (&LogoutCmd{}).Run(ctx); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if !strings.Contains(clitest.Output(ctx), "Not signed in.") {
		t.Errorf("unexpected output: %q", clitest.Output(ctx))
	}
}

func TestSignupCmd_WithFlags(t *testing.T) {
	backend := clitest.NewBackend()
	ctx := clitest.NewContext(t, backend)

	cmd := &SignupCmd{
		Email:     "new@b.com",
		Password:  "Secret1!",
		Age:       25,
		Weight:    60,
		Height:    165,
		Gender:    "female",
		Activity:  "Lightly Active",
		Diet:      []string{"vegan", "vegan"},
		Allergies: []string{"soy"},
	}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("signup failed: %v", err)
	}
	if n := backend.Calls(api.OpRegister); n != 1 {
		t.Errorf("register called %d times, want 1", n)
	}
	if _, ok := ctx.Records.Identity(ctx.Ctx); ok {
		t.Error("signup must not sign in")
	}
	if !strings.Contains(clitest.Output(ctx), "✓ Account created for new@b.com") {
		t.Errorf("unexpected output: %q", clitest.Output(ctx))
	}
}

func TestSignupCmd_WeakPassword(t *testing.T) {
	backend := clitest.NewBackend()
	ctx := clitest.NewContext(t, backend)

	cmd := &SignupCmd{Email: "new@b.com", Password: "weak", Gender: "male", Activity: "Sedentary"}
	if err := cmd.Run(ctx); err == nil {
		t.Fatal("expected a validation error")
	}
	if backend.Total() != 0 {
		t.Error("invalid sign-up must not reach the server")
	}
}

func TestSignupCmd_Request(t *testing.T) {
	req, err := (&SignupCmd{Email: " x@y.com ", Gender: "Other", Activity: "", Diet: []string{" keto "}}).request()
	if err != nil {
		t.Fatal(err)
	}
	if req.Email != "x@y.com" || req.Gender != "other" {
		t.Errorf("request() = %+v", req)
	}
	if req.DailyPhysicalActivity != "Sedentary" {
		t.Errorf("activity = %q, want the default", req.DailyPhysicalActivity)
	}
	if len(req.DietaryPreferences) != 1 || req.DietaryPreferences[0] != "keto" {
		t.Errorf("DietaryPreferences = %v", req.DietaryPreferences)
	}
}

func TestSignupCmd_InvalidGender(t *testing.T) {
	if _, err := (&SignupCmd{Gender: "robot"}).request(); err == nil {
		t.Error("expected an invalid gender error")
	}
}
