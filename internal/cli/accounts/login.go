package accounts

import (
	"errors"
	"strings"

	"github.com/ChandelAnish/NutriTrack/internal/account"
	"github.com/ChandelAnish/NutriTrack/internal/cli"
	"github.com/ChandelAnish/NutriTrack/internal/models"
	"github.com/ChandelAnish/NutriTrack/internal/tui/handlers"
	"github.com/ChandelAnish/NutriTrack/internal/tui/state"
)

type LoginCmd struct {
	Email    string `help:"Account email."`
	Password string `help:"Account password. Prompted for when omitted." env:"NUTRITRACK_PASSWORD"`
	Remember bool   `help:"Remember the password in the OS keyring."`
}

func (c *LoginCmd) Run(ctx *cli.Context) error {
	email := strings.TrimSpace(c.Email)

	var (
		user models.User
		err  error
	)
	switch {
	case email != "" && c.Password != "":
		user, err = ctx.Accounts.SignIn(ctx.Ctx, email, c.Password, c.Remember)
	case email != "":
		user, err = ctx.Accounts.SignInRemembered(ctx.Ctx, email)
		if errors.Is(err, account.ErrNoRememberedPassword) {
			user, err = c.prompt(ctx, email)
		}
	default:
		user, err = c.prompt(ctx, email)
	}
	if err != nil {
		return err
	}

	ctx.Printf("✓ Signed in as %s\n", user.Email)
	return nil
}

func (c *LoginCmd) prompt(ctx *cli.Context, email string) (models.User, error) {
	fm := &state.SignInFormModel{Email: email, Remember: c.Remember}
	if err := handlers.NewSignInForm(fm, ctx.Validator).Run(); err != nil {
		return models.User{}, err
	}
	return ctx.Accounts.SignIn(ctx.Ctx, strings.TrimSpace(fm.Email), fm.Password, fm.Remember)
}
