package accounts

import (
	"github.com/ChandelAnish/NutriTrack/internal/cli"
	"github.com/ChandelAnish/NutriTrack/internal/tui/handlers"
	"github.com/ChandelAnish/NutriTrack/internal/tui/state"
)

type LogoutCmd struct {
	Yes bool `help:"Skip the confirmation prompt." short:"y"`
}

func (c *LogoutCmd) Run(ctx *cli.Context) error {
	email, ok := ctx.Accounts.Identity(ctx.Ctx)
	if !ok {
		ctx.Println("Not signed in.")
		return nil
	}

	if !c.Yes {
		fm := &state.ConfirmationFormModel{}
		if err := handlers.NewConfirmForm(fm, "Sign out of "+email+"? Cached data will be removed.").Run(); err != nil {
			return err
		}
		if !fm.Confirmed {
			ctx.Println("Sign out cancelled.")
			return nil
		}
	}

	if err := ctx.Accounts.SignOut(ctx.Ctx); err != nil {
		return err
	}
	ctx.Printf("✓ Signed out of %s\n", email)
	return nil
}
