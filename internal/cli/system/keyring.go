package system

import (
	"errors"
	"fmt"

	"github.com/ChandelAnish/NutriTrack/internal/cache/postgres"
	"github.com/ChandelAnish/NutriTrack/internal/cli"
	"github.com/ChandelAnish/NutriTrack/internal/keyring"
)

// KeyringSetCmd stores a PostgreSQL cache connection string in the OS keyring
type KeyringSetCmd struct {
	ConnectionString string `arg:"" help:"PostgreSQL connection string to store in keyring"`
}

func (cmd *KeyringSetCmd) Run(ctx *cli.Context) error {
	if !postgres.IsConnString(cmd.ConnectionString) {
		return errors.New("connection string must be a valid PostgreSQL connection string")
	}

	if _, err := postgres.ValidateConnString(cmd.ConnectionString); err != nil {
		if !errors.Is(err, postgres.ErrEmbeddedCredentials) {
			return fmt.Errorf("invalid connection string: %w", err)
		}
		// The keyring is the one place a password may live
		ctx.Println("⚠️  Connection string contains a password; it will be stored in the encrypted OS keyring.")
	}

	if err := keyring.SetConnectionString(cmd.ConnectionString); err != nil {
		return fmt.Errorf("failed to store connection string in keyring: %w", err)
	}

	ctx.Println("✓ Connection string stored successfully in OS keyring")
	ctx.Println("  nutritrack will use it whenever --config is left at its default")
	return nil
}

// KeyringGetCmd prints the stored connection string with the password masked
type KeyringGetCmd struct{}

func (cmd *KeyringGetCmd) Run(ctx *cli.Context) error {
	connStr, err := keyring.GetConnectionString()
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return errors.New("no connection string found in keyring. Use 'nutritrack keyring set' to store one")
		}
		return fmt.Errorf("failed to retrieve connection string from keyring: %w", err)
	}

	ctx.Println("Connection string retrieved from keyring:")
	ctx.Println(keyring.MaskPassword(connStr))
	return nil
}

// KeyringDeleteCmd removes the stored connection string
type KeyringDeleteCmd struct{}

func (cmd *KeyringDeleteCmd) Run(ctx *cli.Context) error {
	if err := keyring.DeleteConnectionString(); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return errors.New("no connection string found in keyring")
		}
		return fmt.Errorf("failed to delete connection string from keyring: %w", err)
	}

	ctx.Println("✓ Connection string deleted from OS keyring")
	return nil
}

// KeyringStatusCmd checks the availability of the OS keyring
type KeyringStatusCmd struct{}

func (cmd *KeyringStatusCmd) Run(ctx *cli.Context) error {
	if !keyring.IsAvailable() {
		ctx.Println("❌ OS keyring is not available on this system")
		return keyring.ErrKeyringUnavailable
	}
	ctx.Println("✓ OS keyring is available")

	if _, err := keyring.GetConnectionString(); err == nil {
		ctx.Println("✓ Connection string is stored in keyring")
	} else if errors.Is(err, keyring.ErrNotFound) {
		ctx.Println("ℹ No connection string stored in keyring")
	}

	if email, ok := ctx.Records.Identity(ctx.Ctx); ok {
		if _, err := keyring.GetPassword(email); err == nil {
			ctx.Printf("✓ Password remembered for %s\n", email)
		} else if errors.Is(err, keyring.ErrNotFound) {
			ctx.Printf("ℹ No password remembered for %s\n", email)
		}
	}
	return nil
}
