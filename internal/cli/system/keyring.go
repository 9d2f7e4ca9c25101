package system

import (
	"errors"
	"fmt"

	"github.com/julianstephens/habitkit/internal/cli"
	"github.com/julianstephens/habitkit/internal/keyring"
	"github.com/julianstephens/habitkit/internal/storage"
)

type ConfigCmd struct {
	SetConnection    ConfigSetConnectionCmd    `cmd:"" help:"Store a PostgreSQL connection string in the OS keyring."`
	ShowConnection   ConfigShowConnectionCmd   `cmd:"" help:"Show the stored connection string."`
	DeleteConnection ConfigDeleteConnectionCmd `cmd:"" help:"Remove the stored connection string."`
	Status           ConfigStatusCmd           `cmd:"" help:"Check OS keyring availability."`
}

// ConfigSetConnectionCmd stores a password-free connection string; the
// password itself comes from PGPASSWORD or .pgpass at connect time.
type ConfigSetConnectionCmd struct {
	ConnectionString string `arg:"" help:"PostgreSQL connection string without a password."`
}

func (cmd *ConfigSetConnectionCmd) Run(ctx *cli.Context) error {
	if err := storage.ValidateConnString(cmd.ConnectionString); err != nil {
		if errors.Is(err, storage.ErrEmbeddedCredentials) {
			return errors.New("connection string contains a password; remove it and use PGPASSWORD or a .pgpass file instead")
		}
		return fmt.Errorf("invalid connection string: %w", err)
	}

	if err := keyring.SaveConnectionString(cmd.ConnectionString); err != nil {
		return err
	}

	fmt.Println("✓ Connection string stored successfully in OS keyring")
	fmt.Println("  Run habitkit with --data keyring to use it")
	return nil
}

type ConfigShowConnectionCmd struct{}

func (cmd *ConfigShowConnectionCmd) Run(ctx *cli.Context) error {
	connStr, err := keyring.ConnectionString()
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return errors.New("no connection string found in keyring. Use 'habitkit config set-connection' to store one")
		}
		return fmt.Errorf("failed to retrieve connection string from keyring: %w", err)
	}

	fmt.Println("Connection string retrieved from keyring:")
	fmt.Println(keyring.MaskPassword(connStr))
	return nil
}

type ConfigDeleteConnectionCmd struct{}

func (cmd *ConfigDeleteConnectionCmd) Run(ctx *cli.Context) error {
	if err := keyring.DeleteConnectionString(); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return errors.New("no connection string found in keyring")
		}
		return err
	}
	fmt.Println("✓ Connection string deleted from OS keyring")
	return nil
}

type ConfigStatusCmd struct{}

func (cmd *ConfigStatusCmd) Run(ctx *cli.Context) error {
	if !keyring.IsAvailable() {
		fmt.Println("❌ OS keyring is not available on this system")
		return keyring.ErrKeyringUnavailable
	}
	fmt.Println("✓ OS keyring is available")

	if _, err := keyring.ConnectionString(); err == nil {
		fmt.Println("✓ Connection string is stored in keyring")
	} else if errors.Is(err, keyring.ErrNotFound) {
		fmt.Println("ℹ No connection string stored in keyring")
	}
	return nil
}
