package settings

import (
	"fmt"

	"github.com/julianstephens/habitkit/internal/cli"
	"github.com/julianstephens/habitkit/internal/constants"
)

type SettingsCmd struct {
	Show SettingsShowCmd `cmd:"" help:"Show current settings." default:"1"`
	Set  SettingsSetCmd  `cmd:"" help:"Change a setting."`
}

type SettingsShowCmd struct{}

func (c *SettingsShowCmd) Run(ctx *cli.Context) error {
	s := ctx.Store()
	settings := s.Settings()

	fmt.Println("Current Settings:")
	fmt.Printf("  User Name:   %s\n", settings.UserName)
	fmt.Printf("  Timezone:    %s\n", settings.Timezone)
	fmt.Printf("  Joined:      %s (%s)\n", settings.JoinDate.Format(constants.DateFormat), settings.MembershipDuration(s.Now()))
	fmt.Printf("  Storage:     %s\n", ctx.Provider.GetConfigPath())
	fmt.Printf("  Data Dir:    %s\n", ctx.DataDir)
	return nil
}

type SettingsSetCmd struct {
	Key   string `arg:"" enum:"user_name,timezone" help:"Setting to change (user_name or timezone)."`
	Value string `arg:"" help:"New value."`
}

func (c *SettingsSetCmd) Run(ctx *cli.Context) error {
	s := ctx.Store()
	settings := s.Settings()
	if err := settings.SetField(c.Key, c.Value); err != nil {
		return err
	}
	s.SaveSettings(settings)
	fmt.Printf("Set %s to %s\n", c.Key, c.Value)
	return nil
}
