package system

import (
	"fmt"

	"github.com/julianstephens/habitkit/internal/cli"
	"github.com/julianstephens/habitkit/internal/store"
)

type InitCmd struct {
	Sample bool `help:"Seed sample habits when no habits exist."`
	Force  bool `help:"Reset existing habits and categories (a backup is taken first)."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if err := ctx.Provider.Init(); err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	var opts []store.Option
	if c.Sample {
		opts = append(opts, store.WithSampleData())
	}
	s := ctx.Store(opts...)

	if c.Force && s.HabitCount() > 0 {
		ctx.PerformAutomaticBackup()
		s.ResetAllData()
		fmt.Println("Reset existing habit data.")
		if c.Sample {
			s.LoadSampleData()
		}
	}

	// persist the defaulted join date on first run
	s.SaveSettings(s.Settings())

	fmt.Printf("Initialized habitkit storage at: %s\n", ctx.Provider.GetConfigPath())
	fmt.Printf("  %d habits, %d categories\n", s.HabitCount(), s.CategoryCount())
	return nil
}
