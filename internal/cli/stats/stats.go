package stats

import (
	"fmt"

	"github.com/julianstephens/habitkit/internal/cli"
	"github.com/julianstephens/habitkit/internal/report"
)

type StatsCmd struct {
	Days     int  `help:"Days of completion history to include." default:"${history_days}"`
	Markdown bool `help:"Print raw markdown instead of rendering it."`
}

func (c *StatsCmd) Run(ctx *cli.Context) error {
	if c.Days < 0 {
		return fmt.Errorf("days must not be negative")
	}
	md := report.Markdown(ctx.Store(), c.Days)
	if c.Markdown {
		fmt.Print(md)
		return nil
	}
	fmt.Println(report.Render(md))
	return nil
}

type AchievementsCmd struct {
	Markdown bool `help:"Print raw markdown instead of rendering it."`
}

func (c *AchievementsCmd) Run(ctx *cli.Context) error {
	md := report.Achievements(ctx.Store())
	if c.Markdown {
		fmt.Print(md)
		return nil
	}
	fmt.Println(report.Render(md))
	return nil
}

type LevelCmd struct{}

func (c *LevelCmd) Run(ctx *cli.Context) error {
	fmt.Println(report.Level(ctx.Store().TotalCompletions()))
	return nil
}
