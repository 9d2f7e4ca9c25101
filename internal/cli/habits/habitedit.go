package habits

import (
	"fmt"
	"strings"

	"github.com/julianstephens/habitkit/internal/cli"
	"github.com/julianstephens/habitkit/internal/constants"
	"github.com/julianstephens/habitkit/internal/models"
	"github.com/julianstephens/habitkit/internal/utils"
)

type HabitEditCmd struct {
	Habit      string  `arg:"" help:"Habit ID, ID prefix or title."`
	Title      *string `help:"New title."`
	Notes      *string `help:"New notes."`
	Category   *string `help:"New category name or ID."`
	Frequency  *string `help:"New frequency."`
	Days       *string `help:"New custom weekdays."`
	Reminder   *string `help:"New reminder time (HH:MM)."`
	NoReminder bool    `help:"Turn the reminder off."`
	Color      *string `help:"New color as #RRGGBB."`
	Icon       *string `help:"New icon name."`
}

func (c *HabitEditCmd) Run(ctx *cli.Context) error {
	s := ctx.Store()
	h, err := cli.FindHabit(s, c.Habit)
	if err != nil {
		return err
	}

	in := cli.HabitInput{Title: h.Title, Frequency: string(h.Frequency)}
	if c.Title != nil {
		in.Title = *c.Title
	}
	if c.Frequency != nil {
		in.Frequency = *c.Frequency
	}
	if c.Days != nil {
		in.Days = *c.Days
	} else if len(h.CustomDays) > 0 {
		in.Days = joinDays(h.CustomDays)
	}
	if c.Reminder != nil {
		in.Reminder = *c.Reminder
	}
	if c.Color != nil {
		in.Color = *c.Color
	}
	if err := cli.ValidateHabitInput(in); err != nil {
		return err
	}

	h.Title = strings.TrimSpace(in.Title)
	h.Frequency, _ = models.ParseFrequency(in.Frequency)
	if in.Days != "" {
		h.CustomDays, _ = cli.ParseWeekdays(in.Days)
	}
	if c.Notes != nil {
		h.Notes = *c.Notes
	}
	if c.Category != nil {
		category, err := cli.FindCategory(s, *c.Category)
		if err != nil {
			return err
		}
		h.CategoryID = category.ID
	}
	if c.Reminder != nil {
		at, _ := utils.ParseTime(*c.Reminder)
		h.ReminderEnabled = true
		h.ReminderTime = &at
	}
	if c.NoReminder {
		h.ReminderEnabled = false
		h.ReminderTime = nil
	}
	if c.Color != nil {
		h.ColorHex = *c.Color
	}
	if c.Icon != nil {
		h.Icon = *c.Icon
	}

	s.UpdateHabit(h)
	fmt.Printf("Updated habit: %s\n", h.Title)
	return nil
}

func joinDays(days []int) string {
	parts := make([]string, len(days))
	for i, d := range days {
		parts[i] = fmt.Sprint(d)
	}
	return strings.Join(parts, ",")
}

type HabitToggleCmd struct {
	Habit string `arg:"" help:"Habit ID, ID prefix or title."`
	Date  string `help:"Date in YYYY-MM-DD format (default: today)."`
}

func (c *HabitToggleCmd) Run(ctx *cli.Context) error {
	s := ctx.Store()
	h, err := cli.FindHabit(s, c.Habit)
	if err != nil {
		return err
	}
	day, err := cli.ParseDate(c.Date, s.Now())
	if err != nil {
		return err
	}

	completed, _ := s.ToggleCompletion(h.ID, day)
	label := day.Format(constants.DateFormat)
	if completed {
		updated, _ := s.Habit(h.ID)
		fmt.Printf("Marked %q done for %s (streak %d)\n", h.Title, label, updated.CurrentStreak(s.Now()))
	} else {
		fmt.Printf("Unmarked %q for %s\n", h.Title, label)
	}
	return nil
}

type HabitArchiveCmd struct {
	Habit string `arg:"" help:"Habit ID, ID prefix or title."`
}

func (c *HabitArchiveCmd) Run(ctx *cli.Context) error {
	s := ctx.Store()
	h, err := cli.FindHabit(s, c.Habit)
	if err != nil {
		return err
	}
	s.ArchiveHabit(h.ID)
	fmt.Printf("Archived habit: %s\n", h.Title)
	return nil
}

type HabitUnarchiveCmd struct {
	Habit string `arg:"" help:"Habit ID, ID prefix or title."`
}

func (c *HabitUnarchiveCmd) Run(ctx *cli.Context) error {
	s := ctx.Store()
	h, err := cli.FindHabit(s, c.Habit)
	if err != nil {
		return err
	}
	s.UnarchiveHabit(h.ID)
	fmt.Printf("Unarchived habit: %s\n", h.Title)
	return nil
}

type HabitDeleteCmd struct {
	Habit string `arg:"" help:"Habit ID, ID prefix or title."`
	Yes   bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *HabitDeleteCmd) Run(ctx *cli.Context) error {
	s := ctx.Store()
	h, err := cli.FindHabit(s, c.Habit)
	if err != nil {
		return err
	}
	if !c.Yes && !cli.Confirm(fmt.Sprintf("Delete %q and its %d completions?", h.Title, len(h.CompletedDates))) {
		fmt.Println("Delete cancelled.")
		return nil
	}
	s.DeleteHabit(h.ID)
	fmt.Printf("Deleted habit: %s\n", h.Title)
	return nil
}
