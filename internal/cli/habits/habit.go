package habits

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/habitkit/internal/cli"
	"github.com/julianstephens/habitkit/internal/constants"
	"github.com/julianstephens/habitkit/internal/models"
	"github.com/julianstephens/habitkit/internal/store"
	"github.com/julianstephens/habitkit/internal/utils"
)

type HabitCmd struct {
	Add       HabitAddCmd       `cmd:"" help:"Add a new habit."`
	Edit      HabitEditCmd      `cmd:"" help:"Edit an existing habit."`
	List      HabitListCmd      `cmd:"" help:"List habits." default:"1"`
	Show      HabitShowCmd      `cmd:"" help:"Show a habit with its statistics."`
	Toggle    HabitToggleCmd    `cmd:"" help:"Toggle a habit's completion for a day."`
	Archive   HabitArchiveCmd   `cmd:"" help:"Archive a habit."`
	Unarchive HabitUnarchiveCmd `cmd:"" help:"Restore an archived habit."`
	Delete    HabitDeleteCmd    `cmd:"" help:"Delete a habit permanently."`
}

type HabitAddCmd struct {
	Title     string `arg:"" help:"Habit title."`
	Notes     string `short:"n" help:"Free-form notes."`
	Category  string `short:"c" help:"Category name or ID (default: first category)."`
	Frequency string `short:"f" help:"Daily, Weekly, Weekdays, Weekends or Custom." default:"Daily"`
	Days      string `short:"d" help:"Comma-separated weekdays for Custom frequency (names or 1=Sun..7=Sat)."`
	Reminder  string `short:"r" help:"Daily reminder time (HH:MM)."`
	Color     string `help:"Color as #RRGGBB." default:"${habit_color}"`
	Icon      string `help:"Icon name." default:"${habit_icon}"`
}

func (c *HabitAddCmd) Validate() error {
	return cli.ValidateHabitInput(cli.HabitInput{
		Title:     c.Title,
		Frequency: c.Frequency,
		Days:      c.Days,
		Reminder:  c.Reminder,
		Color:     c.Color,
	})
}

func (c *HabitAddCmd) Run(ctx *cli.Context) error {
	if err := c.Validate(); err != nil {
		return err
	}
	s := ctx.Store()

	category, err := resolveCategory(s, c.Category)
	if err != nil {
		return err
	}
	freq, _ := models.ParseFrequency(c.Frequency)

	opts := []models.HabitOption{
		models.WithNotes(c.Notes),
		models.WithFrequency(freq),
		models.WithCreatedAt(s.Now()),
	}
	if c.Color != "" {
		opts = append(opts, models.WithColor(c.Color))
	}
	if c.Icon != "" {
		opts = append(opts, models.WithIcon(c.Icon))
	}
	if c.Days != "" {
		days, _ := cli.ParseWeekdays(c.Days)
		opts = append(opts, models.WithCustomDays(days...))
	}
	if c.Reminder != "" {
		at, _ := utils.ParseTime(c.Reminder)
		opts = append(opts, models.WithReminder(at))
	}

	habit := models.NewHabit(strings.TrimSpace(c.Title), category.ID, opts...)
	s.AddHabit(habit)

	fmt.Printf("Added habit: %s (ID: %s)\n", habit.Title, cli.ShortID(habit.ID))
	return nil
}

// resolveCategory falls back to the first category when query is empty.
func resolveCategory(s *store.HabitStore, query string) (models.Category, error) {
	if query != "" {
		return cli.FindCategory(s, query)
	}
	categories := s.Categories()
	if len(categories) == 0 {
		return models.Category{}, fmt.Errorf("no categories exist, add one with 'habitkit category add'")
	}
	return categories[0], nil
}

type HabitListCmd struct {
	Filter   string `short:"f" help:"All, Active, Archived, Due Today, Completed Today or Incomplete Today." default:"Active"`
	Sort     string `short:"s" help:"Name, Streak, Completion Rate, Date Created or Category." default:"Date Created"`
	Asc      bool   `help:"Sort ascending instead of descending."`
	Search   string `short:"q" help:"Case-insensitive search over titles and notes."`
	Category string `short:"c" help:"Only habits in this category (name or ID)."`
}

func (c *HabitListCmd) Run(ctx *cli.Context) error {
	filter, err := store.ParseFilterOption(c.Filter)
	if err != nil {
		return err
	}
	sortBy, err := store.ParseSortOption(c.Sort)
	if err != nil {
		return err
	}

	s := ctx.Store()
	view := store.ViewState{
		Sort:      sortBy,
		Ascending: c.Asc,
		Filter:    filter,
		Search:    c.Search,
	}
	if c.Category != "" {
		category, err := cli.FindCategory(s, c.Category)
		if err != nil {
			return err
		}
		view.CategoryID = category.ID
	}
	s.SetView(view)

	habits := s.FilteredHabits()
	if len(habits) == 0 {
		fmt.Println("No habits found.")
		return nil
	}

	now := s.Now()
	for _, h := range habits {
		mark := "[ ]"
		if h.IsCompleted(now) {
			mark = "[x]"
		}
		status := ""
		if h.IsArchived {
			status = " [ARCHIVED]"
		}
		category := "-"
		if cat, ok := s.CategoryFor(h); ok {
			category = cat.Name
		}
		fmt.Printf("%s %s  %s%s  (%s, %s, streak %d)\n",
			mark, cli.ShortID(h.ID), h.Title, status, category, cli.FormatFrequency(h), h.CurrentStreak(now))
	}
	return nil
}

type HabitShowCmd struct {
	Habit string `arg:"" help:"Habit ID, ID prefix or title."`
	Days  int    `help:"Days of history to draw." default:"14"`
}

func (c *HabitShowCmd) Run(ctx *cli.Context) error {
	s := ctx.Store()
	h, err := cli.FindHabit(s, c.Habit)
	if err != nil {
		return err
	}
	now := s.Now()

	fmt.Printf("%s\n", h.Title)
	fmt.Printf("  ID:              %s\n", h.ID)
	if cat, ok := s.CategoryFor(h); ok {
		fmt.Printf("  Category:        %s\n", cat.Name)
	}
	fmt.Printf("  Frequency:       %s\n", cli.FormatFrequency(h))
	if h.ReminderEnabled && h.ReminderTime != nil {
		fmt.Printf("  Reminder:        %s\n", h.ReminderTime.Format(constants.TimeFormat))
	}
	if h.Notes != "" {
		fmt.Printf("  Notes:           %s\n", h.Notes)
	}
	if h.IsArchived {
		fmt.Println("  Status:          archived")
	}
	fmt.Printf("  Created:         %s\n", h.CreatedAt.In(now.Location()).Format(constants.DateFormat))
	fmt.Printf("  Current streak:  %d\n", h.CurrentStreak(now))
	fmt.Printf("  Longest streak:  %d\n", h.LongestStreak(now.Location()))
	fmt.Printf("  This month:      %.0f%%\n", h.CompletionRateThisMonth(now)*100)
	fmt.Printf("  Last 7 days:     %d\n", h.CompletionsInLast(7, now))
	fmt.Printf("  Total:           %d\n", len(h.CompletedDates))

	if c.Days > 0 {
		fmt.Printf("\n  %s\n", History(h, c.Days, now))
	}
	return nil
}

// History draws the last days as a row of marks, oldest first: # for a
// completion, . for a missed due day and a space when the habit was not due.
func History(h models.Habit, days int, now time.Time) string {
	var b strings.Builder
	today := utils.StartOfDay(now)
	for i := days - 1; i >= 0; i-- {
		day := utils.AddDays(today, -i)
		switch {
		case h.IsCompleted(day):
			b.WriteByte('#')
		case h.IsDueOn(day):
			b.WriteByte('.')
		default:
			b.WriteByte(' ')
		}
	}
	return b.String()
}
