package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habitkit/internal/cli"
	"github.com/julianstephens/habitkit/internal/models"
	"github.com/julianstephens/habitkit/internal/utils"
)

type HabitFormModel struct {
	Title      string
	Notes      string
	CategoryID string
	Frequency  models.Frequency
	Days       string
	Reminder   string
}

func (fm HabitFormModel) input() cli.HabitInput {
	return cli.HabitInput{
		Title:     fm.Title,
		Frequency: string(fm.Frequency),
		Days:      fm.Days,
		Reminder:  fm.Reminder,
	}
}

// NewHabitForm creates a new form for adding habits
func NewHabitForm(fm *HabitFormModel, categories []models.Category) *huh.Form {
	categoryOptions := make([]huh.Option[string], len(categories))
	for i, c := range categories {
		categoryOptions[i] = huh.NewOption(c.Name, c.ID)
	}
	frequencyOptions := make([]huh.Option[models.Frequency], len(models.Frequencies))
	for i, f := range models.Frequencies {
		frequencyOptions[i] = huh.NewOption(string(f), f)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Habit Title").
				Value(&fm.Title).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("habit title cannot be empty")
					}
					return nil
				}),
			huh.NewInput().
				Title("Notes").
				Value(&fm.Notes),
			huh.NewSelect[string]().
				Title("Category").
				Options(categoryOptions...).
				Value(&fm.CategoryID),
			huh.NewSelect[models.Frequency]().
				Title("Frequency").
				Options(frequencyOptions...).
				Value(&fm.Frequency),
			huh.NewInput().
				Title("Custom days").
				Description("For Custom frequency, e.g. mon,wed,fri").
				Value(&fm.Days).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return nil
					}
					_, err := cli.ParseWeekdays(s)
					return err
				}),
			huh.NewInput().
				Title("Reminder (HH:MM)").
				Description("Leave empty for no reminder").
				Value(&fm.Reminder).
				Validate(func(s string) error {
					if s != "" && !utils.ValidateTimeFormat(s) {
						return fmt.Errorf("use HH:MM")
					}
					return nil
				}),
		),
	).WithTheme(huh.ThemeDracula())
}

// buildHabit turns a completed form into a new habit.
func buildHabit(fm HabitFormModel, now time.Time) (models.Habit, error) {
	if err := cli.ValidateHabitInput(fm.input()); err != nil {
		return models.Habit{}, err
	}
	opts := []models.HabitOption{
		models.WithNotes(fm.Notes),
		models.WithFrequency(fm.Frequency),
		models.WithCreatedAt(now),
	}
	if strings.TrimSpace(fm.Days) != "" {
		days, _ := cli.ParseWeekdays(fm.Days)
		opts = append(opts, models.WithCustomDays(days...))
	}
	if fm.Reminder != "" {
		at, _ := utils.ParseTime(fm.Reminder)
		opts = append(opts, models.WithReminder(at))
	}
	return models.NewHabit(strings.TrimSpace(fm.Title), fm.CategoryID, opts...), nil
}
