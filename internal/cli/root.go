package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"

	"github.com/julianstephens/habitkit/internal/backup"
	"github.com/julianstephens/habitkit/internal/constants"
	apperrors "github.com/julianstephens/habitkit/internal/errors"
	"github.com/julianstephens/habitkit/internal/logger"
	"github.com/julianstephens/habitkit/internal/models"
	"github.com/julianstephens/habitkit/internal/storage"
	"github.com/julianstephens/habitkit/internal/store"
	"github.com/julianstephens/habitkit/internal/utils"
)

// Context is handed to every command. The habit store is opened lazily so
// commands like init and config can run before any data exists.
type Context struct {
	Provider storage.Provider
	// DataDir holds backups and logs regardless of the storage backend.
	DataDir string
	// Clock overrides the settings timezone clock, mostly in tests.
	Clock func() time.Time

	store *store.HabitStore
	loc   *time.Location
}

func NewContext(provider storage.Provider, dataDir string) *Context {
	return &Context{Provider: provider, DataDir: dataDir}
}

// Store initializes the provider and loads the habit store. An unusable
// provider degrades to an in-memory store so read-only commands still work.
func (c *Context) Store(opts ...store.Option) *store.HabitStore {
	if c.store != nil {
		return c.store
	}
	if err := c.Provider.Init(); err != nil {
		logger.Warn("Storage unavailable, using in-memory store", "path", c.Provider.GetConfigPath(), "error", err)
		fmt.Fprintf(os.Stderr, "Warning: %v; changes will not be saved\n", err)
		c.Provider = storage.NewMemoryStore()
	}

	c.loc = time.Local
	opts = append([]store.Option{store.WithClock(c.now)}, opts...)
	c.store = store.New(c.Provider, opts...)

	tz := c.store.Settings().Timezone
	if loc, err := utils.LoadLocation(tz); err == nil {
		c.loc = loc
	} else {
		logger.Warn("Ignoring invalid timezone setting", "timezone", tz, "error", err)
	}
	return c.store
}

func (c *Context) now() time.Time {
	if c.Clock != nil {
		return c.Clock()
	}
	return time.Now().In(c.loc)
}

// Close releases the provider.
func (c *Context) Close() error {
	if c.Provider == nil {
		return nil
	}
	return c.Provider.Close()
}

// Backups returns the backup manager for the data directory.
func (c *Context) Backups() *backup.Manager {
	mgr := backup.NewManager(c.DataDir)
	if c.Clock != nil {
		mgr.WithClock(c.Clock)
	}
	return mgr
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	data, err := c.Store().Export()
	if err == nil {
		_, err = c.Backups().CreateBackup(data)
	}
	if err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// FindHabit resolves query as a habit ID, a unique ID prefix or a
// case-insensitive title.
func FindHabit(s *store.HabitStore, query string) (models.Habit, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return models.Habit{}, apperrors.Invalid("habit reference cannot be empty")
	}
	if h, ok := s.Habit(query); ok {
		return h, nil
	}

	fold := cases.Fold()
	want := fold.String(query)
	var byPrefix, byTitle []models.Habit
	for _, h := range s.Habits() {
		if strings.HasPrefix(h.ID, query) {
			byPrefix = append(byPrefix, h)
		}
		if fold.String(h.Title) == want {
			byTitle = append(byTitle, h)
		}
	}

	for _, matches := range [][]models.Habit{byPrefix, byTitle} {
		switch len(matches) {
		case 0:
			continue
		case 1:
			return matches[0], nil
		default:
			return models.Habit{}, fmt.Errorf("%q matches %d habits, use the habit ID", query, len(matches))
		}
	}
	return models.Habit{}, fmt.Errorf("%w: %s", apperrors.ErrHabitNotFound, query)
}

// FindCategory resolves query as a category ID or name.
func FindCategory(s *store.HabitStore, query string) (models.Category, error) {
	if c, ok := s.Category(query); ok {
		return c, nil
	}
	if c, ok := s.CategoryByName(query); ok {
		return c, nil
	}
	return models.Category{}, fmt.Errorf("%w: %s", apperrors.ErrCategoryNotFound, query)
}

// HabitInput is the editable part of a habit as entered by the user.
type HabitInput struct {
	Title     string
	Frequency string
	Days      string
	Reminder  string
	Color     string
}

// ValidateHabitInput rejects input the store would otherwise accept
// silently: blank titles, unknown frequencies, custom schedules without
// days and malformed reminder times.
func ValidateHabitInput(in HabitInput) error {
	if strings.TrimSpace(in.Title) == "" {
		return apperrors.Invalid("title cannot be empty")
	}
	freq, err := models.ParseFrequency(in.Frequency)
	if err != nil {
		return apperrors.Invalid("%v", err)
	}
	if in.Days != "" {
		if _, err := ParseWeekdays(in.Days); err != nil {
			return apperrors.Invalid("%v", err)
		}
	} else if freq == models.FrequencyCustom {
		return apperrors.Invalid("custom frequency needs at least one day")
	}
	if in.Reminder != "" && !utils.ValidateTimeFormat(in.Reminder) {
		return apperrors.Invalid("reminder must be HH:MM, got %q", in.Reminder)
	}
	if in.Color != "" && !isHexColor(in.Color) {
		return apperrors.Invalid("color must look like #RRGGBB, got %q", in.Color)
	}
	return nil
}

func isHexColor(s string) bool {
	if len(s) != 7 || s[0] != '#' {
		return false
	}
	_, err := strconv.ParseUint(s[1:], 16, 32)
	return err == nil
}

var dayNames = map[string]int{
	"sun": 1, "sunday": 1,
	"mon": 2, "monday": 2,
	"tue": 3, "tuesday": 3,
	"wed": 4, "wednesday": 4,
	"thu": 5, "thursday": 5,
	"fri": 6, "friday": 6,
	"sat": 7, "saturday": 7,
}

// ParseWeekdays parses a comma-separated list of weekday names or numbers
// (1=Sunday..7=Saturday) into sorted, de-duplicated weekday numbers.
func ParseWeekdays(s string) ([]int, error) {
	var seen [8]bool
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(strings.ToLower(part))
		if n, ok := dayNames[part]; ok {
			seen[n] = true
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil || n < 1 || n > 7 {
			return nil, fmt.Errorf("invalid weekday: %s", part)
		}
		seen[n] = true
	}

	var days []int
	for n := 1; n <= 7; n++ {
		if seen[n] {
			days = append(days, n)
		}
	}
	return days, nil
}

// FormatFrequency describes a habit's schedule.
func FormatFrequency(h models.Habit) string {
	if h.Frequency != models.FrequencyCustom {
		return strings.ToLower(string(h.Frequency))
	}
	var names []string
	for _, d := range h.CustomDays {
		if wd, err := utils.WeekdayFromNumber(d); err == nil {
			names = append(names, wd.String()[:3])
		}
	}
	if len(names) == 0 {
		return "custom (no days)"
	}
	return "custom on " + strings.Join(names, ",")
}

// ShortID is the prefix shown in listings; FindHabit accepts it back.
func ShortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// ParseDate parses a YYYY-MM-DD date in now's location, or returns now when s
// is empty.
func ParseDate(s string, now time.Time) (time.Time, error) {
	if s == "" {
		return now, nil
	}
	d, err := utils.ParseDateInLocation(s, now.Location())
	if err != nil {
		return time.Time{}, apperrors.Invalid("invalid date %q, expected %s", s, constants.DateFormat)
	}
	return d, nil
}

// Stdin feeds confirmation prompts; tests replace it.
var Stdin io.Reader = os.Stdin

// Confirm asks a yes/no question and defaults to no.
func Confirm(prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)
	response, err := bufio.NewReader(Stdin).ReadString('\n')
	if err != nil && response == "" {
		return false
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes"
}
