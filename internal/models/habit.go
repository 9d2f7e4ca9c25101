package models

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/habitkit/internal/constants"
	"github.com/julianstephens/habitkit/internal/utils"
)

// Habit represents a recurring practice to track
type Habit struct {
	ID              string      `json:"id"`
	Title           string      `json:"title"`
	Notes           string      `json:"notes"`
	Icon            string      `json:"icon"`
	ColorHex        string      `json:"color_hex"`
	CategoryID      string      `json:"category_id"`
	Frequency       Frequency   `json:"frequency"`
	CustomDays      []int       `json:"custom_days"`  // 1=Sunday..7=Saturday
	TargetCount     int         `json:"target_count"` // reserved for multi-per-day targets
	ReminderEnabled bool        `json:"reminder_enabled"`
	ReminderTime    *time.Time  `json:"reminder_time,omitempty"`
	IsArchived      bool        `json:"is_archived"`
	CreatedAt       time.Time   `json:"created_at"`
	CompletedDates  []time.Time `json:"completed_dates"` // day starts, newest first
}

// HabitOption customizes a habit built by NewHabit.
type HabitOption func(*Habit)

// WithNotes sets the free-form notes.
func WithNotes(notes string) HabitOption {
	return func(h *Habit) { h.Notes = notes }
}

// WithIcon sets the icon name shown next to the title.
func WithIcon(icon string) HabitOption {
	return func(h *Habit) { h.Icon = icon }
}

// WithColor sets the display color as a #RRGGBB string.
func WithColor(colorHex string) HabitOption {
	return func(h *Habit) { h.ColorHex = colorHex }
}

// WithFrequency sets the schedule the habit is due on.
func WithFrequency(f Frequency) HabitOption {
	return func(h *Habit) { h.Frequency = f }
}

// WithCustomDays sets the weekday numbers for FrequencyCustom.
func WithCustomDays(days ...int) HabitOption {
	return func(h *Habit) { h.CustomDays = append([]int(nil), days...) }
}

// WithTargetCount sets the completions wanted per due day.
func WithTargetCount(n int) HabitOption {
	return func(h *Habit) { h.TargetCount = n }
}

// WithReminder enables a reminder at the clock time of at.
func WithReminder(at time.Time) HabitOption {
	return func(h *Habit) {
		h.ReminderEnabled = true
		h.ReminderTime = &at
	}
}

// WithCreatedAt overrides the creation timestamp, mostly for back-filled data.
func WithCreatedAt(t time.Time) HabitOption {
	return func(h *Habit) { h.CreatedAt = t }
}

// NewHabit creates a habit with a fresh ID in the given category.
func NewHabit(title, categoryID string, opts ...HabitOption) Habit {
	h := Habit{
		ID:             uuid.New().String(),
		Title:          title,
		Icon:           constants.DefaultHabitIcon,
		ColorHex:       constants.DefaultHabitColor,
		CategoryID:     categoryID,
		Frequency:      FrequencyDaily,
		CustomDays:     []int{},
		TargetCount:    constants.DefaultTargetCount,
		CreatedAt:      time.Now(),
		CompletedDates: []time.Time{},
	}
	for _, opt := range opts {
		opt(&h)
	}
	return h
}

// Clone returns a deep copy so callers never share slices with the store.
func (h Habit) Clone() Habit {
	c := h
	c.CustomDays = append([]int(nil), h.CustomDays...)
	c.CompletedDates = append([]time.Time(nil), h.CompletedDates...)
	if h.ReminderTime != nil {
		t := *h.ReminderTime
		c.ReminderTime = &t
	}
	return c
}

// IsDueOn reports whether the habit's frequency selects ref's weekday.
func (h Habit) IsDueOn(ref time.Time) bool {
	return h.Frequency.IsDueOn(utils.Weekday(ref), h.CustomDays)
}

// IsCompleted reports whether a completion falls on the same calendar day as date.
func (h Habit) IsCompleted(date time.Time) bool {
	for _, d := range h.CompletedDates {
		if utils.SameDay(d, date) {
			return true
		}
	}
	return false
}

type dayKey struct {
	year  int
	month time.Month
	day   int
}

func keyOf(t time.Time) dayKey {
	y, m, d := t.Date()
	return dayKey{y, m, d}
}

// completedDaySet maps every completion onto its calendar day in loc.
func (h Habit) completedDaySet(loc *time.Location) map[dayKey]struct{} {
	set := make(map[dayKey]struct{}, len(h.CompletedDates))
	for _, d := range h.CompletedDates {
		set[keyOf(d.In(loc))] = struct{}{}
	}
	return set
}

// CurrentStreak counts consecutive completed days ending today, or ending
// yesterday when today has not been completed yet.
func (h Habit) CurrentStreak(now time.Time) int {
	if len(h.CompletedDates) == 0 {
		return 0
	}
	days := h.completedDaySet(now.Location())

	check := utils.StartOfDay(now)
	if _, ok := days[keyOf(check)]; !ok {
		yesterday := utils.AddDays(check, -1)
		if _, ok := days[keyOf(yesterday)]; !ok {
			return 0
		}
		check = yesterday
	}

	streak := 0
	for {
		if _, ok := days[keyOf(check)]; !ok {
			break
		}
		streak++
		check = utils.AddDays(check, -1)
	}
	return streak
}

// LongestStreak is the longest run of consecutive completed days ever
// recorded, with every completion placed on its calendar day in loc.
func (h Habit) LongestStreak(loc *time.Location) int {
	if len(h.CompletedDates) == 0 {
		return 0
	}
	set := h.completedDaySet(loc)
	// UTC midnights step by exactly one day, whatever loc does around DST
	days := make([]time.Time, 0, len(set))
	for k := range set {
		days = append(days, time.Date(k.year, k.month, k.day, 0, 0, 0, 0, time.UTC))
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	longest, run := 1, 1
	for i := 1; i < len(days); i++ {
		if days[i].Equal(days[i-1].AddDate(0, 0, 1)) {
			run++
			if run > longest {
				longest = run
			}
		} else {
			run = 1
		}
	}
	return longest
}

// CompletionRateThisMonth is completions this month over days elapsed this
// month, today included.
func (h Habit) CompletionRateThisMonth(now time.Time) float64 {
	elapsed := utils.DaysElapsedInMonth(now)
	if elapsed < 1 {
		elapsed = 1
	}
	count := 0
	for _, d := range h.CompletedDates {
		if utils.SameMonth(d, now) {
			count++
		}
	}
	return float64(count) / float64(elapsed)
}

// CompletionsInLast counts completions at or after now minus the given days.
func (h Habit) CompletionsInLast(days int, now time.Time) int {
	start := now.AddDate(0, 0, -days)
	count := 0
	for _, d := range h.CompletedDates {
		if !d.Before(start) {
			count++
		}
	}
	return count
}
