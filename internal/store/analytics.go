package store

import (
	"sort"
	"time"

	"github.com/julianstephens/habitkit/internal/models"
	"github.com/julianstephens/habitkit/internal/utils"
)

// DayCount is the number of habits completed on one calendar day.
type DayCount struct {
	Date  time.Time
	Count int
}

// CategoryCount is the number of active habits in a category.
type CategoryCount struct {
	Category models.Category
	Count    int
}

// TodayProgress is the completed share of the active habits due today.
// It is 1 when nothing is due.
func (s *HabitStore) TodayProgress() float64 {
	now := s.now()
	due, done := 0, 0
	for _, h := range s.habits {
		if h.IsArchived || !h.IsDueOn(now) {
			continue
		}
		due++
		if h.IsCompleted(now) {
			done++
		}
	}
	if due == 0 {
		return 1.0
	}
	return float64(done) / float64(due)
}

// TotalCompletionsToday counts habits, archived included, completed today.
func (s *HabitStore) TotalCompletionsToday() int {
	now := s.now()
	n := 0
	for _, h := range s.habits {
		if h.IsCompleted(now) {
			n++
		}
	}
	return n
}

func (s *HabitStore) BestCurrentStreak() int {
	now := s.now()
	best := 0
	for _, h := range s.habits {
		if streak := h.CurrentStreak(now); streak > best {
			best = streak
		}
	}
	return best
}

// TotalCompletions counts every stored completion entry.
func (s *HabitStore) TotalCompletions() int {
	n := 0
	for _, h := range s.habits {
		n += len(h.CompletedDates)
	}
	return n
}

// CompletionsPerDay returns one entry per day for the last days days,
// oldest first and ending today.
func (s *HabitStore) CompletionsPerDay(days int) []DayCount {
	if days <= 0 {
		return []DayCount{}
	}
	today := utils.StartOfDay(s.now())
	out := make([]DayCount, 0, days)
	for offset := days - 1; offset >= 0; offset-- {
		date := utils.AddDays(today, -offset)
		out = append(out, DayCount{Date: date, Count: s.completedOn(date)})
	}
	return out
}

func (s *HabitStore) completedOn(date time.Time) int {
	n := 0
	for _, h := range s.habits {
		if h.IsCompleted(date) {
			n++
		}
	}
	return n
}

// CategoryDistribution counts active habits per category, largest first.
// Categories without active habits are left out.
func (s *HabitStore) CategoryDistribution() []CategoryCount {
	out := []CategoryCount{}
	for _, c := range s.categories {
		if n := s.HabitsCount(c.ID); n > 0 {
			out = append(out, CategoryCount{Category: c, Count: n})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}

// TopStreakHabits returns up to limit active habits with a running streak,
// longest streak first.
func (s *HabitStore) TopStreakHabits(limit int) []models.Habit {
	now := s.now()
	type ranked struct {
		habit  models.Habit
		streak int
	}
	var candidates []ranked
	for _, h := range s.habits {
		if h.IsArchived {
			continue
		}
		if streak := h.CurrentStreak(now); streak > 0 {
			candidates = append(candidates, ranked{h, streak})
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].streak > candidates[j].streak })

	if limit < 0 {
		limit = 0
	}
	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	out := make([]models.Habit, len(candidates))
	for i, c := range candidates {
		out[i] = c.habit.Clone()
	}
	return out
}

// WeeklyCompletionRate is the share of possible completions over the last
// seven days across active habits, assuming one per habit per day.
func (s *HabitStore) WeeklyCompletionRate() float64 {
	now := s.now()
	active, completed := 0, 0
	for _, h := range s.habits {
		if h.IsArchived {
			continue
		}
		active++
		completed += h.CompletionsInLast(7, now)
	}
	if active == 0 {
		return 0
	}
	return float64(completed) / float64(active*7)
}

// ContributionGrid returns weeks rows of seven daily completion counts. The
// last cell of the last row is today.
func (s *HabitStore) ContributionGrid(weeks int) [][]int {
	if weeks <= 0 {
		return [][]int{}
	}
	today := utils.StartOfDay(s.now())
	grid := make([][]int, weeks)
	for w := 0; w < weeks; w++ {
		row := make([]int, 7)
		for d := 0; d < 7; d++ {
			daysAgo := (weeks-1-w)*7 + (6 - d)
			row[d] = s.completedOn(utils.AddDays(today, -daysAgo))
		}
		grid[w] = row
	}
	return grid
}

// CompletionsByWeekday totals completions by weekday, indexed by time.Weekday.
func (s *HabitStore) CompletionsByWeekday() [7]int {
	loc := s.now().Location()
	var counts [7]int
	for _, h := range s.habits {
		for _, d := range h.CompletedDates {
			counts[d.In(loc).Weekday()]++
		}
	}
	return counts
}

// MostProductiveWeekday is the weekday with the most completions. Ties go to
// the earlier weekday and an empty history reports Sunday.
func (s *HabitStore) MostProductiveWeekday() time.Weekday {
	counts := s.CompletionsByWeekday()
	best := time.Sunday
	for d := time.Sunday; d <= time.Saturday; d++ {
		if counts[d] > counts[best] {
			best = d
		}
	}
	return best
}

// AveragePerDay divides all completions by the days since the earliest one,
// counting at least one day.
func (s *HabitStore) AveragePerDay() float64 {
	var first time.Time
	for _, h := range s.habits {
		for _, d := range h.CompletedDates {
			if first.IsZero() || d.Before(first) {
				first = d
			}
		}
	}
	if first.IsZero() {
		return 0
	}
	days := utils.DaysBetween(first, s.now())
	if days < 1 {
		days = 1
	}
	return float64(s.TotalCompletions()) / float64(days)
}

// HabitsOnTrack counts active habits with a running streak.
func (s *HabitStore) HabitsOnTrack() int {
	now := s.now()
	n := 0
	for _, h := range s.habits {
		if !h.IsArchived && h.CurrentStreak(now) > 0 {
			n++
		}
	}
	return n
}

func (s *HabitStore) ActiveHabitCount() int {
	n := 0
	for _, h := range s.habits {
		if !h.IsArchived {
			n++
		}
	}
	return n
}

func (s *HabitStore) ArchivedHabitCount() int {
	return len(s.habits) - s.ActiveHabitCount()
}

// DueActiveCount counts active habits scheduled for today.
func (s *HabitStore) DueActiveCount() int {
	now := s.now()
	n := 0
	for _, h := range s.habits {
		if !h.IsArchived && h.IsDueOn(now) {
			n++
		}
	}
	return n
}

// HabitCount counts every habit, archived included.
func (s *HabitStore) HabitCount() int {
	return len(s.habits)
}

func (s *HabitStore) CategoryCount() int {
	return len(s.categories)
}
