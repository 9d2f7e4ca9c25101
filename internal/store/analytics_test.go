package store

import (
	"math"
	"testing"
	"time"

	"github.com/julianstephens/habitkit/internal/models"
)

func completed(s *HabitStore, h models.Habit, offsets ...int) {
	for _, o := range offsets {
		s.ToggleCompletion(h.ID, day(o))
	}
}

func TestTodayProgress(t *testing.T) {
	s, _ := newTestStore(t)
	if got := s.TodayProgress(); got != 1.0 {
		t.Errorf("TodayProgress with nothing due = %v, want 1", got)
	}

	// testNow is a Thursday, so a weekend habit is never due.
	addHabit(s, "Weekend hike", models.WithFrequency(models.FrequencyWeekends))
	if got := s.TodayProgress(); got != 1.0 {
		t.Errorf("TodayProgress with only non-due habits = %v, want 1", got)
	}

	a := addHabit(s, "A")
	addHabit(s, "B")
	c := addHabit(s, "C")
	s.ArchiveHabit(c.ID)
	completed(s, a, 0)
	completed(s, c, 0)

	if got := s.TodayProgress(); got != 0.5 {
		t.Errorf("TodayProgress = %v, want 0.5", got)
	}
	if got := s.TotalCompletionsToday(); got != 2 {
		t.Errorf("TotalCompletionsToday = %d, want 2 (archived included)", got)
	}
	if got := s.DueActiveCount(); got != 2 {
		t.Errorf("DueActiveCount = %d, want 2", got)
	}
}

func TestDailyScenario(t *testing.T) {
	s, _ := newTestStore(t)
	h := addHabit(s, "Daily")
	completed(s, h, 0, -1, -2)

	got, _ := s.Habit(h.ID)
	if got.CurrentStreak(testNow) != 3 || got.LongestStreak(time.UTC) != 3 {
		t.Errorf("streaks = %d/%d, want 3/3", got.CurrentStreak(testNow), got.LongestStreak(time.UTC))
	}
	if s.BestCurrentStreak() != 3 {
		t.Errorf("BestCurrentStreak = %d, want 3", s.BestCurrentStreak())
	}
	if s.TotalCompletions() != 3 {
		t.Errorf("TotalCompletions = %d, want 3", s.TotalCompletions())
	}
}

func TestCompletionsPerDay(t *testing.T) {
	s, _ := newTestStore(t)
	a := addHabit(s, "A")
	b := addHabit(s, "B")
	completed(s, a, 0, -1, -6)
	completed(s, b, 0, -7)

	got := s.CompletionsPerDay(7)
	if len(got) != 7 {
		t.Fatalf("expected 7 entries, got %d", len(got))
	}
	want := []int{1, 0, 0, 0, 0, 1, 2} // day -6 .. today
	for i, dc := range got {
		if !dc.Date.Equal(day(i - 6)) {
			t.Errorf("entry %d date = %v, want %v", i, dc.Date, day(i-6))
		}
		if dc.Count != want[i] {
			t.Errorf("entry %d count = %d, want %d", i, dc.Count, want[i])
		}
	}
	if len(s.CompletionsPerDay(0)) != 0 {
		t.Error("CompletionsPerDay(0) should be empty")
	}
}

func TestCompletionsPerDayAcrossDST(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("tzdata unavailable")
	}
	// DST starts on 8 March 2026.
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, loc)
	s, _ := newTestStore(t)
	s.now = func() time.Time { return now }

	got := s.CompletionsPerDay(5)
	for i, dc := range got {
		want := time.Date(2026, 3, 6+i, 0, 0, 0, 0, loc)
		if !dc.Date.Equal(want) {
			t.Errorf("entry %d = %v, want %v", i, dc.Date, want)
		}
	}
}

func TestCategoryDistribution(t *testing.T) {
	s, _ := newTestStore(t)
	health, _ := s.CategoryByName("Health")
	fitness, _ := s.CategoryByName("Fitness")
	s.AddHabit(models.NewHabit("Vitamins", health.ID))
	s.AddHabit(models.NewHabit("Run", fitness.ID))
	s.AddHabit(models.NewHabit("Lift", fitness.ID))
	archived := models.NewHabit("Swim", fitness.ID)
	archived.IsArchived = true
	s.AddHabit(archived)

	got := s.CategoryDistribution()
	if len(got) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(got))
	}
	if got[0].Category.ID != fitness.ID || got[0].Count != 2 {
		t.Errorf("first entry = %s:%d, want Fitness:2", got[0].Category.Name, got[0].Count)
	}
	if got[1].Category.ID != health.ID || got[1].Count != 1 {
		t.Errorf("second entry = %s:%d, want Health:1", got[1].Category.Name, got[1].Count)
	}
}

func TestTopStreakHabits(t *testing.T) {
	s, _ := newTestStore(t)
	long := addHabit(s, "Long")
	short := addHabit(s, "Short")
	none := addHabit(s, "None")
	arch := addHabit(s, "Archived")
	completed(s, long, 0, -1, -2, -3)
	completed(s, short, -1)
	completed(s, none, -5)
	completed(s, arch, 0, -1, -2, -3, -4, -5)
	s.ArchiveHabit(arch.ID)

	got := s.TopStreakHabits(5)
	if !equalTitles(got, "Long", "Short") {
		t.Errorf("TopStreakHabits = %v, want [Long Short]", titles(got))
	}
	if got := s.TopStreakHabits(1); !equalTitles(got, "Long") {
		t.Errorf("TopStreakHabits(1) = %v", titles(got))
	}
	if got := s.TopStreakHabits(0); len(got) != 0 {
		t.Errorf("TopStreakHabits(0) = %v", titles(got))
	}
	if got := s.HabitsOnTrack(); got != 2 {
		t.Errorf("HabitsOnTrack = %d, want 2", got)
	}
}

func TestWeeklyCompletionRate(t *testing.T) {
	s, _ := newTestStore(t)
	if got := s.WeeklyCompletionRate(); got != 0 {
		t.Errorf("WeeklyCompletionRate with no habits = %v, want 0", got)
	}

	a := addHabit(s, "A")
	b := addHabit(s, "B")
	arch := addHabit(s, "Archived")
	// day(-7) starts before now-7d, so it falls outside the window.
	completed(s, a, 0, -1, -2, -3, -7)
	completed(s, b, -6)
	completed(s, arch, 0)
	s.ArchiveHabit(arch.ID)

	want := 5.0 / 14.0
	if got := s.WeeklyCompletionRate(); math.Abs(got-want) > 1e-9 {
		t.Errorf("WeeklyCompletionRate = %v, want %v", got, want)
	}
	if s.ActiveHabitCount() != 2 || s.ArchivedHabitCount() != 1 {
		t.Errorf("active/archived = %d/%d, want 2/1", s.ActiveHabitCount(), s.ArchivedHabitCount())
	}
}

func TestContributionGrid(t *testing.T) {
	s, _ := newTestStore(t)
	h := addHabit(s, "A")
	completed(s, h, 0, -1, -7, -13)

	grid := s.ContributionGrid(2)
	if len(grid) != 2 || len(grid[0]) != 7 {
		t.Fatalf("unexpected grid shape %dx%d", len(grid), len(grid[0]))
	}
	want := [][]int{
		{1, 0, 0, 0, 0, 0, 1}, // days -13 .. -7
		{0, 0, 0, 0, 0, 1, 1}, // days -6 .. today
	}
	for w := range want {
		for d := range want[w] {
			if grid[w][d] != want[w][d] {
				t.Errorf("grid[%d][%d] = %d, want %d", w, d, grid[w][d], want[w][d])
			}
		}
	}
}

func TestWeekdayInsights(t *testing.T) {
	s, _ := newTestStore(t)
	if s.AveragePerDay() != 0 {
		t.Error("AveragePerDay with no history should be 0")
	}

	h := addHabit(s, "A")
	// Thursdays: 0, -7; Wednesday: -1
	completed(s, h, 0, -1, -7)

	counts := s.CompletionsByWeekday()
	if counts[time.Thursday] != 2 || counts[time.Wednesday] != 1 {
		t.Errorf("CompletionsByWeekday = %v", counts)
	}
	if got := s.MostProductiveWeekday(); got != time.Thursday {
		t.Errorf("MostProductiveWeekday = %s, want Thursday", got)
	}
	// three completions over seven days since the first one
	if got := s.AveragePerDay(); math.Abs(got-3.0/7.0) > 1e-9 {
		t.Errorf("AveragePerDay = %v, want %v", got, 3.0/7.0)
	}
}
