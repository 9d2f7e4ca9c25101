package achievements

import (
	"math"
	"testing"
)

type fakeSource struct {
	total, habits, active, categories, streak, due int
	today, weekly                                  float64
}

func (f fakeSource) TotalCompletions() int         { return f.total }
func (f fakeSource) HabitCount() int               { return f.habits }
func (f fakeSource) ActiveHabitCount() int         { return f.active }
func (f fakeSource) CategoryCount() int            { return f.categories }
func (f fakeSource) BestCurrentStreak() int        { return f.streak }
func (f fakeSource) TodayProgress() float64        { return f.today }
func (f fakeSource) DueActiveCount() int           { return f.due }
func (f fakeSource) WeeklyCompletionRate() float64 { return f.weekly }

func find(t *testing.T, title string) Achievement {
	t.Helper()
	for _, a := range All() {
		if a.Title == title {
			return a
		}
	}
	t.Fatalf("achievement %q not in catalogue", title)
	return Achievement{}
}

func TestCatalogue(t *testing.T) {
	all := All()
	if len(all) != 14 {
		t.Fatalf("expected 14 achievements, got %d", len(all))
	}
	seen := map[string]bool{}
	for _, a := range all {
		if seen[a.Title] {
			t.Errorf("duplicate achievement %q", a.Title)
		}
		seen[a.Title] = true
		if a.Tier < Bronze || a.Tier > Diamond {
			t.Errorf("%s has invalid tier %d", a.Title, a.Tier)
		}
	}
}

func TestUnlockAndProgress(t *testing.T) {
	tests := []struct {
		title        string
		src          fakeSource
		wantUnlocked bool
		wantProgress float64
	}{
		{"First Step", fakeSource{}, false, 0},
		{"First Step", fakeSource{total: 1}, true, 1},
		{"Getting Started", fakeSource{habits: 2}, false, 2.0 / 3.0},
		{"Week Warrior", fakeSource{streak: 7}, true, 1},
		{"Fortnight Fighter", fakeSource{streak: 7}, false, 0.5},
		{"Legendary Streak", fakeSource{streak: 250}, true, 1},
		{"Century Club", fakeSource{total: 25}, false, 0.25},
		{"Organizer", fakeSource{categories: 8}, true, 1},
		{"Multi-Tasker", fakeSource{active: 4}, false, 0.4},
		{"Perfect Day", fakeSource{today: 1, due: 2}, false, 1},
		{"Perfect Day", fakeSource{today: 1, due: 3}, true, 1},
		{"Perfect Day", fakeSource{today: 0.5, due: 4}, false, 0.5},
		{"Consistent", fakeSource{weekly: 0.4}, false, 0.5},
		{"Consistent", fakeSource{weekly: 0.9}, true, 1},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			a := find(t, tt.title)
			if got := a.Unlocked(tt.src); got != tt.wantUnlocked {
				t.Errorf("Unlocked = %v, want %v", got, tt.wantUnlocked)
			}
			if got := a.Progress(tt.src); math.Abs(got-tt.wantProgress) > 1e-9 {
				t.Errorf("Progress = %v, want %v", got, tt.wantProgress)
			}
		})
	}
}

func TestUnlockedCount(t *testing.T) {
	if got := UnlockedCount(fakeSource{}); got != 0 {
		t.Errorf("UnlockedCount of an empty source = %d, want 0", got)
	}
	src := fakeSource{total: 100, habits: 3, categories: 8, streak: 14}
	// First Step, Getting Started, Week Warrior, Fortnight Fighter,
	// Dedicated, Century Club, Organizer
	if got := UnlockedCount(src); got != 7 {
		t.Errorf("UnlockedCount = %d, want 7", got)
	}
}

func TestTierString(t *testing.T) {
	if Bronze.String() != "Bronze" || Diamond.String() != "Diamond" || Tier(9).String() != "Unknown" {
		t.Error("unexpected tier names")
	}
}

func TestLevelFor(t *testing.T) {
	tests := []struct {
		total    int
		number   int
		title    string
		next     int
		progress float64
	}{
		{0, 1, "Beginner", 5, 0},
		{4, 1, "Beginner", 5, 0.8},
		{5, 2, "Novice", 15, 0},
		{10, 2, "Novice", 15, 0.5},
		{30, 4, "Regular", 50, 0},
		{150, 6, "Expert", 200, 0.5},
		{999, 9, "Legend", 1000, 0.998},
		{1000, 10, "Habit God", 0, 1},
		{5000, 10, "Habit God", 0, 1},
	}

	for _, tt := range tests {
		l := LevelFor(tt.total)
		if l.Number != tt.number || l.Title != tt.title || l.Next != tt.next {
			t.Errorf("LevelFor(%d) = %+v, want level %d %q next %d", tt.total, l, tt.number, tt.title, tt.next)
		}
		if math.Abs(l.Progress-tt.progress) > 1e-9 {
			t.Errorf("LevelFor(%d).Progress = %v, want %v", tt.total, l.Progress, tt.progress)
		}
	}
}
