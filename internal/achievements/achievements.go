package achievements

import "math"

// Source is the slice of store analytics the achievements are judged on.
// *store.HabitStore satisfies it.
type Source interface {
	TotalCompletions() int
	HabitCount() int
	ActiveHabitCount() int
	CategoryCount() int
	BestCurrentStreak() int
	TodayProgress() float64
	DueActiveCount() int
	WeeklyCompletionRate() float64
}

type Tier int

const (
	Bronze Tier = iota + 1
	Silver
	Gold
	Platinum
	Diamond
)

func (t Tier) String() string {
	switch t {
	case Bronze:
		return "Bronze"
	case Silver:
		return "Silver"
	case Gold:
		return "Gold"
	case Platinum:
		return "Platinum"
	case Diamond:
		return "Diamond"
	}
	return "Unknown"
}

type Achievement struct {
	Title       string
	Description string
	Icon        string
	Tier        Tier

	unlocked func(Source) bool
	progress func(Source) float64
}

func (a Achievement) Unlocked(src Source) bool {
	return a.unlocked(src)
}

// Progress is how close src is to unlocking a, in [0, 1].
func (a Achievement) Progress(src Source) float64 {
	return math.Max(0, math.Min(a.progress(src), 1))
}

// countAtLeast builds an achievement unlocked once metric reaches goal.
func countAtLeast(title, description, icon string, tier Tier, goal int, metric func(Source) int) Achievement {
	return Achievement{
		Title:       title,
		Description: description,
		Icon:        icon,
		Tier:        tier,
		unlocked:    func(src Source) bool { return metric(src) >= goal },
		progress:    func(src Source) float64 { return float64(metric(src)) / float64(goal) },
	}
}

func totalCompletions(src Source) int { return src.TotalCompletions() }
func bestStreak(src Source) int       { return src.BestCurrentStreak() }

var catalogue = []Achievement{
	countAtLeast("First Step", "Complete your first habit", "figure.walk", Bronze, 1, totalCompletions),
	countAtLeast("Getting Started", "Create 3 habits", "plus.circle.fill", Bronze, 3,
		func(src Source) int { return src.HabitCount() }),

	countAtLeast("Week Warrior", "Maintain a 7-day streak", "flame.fill", Silver, 7, bestStreak),
	countAtLeast("Fortnight Fighter", "Maintain a 14-day streak", "flame.circle.fill", Gold, 14, bestStreak),
	countAtLeast("Monthly Master", "Maintain a 30-day streak", "calendar.badge.checkmark", Platinum, 30, bestStreak),
	countAtLeast("Legendary Streak", "Maintain a 100-day streak", "crown.fill", Diamond, 100, bestStreak),

	countAtLeast("Dedicated", "Complete 50 habits total", "checkmark.circle.fill", Silver, 50, totalCompletions),
	countAtLeast("Century Club", "Complete 100 habits total", "100.circle.fill", Gold, 100, totalCompletions),
	countAtLeast("Habit Hero", "Complete 500 habits total", "star.circle.fill", Platinum, 500, totalCompletions),
	countAtLeast("Grandmaster", "Complete 1000 habits total", "sparkles", Diamond, 1000, totalCompletions),

	countAtLeast("Organizer", "Create 5 categories", "folder.fill", Silver, 5,
		func(src Source) int { return src.CategoryCount() }),
	countAtLeast("Multi-Tasker", "Have 10 active habits", "list.bullet.rectangle.fill", Gold, 10,
		func(src Source) int { return src.ActiveHabitCount() }),

	{
		Title:       "Perfect Day",
		Description: "Complete all habits in a day (min 3)",
		Icon:        "checkmark.seal.fill",
		Tier:        Silver,
		unlocked: func(src Source) bool {
			return src.TodayProgress() >= 1 && src.DueActiveCount() >= 3
		},
		progress: func(src Source) float64 { return src.TodayProgress() },
	},
	{
		Title:       "Consistent",
		Description: "Achieve 80% weekly completion rate",
		Icon:        "chart.line.uptrend.xyaxis",
		Tier:        Gold,
		unlocked:    func(src Source) bool { return src.WeeklyCompletionRate() >= 0.8 },
		progress:    func(src Source) float64 { return src.WeeklyCompletionRate() / 0.8 },
	},
}

// All returns the achievement catalogue in display order.
func All() []Achievement {
	return append([]Achievement(nil), catalogue...)
}

// UnlockedCount counts the achievements src has earned.
func UnlockedCount(src Source) int {
	n := 0
	for _, a := range catalogue {
		if a.Unlocked(src) {
			n++
		}
	}
	return n
}
