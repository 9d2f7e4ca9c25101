package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/julianstephens/habitkit/internal/achievements"
	"github.com/julianstephens/habitkit/internal/constants"
	"github.com/julianstephens/habitkit/internal/store"
)

// Markdown summarizes the store's analytics as a markdown document covering
// the last days of completions.
func Markdown(s *store.HabitStore, days int) string {
	var b strings.Builder
	now := s.Now()
	level := achievements.LevelFor(s.TotalCompletions())

	fmt.Fprintf(&b, "# Habit statistics\n\n")
	fmt.Fprintf(&b, "_%s_\n\n", now.Format("Monday, January 2, 2006"))

	fmt.Fprintf(&b, "## Overview\n\n")
	fmt.Fprintf(&b, "| Metric | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Today | %d of %d due habits done (%.0f%%) |\n",
		s.TotalCompletionsToday(), s.DueActiveCount(), s.TodayProgress()*100)
	fmt.Fprintf(&b, "| Active habits | %d |\n", s.ActiveHabitCount())
	fmt.Fprintf(&b, "| Archived habits | %d |\n", s.ArchivedHabitCount())
	fmt.Fprintf(&b, "| Best current streak | %d days |\n", s.BestCurrentStreak())
	fmt.Fprintf(&b, "| Habits on track | %d |\n", s.HabitsOnTrack())
	fmt.Fprintf(&b, "| Total completions | %d |\n", s.TotalCompletions())
	fmt.Fprintf(&b, "| Weekly completion rate | %.0f%% |\n", s.WeeklyCompletionRate()*100)
	fmt.Fprintf(&b, "| Average per day | %.1f |\n", s.AveragePerDay())
	fmt.Fprintf(&b, "| Most productive day | %s |\n", s.MostProductiveWeekday())
	fmt.Fprintf(&b, "| Level | %d, %s |\n", level.Number, level.Title)
	fmt.Fprintf(&b, "| Achievements | %d of %d |\n\n", achievements.UnlockedCount(s), len(achievements.All()))

	if days > 0 {
		fmt.Fprintf(&b, "## Last %d days\n\n", days)
		fmt.Fprintf(&b, "| Day | Completions |\n|---|---|\n")
		for _, dc := range s.CompletionsPerDay(days) {
			fmt.Fprintf(&b, "| %s | %s %d |\n", dc.Date.Format("Mon Jan 2"), strings.Repeat("█", dc.Count), dc.Count)
		}
		b.WriteString("\n")
	}

	if top := s.TopStreakHabits(constants.DefaultTopStreakLimit); len(top) > 0 {
		fmt.Fprintf(&b, "## Top streaks\n\n")
		for i, h := range top {
			fmt.Fprintf(&b, "%d. **%s**: %d days\n", i+1, h.Title, h.CurrentStreak(now))
		}
		b.WriteString("\n")
	}

	if dist := s.CategoryDistribution(); len(dist) > 0 {
		fmt.Fprintf(&b, "## Categories\n\n")
		fmt.Fprintf(&b, "| Category | Active habits |\n|---|---|\n")
		for _, cc := range dist {
			fmt.Fprintf(&b, "| %s | %d |\n", cc.Category.Name, cc.Count)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// Render formats markdown for the terminal, falling back to the raw text
// when rendering fails.
func Render(md string) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	out, err := glamour.Render(md, "dark")
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}

// Achievements lists the catalogue with unlock state and progress.
func Achievements(src achievements.Source) string {
	var b strings.Builder
	all := achievements.All()
	fmt.Fprintf(&b, "# Achievements (%d/%d)\n\n", achievements.UnlockedCount(src), len(all))
	for _, a := range all {
		mark := "☐"
		if a.Unlocked(src) {
			mark = "☑"
		}
		fmt.Fprintf(&b, "- %s **%s** _(%s)_: %s, %.0f%%\n", mark, a.Title, a.Tier, a.Description, a.Progress(src)*100)
	}
	return b.String()
}

// Level describes the user's level and the way to the next one.
func Level(totalCompletions int) string {
	l := achievements.LevelFor(totalCompletions)
	if l.Next == 0 {
		return fmt.Sprintf("Level %d: %s (max level, %d completions)", l.Number, l.Title, totalCompletions)
	}
	return fmt.Sprintf("Level %d: %s (%d/%d completions to level %d, %.0f%%)",
		l.Number, l.Title, totalCompletions, l.Next, l.Number+1, l.Progress*100)
}
