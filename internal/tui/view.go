package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/habitkit/internal/achievements"
	"github.com/julianstephens/habitkit/internal/constants"
	"github.com/julianstephens/habitkit/internal/report"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateHabits, StateSearch:
		content = m.viewHabits()
	case StateStats:
		content = docStyle.Render(m.stats.View())
	case StateAchievements:
		content = docStyle.Render(m.viewAchievements())
	case StateAddHabit:
		content = docStyle.Render(m.form.View())
	case StateConfirmDelete:
		content = m.viewConfirmDelete()
	}

	parts := []string{m.viewTabs(), content}
	if m.status != "" {
		parts = append(parts, statusStyle.Render(m.status))
	}
	parts = append(parts, m.help.View(m))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range tabTitles {
		if m.state == SessionState(i) || (i == 0 && m.state >= tabCount) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewHabits() string {
	lines := []string{viewStyle.Render(m.viewSummary())}
	if m.state == StateSearch || m.search.Value() != "" {
		lines = append(lines, m.search.View())
	}
	lines = append(lines, m.habitsModel.View())
	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// viewSummary describes the active view and today's progress in one line.
func (m Model) viewSummary() string {
	v := m.store.View()
	order := "desc"
	if v.Ascending {
		order = "asc"
	}
	category := "all categories"
	if c, ok := m.store.Category(v.CategoryID); ok {
		category = c.Name
	}
	return fmt.Sprintf("%s · %s (%s) · %s · today %.0f%%",
		v.Filter, v.Sort, order, category, m.store.TodayProgress()*100)
}

func (m Model) statsContent() string {
	md := report.Markdown(m.store, constants.DefaultHistoryDays)
	grid := renderGrid(m.store.ContributionGrid(constants.DefaultGridWeeks))
	return grid + "\n\n" + report.Render(md)
}

func (m Model) viewAchievements() string {
	level := achievements.LevelFor(m.store.TotalCompletions())
	header := fmt.Sprintf("Level %d · %s  %s", level.Number, level.Title, progressBar(level.Progress, 20))
	return header + "\n\n" + report.Render(report.Achievements(m.store))
}

func (m Model) viewConfirmDelete() string {
	return lipgloss.Place(m.width, m.height-4,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render(fmt.Sprintf("Delete %q and all of its history?", m.habitToDeleteTitle)),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}

// renderGrid draws the contribution grid with weekdays as rows and weeks as
// columns, oldest week on the left.
func renderGrid(grid [][]int) string {
	if len(grid) == 0 {
		return ""
	}
	peak := 0
	for _, week := range grid {
		for _, n := range week {
			if n > peak {
				peak = n
			}
		}
	}

	var b strings.Builder
	for d := 0; d < 7; d++ {
		for _, week := range grid {
			b.WriteString(shade(week[d], peak).Render("■"))
			b.WriteByte(' ')
		}
		if d < 6 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func shade(n, peak int) lipgloss.Style {
	if n <= 0 || peak <= 0 {
		return gridShades[0]
	}
	levels := len(gridShades) - 1
	i := 1 + (n-1)*levels/peak
	if i > levels {
		i = levels
	}
	return gridShades[i]
}

func progressBar(progress float64, width int) string {
	filled := int(progress * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", width-filled) + "]"
}
