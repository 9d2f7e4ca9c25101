package habits

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/habitkit/internal/models"
)

type AddHabitMsg struct{}

type ToggleHabitMsg struct {
	ID string
}

type ArchiveHabitMsg struct {
	ID       string
	Archived bool // current state; the handler flips it
}

type DeleteHabitMsg struct {
	ID    string
	Title string
}

type Item struct {
	Habit     models.Habit
	Category  string
	Completed bool
	Due       bool
	Streak    int
}

func (i Item) Title() string {
	switch {
	case i.Habit.IsArchived:
		return "[ARCHIVED] " + i.Habit.Title
	case i.Completed:
		return "✓ " + i.Habit.Title
	default:
		return "○ " + i.Habit.Title
	}
}

func (i Item) Description() string {
	desc := fmt.Sprintf("%s | %s | streak %d", i.Category, i.Habit.Frequency, i.Streak)
	if !i.Habit.IsArchived && !i.Due {
		desc += " | not due today"
	}
	return desc
}

func (i Item) FilterValue() string { return i.Habit.Title }

type KeyMap struct {
	Add     key.Binding
	Toggle  key.Binding
	Archive key.Binding
	Delete  key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space", "toggle today"),
		),
		Archive: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "archive/unarchive"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(width, height int) Model {
	l := list.New(nil, list.NewDefaultDelegate(), width, height)
	l.Title = "Habits"
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	// searching goes through the store so it matches notes too
	l.SetFilteringEnabled(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Toggle, keys.Archive, keys.Delete}
	}
	l.AdditionalFullHelpKeys = l.AdditionalShortHelpKeys

	return Model{list: l, keys: keys}
}

// SetHabits replaces the list contents, keeping the cursor position when
// possible. categoryName resolves a habit's category for display.
func (m *Model) SetHabits(habits []models.Habit, categoryName func(models.Habit) string, now time.Time) {
	items := make([]list.Item, len(habits))
	for i, h := range habits {
		items[i] = Item{
			Habit:     h,
			Category:  categoryName(h),
			Completed: h.IsCompleted(now),
			Due:       h.IsDueOn(now),
			Streak:    h.CurrentStreak(now),
		}
	}
	index := m.list.Index()
	m.list.SetItems(items)
	if index >= len(items) && len(items) > 0 {
		index = len(items) - 1
	}
	m.list.Select(index)
}

func (m Model) Selected() (Item, bool) {
	i, ok := m.list.SelectedItem().(Item)
	return i, ok
}

func (m Model) Len() int {
	return len(m.list.Items())
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Add):
			return m, func() tea.Msg { return AddHabitMsg{} }
		case key.Matches(msg, m.keys.Toggle):
			if i, ok := m.Selected(); ok && !i.Habit.IsArchived {
				return m, func() tea.Msg { return ToggleHabitMsg{ID: i.Habit.ID} }
			}
			return m, nil
		case key.Matches(msg, m.keys.Archive):
			if i, ok := m.Selected(); ok {
				return m, func() tea.Msg { return ArchiveHabitMsg{ID: i.Habit.ID, Archived: i.Habit.IsArchived} }
			}
			return m, nil
		case key.Matches(msg, m.keys.Delete):
			if i, ok := m.Selected(); ok {
				return m, func() tea.Msg { return DeleteHabitMsg{ID: i.Habit.ID, Title: i.Habit.Title} }
			}
			return m, nil
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 {
		return "\n  No habits match this view.\n  Press 'a' to add one or 'f' to change the filter."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
