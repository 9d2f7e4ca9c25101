package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habitkit/internal/models"
	"github.com/julianstephens/habitkit/internal/store"
	"github.com/julianstephens/habitkit/internal/tui/components/habits"
)

type SessionState int

const (
	StateHabits SessionState = iota
	StateStats
	StateAchievements
	StateAddHabit
	StateSearch
	StateConfirmDelete
)

// tabCount is the number of tabbed states at the start of SessionState.
const tabCount = 3

var tabTitles = []string{"Habits", "Stats", "Achievements"}

// storeEventMsg carries a store change notification into the update loop.
type storeEventMsg store.Event

type Model struct {
	store  *store.HabitStore
	events chan store.Event
	unsub  func()

	state       SessionState
	keys        KeyMap
	help        help.Model
	habitsModel habits.Model
	search      textinput.Model
	stats       viewport.Model
	form        *huh.Form
	habitForm   *HabitFormModel

	habitToDeleteID    string
	habitToDeleteTitle string
	status             string
	quitting           bool
	width              int
	height             int
}

func NewModel(s *store.HabitStore) Model {
	search := textinput.New()
	search.Placeholder = "search titles and notes"
	search.Prompt = "/ "
	search.SetValue(s.View().Search)

	m := Model{
		store:       s,
		events:      make(chan store.Event, 16),
		state:       StateHabits,
		keys:        DefaultKeyMap(),
		help:        help.New(),
		habitsModel: habits.New(0, 0),
		search:      search,
		stats:       viewport.New(0, 0),
	}
	events := m.events
	m.unsub = s.Subscribe(func(ev store.Event) {
		select {
		case events <- ev:
		default:
			// a refresh is already queued
		}
	})
	m.refresh()
	return m
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	if m.state == StateHabits {
		hk := habits.DefaultKeyMap()
		keys = append(keys, hk.Add, hk.Toggle, m.keys.Filter, m.keys.Sort, m.keys.Search)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help}
	if m.state != StateHabits {
		return [][]key.Binding{global}
	}
	hk := habits.DefaultKeyMap()
	return [][]key.Binding{
		global,
		{hk.Add, hk.Toggle, hk.Archive, hk.Delete},
		{m.keys.Filter, m.keys.Sort, m.keys.Reverse, m.keys.Category, m.keys.Search},
	}
}

func (m Model) Init() tea.Cmd {
	return waitForEvent(m.events)
}

func waitForEvent(events <-chan store.Event) tea.Cmd {
	return func() tea.Msg {
		return storeEventMsg(<-events)
	}
}

// refresh re-reads the store into the list and the stats pane.
func (m *Model) refresh() {
	m.habitsModel.SetHabits(m.store.FilteredHabits(), m.categoryName, m.store.Now())
	m.stats.SetContent(m.statsContent())
}

func (m Model) categoryName(h models.Habit) string {
	if c, ok := m.store.CategoryFor(h); ok {
		return c.Name
	}
	return "Uncategorized"
}

// nextFilter advances the status filter, wrapping around.
func nextFilter(f store.FilterOption) store.FilterOption {
	for i, o := range store.FilterOptions {
		if o == f {
			return store.FilterOptions[(i+1)%len(store.FilterOptions)]
		}
	}
	return store.FilterOptions[0]
}

func nextSort(s store.SortOption) store.SortOption {
	for i, o := range store.SortOptions {
		if o == s {
			return store.SortOptions[(i+1)%len(store.SortOptions)]
		}
	}
	return store.SortOptions[0]
}

// nextCategory cycles through every category and back to all categories.
func nextCategory(categories []models.Category, current string) string {
	if current == "" {
		if len(categories) == 0 {
			return ""
		}
		return categories[0].ID
	}
	for i, c := range categories {
		if c.ID == current && i+1 < len(categories) {
			return categories[i+1].ID
		}
	}
	return ""
}
