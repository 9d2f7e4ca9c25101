package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habitkit/internal/logger"
	"github.com/julianstephens/habitkit/internal/models"
	"github.com/julianstephens/habitkit/internal/tui/components/habits"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.habitsModel.SetSize(msg.Width-4, msg.Height-6)
		m.stats.Width = msg.Width - 4
		m.stats.Height = msg.Height - 6
		m.stats.SetContent(m.statsContent())
		return m, nil

	case storeEventMsg:
		logger.Debug("Store changed", "kind", msg.Kind)
		m.refresh()
		return m, waitForEvent(m.events)
	}

	switch m.state {
	case StateAddHabit:
		return m.updateAddHabit(msg)
	case StateSearch:
		return m.updateSearch(msg)
	case StateConfirmDelete:
		return m.updateConfirmDelete(msg)
	}

	if handled, cmd := m.handleHabitMessages(msg); handled {
		return m, cmd
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			if m.unsub != nil {
				m.unsub()
			}
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Tab):
			m.state = (m.state + 1) % tabCount
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab):
			m.state = (m.state - 1 + tabCount) % tabCount
			return m, nil
		}

		if m.state == StateHabits {
			if cmd, ok := m.handleViewKeys(msg); ok {
				return m, cmd
			}
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case StateHabits:
		m.habitsModel, cmd = m.habitsModel.Update(msg)
	case StateStats:
		m.stats, cmd = m.stats.Update(msg)
	}
	return m, cmd
}

// handleViewKeys changes the store's view state for filter, sort and search keys.
func (m *Model) handleViewKeys(msg tea.KeyMsg) (tea.Cmd, bool) {
	view := m.store.View()
	switch {
	case key.Matches(msg, m.keys.Filter):
		view.Filter = nextFilter(view.Filter)
	case key.Matches(msg, m.keys.Sort):
		view.Sort = nextSort(view.Sort)
	case key.Matches(msg, m.keys.Reverse):
		view.Ascending = !view.Ascending
	case key.Matches(msg, m.keys.Category):
		view.CategoryID = nextCategory(m.store.Categories(), view.CategoryID)
	case key.Matches(msg, m.keys.Search):
		m.state = StateSearch
		return m.search.Focus(), true
	default:
		return nil, false
	}
	m.store.SetView(view)
	m.refresh()
	return nil, true
}

func (m *Model) handleHabitMessages(msg tea.Msg) (bool, tea.Cmd) {
	switch msg := msg.(type) {
	case habits.AddHabitMsg:
		categories := m.store.Categories()
		m.habitForm = &HabitFormModel{Frequency: models.FrequencyDaily}
		if len(categories) > 0 {
			m.habitForm.CategoryID = categories[0].ID
		}
		m.form = NewHabitForm(m.habitForm, categories)
		m.state = StateAddHabit
		return true, m.form.Init()

	case habits.ToggleHabitMsg:
		if completed, ok := m.store.ToggleCompletionToday(msg.ID); ok {
			if completed {
				m.status = "Marked done for today"
			} else {
				m.status = "Unmarked for today"
			}
		}
		return true, nil

	case habits.ArchiveHabitMsg:
		if msg.Archived {
			m.store.UnarchiveHabit(msg.ID)
			m.status = "Habit unarchived"
		} else {
			m.store.ArchiveHabit(msg.ID)
			m.status = "Habit archived"
		}
		return true, nil

	case habits.DeleteHabitMsg:
		m.habitToDeleteID = msg.ID
		m.habitToDeleteTitle = msg.Title
		m.state = StateConfirmDelete
		return true, nil
	}
	return false, nil
}

func (m Model) updateAddHabit(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.state = StateHabits
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		habit, err := buildHabit(*m.habitForm, m.store.Now())
		if err != nil {
			// stay in the form so the input can be corrected
			m.status = err.Error()
			m.form.State = huh.StateNormal
			return m, cmd
		}
		m.store.AddHabit(habit)
		m.status = fmt.Sprintf("Added %q", habit.Title)
		m.state = StateHabits
	case huh.StateAborted:
		m.state = StateHabits
	}
	return m, cmd
}

func (m Model) updateSearch(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.Type {
		case tea.KeyEnter:
			m.search.Blur()
			m.state = StateHabits
			return m, nil
		case tea.KeyEsc:
			m.search.SetValue("")
			m.search.Blur()
			m.applySearch()
			m.state = StateHabits
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.applySearch()
	return m, cmd
}

func (m *Model) applySearch() {
	view := m.store.View()
	if view.Search == m.search.Value() {
		return
	}
	view.Search = m.search.Value()
	m.store.SetView(view)
	m.refresh()
}

func (m Model) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(keyMsg, m.keys.Confirm):
		if m.store.DeleteHabit(m.habitToDeleteID) {
			m.status = fmt.Sprintf("Deleted %q", m.habitToDeleteTitle)
		}
		m.habitToDeleteID, m.habitToDeleteTitle = "", ""
		m.state = StateHabits
	case key.Matches(keyMsg, m.keys.Cancel):
		m.habitToDeleteID, m.habitToDeleteTitle = "", ""
		m.state = StateHabits
	}
	return m, nil
}
