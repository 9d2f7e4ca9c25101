package store

import (
	"sort"
	"time"

	"github.com/julianstephens/habitkit/internal/constants"
	"github.com/julianstephens/habitkit/internal/logger"
	"github.com/julianstephens/habitkit/internal/models"
	"github.com/julianstephens/habitkit/internal/storage"
	"github.com/julianstephens/habitkit/internal/utils"
)

// EventKind says which collection a mutation touched.
type EventKind int

const (
	HabitsChanged EventKind = iota
	CategoriesChanged
	SettingsChanged
)

func (k EventKind) String() string {
	switch k {
	case HabitsChanged:
		return "habits"
	case CategoriesChanged:
		return "categories"
	case SettingsChanged:
		return "settings"
	}
	return "unknown"
}

// Event is delivered to subscribers after a mutation has been applied and persisted.
type Event struct {
	Kind EventKind
}

// HabitStore owns the habit and category collections. It is not safe for
// concurrent use; callers drive it from a single goroutine.
type HabitStore struct {
	provider   storage.Provider
	now        func() time.Time
	habits     []models.Habit
	categories []models.Category
	view       ViewState

	nextSub     int
	subscribers map[int]func(Event)
}

type Option func(*options)

type options struct {
	now    func() time.Time
	sample bool
}

// WithClock replaces time.Now as the source of "today".
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithSampleData seeds the demo habits when the loaded habit set is empty.
func WithSampleData() Option {
	return func(o *options) { o.sample = true }
}

// New loads habits and categories from provider. Missing or unreadable
// documents fall back to no habits and the default categories.
func New(provider storage.Provider, opts ...Option) *HabitStore {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	s := &HabitStore{
		provider:    provider,
		now:         o.now,
		view:        DefaultViewState(),
		subscribers: make(map[int]func(Event)),
	}
	s.load()

	if len(s.categories) == 0 {
		s.categories = models.DefaultCategories()
		s.saveCategories()
	}
	if o.sample && len(s.habits) == 0 {
		s.createSampleData()
	}
	return s
}

func (s *HabitStore) load() {
	s.habits = []models.Habit{}
	if data, ok := s.loadDocument(constants.DocHabits); ok {
		habits, err := storage.DecodeHabits(data)
		if err != nil {
			logger.Warn("Discarding unreadable habits document", "error", err)
		} else {
			s.habits = habits
		}
	}

	s.categories = nil
	if data, ok := s.loadDocument(constants.DocCategories); ok {
		categories, err := storage.DecodeCategories(data)
		if err != nil {
			logger.Warn("Discarding unreadable categories document", "error", err)
		} else {
			s.categories = categories
		}
	}
	logger.Debug("Store loaded", "habits", len(s.habits), "categories", len(s.categories))
}

func (s *HabitStore) loadDocument(key string) ([]byte, bool) {
	data, ok, err := s.provider.Load(key)
	if err != nil {
		logger.Warn("Failed to load document", "key", key, "error", err)
		return nil, false
	}
	return data, ok
}

func (s *HabitStore) saveHabits() {
	data, err := storage.EncodeHabits(s.habits)
	if err == nil {
		err = s.provider.Save(constants.DocHabits, data)
	}
	if err != nil {
		logger.Error("Failed to save habits", "error", err)
	}
	s.emit(HabitsChanged)
}

func (s *HabitStore) saveCategories() {
	data, err := storage.EncodeCategories(s.categories)
	if err == nil {
		err = s.provider.Save(constants.DocCategories, data)
	}
	if err != nil {
		logger.Error("Failed to save categories", "error", err)
	}
	s.emit(CategoriesChanged)
}

// Subscribe registers fn for every future Event and returns a function
// that removes it.
func (s *HabitStore) Subscribe(fn func(Event)) func() {
	id := s.nextSub
	s.nextSub++
	s.subscribers[id] = fn
	return func() { delete(s.subscribers, id) }
}

func (s *HabitStore) emit(kind EventKind) {
	ids := make([]int, 0, len(s.subscribers))
	for id := range s.subscribers {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		if fn, ok := s.subscribers[id]; ok {
			fn(Event{Kind: kind})
		}
	}
}

// Now is the store clock.
func (s *HabitStore) Now() time.Time {
	return s.now()
}

func (s *HabitStore) indexOf(id string) int {
	for i := range s.habits {
		if s.habits[i].ID == id {
			return i
		}
	}
	return -1
}

// Habits returns a snapshot of every habit in storage order.
func (s *HabitStore) Habits() []models.Habit {
	return cloneHabits(s.habits)
}

// Habit returns a snapshot of the habit with id.
func (s *HabitStore) Habit(id string) (models.Habit, bool) {
	i := s.indexOf(id)
	if i < 0 {
		return models.Habit{}, false
	}
	return s.habits[i].Clone(), true
}

// AddHabit inserts h at the front of the collection.
func (s *HabitStore) AddHabit(h models.Habit) {
	s.habits = append([]models.Habit{h.Clone()}, s.habits...)
	logger.Debug("Habit added", "id", h.ID, "title", h.Title)
	s.saveHabits()
}

// UpdateHabit replaces the habit with h's ID. It reports false and changes
// nothing when no such habit exists.
func (s *HabitStore) UpdateHabit(h models.Habit) bool {
	i := s.indexOf(h.ID)
	if i < 0 {
		return false
	}
	s.habits[i] = h.Clone()
	s.saveHabits()
	return true
}

func (s *HabitStore) DeleteHabit(id string) bool {
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.habits = append(s.habits[:i], s.habits[i+1:]...)
	logger.Debug("Habit deleted", "id", id)
	s.saveHabits()
	return true
}

func (s *HabitStore) ArchiveHabit(id string) bool {
	return s.setArchived(id, true)
}

func (s *HabitStore) UnarchiveHabit(id string) bool {
	return s.setArchived(id, false)
}

func (s *HabitStore) setArchived(id string, archived bool) bool {
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.habits[i].IsArchived = archived
	s.saveHabits()
	return true
}

// ToggleCompletion flips the completion of the calendar day containing date.
// It returns whether the day is now completed, and false for ok when the
// habit does not exist.
func (s *HabitStore) ToggleCompletion(id string, date time.Time) (completed bool, ok bool) {
	i := s.indexOf(id)
	if i < 0 {
		return false, false
	}
	h := &s.habits[i]
	target := utils.StartOfDay(date)

	// drop every entry on the target day so legacy duplicates cannot
	// leave the day marked after a toggle off
	kept := h.CompletedDates[:0]
	for _, d := range h.CompletedDates {
		if !utils.SameDay(d, target) {
			kept = append(kept, d)
		}
	}
	if len(kept) == len(h.CompletedDates) {
		kept = append(kept, target)
		completed = true
	}
	h.CompletedDates = kept
	sort.SliceStable(h.CompletedDates, func(a, b int) bool {
		return h.CompletedDates[a].After(h.CompletedDates[b])
	})

	logger.Debug("Completion toggled", "id", id, "day", target.Format(constants.DateFormat), "completed", completed)
	s.saveHabits()
	return completed, true
}

// ToggleCompletionToday toggles the current calendar day on the store clock.
func (s *HabitStore) ToggleCompletionToday(id string) (completed bool, ok bool) {
	return s.ToggleCompletion(id, s.now())
}

func cloneHabits(habits []models.Habit) []models.Habit {
	out := make([]models.Habit, len(habits))
	for i, h := range habits {
		out[i] = h.Clone()
	}
	return out
}
