package store

import (
	"github.com/julianstephens/habitkit/internal/logger"
	"github.com/julianstephens/habitkit/internal/models"
	"github.com/julianstephens/habitkit/internal/utils"
)

type sampleHabit struct {
	title, notes, icon, color, category string
	frequency                           models.Frequency
	days                                int
}

var sampleHabits = []sampleHabit{
	{"Morning Run", "30 minutes of cardio to start the day", "figure.run", "#FF6B6B", "Fitness", models.FrequencyWeekdays, 5},
	{"Read for 30 minutes", "Fiction or non-fiction, just read!", "book.fill", "#5B8DEF", "Learning", models.FrequencyDaily, 10},
	{"Meditate", "10 minutes of mindfulness", "brain.head.profile", "#A78BFA", "Mindfulness", models.FrequencyDaily, 3},
	{"Drink 8 glasses of water", "Stay hydrated!", "drop.fill", "#4ECDC4", "Health", models.FrequencyDaily, 1},
}

// createSampleData seeds the demo habits, each completed on its last few
// days up to today. Nothing is created unless every sample category exists.
func (s *HabitStore) createSampleData() {
	ids := make(map[string]string, len(sampleHabits))
	for _, sample := range sampleHabits {
		c, ok := s.CategoryByName(sample.category)
		if !ok {
			logger.Debug("Skipping sample data, category missing", "category", sample.category)
			return
		}
		ids[sample.category] = c.ID
	}

	now := s.now()
	today := utils.StartOfDay(now)
	habits := make([]models.Habit, 0, len(sampleHabits))
	for _, sample := range sampleHabits {
		h := models.NewHabit(sample.title, ids[sample.category],
			models.WithNotes(sample.notes),
			models.WithIcon(sample.icon),
			models.WithColor(sample.color),
			models.WithFrequency(sample.frequency),
			models.WithCreatedAt(now),
		)
		for i := 0; i < sample.days; i++ {
			h.CompletedDates = append(h.CompletedDates, utils.AddDays(today, -i))
		}
		habits = append(habits, h)
	}
	s.habits = habits
	s.saveHabits()
}

// LoadSampleData seeds the demo habits when the store has none.
func (s *HabitStore) LoadSampleData() bool {
	if len(s.habits) > 0 {
		return false
	}
	s.createSampleData()
	return len(s.habits) > 0
}
