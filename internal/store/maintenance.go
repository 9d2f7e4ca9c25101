package store

import (
	"fmt"

	"github.com/julianstephens/habitkit/internal/constants"
	"github.com/julianstephens/habitkit/internal/logger"
	"github.com/julianstephens/habitkit/internal/models"
	"github.com/julianstephens/habitkit/internal/storage"
)

// ResetAllData drops every habit and restores the default categories.
func (s *HabitStore) ResetAllData() {
	s.habits = []models.Habit{}
	s.categories = models.DefaultCategories()
	logger.Info("All habit data reset")
	s.saveHabits()
	s.saveCategories()
}

// Export encodes habits and categories into one bundle.
func (s *HabitStore) Export() ([]byte, error) {
	data, err := storage.EncodeBundle(storage.Bundle{
		Habits:     s.habits,
		Categories: s.categories,
		ExportedAt: s.now(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode export: %w", err)
	}
	return data, nil
}

// Import replaces habits and categories with the bundle's contents. An
// empty category list is replaced by the defaults.
func (s *HabitStore) Import(b storage.Bundle) {
	s.habits = cloneHabits(b.Habits)
	s.categories = append([]models.Category(nil), b.Categories...)
	if len(s.categories) == 0 {
		s.categories = models.DefaultCategories()
	}
	logger.Info("Imported habit data", "habits", len(s.habits), "categories", len(s.categories))
	s.saveHabits()
	s.saveCategories()
}

// Settings returns the stored preferences with defaults filled in.
func (s *HabitStore) Settings() models.Settings {
	var settings models.Settings
	if data, ok := s.loadDocument(constants.DocSettings); ok {
		decoded, err := storage.DecodeSettings(data)
		if err != nil {
			logger.Warn("Discarding unreadable settings document", "error", err)
		} else {
			settings = decoded
		}
	}
	models.ApplyDefaultSettings(&settings, s.now())
	return settings
}

func (s *HabitStore) SaveSettings(settings models.Settings) {
	data, err := storage.EncodeSettings(settings)
	if err == nil {
		err = s.provider.Save(constants.DocSettings, data)
	}
	if err != nil {
		logger.Error("Failed to save settings", "error", err)
	}
	s.emit(SettingsChanged)
}
