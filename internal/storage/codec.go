package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/julianstephens/habitkit/internal/models"
)

// EncodeHabits serializes habits as a JSON array.
func EncodeHabits(habits []models.Habit) ([]byte, error) {
	if habits == nil {
		habits = []models.Habit{}
	}
	return json.Marshal(habits)
}

// DecodeHabits parses a habits document. Unknown frequencies are rejected so
// that a corrupt document is treated the same as an unreadable one.
func DecodeHabits(data []byte) ([]models.Habit, error) {
	var habits []models.Habit
	if err := decodeArray(data, &habits); err != nil {
		return nil, fmt.Errorf("failed to decode habits: %w", err)
	}
	for i, h := range habits {
		if !h.Frequency.Valid() {
			return nil, fmt.Errorf("failed to decode habits: habit %d has unknown frequency %q", i, h.Frequency)
		}
		if h.CustomDays == nil {
			habits[i].CustomDays = []int{}
		}
		if h.CompletedDates == nil {
			habits[i].CompletedDates = []time.Time{}
		}
	}
	if habits == nil {
		habits = []models.Habit{}
	}
	return habits, nil
}

func EncodeCategories(categories []models.Category) ([]byte, error) {
	if categories == nil {
		categories = []models.Category{}
	}
	return json.Marshal(categories)
}

func DecodeCategories(data []byte) ([]models.Category, error) {
	var categories []models.Category
	if err := decodeArray(data, &categories); err != nil {
		return nil, fmt.Errorf("failed to decode categories: %w", err)
	}
	if categories == nil {
		categories = []models.Category{}
	}
	return categories, nil
}

func EncodeSettings(settings models.Settings) ([]byte, error) {
	return json.Marshal(settings)
}

func DecodeSettings(data []byte) (models.Settings, error) {
	var settings models.Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		return models.Settings{}, fmt.Errorf("failed to decode settings: %w", err)
	}
	return settings, nil
}

// decodeArray requires the document to be a JSON array; a bare null or an
// object is an error.
func decodeArray(data []byte, v interface{}) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return fmt.Errorf("expected a JSON array")
	}
	return json.Unmarshal(trimmed, v)
}

// Bundle is the single-file export of every habit and category.
type Bundle struct {
	Habits     []models.Habit    `json:"habits"`
	Categories []models.Category `json:"categories"`
	ExportedAt time.Time         `json:"exported_at"`
}

func EncodeBundle(b Bundle) ([]byte, error) {
	if b.Habits == nil {
		b.Habits = []models.Habit{}
	}
	if b.Categories == nil {
		b.Categories = []models.Category{}
	}
	return json.MarshalIndent(b, "", "  ")
}

// DecodeBundle parses an export and applies the same checks as the
// individual documents.
func DecodeBundle(data []byte) (Bundle, error) {
	var raw struct {
		Habits     json.RawMessage `json:"habits"`
		Categories json.RawMessage `json:"categories"`
		ExportedAt time.Time       `json:"exported_at"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return Bundle{}, fmt.Errorf("failed to decode export: %w", err)
	}
	habits, err := DecodeHabits(raw.Habits)
	if err != nil {
		return Bundle{}, err
	}
	categories, err := DecodeCategories(raw.Categories)
	if err != nil {
		return Bundle{}, err
	}
	return Bundle{Habits: habits, Categories: categories, ExportedAt: raw.ExportedAt}, nil
}
