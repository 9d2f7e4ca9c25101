package store

import (
	"sort"

	"github.com/julianstephens/habitkit/internal/constants"
	"github.com/julianstephens/habitkit/internal/logger"
	"github.com/julianstephens/habitkit/internal/models"
)

// Categories returns a snapshot of the categories, sorted by name once any
// category has been added.
func (s *HabitStore) Categories() []models.Category {
	return append([]models.Category(nil), s.categories...)
}

// CategoryFor resolves the category a habit points at.
func (s *HabitStore) CategoryFor(h models.Habit) (models.Category, bool) {
	return s.Category(h.CategoryID)
}

func (s *HabitStore) Category(id string) (models.Category, bool) {
	for _, c := range s.categories {
		if c.ID == id {
			return c, true
		}
	}
	return models.Category{}, false
}

// CategoryByName matches names exactly.
func (s *HabitStore) CategoryByName(name string) (models.Category, bool) {
	for _, c := range s.categories {
		if c.Name == name {
			return c, true
		}
	}
	return models.Category{}, false
}

// AddCategory appends c unless a category with the same name exists.
func (s *HabitStore) AddCategory(c models.Category) bool {
	if _, exists := s.CategoryByName(c.Name); exists {
		return false
	}
	s.categories = append(s.categories, c)
	sort.SliceStable(s.categories, func(i, j int) bool {
		return s.categories[i].Name < s.categories[j].Name
	})
	s.saveCategories()
	return true
}

func (s *HabitStore) UpdateCategory(c models.Category) bool {
	for i := range s.categories {
		if s.categories[i].ID == c.ID {
			s.categories[i] = c
			s.saveCategories()
			return true
		}
	}
	return false
}

// DeleteCategory moves the category's habits to the first other category
// and removes it. When it is the only category and habits still use it, an
// Uncategorized category is created to receive them.
func (s *HabitStore) DeleteCategory(id string) bool {
	if _, ok := s.Category(id); !ok {
		return false
	}

	var fallback *models.Category
	for i := range s.categories {
		if s.categories[i].ID != id {
			fallback = &s.categories[i]
			break
		}
	}
	if fallback == nil && s.referenced(id) {
		c := models.NewCategory(constants.FallbackCategoryName, constants.FallbackCategoryIcon, constants.FallbackCategoryColor)
		s.categories = append(s.categories, c)
		fallback = &s.categories[len(s.categories)-1]
		logger.Info("Created fallback category for orphaned habits", "category", c.Name)
	}

	if fallback != nil {
		fallbackID := fallback.ID
		moved := 0
		for i := range s.habits {
			if s.habits[i].CategoryID == id {
				s.habits[i].CategoryID = fallbackID
				moved++
			}
		}
		if moved > 0 {
			logger.Debug("Reassigned habits", "from", id, "to", fallbackID, "count", moved)
			s.saveHabits()
		}
	}

	kept := s.categories[:0]
	for _, c := range s.categories {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	s.categories = kept
	s.saveCategories()
	return true
}

func (s *HabitStore) referenced(categoryID string) bool {
	for _, h := range s.habits {
		if h.CategoryID == categoryID {
			return true
		}
	}
	return false
}

// HabitsCount counts the active habits in a category.
func (s *HabitStore) HabitsCount(categoryID string) int {
	n := 0
	for _, h := range s.habits {
		if h.CategoryID == categoryID && !h.IsArchived {
			n++
		}
	}
	return n
}
