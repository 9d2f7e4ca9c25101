package models

import "github.com/google/uuid"

// Category groups habits. Names are unique within a store.
type Category struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Icon     string `json:"icon"`
	ColorHex string `json:"color_hex"`
}

func NewCategory(name, icon, colorHex string) Category {
	return Category{
		ID:       uuid.New().String(),
		Name:     name,
		Icon:     icon,
		ColorHex: colorHex,
	}
}

var defaultCategoryStyles = []struct {
	name, icon, color string
}{
	{"Health", "heart.fill", "#FF6B6B"},
	{"Fitness", "figure.run", "#4ECDC4"},
	{"Learning", "book.fill", "#5B8DEF"},
	{"Productivity", "bolt.fill", "#FFE66D"},
	{"Mindfulness", "brain.head.profile", "#A78BFA"},
	{"Social", "person.2.fill", "#F472B6"},
	{"Finance", "dollarsign.circle.fill", "#34D399"},
	{"Creativity", "paintbrush.fill", "#FB923C"},
}

// DefaultCategories returns the built-in category set with fresh IDs.
func DefaultCategories() []Category {
	cats := make([]Category, 0, len(defaultCategoryStyles))
	for _, d := range defaultCategoryStyles {
		cats = append(cats, NewCategory(d.name, d.icon, d.color))
	}
	return cats
}

// HabitColors is the preset palette offered by editors.
var HabitColors = []string{
	"#FF6B6B", "#4ECDC4", "#5B8DEF", "#FFE66D", "#A78BFA",
	"#F472B6", "#34D399", "#FB923C", "#F87171", "#60A5FA",
	"#FBBF24", "#A3E635", "#E879F9", "#22D3EE", "#F97316",
}
