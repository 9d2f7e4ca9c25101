package store

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/julianstephens/habitkit/internal/models"
)

type SortOption string

const (
	SortName           SortOption = "Name"
	SortStreak         SortOption = "Streak"
	SortCompletionRate SortOption = "Completion Rate"
	SortDateCreated    SortOption = "Date Created"
	SortCategory       SortOption = "Category"
)

var SortOptions = []SortOption{SortName, SortStreak, SortCompletionRate, SortDateCreated, SortCategory}

type FilterOption string

const (
	FilterAll        FilterOption = "All"
	FilterActive     FilterOption = "Active"
	FilterArchived   FilterOption = "Archived"
	FilterDueToday   FilterOption = "Due Today"
	FilterCompleted  FilterOption = "Completed Today"
	FilterIncomplete FilterOption = "Incomplete Today"
)

var FilterOptions = []FilterOption{FilterAll, FilterActive, FilterArchived, FilterDueToday, FilterCompleted, FilterIncomplete}

// ParseSortOption accepts the display name or a compact form such as
// "completion-rate" or "created".
func ParseSortOption(s string) (SortOption, error) {
	key := compactKey(s)
	for _, o := range SortOptions {
		if compactKey(string(o)) == key {
			return o, nil
		}
	}
	switch key {
	case "rate":
		return SortCompletionRate, nil
	case "created", "date":
		return SortDateCreated, nil
	}
	return "", fmt.Errorf("unknown sort option: %q", s)
}

// ParseFilterOption accepts the display name or a compact form such as "due".
func ParseFilterOption(s string) (FilterOption, error) {
	key := compactKey(s)
	for _, o := range FilterOptions {
		if compactKey(string(o)) == key {
			return o, nil
		}
	}
	switch key {
	case "due":
		return FilterDueToday, nil
	case "completed", "done":
		return FilterCompleted, nil
	case "incomplete", "todo":
		return FilterIncomplete, nil
	}
	return "", fmt.Errorf("unknown filter option: %q", s)
}

func compactKey(s string) string {
	r := strings.NewReplacer(" ", "", "-", "", "_", "")
	return strings.ToLower(r.Replace(strings.TrimSpace(s)))
}

// ViewState is the transient list presentation. It is never persisted.
type ViewState struct {
	Sort       SortOption
	Ascending  bool
	Filter     FilterOption
	Search     string
	CategoryID string // empty means every category
}

// DefaultViewState lists active habits, newest first.
func DefaultViewState() ViewState {
	return ViewState{
		Sort:      SortDateCreated,
		Ascending: false,
		Filter:    FilterActive,
	}
}

func (s *HabitStore) View() ViewState {
	return s.view
}

func (s *HabitStore) SetView(v ViewState) {
	s.view = v
}

// FilteredHabits applies the current view to the collection.
func (s *HabitStore) FilteredHabits() []models.Habit {
	return ApplyView(s.habits, s.categories, s.view, s.now())
}

// ApplyView restricts habits to v.CategoryID, applies the status filter,
// then the search, then a stable sort. now decides "today" for the
// filters and the streak and rate keys. The result is a deep copy.
func ApplyView(habits []models.Habit, categories []models.Category, v ViewState, now time.Time) []models.Habit {
	result := make([]models.Habit, 0, len(habits))
	for _, h := range habits {
		if v.CategoryID != "" && h.CategoryID != v.CategoryID {
			continue
		}
		if !matchesFilter(h, v.Filter, now) {
			continue
		}
		result = append(result, h)
	}

	if v.Search != "" {
		fold := cases.Fold()
		needle := fold.String(v.Search)
		searched := result[:0]
		for _, h := range result {
			if strings.Contains(fold.String(h.Title), needle) || strings.Contains(fold.String(h.Notes), needle) {
				searched = append(searched, h)
			}
		}
		result = searched
	}

	sortHabits(result, categories, v.Sort, v.Ascending, now)
	return cloneHabits(result)
}

func matchesFilter(h models.Habit, f FilterOption, now time.Time) bool {
	switch f {
	case FilterActive:
		return !h.IsArchived
	case FilterArchived:
		return h.IsArchived
	case FilterDueToday:
		return h.IsDueOn(now) && !h.IsArchived
	case FilterCompleted:
		return h.IsCompleted(now) && !h.IsArchived
	case FilterIncomplete:
		return !h.IsCompleted(now) && !h.IsArchived
	default:
		return true
	}
}

// sortHabits orders habits in place. Keys are computed once per habit;
// descending order reverses the comparator and ties keep input order.
func sortHabits(habits []models.Habit, categories []models.Category, by SortOption, ascending bool, now time.Time) {
	type keyed struct {
		habit  models.Habit
		text   string
		number float64
		at     time.Time
	}

	names := make(map[string]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}

	items := make([]keyed, len(habits))
	for i, h := range habits {
		k := keyed{habit: h}
		switch by {
		case SortName:
			k.text = h.Title
		case SortCategory:
			k.text = names[h.CategoryID]
		case SortStreak:
			k.number = float64(h.CurrentStreak(now))
		case SortCompletionRate:
			k.number = h.CompletionRateThisMonth(now)
		default:
			k.at = h.CreatedAt
		}
		items[i] = k
	}

	col := collate.New(language.Und)
	less := func(a, b keyed) bool {
		switch by {
		case SortName, SortCategory:
			return col.CompareString(a.text, b.text) < 0
		case SortStreak, SortCompletionRate:
			return a.number < b.number
		default:
			return a.at.Before(b.at)
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		if ascending {
			return less(items[i], items[j])
		}
		return less(items[j], items[i])
	})
	for i := range items {
		habits[i] = items[i].habit
	}
}
