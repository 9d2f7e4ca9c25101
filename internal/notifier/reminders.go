package notifier

import (
	"fmt"
	"sort"
	"time"

	"github.com/julianstephens/habitkit/internal/models"
	"github.com/julianstephens/habitkit/internal/utils"
)

// PendingReminders selects the active habits due today whose reminder time
// has passed and that are not completed yet, earliest reminder first.
func PendingReminders(habits []models.Habit, now time.Time) []models.Habit {
	var pending []models.Habit
	for _, h := range habits {
		if h.IsArchived || !h.ReminderEnabled || h.ReminderTime == nil {
			continue
		}
		if !h.IsDueOn(now) || h.IsCompleted(now) {
			continue
		}
		if utils.AtTimeOfDay(now, *h.ReminderTime).After(now) {
			continue
		}
		pending = append(pending, h)
	}
	sort.SliceStable(pending, func(i, j int) bool {
		a, b := pending[i].ReminderTime, pending[j].ReminderTime
		return a.Hour()*60+a.Minute() < b.Hour()*60+b.Minute()
	})
	return pending
}

// ReminderText is the notification body for a habit reminder.
func ReminderText(h models.Habit, now time.Time) string {
	if streak := h.CurrentStreak(now); streak > 0 {
		return fmt.Sprintf("Time for %s! Keep your %d-day streak going.", h.Title, streak)
	}
	return fmt.Sprintf("Time for %s!", h.Title)
}
