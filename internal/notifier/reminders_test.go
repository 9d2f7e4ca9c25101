package notifier

import (
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/habitkit/internal/models"
)

// Thursday, 15 October 2026 at noon.
var testNow = time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)

func clock(hour, minute int) time.Time {
	return time.Date(0, 1, 1, hour, minute, 0, 0, time.UTC)
}

func TestPendingReminders(t *testing.T) {
	today := time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)

	late := models.NewHabit("Late", "c", models.WithReminder(clock(9, 30)))
	early := models.NewHabit("Early", "c", models.WithReminder(clock(7, 0)))
	future := models.NewHabit("Future", "c", models.WithReminder(clock(18, 0)))
	done := models.NewHabit("Done", "c", models.WithReminder(clock(8, 0)))
	done.CompletedDates = []time.Time{today}
	archived := models.NewHabit("Archived", "c", models.WithReminder(clock(8, 0)))
	archived.IsArchived = true
	weekend := models.NewHabit("Weekend", "c", models.WithReminder(clock(8, 0)), models.WithFrequency(models.FrequencyWeekends))
	silent := models.NewHabit("Silent", "c")
	exact := models.NewHabit("Exact", "c", models.WithReminder(clock(12, 0)))

	got := PendingReminders([]models.Habit{late, early, future, done, archived, weekend, silent, exact}, testNow)

	var titles []string
	for _, h := range got {
		titles = append(titles, h.Title)
	}
	want := []string{"Early", "Late", "Exact"}
	if strings.Join(titles, ",") != strings.Join(want, ",") {
		t.Errorf("PendingReminders() = %v, want %v", titles, want)
	}
}

func TestReminderText(t *testing.T) {
	h := models.NewHabit("Read", "c")
	if got := ReminderText(h, testNow); got != "Time for Read!" {
		t.Errorf("ReminderText() = %q", got)
	}

	h.CompletedDates = []time.Time{
		time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 10, 13, 0, 0, 0, 0, time.UTC),
	}
	if got := ReminderText(h, testNow); !strings.Contains(got, "2-day streak") {
		t.Errorf("ReminderText() = %q, want streak mention", got)
	}
}
