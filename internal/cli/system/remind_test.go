package system

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/julianstephens/habitkit/internal/models"
	"github.com/julianstephens/habitkit/internal/storage"
)

type fakeSender struct {
	sent []string
	err  error
}

func (f *fakeSender) Notify(ctx context.Context, text string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, text)
	return nil
}

func withSender(t *testing.T, s Sender) {
	t.Helper()
	orig := newSender
	newSender = func() Sender { return s }
	t.Cleanup(func() { newSender = orig })
}

func at(hour, minute int) time.Time {
	return time.Date(0, 1, 1, hour, minute, 0, 0, time.UTC)
}

func TestRemindCmd(t *testing.T) {
	ctx := newContext(t, storage.NewMemoryStore())
	s := ctx.Store()
	cat := s.Categories()[0].ID

	s.AddHabit(models.NewHabit("Stretch", cat, models.WithReminder(at(9, 0))))
	s.AddHabit(models.NewHabit("Read", cat, models.WithReminder(at(7, 30))))
	s.AddHabit(models.NewHabit("Evening walk", cat, models.WithReminder(at(18, 0))))
	s.AddHabit(models.NewHabit("No reminder", cat))
	done := models.NewHabit("Done", cat, models.WithReminder(at(8, 0)))
	done.CompletedDates = []time.Time{testNow}
	s.AddHabit(done)

	sender := &fakeSender{}
	withSender(t, sender)

	if err := (&RemindCmd{Timeout: time.Second}).Run(ctx); err != nil {
		t.Fatalf("remind failed: %v", err)
	}
	want := []string{"Time for Read!", "Time for Stretch!"}
	if len(sender.sent) != len(want) {
		t.Fatalf("sent %v, want %v", sender.sent, want)
	}
	for i := range want {
		if sender.sent[i] != want[i] {
			t.Errorf("sent[%d] = %q, want %q", i, sender.sent[i], want[i])
		}
	}
}

func TestRemindCmd_DryRunSendsNothing(t *testing.T) {
	ctx := newContext(t, storage.NewMemoryStore())
	s := ctx.Store()
	s.AddHabit(models.NewHabit("Read", s.Categories()[0].ID, models.WithReminder(at(7, 30))))

	sender := &fakeSender{}
	withSender(t, sender)

	if err := (&RemindCmd{DryRun: true, Timeout: time.Second}).Run(ctx); err != nil {
		t.Fatalf("remind --dry-run failed: %v", err)
	}
	if len(sender.sent) != 0 {
		t.Errorf("dry run sent %v", sender.sent)
	}
}

func TestRemindCmd_DeliveryFailure(t *testing.T) {
	ctx := newContext(t, storage.NewMemoryStore())
	s := ctx.Store()
	s.AddHabit(models.NewHabit("Read", s.Categories()[0].ID, models.WithReminder(at(7, 30))))

	withSender(t, &fakeSender{err: errors.New("tray not running")})
	if err := (&RemindCmd{Timeout: time.Second}).Run(ctx); err == nil {
		t.Error("expected an error when delivery fails")
	}
}

func TestRemindCmd_NothingDue(t *testing.T) {
	ctx := newContext(t, storage.NewMemoryStore())
	withSender(t, &fakeSender{err: errors.New("should not be called")})
	if err := (&RemindCmd{Timeout: time.Second}).Run(ctx); err != nil {
		t.Errorf("remind with no habits failed: %v", err)
	}
}
