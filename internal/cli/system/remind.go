package system

import (
	"context"
	"fmt"
	"time"

	"github.com/julianstephens/habitkit/internal/cli"
	"github.com/julianstephens/habitkit/internal/logger"
	"github.com/julianstephens/habitkit/internal/notifier"
)

// Sender delivers one notification. *notifier.Notifier satisfies it.
type Sender interface {
	Notify(ctx context.Context, text string) error
}

// newSender is replaced in tests.
var newSender = func() Sender { return notifier.New() }

type RemindCmd struct {
	DryRun  bool          `help:"Print reminders instead of sending them."`
	Timeout time.Duration `help:"Give up delivering after this long." default:"10s"`
}

func (c *RemindCmd) Run(ctx *cli.Context) error {
	s := ctx.Store()
	now := s.Now()

	pending := notifier.PendingReminders(s.Habits(), now)
	if len(pending) == 0 {
		if c.DryRun {
			fmt.Println("No reminders due.")
		}
		return nil
	}

	if c.DryRun {
		for _, h := range pending {
			fmt.Println("[DryRun] " + notifier.ReminderText(h, now))
		}
		return nil
	}

	runCtx, cancel := context.WithTimeout(context.Background(), c.Timeout)
	defer cancel()

	sender := newSender()
	failed := 0
	for _, h := range pending {
		if err := sender.Notify(runCtx, notifier.ReminderText(h, now)); err != nil {
			logger.Warn("Failed to send reminder", "habit", h.Title, "error", err)
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("failed to send %d of %d reminders", failed, len(pending))
	}
	fmt.Printf("Sent %d reminders\n", len(pending))
	return nil
}
