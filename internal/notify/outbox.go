package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/rpggio/ballotdesk/internal/domain/activity"
	"github.com/rpggio/ballotdesk/internal/domain/reminder"
)

// ActivityRepository records sent reminders.
type ActivityRepository interface {
	Log(ctx context.Context, entry *activity.Entry) error
}

// Outbox is the notification collaborator. It records and announces reminders;
// nothing is delivered.
type Outbox struct {
	activities ActivityRepository
	toasts     *Toasts
	logger     *slog.Logger
}

// NewOutbox creates an outbox. activities and toasts may be nil.
func NewOutbox(activities ActivityRepository, toasts *Toasts, logger *slog.Logger) *Outbox {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Outbox{activities: activities, toasts: toasts, logger: logger}
}

// Notify implements reminder.Notifier.
func (o *Outbox) Notify(ctx context.Context, p reminder.Payload) error {
	if o.activities != nil {
		details, err := json.Marshal(p)
		if err != nil {
			return fmt.Errorf("encoding reminder: %w", err)
		}
		ballotID := p.BallotID
		if err := o.activities.Log(ctx, &activity.Entry{
			BallotID: &ballotID,
			Type:     activity.TypeReminderSent,
			Summary:  p.Subject,
			Details:  string(details),
		}); err != nil {
			return fmt.Errorf("recording reminder: %w", err)
		}
	}

	o.logger.InfoContext(ctx, "reminder queued",
		"ballot_id", p.BallotID,
		"template", p.Template,
		"subject", p.Subject,
	)

	if o.toasts != nil {
		o.toasts.Push("Reminder Sent", "Reminder sent for "+p.Subject)
	}
	return nil
}

var _ reminder.Notifier = (*Outbox)(nil)
