package notify_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/rpggio/ballotdesk/internal/domain/activity"
	"github.com/rpggio/ballotdesk/internal/domain/reminder"
	"github.com/rpggio/ballotdesk/internal/notify"
	"github.com/rpggio/ballotdesk/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestOutbox_NotifyRecordsAndToasts(t *testing.T) {
	ctx := context.Background()
	activities := &mocks.ActivityRepository{}
	toasts := notify.NewToasts(time.Minute)
	defer toasts.Close()

	p := reminder.Payload{
		BallotID: "demo-2",
		Template: reminder.TemplateReminder,
		Subject:  "Reminder: Please Vote on Pool Vote",
		Message:  "Please vote.",
	}

	activities.On("Log", ctx, mock.MatchedBy(func(e *activity.Entry) bool {
		var got reminder.Payload
		if err := json.Unmarshal([]byte(e.Details), &got); err != nil {
			return false
		}
		return e.Type == activity.TypeReminderSent && *e.BallotID == "demo-2" && got == p
	})).Return(nil)

	outbox := notify.NewOutbox(activities, toasts, nil)
	require.NoError(t, outbox.Notify(ctx, p))

	active := toasts.Active()
	require.Len(t, active, 1)
	require.Equal(t, "Reminder Sent", active[0].Title)
	activities.AssertExpectations(t)
}

func TestOutbox_RecordFailure(t *testing.T) {
	ctx := context.Background()
	activities := &mocks.ActivityRepository{}
	activities.On("Log", ctx, mock.Anything).Return(errors.New("disk full"))

	toasts := notify.NewToasts(time.Minute)
	defer toasts.Close()

	outbox := notify.NewOutbox(activities, toasts, nil)
	require.Error(t, outbox.Notify(ctx, reminder.Payload{BallotID: "x", Subject: "s", Message: "m"}))
	require.Empty(t, toasts.Active())
}
