package reminder_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rpggio/ballotdesk/internal/domain/ballot"
	"github.com/rpggio/ballotdesk/internal/domain/reminder"
	"github.com/rpggio/ballotdesk/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestReminderService_ComposeAndSend(t *testing.T) {
	ctx := context.Background()
	b := poolVote()

	ballots := &mocks.BallotRepository{}
	ballots.On("Get", ctx, "demo-2").Return(&b, nil)
	notifier := &mocks.Notifier{}

	svc := reminder.NewService(ballots, reminder.NewComposer("https://portal.example.com"), notifier, nil)

	d, err := svc.Compose(ctx, "demo-2", reminder.TemplateNewBallot)
	require.NoError(t, err)
	require.Equal(t, "New Ballot: Pool Vote", d.Subject)

	p, err := d.Payload()
	require.NoError(t, err)
	notifier.On("Notify", ctx, p).Return(nil)

	require.NoError(t, svc.Send(ctx, p))
	notifier.AssertExpectations(t)
}

func TestReminderService_SendRejectsBlank(t *testing.T) {
	notifier := &mocks.Notifier{}
	svc := reminder.NewService(nil, reminder.NewComposer(""), notifier, nil)

	err := svc.Send(context.Background(), reminder.Payload{BallotID: "demo-2", Message: "hi"})
	require.ErrorIs(t, err, reminder.ErrSubjectRequired)
	notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
}

func TestReminderService_NotifierFailure(t *testing.T) {
	ctx := context.Background()
	notifier := &mocks.Notifier{}
	boom := errors.New("outbox closed")
	p := reminder.Payload{BallotID: "demo-2", Template: reminder.TemplateReminder, Subject: "s", Message: "m"}
	notifier.On("Notify", ctx, p).Return(boom)

	svc := reminder.NewService(nil, reminder.NewComposer(""), notifier, nil)
	require.ErrorIs(t, svc.Send(ctx, p), boom)
}

func TestReminderService_ComposeMissingBallot(t *testing.T) {
	ctx := context.Background()
	ballots := &mocks.BallotRepository{}
	ballots.On("Get", ctx, "nope").Return(nil, ballot.ErrBallotNotFound)

	svc := reminder.NewService(ballots, reminder.NewComposer(""), &mocks.Notifier{}, nil)
	_, err := svc.Compose(ctx, "nope", reminder.TemplateReminder)
	require.ErrorIs(t, err, ballot.ErrBallotNotFound)
}
