package wizard_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/rpggio/ballotdesk/internal/domain/activity"
	"github.com/rpggio/ballotdesk/internal/domain/ballot"
	"github.com/rpggio/ballotdesk/internal/domain/wizard"
	"github.com/rpggio/ballotdesk/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func readyDraft(t *testing.T, svc *wizard.Service) wizard.Draft {
	t.Helper()
	d := svc.Open(context.Background())
	_, err := svc.Update(d.ID, func(d *wizard.Draft) error {
		fillBasicInfo(t, d)
		require.NoError(t, d.Next())
		addMotion(t, d, "Approve X")
		require.NoError(t, d.Next())
		return d.Next()
	})
	require.NoError(t, err)
	return d
}

func TestWizardService_OpenAndGet(t *testing.T) {
	svc := wizard.NewService(nil, nil, corp, nil)

	d := svc.Open(context.Background())
	require.NotEmpty(t, d.ID)
	require.Equal(t, corp, d.Form.Corporation)

	got, err := svc.Get(d.ID)
	require.NoError(t, err)
	require.Equal(t, d, got)

	_, err = svc.Get("missing")
	require.ErrorIs(t, err, wizard.ErrDraftNotFound)
	_, err = svc.Update("missing", func(*wizard.Draft) error { return nil })
	require.ErrorIs(t, err, wizard.ErrDraftNotFound)
}

func TestWizardService_UpdateKeepsValidationMessages(t *testing.T) {
	svc := wizard.NewService(nil, nil, corp, nil)
	d := svc.Open(context.Background())

	got, err := svc.Update(d.ID, (*wizard.Draft).Next)
	require.ErrorIs(t, err, wizard.ErrStepInvalid)
	require.Equal(t, wizard.StepBasicInfo, got.Step)
	require.Equal(t, wizard.MsgTitleRequired, got.Errors[wizard.FieldTitle])
}

func TestWizardService_SaveDraft(t *testing.T) {
	ctx := context.Background()
	activities := &mocks.ActivityRepository{}
	svc := wizard.NewService(nil, activities, corp, nil)
	d := readyDraft(t, svc)

	var logged *activity.Entry
	activities.On("Log", ctx, mock.AnythingOfType("*activity.Entry")).
		Run(func(args mock.Arguments) { logged = args.Get(1).(*activity.Entry) }).
		Return(nil)

	saved, err := svc.SaveDraft(ctx, d.ID)
	require.NoError(t, err)
	require.Equal(t, wizard.StepReview, saved.Step)

	require.Equal(t, activity.TypeDraftSaved, logged.Type)
	require.Equal(t, d.ID, *logged.DraftID)

	var payload map[string]any
	require.NoError(t, json.Unmarshal([]byte(logged.Details), &payload))
	require.Contains(t, payload, "form")
	require.Len(t, payload["motions"], 1)

	after, err := svc.Get(d.ID)
	require.NoError(t, err)
	require.Equal(t, saved, after)
}

func TestWizardService_SubmitPublishesAndDiscards(t *testing.T) {
	ctx := context.Background()
	store := &mocks.BallotStore{}
	svc := wizard.NewService(store, nil, corp, nil)
	d := readyDraft(t, svc)

	store.On("Add", ctx, mock.MatchedBy(func(req ballot.AddRequest) bool {
		return req.Title == "Pool Vote" && len(req.Motions) == 1 && req.Corporation == corp
	})).Return(&ballot.Ballot{ID: "b-1", Status: ballot.StatusActive}, nil)

	b, err := svc.Submit(ctx, d.ID)
	require.NoError(t, err)
	require.Equal(t, "b-1", b.ID)

	_, err = svc.Get(d.ID)
	require.ErrorIs(t, err, wizard.ErrDraftNotFound)
	store.AssertExpectations(t)
}

func TestWizardService_SubmitWithoutMotions(t *testing.T) {
	ctx := context.Background()
	store := &mocks.BallotStore{}
	svc := wizard.NewService(store, nil, corp, nil)
	d := svc.Open(ctx)

	_, err := svc.Submit(ctx, d.ID)
	require.ErrorIs(t, err, wizard.ErrNoMotions)
	store.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)

	_, err = svc.Get(d.ID)
	require.NoError(t, err)
}

func TestWizardService_SubmitStoreFailureKeepsDraft(t *testing.T) {
	ctx := context.Background()
	store := &mocks.BallotStore{}
	svc := wizard.NewService(store, nil, corp, nil)
	d := readyDraft(t, svc)

	store.On("Add", ctx, mock.Anything).Return(nil, ballot.FieldErrors{"corporation": "Unknown owners corporation"})

	_, err := svc.Submit(ctx, d.ID)
	require.ErrorIs(t, err, ballot.ErrInvalidInput)

	var fields ballot.FieldErrors
	require.True(t, errors.As(err, &fields))

	still, err := svc.Get(d.ID)
	require.NoError(t, err)
	require.Len(t, still.Motions, 1)
}

func TestWizardService_CloseConfirmation(t *testing.T) {
	ctx := context.Background()
	activities := &mocks.ActivityRepository{}
	svc := wizard.NewService(nil, activities, corp, nil)

	untouched := svc.Open(ctx)
	require.NoError(t, svc.Close(ctx, untouched.ID, false))
	activities.AssertNotCalled(t, "Log", mock.Anything, mock.Anything)

	d := svc.Open(ctx)
	_, err := svc.Update(d.ID, func(d *wizard.Draft) error {
		return d.SetField(wizard.FieldTitle, "Pool Vote")
	})
	require.NoError(t, err)

	require.ErrorIs(t, svc.Close(ctx, d.ID, false), wizard.ErrConfirmationRequired)
	kept, err := svc.Get(d.ID)
	require.NoError(t, err)
	require.Equal(t, "Pool Vote", kept.Form.Title)

	activities.On("Log", ctx, mock.MatchedBy(func(e *activity.Entry) bool {
		return e.Type == activity.TypeDraftDiscarded
	})).Return(nil)
	require.NoError(t, svc.Close(ctx, d.ID, true))
	require.ErrorIs(t, svc.Close(ctx, d.ID, true), wizard.ErrDraftNotFound)
	require.Equal(t, 0, svc.Len())
	activities.AssertExpectations(t)
}

func TestWizardService_ConcurrentUpdates(t *testing.T) {
	svc := wizard.NewService(nil, nil, corp, nil)
	d := svc.Open(context.Background())

	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = svc.Update(d.ID, func(d *wizard.Draft) error {
				d.AddAttachments(ballot.Attachment{Name: "a.pdf", Size: 1})
				return nil
			})
		}()
	}
	wg.Wait()

	got, err := svc.Get(d.ID)
	require.NoError(t, err)
	require.Len(t, got.Attachments, 20)
}
