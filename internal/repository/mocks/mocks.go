package mocks

import (
	"context"

	"github.com/rpggio/ballotdesk/internal/domain/activity"
	"github.com/rpggio/ballotdesk/internal/domain/ballot"
	"github.com/rpggio/ballotdesk/internal/domain/reminder"
	"github.com/stretchr/testify/mock"
)

// BallotRepository is a mock for ballot.Repository.
type BallotRepository struct {
	mock.Mock
}

func (m *BallotRepository) Create(ctx context.Context, b *ballot.Ballot) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *BallotRepository) Get(ctx context.Context, id string) (*ballot.Ballot, error) {
	args := m.Called(ctx, id)
	if b, ok := args.Get(0).(*ballot.Ballot); ok {
		return b, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *BallotRepository) List(ctx context.Context) ([]ballot.Ballot, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]ballot.Ballot); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// ActivityRepository is a mock for activity.Repository.
type ActivityRepository struct {
	mock.Mock
}

func (m *ActivityRepository) Log(ctx context.Context, entry *activity.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *ActivityRepository) List(ctx context.Context, opts activity.ListOptions) ([]activity.Entry, error) {
	args := m.Called(ctx, opts)
	if list, ok := args.Get(0).([]activity.Entry); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// PreferenceRepository is a mock for preference.Repository.
type PreferenceRepository struct {
	mock.Mock
}

func (m *PreferenceRepository) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *PreferenceRepository) Set(ctx context.Context, key, value string) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

// BallotStore is a mock for the ballot store consumed by the wizard.
type BallotStore struct {
	mock.Mock
}

func (m *BallotStore) Add(ctx context.Context, req ballot.AddRequest) (*ballot.Ballot, error) {
	args := m.Called(ctx, req)
	if b, ok := args.Get(0).(*ballot.Ballot); ok {
		return b, args.Error(1)
	}
	return nil, args.Error(1)
}

// Notifier is a mock for reminder.Notifier.
type Notifier struct {
	mock.Mock
}

func (m *Notifier) Notify(ctx context.Context, p reminder.Payload) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}
