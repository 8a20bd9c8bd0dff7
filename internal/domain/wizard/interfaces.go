package wizard

import (
	"context"

	"github.com/rpggio/ballotdesk/internal/domain/activity"
	"github.com/rpggio/ballotdesk/internal/domain/ballot"
)

// BallotStore receives submitted drafts.
type BallotStore interface {
	Add(ctx context.Context, req ballot.AddRequest) (*ballot.Ballot, error)
}

// ActivityRepository records saved and discarded drafts.
type ActivityRepository interface {
	Log(ctx context.Context, entry *activity.Entry) error
}
