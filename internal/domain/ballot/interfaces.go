package ballot

import (
	"context"

	"github.com/rpggio/ballotdesk/internal/domain/activity"
)

// Repository provides storage for ballots.
type Repository interface {
	Create(ctx context.Context, b *Ballot) error
	Get(ctx context.Context, id string) (*Ballot, error)
	List(ctx context.Context) ([]Ballot, error)
}

// ActivityRepository logs ballot activities.
type ActivityRepository interface {
	Log(ctx context.Context, entry *activity.Entry) error
}

// CorporationLookup reports whether a corporation is registered.
type CorporationLookup interface {
	Contains(name string) bool
}
