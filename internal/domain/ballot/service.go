package ballot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/rpggio/ballotdesk/internal/domain/activity"
	"github.com/rpggio/ballotdesk/internal/repository"
)

// Service is the ballot store: the single writer of ballot records.
type Service struct {
	ballots      Repository
	activities   ActivityRepository
	corporations CorporationLookup
	logger       *slog.Logger
	now          func() time.Time
}

// NewService creates a new ballot service.
func NewService(
	ballots Repository,
	activities ActivityRepository,
	corporations CorporationLookup,
	logger *slog.Logger,
) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{
		ballots:      ballots,
		activities:   activities,
		corporations: corporations,
		logger:       logger,
		now:          time.Now,
	}
}

// AddRequest is the partial ballot supplied by the wizard or a direct caller.
// Identity, status, participation and creation time are assigned by the store.
type AddRequest struct {
	Corporation string
	Title       string
	Description string
	Deadline    string
	Motions     []Motion
	Attachments []Attachment
}

// NewID returns a time-ordered identifier that is unique for the process lifetime.
func NewID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// Add validates and stores a new ballot.
func (s *Service) Add(ctx context.Context, req AddRequest) (*Ballot, error) {
	if err := ValidateAddRequest(req, s.corporations); err != nil {
		return nil, err
	}

	motions := req.Motions
	if motions == nil {
		motions = []Motion{}
	}
	attachments := req.Attachments
	if attachments == nil {
		attachments = []Attachment{}
	}

	b := &Ballot{
		ID:            NewID(),
		Corporation:   req.Corporation,
		Title:         req.Title,
		Description:   req.Description,
		Status:        StatusActive,
		Participation: 0,
		Deadline:      req.Deadline,
		CreatedAt:     s.now().UTC(),
		Motions:       motions,
		Attachments:   attachments,
	}

	if err := s.ballots.Create(ctx, b); err != nil {
		return nil, fmt.Errorf("creating ballot: %w", err)
	}

	if s.activities != nil {
		_ = s.activities.Log(ctx, &activity.Entry{
			BallotID: &b.ID,
			Type:     activity.TypeBallotCreated,
			Summary:  fmt.Sprintf("created ballot %q for %s", b.Title, b.Corporation),
		})
	}
	s.logger.Info("ballot created", "ballot_id", b.ID, "corporation", b.Corporation, "motions", len(b.Motions))

	return b, nil
}

// Seed stores fully formed ballots as they are, used for demo data at start.
func (s *Service) Seed(ctx context.Context, ballots []Ballot) error {
	for i := range ballots {
		b := ballots[i]
		if err := s.ballots.Create(ctx, &b); err != nil {
			return fmt.Errorf("seeding ballot %s: %w", b.ID, err)
		}
	}
	return nil
}

// Get returns a ballot by ID.
func (s *Service) Get(ctx context.Context, id string) (*Ballot, error) {
	b, err := s.ballots.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBallotNotFound
		}
		return nil, fmt.Errorf("getting ballot: %w", err)
	}
	return b, nil
}

// List returns every ballot in insertion order.
func (s *Service) List(ctx context.Context) ([]Ballot, error) {
	ballots, err := s.ballots.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing ballots: %w", err)
	}
	return ballots, nil
}
