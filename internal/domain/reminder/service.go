package reminder

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rpggio/ballotdesk/internal/domain/ballot"
)

// Notifier receives reminder payloads. Delivery is its concern.
type Notifier interface {
	Notify(ctx context.Context, p Payload) error
}

// BallotGetter looks up the ballot a reminder is about.
type BallotGetter interface {
	Get(ctx context.Context, id string) (*ballot.Ballot, error)
}

// Service composes and sends reminders.
type Service struct {
	ballots  BallotGetter
	composer *Composer
	notifier Notifier
	logger   *slog.Logger
}

// NewService creates a new reminder service.
func NewService(ballots BallotGetter, composer *Composer, notifier Notifier, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{
		ballots:  ballots,
		composer: composer,
		notifier: notifier,
		logger:   logger,
	}
}

// Compose opens a draft for the ballot using the given template.
func (s *Service) Compose(ctx context.Context, ballotID string, t Template) (*Draft, error) {
	b, err := s.ballots.Get(ctx, ballotID)
	if err != nil {
		return nil, err
	}
	d, err := NewDraft(s.composer, *b)
	if err != nil {
		return nil, err
	}
	if t != TemplateReminder {
		if err := d.SelectTemplate(t); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// Send validates the payload and hands it to the notifier.
func (s *Service) Send(ctx context.Context, p Payload) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if err := s.notifier.Notify(ctx, p); err != nil {
		return fmt.Errorf("sending reminder: %w", err)
	}
	s.logger.InfoContext(ctx, "reminder sent", "ballot_id", p.BallotID, "template", p.Template)
	return nil
}
