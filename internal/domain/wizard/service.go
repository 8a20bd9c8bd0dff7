package wizard

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/rpggio/ballotdesk/internal/domain/activity"
	"github.com/rpggio/ballotdesk/internal/domain/ballot"
)

// Service owns the open drafts. Tool calls may arrive concurrently, so every
// draft mutation runs under one lock.
type Service struct {
	mu                 sync.Mutex
	drafts             map[string]*Draft
	ballots            BallotStore
	activities         ActivityRepository
	defaultCorporation string
	logger             *slog.Logger
}

// NewService creates a new wizard service.
func NewService(ballots BallotStore, activities ActivityRepository, defaultCorporation string, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{
		drafts:             make(map[string]*Draft),
		ballots:            ballots,
		activities:         activities,
		defaultCorporation: defaultCorporation,
		logger:             logger,
	}
}

// Open starts a new empty draft.
func (s *Service) Open(ctx context.Context) Draft {
	d := NewDraft(ballot.NewID(), s.defaultCorporation)

	s.mu.Lock()
	s.drafts[d.ID] = d
	s.mu.Unlock()

	s.logger.DebugContext(ctx, "draft opened", "draft_id", d.ID)
	return d.Snapshot()
}

// Get returns a copy of an open draft.
func (s *Service) Get(id string) (Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.drafts[id]
	if !ok {
		return Draft{}, ErrDraftNotFound
	}
	return d.Snapshot(), nil
}

// Update applies fn to an open draft. The returned copy reflects the draft after
// fn, including validation messages recorded by a failing operation.
func (s *Service) Update(id string, fn func(*Draft) error) (Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.drafts[id]
	if !ok {
		return Draft{}, ErrDraftNotFound
	}
	err := fn(d)
	return d.Snapshot(), err
}

type draftPayload struct {
	Form        BasicInfo           `json:"form"`
	Motions     []ballot.Motion     `json:"motions"`
	Attachments []ballot.Attachment `json:"attachments"`
}

// SaveDraft records the draft payload in the activity log. The draft is unchanged.
func (s *Service) SaveDraft(ctx context.Context, id string) (Draft, error) {
	snap, err := s.Get(id)
	if err != nil {
		return Draft{}, err
	}

	payload, err := json.Marshal(draftPayload{
		Form:        snap.Form,
		Motions:     snap.Motions,
		Attachments: snap.Attachments,
	})
	if err != nil {
		return Draft{}, fmt.Errorf("encoding draft: %w", err)
	}

	if s.activities != nil {
		draftID := snap.ID
		if err := s.activities.Log(ctx, &activity.Entry{
			DraftID: &draftID,
			Type:    activity.TypeDraftSaved,
			Summary: fmt.Sprintf("saved draft %q", snap.Form.Title),
			Details: string(payload),
		}); err != nil {
			return Draft{}, fmt.Errorf("saving draft: %w", err)
		}
	}

	s.logger.InfoContext(ctx, "draft saved", "draft_id", snap.ID, "step", snap.Step, "motions", len(snap.Motions))
	return snap, nil
}

// Submit hands the draft to the ballot store and discards it on success.
// On failure the draft stays open and unchanged.
func (s *Service) Submit(ctx context.Context, id string) (*ballot.Ballot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.drafts[id]
	if !ok {
		return nil, ErrDraftNotFound
	}

	req, err := d.SubmitRequest()
	if err != nil {
		return nil, err
	}

	b, err := s.ballots.Add(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("publishing ballot: %w", err)
	}

	delete(s.drafts, id)
	s.logger.InfoContext(ctx, "draft published", "draft_id", id, "ballot_id", b.ID)
	return b, nil
}

// Close discards a draft. A touched draft needs confirmed set, otherwise
// ErrConfirmationRequired is returned and nothing changes.
func (s *Service) Close(ctx context.Context, id string, confirmed bool) error {
	s.mu.Lock()
	d, ok := s.drafts[id]
	if !ok {
		s.mu.Unlock()
		return ErrDraftNotFound
	}
	touched := d.Touched()
	if touched && !confirmed {
		s.mu.Unlock()
		return ErrConfirmationRequired
	}
	title := d.Form.Title
	delete(s.drafts, id)
	s.mu.Unlock()

	if touched && s.activities != nil {
		draftID := id
		if err := s.activities.Log(ctx, &activity.Entry{
			DraftID: &draftID,
			Type:    activity.TypeDraftDiscarded,
			Summary: fmt.Sprintf("discarded draft %q", title),
		}); err != nil {
			s.logger.WarnContext(ctx, "failed to log discarded draft", "draft_id", id, "error", err)
		}
	}

	s.logger.DebugContext(ctx, "draft closed", "draft_id", id, "touched", touched)
	return nil
}

// Len returns the number of open drafts.
func (s *Service) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.drafts)
}
