package activity

import "time"

// Type represents the kind of activity event
type Type string

const (
	TypeBallotCreated  Type = "ballot_created"
	TypeDraftSaved     Type = "draft_saved"
	TypeDraftDiscarded Type = "draft_discarded"
	TypeReminderSent   Type = "reminder_sent"
)

// Entry represents an event in the activity log
type Entry struct {
	ID        int64     `json:"id"`
	BallotID  *string   `json:"ballot_id,omitempty"`
	DraftID   *string   `json:"draft_id,omitempty"`
	Type      Type      `json:"type"`
	Summary   string    `json:"summary"`
	Details   string    `json:"details,omitempty"` // JSON string
	CreatedAt time.Time `json:"created_at"`
}
