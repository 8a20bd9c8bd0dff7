package ballot

import (
	"strings"
	"time"
)

// Status is the voting state of a ballot.
type Status string

const (
	StatusActive Status = "Active"
	StatusClosed Status = "Closed"
)

// IsActive compares case-insensitively, so stored "active" and "Active" are the same state.
func (s Status) IsActive() bool {
	return strings.EqualFold(string(s), string(StatusActive))
}

// ResolutionPrefix is prepended to a motion description when it is presented.
const ResolutionPrefix = "The Committee resolve to"

// Ballot is one vote event scoped to an owners corporation.
type Ballot struct {
	ID            string       `json:"id"`
	Corporation   string       `json:"corporation"`
	Title         string       `json:"title"`
	Description   string       `json:"description"`
	Status        Status       `json:"status"`
	Participation int          `json:"participation"`
	Deadline      string       `json:"deadline"`
	CreatedAt     time.Time    `json:"created_at"`
	Motions       []Motion     `json:"motions"`
	Attachments   []Attachment `json:"attachments"`
}

// DisplayParticipation returns the participation percent clamped into [0,100].
func (b Ballot) DisplayParticipation() int {
	switch {
	case b.Participation < 0:
		return 0
	case b.Participation > 100:
		return 100
	default:
		return b.Participation
	}
}

// Motion is a single resolution within a ballot.
type Motion struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	HurdleRate  int          `json:"hurdle_rate"`
	Attachments []Attachment `json:"attachments,omitempty"`
}

// Resolution renders the motion description the way it appears on the ballot paper.
func (m Motion) Resolution() string {
	return ResolutionPrefix + " " + m.Description
}

// Attachment is file metadata; the file content is never kept.
type Attachment struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
}

// DeadlineLayout is the stored form of a ballot deadline.
const DeadlineLayout = "2006-01-02"

// DeadlineTime parses the advisory deadline. ok is false for empty or unparseable values.
func (b Ballot) DeadlineTime() (t time.Time, ok bool) {
	return ParseDeadline(b.Deadline)
}

// ParseDeadline accepts a date (2006-01-02) or an RFC 3339 timestamp.
func ParseDeadline(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(DeadlineLayout, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}
