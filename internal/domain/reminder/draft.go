package reminder

import (
	"errors"
	"strings"

	"github.com/rpggio/ballotdesk/internal/domain/ballot"
)

var (
	// ErrSubjectRequired indicates a blank subject at send time.
	ErrSubjectRequired = errors.New("subject is required")
	// ErrMessageRequired indicates a blank message at send time.
	ErrMessageRequired = errors.New("message is required")
)

// Payload is what the notification collaborator receives.
type Payload struct {
	BallotID string   `json:"ballot_id"`
	Template Template `json:"template"`
	Subject  string   `json:"subject"`
	Message  string   `json:"message"`
}

// Validate applies the send gate. Subject is checked first.
func (p Payload) Validate() error {
	if strings.TrimSpace(p.Subject) == "" {
		return ErrSubjectRequired
	}
	if strings.TrimSpace(p.Message) == "" {
		return ErrMessageRequired
	}
	return nil
}

// Draft is an editable message for one ballot.
type Draft struct {
	ballot   ballot.Ballot
	composer *Composer

	Template Template `json:"template"`
	Subject  string   `json:"subject"`
	Body     string   `json:"body"`
}

// NewDraft starts a draft from the reminder template.
func NewDraft(c *Composer, b ballot.Ballot) (*Draft, error) {
	d := &Draft{ballot: b, composer: c}
	if err := d.SelectTemplate(TemplateReminder); err != nil {
		return nil, err
	}
	return d, nil
}

// BallotID returns the ballot the draft is about.
func (d *Draft) BallotID() string { return d.ballot.ID }

// SelectTemplate regenerates subject and body, discarding earlier edits.
func (d *Draft) SelectTemplate(t Template) error {
	msg, err := d.composer.Compose(d.ballot, t)
	if err != nil {
		return err
	}
	d.Template = t
	d.Subject = msg.Subject
	d.Body = msg.Body
	return nil
}

func (d *Draft) SetSubject(s string) { d.Subject = s }

func (d *Draft) SetBody(s string) { d.Body = s }

// Payload packages the draft for sending.
func (d *Draft) Payload() (Payload, error) {
	p := Payload{
		BallotID: d.ballot.ID,
		Template: d.Template,
		Subject:  d.Subject,
		Message:  d.Body,
	}
	if err := p.Validate(); err != nil {
		return Payload{}, err
	}
	return p, nil
}
