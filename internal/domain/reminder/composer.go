package reminder

import (
	"fmt"
	"net/url"
	"strings"
	"text/template"

	"github.com/rpggio/ballotdesk/internal/domain/ballot"
)

// DeadlineFormat is how deadlines appear in message bodies.
const DeadlineFormat = "2 Jan 2006"

type templateSet struct {
	subject *template.Template
	body    *template.Template
}

var templates = map[Template]templateSet{
	TemplateReminder: {
		subject: template.Must(template.New("reminder-subject").Parse(reminderSubject)),
		body:    template.Must(template.New("reminder-body").Parse(reminderBody)),
	},
	TemplateNewBallot: {
		subject: template.Must(template.New("new-ballot-subject").Parse(newBallotSubject)),
		body:    template.Must(template.New("new-ballot-body").Parse(newBallotBody)),
	},
}

// Message is a generated subject and body.
type Message struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Composer renders messages for a ballot.
type Composer struct {
	BaseURL string
}

// NewComposer creates a composer linking to the portal at baseURL.
func NewComposer(baseURL string) *Composer {
	return &Composer{BaseURL: strings.TrimRight(baseURL, "/")}
}

type messageData struct {
	Title         string
	Status        ballot.Status
	Corporation   string
	Participation int
	Deadline      string
	Link          string
}

// Compose renders the template for the ballot.
func (c *Composer) Compose(b ballot.Ballot, t Template) (Message, error) {
	set, ok := templates[t]
	if !ok {
		return Message{}, fmt.Errorf("%w: %q", ErrUnknownTemplate, t)
	}

	data := messageData{
		Title:         b.Title,
		Status:        b.Status,
		Corporation:   b.Corporation,
		Participation: b.DisplayParticipation(),
		Deadline:      FormatDeadline(b.Deadline),
		Link:          c.Link(b.ID),
	}

	var subject, body strings.Builder
	if err := set.subject.Execute(&subject, data); err != nil {
		return Message{}, fmt.Errorf("rendering subject: %w", err)
	}
	if err := set.body.Execute(&body, data); err != nil {
		return Message{}, fmt.Errorf("rendering body: %w", err)
	}
	return Message{Subject: subject.String(), Body: body.String()}, nil
}

// Link is the deep link to a ballot on the portal.
func (c *Composer) Link(ballotID string) string {
	return strings.TrimRight(c.BaseURL, "/") + "/ballots?ballot=" + url.QueryEscape(ballotID)
}

// FormatDeadline renders a stored deadline for a message body.
func FormatDeadline(deadline string) string {
	if strings.TrimSpace(deadline) == "" {
		return "N/A"
	}
	t, ok := ballot.ParseDeadline(deadline)
	if !ok {
		return "Invalid date"
	}
	return t.Format(DeadlineFormat)
}
