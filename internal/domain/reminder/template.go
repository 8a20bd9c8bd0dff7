package reminder

import (
	"errors"
	"fmt"
)

// ErrUnknownTemplate indicates a template name outside the fixed set.
var ErrUnknownTemplate = errors.New("unknown reminder template")

// Template selects the subject and body a message starts from.
type Template string

const (
	TemplateReminder  Template = "Ballot Reminder"
	TemplateNewBallot Template = "New Ballot Notification"
)

// Templates lists the selectable templates in menu order.
func Templates() []Template {
	return []Template{TemplateReminder, TemplateNewBallot}
}

// ParseTemplate validates a template name. Empty selects the reminder.
func ParseTemplate(name string) (Template, error) {
	switch Template(name) {
	case "":
		return TemplateReminder, nil
	case TemplateReminder, TemplateNewBallot:
		return Template(name), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownTemplate, name)
	}
}

const reminderSubject = `Reminder: Please Vote on {{.Title}}`

const reminderBody = `Dear Committee Member,

This is a reminder to cast your vote on the ballot:
{{.Title}}.

Current Status:
- Participation: {{.Participation}}%
- Deadline: {{.Deadline}}

Click the link below to view and vote on this ballot:
{{.Link}}

Best regards,
Owners Corporation Management`

const newBallotSubject = `New Ballot: {{.Title}}`

const newBallotBody = `Dear Committee Member,

A new ballot has been created and is now available for voting:
{{.Title}}.

Ballot Information:
- Status: {{.Status}}
- Deadline: {{.Deadline}}
- Corporation: {{.Corporation}}

Please review and cast your vote before the deadline.

Click the link below to view and vote on this ballot:
{{.Link}}

Best regards,
Owners Corporation Management`
