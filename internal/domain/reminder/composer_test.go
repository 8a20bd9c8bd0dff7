package reminder_test

import (
	"testing"

	"github.com/rpggio/ballotdesk/internal/domain/ballot"
	"github.com/rpggio/ballotdesk/internal/domain/reminder"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"
)

func poolVote() ballot.Ballot {
	return ballot.Ballot{
		ID:            "demo-2",
		Title:         "Pool Vote",
		Status:        ballot.StatusActive,
		Corporation:   "Parkview Gardens OC",
		Deadline:      "2025-12-15",
		Participation: 45,
	}
}

func TestComposer_Reminder(t *testing.T) {
	c := reminder.NewComposer("https://portal.example.com/")

	msg, err := c.Compose(poolVote(), reminder.TemplateReminder)
	require.NoError(t, err)
	require.Equal(t, "Reminder: Please Vote on Pool Vote", msg.Subject)

	g := goldie.New(t)
	g.Assert(t, "reminder_body", []byte(msg.Body))
}

func TestComposer_NewBallot(t *testing.T) {
	c := reminder.NewComposer("https://portal.example.com")

	msg, err := c.Compose(poolVote(), reminder.TemplateNewBallot)
	require.NoError(t, err)
	require.Equal(t, "New Ballot: Pool Vote", msg.Subject)
	require.Contains(t, msg.Body, "Parkview Gardens OC")
	require.Contains(t, msg.Body, "15 Dec 2025")

	g := goldie.New(t)
	g.Assert(t, "new_ballot_body", []byte(msg.Body))
}

func TestComposer_UnknownTemplate(t *testing.T) {
	_, err := reminder.NewComposer("").Compose(poolVote(), "Overdue Notice")
	require.ErrorIs(t, err, reminder.ErrUnknownTemplate)
}

func TestComposer_Link(t *testing.T) {
	c := reminder.NewComposer("http://localhost:8080//")
	require.Equal(t, "http://localhost:8080/ballots?ballot=a+b%26c", c.Link("a b&c"))
}

func TestFormatDeadline(t *testing.T) {
	require.Equal(t, "N/A", reminder.FormatDeadline(""))
	require.Equal(t, "Invalid date", reminder.FormatDeadline("someday"))
	require.Equal(t, "31 Dec 2025", reminder.FormatDeadline("2025-12-31"))
	require.Equal(t, "5 Jan 2026", reminder.FormatDeadline("2026-01-05"))
}

func TestParseTemplate(t *testing.T) {
	tmpl, err := reminder.ParseTemplate("")
	require.NoError(t, err)
	require.Equal(t, reminder.TemplateReminder, tmpl)

	tmpl, err = reminder.ParseTemplate("New Ballot Notification")
	require.NoError(t, err)
	require.Equal(t, reminder.TemplateNewBallot, tmpl)

	_, err = reminder.ParseTemplate("new ballot")
	require.ErrorIs(t, err, reminder.ErrUnknownTemplate)
}
