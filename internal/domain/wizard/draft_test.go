package wizard_test

import (
	"errors"
	"testing"

	"github.com/rpggio/ballotdesk/internal/domain/ballot"
	"github.com/rpggio/ballotdesk/internal/domain/wizard"
	"github.com/stretchr/testify/require"
)

const corp = "OC-123 Sunset Towers"

func newDraft() *wizard.Draft {
	return wizard.NewDraft("draft-1", corp)
}

func fillBasicInfo(t *testing.T, d *wizard.Draft) {
	t.Helper()
	require.NoError(t, d.SetField(wizard.FieldTitle, "Pool Vote"))
	require.NoError(t, d.SetField(wizard.FieldDescription, "Resurface the pool"))
}

func addMotion(t *testing.T, d *wizard.Draft, title string) ballot.Motion {
	t.Helper()
	d.StageMotion(title, "approve X", 50)
	m, err := d.AddMotion()
	require.NoError(t, err)
	return m
}

func TestNewDraft_Defaults(t *testing.T) {
	d := newDraft()
	require.Equal(t, wizard.StepBasicInfo, d.Step)
	require.Equal(t, wizard.DefaultDeadlineTime, d.Form.DeadlineTime)
	require.Equal(t, corp, d.Form.Corporation)
	require.False(t, d.Touched())
}

func TestDraft_NextGatesBasicInfo(t *testing.T) {
	d := newDraft()

	err := d.Next()
	require.ErrorIs(t, err, wizard.ErrStepInvalid)
	require.ErrorIs(t, err, ballot.ErrInvalidInput)
	require.Equal(t, wizard.StepBasicInfo, d.Step)
	require.Equal(t, wizard.MsgTitleRequired, d.Errors[wizard.FieldTitle])
	require.Equal(t, wizard.MsgDescriptionRequired, d.Errors[wizard.FieldDescription])

	var fields ballot.FieldErrors
	require.True(t, errors.As(err, &fields))
	require.Len(t, fields, 2)

	require.NoError(t, d.SetField(wizard.FieldTitle, "Pool Vote"))
	require.NotContains(t, d.Errors, wizard.FieldTitle)
	require.Error(t, d.Next())
	require.Equal(t, wizard.StepBasicInfo, d.Step)

	require.NoError(t, d.SetField(wizard.FieldDescription, "Resurface the pool"))
	require.NoError(t, d.Next())
	require.Equal(t, wizard.StepMotions, d.Step)
}

func TestDraft_NextRequiresMotion(t *testing.T) {
	d := newDraft()
	fillBasicInfo(t, d)
	require.NoError(t, d.Next())

	// A staged but uncommitted motion doesn't count.
	d.StageMotion("Approve X", "approve X", 50)
	require.ErrorIs(t, d.Next(), wizard.ErrNoMotions)
	require.Equal(t, wizard.StepMotions, d.Step)

	_, err := d.AddMotion()
	require.NoError(t, err)
	require.NoError(t, d.Next())
	require.Equal(t, wizard.StepAttachments, d.Step)
	require.NoError(t, d.Next())
	require.Equal(t, wizard.StepReview, d.Step)
	require.ErrorIs(t, d.Next(), wizard.ErrNoNextStep)
}

func TestDraft_BackPreservesData(t *testing.T) {
	d := newDraft()
	require.ErrorIs(t, d.Back(), wizard.ErrNoPreviousStep)

	fillBasicInfo(t, d)
	require.NoError(t, d.Next())
	addMotion(t, d, "Approve X")
	require.NoError(t, d.Next())
	d.AddAttachments(ballot.Attachment{Name: "plan.pdf", Size: 2048})

	require.NoError(t, d.Back())
	require.NoError(t, d.Back())
	require.Equal(t, wizard.StepBasicInfo, d.Step)
	require.Equal(t, "Pool Vote", d.Form.Title)
	require.Len(t, d.Motions, 1)
	require.Len(t, d.Attachments, 1)
}

func TestDraft_SetFieldUnknown(t *testing.T) {
	require.ErrorIs(t, newDraft().SetField("colour", "red"), wizard.ErrUnknownField)
}

func TestDraft_AddMotionValidation(t *testing.T) {
	d := newDraft()

	cases := []struct {
		title, desc string
		hurdle      int
	}{
		{"", "approve X", 50},
		{"Approve X", "  ", 50},
		{"Approve X", "approve X", 0},
		{"Approve X", "approve X", 101},
	}
	for _, c := range cases {
		d.StageMotion(c.title, c.desc, c.hurdle)
		_, err := d.AddMotion()
		require.ErrorIs(t, err, wizard.ErrMotionIncomplete)
	}
	require.Empty(t, d.Motions)
	// Rejected input stays staged for correction.
	require.Equal(t, 101, d.Staged.HurdleRate)
}

func TestDraft_AddMotionClearsStaging(t *testing.T) {
	d := newDraft()
	d.StageMotion("Approve X", "approve X", 50)
	d.SetMotionAttachments([]ballot.Attachment{{Name: "quote.pdf", Size: 10}})

	m, err := d.AddMotion()
	require.NoError(t, err)
	require.NotEmpty(t, m.ID)
	require.Len(t, m.Attachments, 1)
	require.Equal(t, wizard.MotionInput{Attachments: []ballot.Attachment{}}, d.Staged)

	other := addMotion(t, d, "Approve Y")
	require.NotEqual(t, m.ID, other.ID)
	require.Len(t, d.Motions, 2)
}

func TestDraft_EditMotionKeepsCommittedUntilSave(t *testing.T) {
	d := newDraft()
	first := addMotion(t, d, "Approve X")
	second := addMotion(t, d, "Approve Y")

	require.NoError(t, d.EditMotion(first.ID))
	require.Equal(t, first.ID, d.EditingID)
	require.Equal(t, "Approve X", d.Staged.Title)
	require.Len(t, d.Motions, 2)

	d.CancelMotionEdit()
	require.Empty(t, d.EditingID)
	require.Len(t, d.Motions, 2)
	require.Equal(t, "Approve X", d.Motions[0].Title)

	require.NoError(t, d.EditMotion(first.ID))
	d.StageMotion("Approve X revised", "approve X with changes", 75)
	saved, err := d.AddMotion()
	require.NoError(t, err)
	require.Equal(t, first.ID, saved.ID)
	require.Len(t, d.Motions, 2)
	require.Equal(t, "Approve X revised", d.Motions[0].Title)
	require.Equal(t, 75, d.Motions[0].HurdleRate)
	require.Equal(t, second.ID, d.Motions[1].ID)
	require.Empty(t, d.EditingID)
}

func TestDraft_RemoveMotion(t *testing.T) {
	d := newDraft()
	m := addMotion(t, d, "Approve X")

	require.ErrorIs(t, d.RemoveMotion("nope"), wizard.ErrMotionNotFound)
	require.ErrorIs(t, d.EditMotion("nope"), wizard.ErrMotionNotFound)

	require.NoError(t, d.EditMotion(m.ID))
	require.NoError(t, d.RemoveMotion(m.ID))
	require.Empty(t, d.Motions)
	require.Empty(t, d.EditingID)

	// Saving the orphaned edit commits it as a new motion.
	saved, err := d.AddMotion()
	require.NoError(t, err)
	require.NotEqual(t, m.ID, saved.ID)
}

func TestDraft_Attachments(t *testing.T) {
	d := newDraft()

	d.DragOver()
	require.True(t, d.Dragging)
	d.DragLeave()
	require.False(t, d.Dragging)

	d.AddAttachments(ballot.Attachment{Name: "a.pdf", Size: 1})
	d.DragOver()
	d.Drop(ballot.Attachment{Name: "b.pdf", Size: 2}, ballot.Attachment{Name: "c.pdf", Size: 3})
	require.False(t, d.Dragging)
	require.Len(t, d.Attachments, 3)

	require.ErrorIs(t, d.RemoveAttachment(3), wizard.ErrAttachmentIndex)
	require.ErrorIs(t, d.RemoveAttachment(-1), wizard.ErrAttachmentIndex)
	require.NoError(t, d.RemoveAttachment(1))
	require.Equal(t, "a.pdf", d.Attachments[0].Name)
	require.Equal(t, "c.pdf", d.Attachments[1].Name)
}

func TestDraft_Touched(t *testing.T) {
	d := newDraft()
	require.NoError(t, d.SetField(wizard.FieldPersonName, "Jo"))
	require.False(t, d.Touched())

	require.NoError(t, d.SetField(wizard.FieldDescription, "x"))
	require.True(t, d.Touched())

	d = newDraft()
	addMotion(t, d, "Approve X")
	require.True(t, d.Touched())
}

func TestDraft_SubmitRequest(t *testing.T) {
	d := newDraft()
	fillBasicInfo(t, d)
	require.NoError(t, d.SetField(wizard.FieldDeadlineDate, "2025-12-15"))

	_, err := d.SubmitRequest()
	require.ErrorIs(t, err, wizard.ErrNoMotions)

	require.NoError(t, d.Next())
	addMotion(t, d, "Approve X")
	_, err = d.SubmitRequest()
	require.ErrorIs(t, err, wizard.ErrNotAtReview)

	require.NoError(t, d.Next())
	require.NoError(t, d.Next())
	req, err := d.SubmitRequest()
	require.NoError(t, err)
	require.Equal(t, corp, req.Corporation)
	require.Equal(t, "Pool Vote", req.Title)
	require.Equal(t, "2025-12-15", req.Deadline)
	require.Len(t, req.Motions, 1)

	req.Motions[0].Title = "mutated"
	require.Equal(t, "Approve X", d.Motions[0].Title)
}

func TestDraft_Review(t *testing.T) {
	d := newDraft()
	fillBasicInfo(t, d)
	require.NoError(t, d.SetField(wizard.FieldDeadlineDate, "2025-12-15"))
	require.NoError(t, d.SetField(wizard.FieldPersonName, "Jo Citizen"))
	addMotion(t, d, "Approve X")
	d.AddAttachments(ballot.Attachment{Name: "plan.pdf", Size: 2048})

	r := d.Review()
	require.Equal(t, "05:00 PM on 15 DEC 25", r.SubmitBy)
	require.Equal(t, "Jo Citizen", r.NoticeGiver.Name)
	require.Equal(t, "Not provided", r.NoticeGiver.Position)
	require.Empty(t, r.Secretary)
	require.Equal(t, []wizard.ReviewMotion{{
		Number:     1,
		Title:      "Approve X",
		Resolution: "The Committee resolve to approve X",
		Hurdle:     "Hurdle: 50%",
	}}, r.Motions)
	require.Equal(t, "2.0 kB", r.Attachments[0].Size)
}

func TestFormatSubmitBy(t *testing.T) {
	require.Equal(t, "09:30 AM on 01 JAN 26", wizard.FormatSubmitBy("09:30 AM", "2026-01-01"))
	require.Equal(t, "05:00 PM on Not provided", wizard.FormatSubmitBy("", ""))
	require.Equal(t, "05:00 PM on Invalid date", wizard.FormatSubmitBy("05:00 PM", "31/12/2025"))
}

func TestDraft_SnapshotIsDeep(t *testing.T) {
	d := newDraft()
	addMotion(t, d, "Approve X")
	d.AddAttachments(ballot.Attachment{Name: "a.pdf"})

	snap := d.Snapshot()
	snap.Motions[0].Title = "changed"
	snap.Attachments[0].Name = "changed"
	snap.Errors["title"] = "changed"

	require.Equal(t, "Approve X", d.Motions[0].Title)
	require.Equal(t, "a.pdf", d.Attachments[0].Name)
	require.Empty(t, d.Errors)
}
