package wizard

import (
	"fmt"
	"slices"
	"strings"

	"github.com/rpggio/ballotdesk/internal/domain/ballot"
)

// Step 1 validation messages.
const (
	MsgTitleRequired       = "Title is required"
	MsgDescriptionRequired = "Description is required"
)

// SetField updates a form field and clears its validation message.
func (d *Draft) SetField(name, value string) error {
	p := d.Form.field(name)
	if p == nil {
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	*p = value
	delete(d.Errors, name)
	return nil
}

// StepValid reports whether the current step allows Next.
func (d *Draft) StepValid() bool {
	switch d.Step {
	case StepBasicInfo:
		return strings.TrimSpace(d.Form.Title) != "" && strings.TrimSpace(d.Form.Description) != ""
	case StepMotions:
		return len(d.Motions) > 0
	case StepAttachments, StepReview:
		return true
	default:
		return false
	}
}

// Next advances one step when the current step is valid.
// A failed step 1 records per-field messages; the step never changes on failure.
func (d *Draft) Next() error {
	if d.Step >= StepReview {
		return ErrNoNextStep
	}
	if !d.StepValid() {
		switch d.Step {
		case StepBasicInfo:
			if d.Errors == nil {
				d.Errors = ballot.FieldErrors{}
			}
			if strings.TrimSpace(d.Form.Title) == "" {
				d.Errors[FieldTitle] = MsgTitleRequired
			}
			if strings.TrimSpace(d.Form.Description) == "" {
				d.Errors[FieldDescription] = MsgDescriptionRequired
			}
			return fmt.Errorf("%w: %w", ErrStepInvalid, d.basicInfoErrors())
		case StepMotions:
			return ErrNoMotions
		}
		return ErrStepInvalid
	}
	d.Step++
	return nil
}

func (d *Draft) basicInfoErrors() ballot.FieldErrors {
	errs := ballot.FieldErrors{}
	for _, f := range []string{FieldTitle, FieldDescription} {
		if msg, ok := d.Errors[f]; ok {
			errs[f] = msg
		}
	}
	return errs
}

// Back returns to the previous step. No entered data is cleared.
func (d *Draft) Back() error {
	if d.Step <= StepBasicInfo {
		return ErrNoPreviousStep
	}
	d.Step--
	return nil
}

// StageMotion replaces the text fields of the motion entry form.
func (d *Draft) StageMotion(title, description string, hurdleRate int) {
	d.Staged.Title = title
	d.Staged.Description = description
	d.Staged.HurdleRate = hurdleRate
}

// SetMotionAttachments replaces the staged motion's attachments.
func (d *Draft) SetMotionAttachments(atts []ballot.Attachment) {
	d.Staged.Attachments = slices.Clone(atts)
	if d.Staged.Attachments == nil {
		d.Staged.Attachments = []ballot.Attachment{}
	}
}

// AddMotion commits the staged motion and clears the entry form.
// While editing, the committed motion is replaced in place and keeps its ID.
func (d *Draft) AddMotion() (ballot.Motion, error) {
	in := d.Staged
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Description) == "" ||
		in.HurdleRate < 1 || in.HurdleRate > 100 {
		return ballot.Motion{}, ErrMotionIncomplete
	}

	m := ballot.Motion{
		Title:       in.Title,
		Description: in.Description,
		HurdleRate:  in.HurdleRate,
		Attachments: slices.Clone(in.Attachments),
	}
	if m.Attachments == nil {
		m.Attachments = []ballot.Attachment{}
	}

	if i := d.motionIndex(d.EditingID); d.EditingID != "" && i >= 0 {
		m.ID = d.EditingID
		d.Motions[i] = m
	} else {
		m.ID = ballot.NewID()
		d.Motions = append(d.Motions, m)
	}

	d.clearStaging()
	return m, nil
}

// RemoveMotion deletes a committed motion by ID.
func (d *Draft) RemoveMotion(id string) error {
	i := d.motionIndex(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrMotionNotFound, id)
	}
	d.Motions = slices.Delete(d.Motions, i, i+1)
	if d.EditingID == id {
		d.EditingID = ""
	}
	return nil
}

// EditMotion copies a committed motion into the entry form. The list is unchanged
// until AddMotion saves the edit.
func (d *Draft) EditMotion(id string) error {
	i := d.motionIndex(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrMotionNotFound, id)
	}
	m := d.Motions[i]
	d.Staged = MotionInput{
		Title:       m.Title,
		Description: m.Description,
		HurdleRate:  m.HurdleRate,
		Attachments: slices.Clone(m.Attachments),
	}
	if d.Staged.Attachments == nil {
		d.Staged.Attachments = []ballot.Attachment{}
	}
	d.EditingID = id
	return nil
}

// CancelMotionEdit abandons the entry form, leaving committed motions untouched.
func (d *Draft) CancelMotionEdit() {
	d.clearStaging()
}

func (d *Draft) clearStaging() {
	d.Staged = MotionInput{Attachments: []ballot.Attachment{}}
	d.EditingID = ""
}

func (d *Draft) motionIndex(id string) int {
	return slices.IndexFunc(d.Motions, func(m ballot.Motion) bool { return m.ID == id })
}

// AddAttachments appends files chosen with the file picker.
func (d *Draft) AddAttachments(atts ...ballot.Attachment) {
	d.Attachments = append(d.Attachments, atts...)
}

// DragOver marks a drag in progress over the drop zone.
func (d *Draft) DragOver() { d.Dragging = true }

// DragLeave clears the drag marker.
func (d *Draft) DragLeave() { d.Dragging = false }

// Drop clears the drag marker and appends the dropped files.
func (d *Draft) Drop(atts ...ballot.Attachment) {
	d.Dragging = false
	d.AddAttachments(atts...)
}

// RemoveAttachment deletes a general attachment by position.
func (d *Draft) RemoveAttachment(index int) error {
	if index < 0 || index >= len(d.Attachments) {
		return fmt.Errorf("%w: %d", ErrAttachmentIndex, index)
	}
	d.Attachments = slices.Delete(d.Attachments, index, index+1)
	return nil
}

// Touched reports whether closing would discard user input.
func (d *Draft) Touched() bool {
	return d.Form.Title != "" || d.Form.Description != "" || len(d.Motions) > 0
}

// SubmitRequest builds the store payload. It fails before the review step or
// without a committed motion.
func (d *Draft) SubmitRequest() (ballot.AddRequest, error) {
	if len(d.Motions) == 0 {
		return ballot.AddRequest{}, ErrNoMotions
	}
	if d.Step != StepReview {
		return ballot.AddRequest{}, ErrNotAtReview
	}
	snap := d.Snapshot()
	return ballot.AddRequest{
		Corporation: snap.Form.Corporation,
		Title:       snap.Form.Title,
		Description: snap.Form.Description,
		Deadline:    snap.Form.DeadlineDate,
		Motions:     snap.Motions,
		Attachments: snap.Attachments,
	}, nil
}
