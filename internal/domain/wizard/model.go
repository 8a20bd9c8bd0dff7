package wizard

import (
	"slices"

	"github.com/rpggio/ballotdesk/internal/domain/ballot"
)

// Step is a wizard page, numbered from 1.
type Step int

const (
	StepBasicInfo Step = iota + 1
	StepMotions
	StepAttachments
	StepReview
)

func (s Step) String() string {
	switch s {
	case StepBasicInfo:
		return "Basic Info"
	case StepMotions:
		return "Motions"
	case StepAttachments:
		return "Attachments"
	case StepReview:
		return "Review"
	default:
		return "Unknown"
	}
}

// DefaultDeadlineTime is the preset time of day for a new ballot deadline.
const DefaultDeadlineTime = "05:00 PM"

// Form field names accepted by SetField.
const (
	FieldTitle          = "title"
	FieldDescription    = "description"
	FieldDeadlineDate   = "deadline_date"
	FieldDeadlineTime   = "deadline_time"
	FieldCorporation    = "corporation"
	FieldPersonName     = "person_name"
	FieldPersonPosition = "person_position"
	FieldPersonAddress  = "person_address"
	FieldPersonContact  = "person_contact"
	FieldSecretaryName  = "secretary_name"
)

// BasicInfo is the step 1 form.
type BasicInfo struct {
	Title          string `json:"title"`
	Description    string `json:"description"`
	DeadlineDate   string `json:"deadline_date"`
	DeadlineTime   string `json:"deadline_time"`
	Corporation    string `json:"corporation"`
	PersonName     string `json:"person_name"`
	PersonPosition string `json:"person_position"`
	PersonAddress  string `json:"person_address"`
	PersonContact  string `json:"person_contact"`
	SecretaryName  string `json:"secretary_name"`
}

func (f *BasicInfo) field(name string) *string {
	switch name {
	case FieldTitle:
		return &f.Title
	case FieldDescription:
		return &f.Description
	case FieldDeadlineDate:
		return &f.DeadlineDate
	case FieldDeadlineTime:
		return &f.DeadlineTime
	case FieldCorporation:
		return &f.Corporation
	case FieldPersonName:
		return &f.PersonName
	case FieldPersonPosition:
		return &f.PersonPosition
	case FieldPersonAddress:
		return &f.PersonAddress
	case FieldPersonContact:
		return &f.PersonContact
	case FieldSecretaryName:
		return &f.SecretaryName
	default:
		return nil
	}
}

// MotionInput is the staging record of the motion entry form.
type MotionInput struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	HurdleRate  int                 `json:"hurdle_rate"`
	Attachments []ballot.Attachment `json:"attachments"`
}

// Draft is the state of one open ballot creation session.
type Draft struct {
	ID          string              `json:"id"`
	Step        Step                `json:"step"`
	Form        BasicInfo           `json:"form"`
	Motions     []ballot.Motion     `json:"motions"`
	Staged      MotionInput         `json:"staged"`
	EditingID   string              `json:"editing_id,omitempty"`
	Attachments []ballot.Attachment `json:"attachments"`
	Dragging    bool                `json:"dragging"`
	Errors      ballot.FieldErrors  `json:"errors,omitempty"`
}

// NewDraft returns an empty draft at step 1.
func NewDraft(id, defaultCorporation string) *Draft {
	return &Draft{
		ID:   id,
		Step: StepBasicInfo,
		Form: BasicInfo{
			DeadlineTime: DefaultDeadlineTime,
			Corporation:  defaultCorporation,
		},
		Motions:     []ballot.Motion{},
		Staged:      MotionInput{Attachments: []ballot.Attachment{}},
		Attachments: []ballot.Attachment{},
		Errors:      ballot.FieldErrors{},
	}
}

// Snapshot returns a deep copy safe to hand out of the service lock.
func (d *Draft) Snapshot() Draft {
	c := *d
	c.Motions = make([]ballot.Motion, len(d.Motions))
	for i, m := range d.Motions {
		m.Attachments = slices.Clone(m.Attachments)
		c.Motions[i] = m
	}
	c.Staged.Attachments = slices.Clone(d.Staged.Attachments)
	c.Attachments = slices.Clone(d.Attachments)
	c.Errors = make(ballot.FieldErrors, len(d.Errors))
	for k, v := range d.Errors {
		c.Errors[k] = v
	}
	return c
}
