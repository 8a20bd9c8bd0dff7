package wizard

import "errors"

var (
	// ErrDraftNotFound indicates no open draft has the given ID.
	ErrDraftNotFound = errors.New("draft not found")
	// ErrStepInvalid indicates the current step's fields are incomplete.
	ErrStepInvalid = errors.New("current step is incomplete")
	// ErrNoMotions indicates the draft has no committed motions.
	ErrNoMotions = errors.New("at least one motion is required")
	// ErrNoNextStep indicates Next was called on the review step.
	ErrNoNextStep = errors.New("already at the review step")
	// ErrNoPreviousStep indicates Back was called on the first step.
	ErrNoPreviousStep = errors.New("already at the first step")
	// ErrNotAtReview indicates Submit was called before the review step.
	ErrNotAtReview = errors.New("ballot can only be published from the review step")
	// ErrMotionIncomplete indicates the staged motion is missing a field.
	ErrMotionIncomplete = errors.New("motion title, description and hurdle rate are required")
	// ErrMotionNotFound indicates no committed motion has the given ID.
	ErrMotionNotFound = errors.New("motion not found")
	// ErrAttachmentIndex indicates an attachment position out of range.
	ErrAttachmentIndex = errors.New("invalid attachment index")
	// ErrUnknownField indicates a form field name the wizard doesn't have.
	ErrUnknownField = errors.New("unknown form field")
	// ErrConfirmationRequired indicates closing would discard touched data.
	ErrConfirmationRequired = errors.New("draft has unsaved changes")
)
