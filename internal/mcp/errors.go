package mcp

import (
	"errors"
	"fmt"

	"github.com/rpggio/ballotdesk/internal/domain/ballot"
	"github.com/rpggio/ballotdesk/internal/domain/listing"
	"github.com/rpggio/ballotdesk/internal/domain/preference"
	"github.com/rpggio/ballotdesk/internal/domain/reminder"
	"github.com/rpggio/ballotdesk/internal/domain/wizard"
)

// errNotificationNotFound indicates a dismissed or expired toast.
var errNotificationNotFound = errors.New("notification not found")

// APIError represents an MCP error response.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	Details      any    `json:"details,omitempty"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// MapError maps domain errors to MCP error codes and user-facing messages.
// Errors it doesn't know map to INTERNAL.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}

	var fields ballot.FieldErrors
	hasFields := errors.As(err, &fields)

	switch {
	case errors.Is(err, wizard.ErrStepInvalid):
		apiErr := &APIError{Code: "STEP_INCOMPLETE", Message: "Please complete the required fields", RecoveryHint: "Fill in the listed fields, then call wizard_next again"}
		if hasFields {
			apiErr.Details = fields
		}
		return apiErr
	case errors.Is(err, wizard.ErrNoMotions):
		return &APIError{Code: "NO_MOTIONS", Message: "Please add at least one motion before publishing.", RecoveryHint: "Stage a motion and call wizard_add_motion"}
	case errors.Is(err, wizard.ErrMotionIncomplete):
		return &APIError{Code: "MOTION_INCOMPLETE", Message: "Please fill in all motion fields", RecoveryHint: "Hurdle rate must be between 1 and 100"}
	case errors.Is(err, wizard.ErrConfirmationRequired):
		return &APIError{Code: "CONFIRMATION_REQUIRED", Message: "You have unsaved changes. Are you sure you want to close?", RecoveryHint: "Call wizard_close with confirmed=true to discard"}
	case errors.Is(err, wizard.ErrDraftNotFound):
		return &APIError{Code: "DRAFT_NOT_FOUND", Message: "draft not found", RecoveryHint: "Call wizard_open to start a new draft"}
	case errors.Is(err, wizard.ErrMotionNotFound):
		return &APIError{Code: "MOTION_NOT_FOUND", Message: "motion not found", RecoveryHint: "Call wizard_get to list motion ids"}
	case errors.Is(err, wizard.ErrAttachmentIndex):
		return &APIError{Code: "ATTACHMENT_NOT_FOUND", Message: "invalid attachment index"}
	case errors.Is(err, wizard.ErrUnknownField):
		return &APIError{Code: "UNKNOWN_FIELD", Message: err.Error()}
	case errors.Is(err, wizard.ErrNoNextStep):
		return &APIError{Code: "LAST_STEP", Message: "already at the review step", RecoveryHint: "Call wizard_submit to publish"}
	case errors.Is(err, wizard.ErrNoPreviousStep):
		return &APIError{Code: "FIRST_STEP", Message: "already at the first step"}
	case errors.Is(err, wizard.ErrNotAtReview):
		return &APIError{Code: "NOT_AT_REVIEW", Message: "ballot can only be published from the review step", RecoveryHint: "Call wizard_next until the review step"}
	case errors.Is(err, reminder.ErrSubjectRequired):
		return &APIError{Code: "SUBJECT_REQUIRED", Message: "Please enter a subject"}
	case errors.Is(err, reminder.ErrMessageRequired):
		return &APIError{Code: "MESSAGE_REQUIRED", Message: "Please enter a message"}
	case errors.Is(err, reminder.ErrUnknownTemplate):
		return &APIError{Code: "UNKNOWN_TEMPLATE", Message: err.Error(), Details: reminder.Templates()}
	case errors.Is(err, ballot.ErrBallotNotFound):
		return &APIError{Code: "BALLOT_NOT_FOUND", Message: "ballot not found", RecoveryHint: "Check ID spelling"}
	case errors.Is(err, ballot.ErrInvalidInput):
		apiErr := &APIError{Code: "VALIDATION_FAILED", Message: "ballot is missing required fields"}
		if hasFields {
			apiErr.Details = fields
		}
		return apiErr
	case errors.Is(err, listing.ErrInvalidQuery):
		return &APIError{Code: "INVALID_QUERY", Message: err.Error()}
	case errors.Is(err, preference.ErrInvalidTheme):
		return &APIError{Code: "INVALID_THEME", Message: err.Error(), RecoveryHint: "Use light or dark"}
	case errors.Is(err, errNotificationNotFound):
		return &APIError{Code: "NOTIFICATION_NOT_FOUND", Message: "notification not found", RecoveryHint: "It may have expired"}
	default:
		return &APIError{Code: "INTERNAL", Message: "An error occurred. Please try again."}
	}
}
