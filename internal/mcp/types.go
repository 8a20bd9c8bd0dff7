package mcp

import (
	"time"

	"github.com/rpggio/ballotdesk/internal/domain/activity"
	"github.com/rpggio/ballotdesk/internal/domain/ballot"
	"github.com/rpggio/ballotdesk/internal/domain/listing"
	"github.com/rpggio/ballotdesk/internal/domain/reminder"
	"github.com/rpggio/ballotdesk/internal/domain/wizard"
	"github.com/rpggio/ballotdesk/internal/notify"
)

type EmptyParams struct{}

type ListBallotsParams struct {
	Corporations  []string `json:"corporations,omitempty" jsonschema:"owners corporations to keep; empty keeps all"`
	Search        string   `json:"search,omitempty" jsonschema:"case-insensitive text matched against title, corporation and description"`
	Tab           string   `json:"tab,omitempty" jsonschema:"active, closed or motions (default active)"`
	SortKey       string   `json:"sort_key,omitempty" jsonschema:"deadline, participation, corporation or title"`
	SortDirection string   `json:"sort_direction,omitempty" jsonschema:"asc or desc (default asc)"`
	ToggleSort    string   `json:"toggle_sort,omitempty" jsonschema:"column header clicked: flips direction on the current key, otherwise sorts ascending by it"`
}

type GetBallotParams struct {
	ID string `json:"id"`
}

type MotionParams struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	HurdleRate  int                 `json:"hurdle_rate"`
	Attachments []ballot.Attachment `json:"attachments,omitempty"`
}

type AddBallotParams struct {
	Corporation string              `json:"corporation"`
	Title       string              `json:"title"`
	Description string              `json:"description,omitempty"`
	Deadline    string              `json:"deadline,omitempty" jsonschema:"YYYY-MM-DD"`
	Motions     []MotionParams      `json:"motions,omitempty"`
	Attachments []ballot.Attachment `json:"attachments,omitempty"`
}

type DraftParams struct {
	DraftID string `json:"draft_id"`
}

type SetFieldsParams struct {
	DraftID string            `json:"draft_id"`
	Fields  map[string]string `json:"fields" jsonschema:"form field name to value"`
}

type StageMotionParams struct {
	DraftID     string              `json:"draft_id"`
	Title       string              `json:"title,omitempty"`
	Description string              `json:"description,omitempty"`
	HurdleRate  int                 `json:"hurdle_rate,omitempty" jsonschema:"approval threshold percent, 1 to 100"`
	Attachments []ballot.Attachment `json:"attachments,omitempty" jsonschema:"replaces the staged motion attachments when present"`
}

type MotionRefParams struct {
	DraftID  string `json:"draft_id"`
	MotionID string `json:"motion_id"`
}

type AddAttachmentsParams struct {
	DraftID     string              `json:"draft_id"`
	Attachments []ballot.Attachment `json:"attachments"`
	Drop        bool                `json:"drop,omitempty" jsonschema:"files arrived by drag and drop instead of the file picker"`
}

type RemoveAttachmentParams struct {
	DraftID string `json:"draft_id"`
	Index   int    `json:"index"`
}

type CloseDraftParams struct {
	DraftID   string `json:"draft_id"`
	Confirmed bool   `json:"confirmed,omitempty" jsonschema:"discard a draft with unsaved changes"`
}

type ComposeReminderParams struct {
	BallotID string `json:"ballot_id"`
	Template string `json:"template,omitempty" jsonschema:"Ballot Reminder or New Ballot Notification"`
}

type SendReminderParams struct {
	BallotID string  `json:"ballot_id"`
	Template string  `json:"template,omitempty"`
	Subject  *string `json:"subject,omitempty" jsonschema:"overrides the generated subject"`
	Message  *string `json:"message,omitempty" jsonschema:"overrides the generated body"`
}

type SetThemeParams struct {
	Theme string `json:"theme" jsonschema:"light or dark"`
}

type ListActivityParams struct {
	BallotID string `json:"ballot_id,omitempty"`
	Type     string `json:"type,omitempty"`
	Limit    int    `json:"limit,omitempty"`
	Offset   int    `json:"offset,omitempty"`
}

type DismissNotificationParams struct {
	ID string `json:"id"`
}

type CorporationsResponse struct {
	Corporations []string `json:"corporations"`
	Default      string   `json:"default"`
}

type BallotResponse struct {
	ID              string              `json:"id"`
	Corporation     string              `json:"corporation"`
	Title           string              `json:"title"`
	Description     string              `json:"description"`
	Status          ballot.Status       `json:"status"`
	Participation   int                 `json:"participation"`
	Deadline        string              `json:"deadline"`
	DeadlineDisplay string              `json:"deadline_display"`
	CreatedAt       string              `json:"created_at"`
	Motions         []MotionResponse    `json:"motions"`
	Attachments     []ballot.Attachment `json:"attachments"`
}

type MotionResponse struct {
	ID          string              `json:"id"`
	Title       string              `json:"title"`
	Resolution  string              `json:"resolution"`
	HurdleRate  int                 `json:"hurdle_rate"`
	Attachments []ballot.Attachment `json:"attachments"`
}

type ListBallotsResponse struct {
	Ballots     []BallotResponse   `json:"ballots"`
	ActiveCount int                `json:"active_count"`
	ClosedCount int                `json:"closed_count"`
	MotionsView bool               `json:"motions_view"`
	Sort        listing.SortConfig `json:"sort"`
}

type DraftResponse struct {
	wizard.Draft
	StepName   string `json:"step_name"`
	CanAdvance bool   `json:"can_advance"`
	HasChanges bool   `json:"has_changes"`
}

type SaveDraftResponse struct {
	DraftID string `json:"draft_id"`
	Message string `json:"message"`
}

type CloseDraftResponse struct {
	DraftID   string `json:"draft_id"`
	Discarded bool   `json:"discarded"`
}

type ReminderResponse struct {
	BallotID  string              `json:"ballot_id"`
	Template  reminder.Template   `json:"template"`
	Subject   string              `json:"subject"`
	Body      string              `json:"body"`
	Templates []reminder.Template `json:"templates"`
}

type SendReminderResponse struct {
	Sent    bool             `json:"sent"`
	Payload reminder.Payload `json:"payload"`
}

type ThemeResponse struct {
	Theme string `json:"theme"`
	Dark  bool   `json:"dark"`
}

type ActivityResponse struct {
	Entries []activity.Entry `json:"entries"`
}

type NotificationsResponse struct {
	Notifications []notify.Toast `json:"notifications"`
}

type DismissResponse struct {
	Dismissed bool `json:"dismissed"`
}

func toBallotResponse(b ballot.Ballot) BallotResponse {
	resp := BallotResponse{
		ID:              b.ID,
		Corporation:     b.Corporation,
		Title:           b.Title,
		Description:     b.Description,
		Status:          b.Status,
		Participation:   b.DisplayParticipation(),
		Deadline:        b.Deadline,
		DeadlineDisplay: reminder.FormatDeadline(b.Deadline),
		CreatedAt:       b.CreatedAt.UTC().Format(time.RFC3339),
		Motions:         make([]MotionResponse, 0, len(b.Motions)),
		Attachments:     b.Attachments,
	}
	if resp.Attachments == nil {
		resp.Attachments = []ballot.Attachment{}
	}
	for _, m := range b.Motions {
		atts := m.Attachments
		if atts == nil {
			atts = []ballot.Attachment{}
		}
		resp.Motions = append(resp.Motions, MotionResponse{
			ID:          m.ID,
			Title:       m.Title,
			Resolution:  m.Resolution(),
			HurdleRate:  m.HurdleRate,
			Attachments: atts,
		})
	}
	return resp
}

func toDraftResponse(d wizard.Draft) DraftResponse {
	return DraftResponse{
		Draft:      d,
		StepName:   d.Step.String(),
		CanAdvance: d.StepValid(),
		HasChanges: d.Touched(),
	}
}
