package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/ballotdesk/internal/domain/activity"
	"github.com/rpggio/ballotdesk/internal/domain/ballot"
	"github.com/rpggio/ballotdesk/internal/domain/listing"
	"github.com/rpggio/ballotdesk/internal/domain/preference"
	"github.com/rpggio/ballotdesk/internal/domain/reminder"
	"github.com/rpggio/ballotdesk/internal/domain/wizard"
)

type toolHandlers struct {
	svc    Services
	logger *slog.Logger
}

// registerTools adds every portal tool to the server.
func registerTools(server *sdkmcp.Server, svc Services, logger *slog.Logger) {
	h := &toolHandlers{svc: svc, logger: logger}

	// Portal
	addTool(server, logger, "list_corporations", "List the owners corporations and the default selection", h.listCorporations)
	addTool(server, logger, "list_ballots", "List ballots filtered by corporation, search text and tab, with optional sorting and tab counts", h.listBallots)
	addTool(server, logger, "get_ballot", "Get a ballot with its motions and attachments", h.getBallot)
	addTool(server, logger, "add_ballot", "Add a ballot directly to the store without the creation wizard", h.addBallot)

	// Creation wizard
	addTool(server, logger, "wizard_open", "Start a new ballot draft at step 1 (Basic Info)", h.wizardOpen)
	addTool(server, logger, "wizard_get", "Get the current state of a draft", h.wizardGet)
	addTool(server, logger, "wizard_set_fields", "Set Basic Info form fields (title, description, deadline_date, deadline_time, corporation, person_name, person_position, person_address, person_contact, secretary_name)", h.wizardSetFields)
	addTool(server, logger, "wizard_next", "Advance to the next step if the current step is complete", h.wizardNext)
	addTool(server, logger, "wizard_back", "Return to the previous step, keeping all entered data", h.wizardBack)
	addTool(server, logger, "wizard_stage_motion", "Fill in the motion entry form without committing it", h.wizardStageMotion)
	addTool(server, logger, "wizard_add_motion", "Commit the staged motion; while editing, replaces the motion being edited", h.wizardAddMotion)
	addTool(server, logger, "wizard_edit_motion", "Load a committed motion into the entry form for editing", h.wizardEditMotion)
	addTool(server, logger, "wizard_cancel_motion_edit", "Clear the entry form, leaving committed motions unchanged", h.wizardCancelMotionEdit)
	addTool(server, logger, "wizard_remove_motion", "Remove a committed motion", h.wizardRemoveMotion)
	addTool(server, logger, "wizard_add_attachments", "Attach general files to the draft (metadata only)", h.wizardAddAttachments)
	addTool(server, logger, "wizard_remove_attachment", "Remove a general attachment by position", h.wizardRemoveAttachment)
	addTool(server, logger, "wizard_review", "Get the review summary of a draft", h.wizardReview)
	addTool(server, logger, "wizard_save_draft", "Save the draft payload without closing the wizard", h.wizardSaveDraft)
	addTool(server, logger, "wizard_submit", "Publish the draft as a new ballot from the review step", h.wizardSubmit)
	addTool(server, logger, "wizard_close", "Close a draft; drafts with unsaved changes need confirmed=true", h.wizardClose)

	// Reminders
	addTool(server, logger, "reminder_compose", "Generate the subject and body of a reminder for a ballot", h.reminderCompose)
	addTool(server, logger, "reminder_send", "Send a reminder, optionally overriding the generated subject or message", h.reminderSend)

	// Preferences
	addTool(server, logger, "get_theme", "Get the saved colour theme", h.getTheme)
	addTool(server, logger, "set_theme", "Save the colour theme", h.setTheme)
	addTool(server, logger, "toggle_theme", "Switch between light and dark theme", h.toggleTheme)

	// Activity and notifications
	addTool(server, logger, "list_activity", "List recent portal activity, newest first", h.listActivity)
	addTool(server, logger, "list_notifications", "List notifications that haven't expired", h.listNotifications)
	addTool(server, logger, "dismiss_notification", "Dismiss a notification before it expires", h.dismissNotification)
}

func addTool[In any](server *sdkmcp.Server, logger *slog.Logger, name, description string, fn func(context.Context, In) (any, error)) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{Name: name, Description: description},
		func(ctx context.Context, _ *sdkmcp.CallToolRequest, in In) (*sdkmcp.CallToolResult, any, error) {
			out, err := fn(ctx, in)
			if err != nil {
				return errorResult(ctx, logger, name, err), nil, nil
			}
			return jsonResult(out)
		})
}

func jsonResult(v any) (*sdkmcp.CallToolResult, any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, nil, fmt.Errorf("encode result: %w", err)
	}
	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: string(data)}},
	}, nil, nil
}

func errorResult(ctx context.Context, logger *slog.Logger, tool string, err error) *sdkmcp.CallToolResult {
	apiErr := MapError(err)
	if apiErr.Code == "INTERNAL" {
		logger.ErrorContext(ctx, "tool failed", "tool", tool, "error", err)
	} else {
		logger.DebugContext(ctx, "tool rejected", "tool", tool, "code", apiErr.Code, "error", err)
	}
	data, _ := json.Marshal(apiErr)
	return &sdkmcp.CallToolResult{
		IsError: true,
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: string(data)}},
	}
}

func (h *toolHandlers) listCorporations(_ context.Context, _ EmptyParams) (any, error) {
	return CorporationsResponse{
		Corporations: h.svc.Corporations.Names(),
		Default:      h.svc.Corporations.Default(),
	}, nil
}

func (h *toolHandlers) listBallots(ctx context.Context, in ListBallotsParams) (any, error) {
	q := listing.Query{
		Corporations: in.Corporations,
		Search:       in.Search,
		Tab:          listing.Tab(in.Tab),
		Sort: listing.SortConfig{
			Key:       listing.SortKey(in.SortKey),
			Direction: listing.Direction(in.SortDirection),
		},
	}.Normalize()
	if in.ToggleSort != "" {
		q.Sort = q.Sort.Toggle(listing.SortKey(in.ToggleSort))
	}
	if err := q.Validate(); err != nil {
		return nil, err
	}

	all, err := h.svc.Ballots.List(ctx)
	if err != nil {
		return nil, err
	}

	res := listing.Apply(all, q)
	resp := ListBallotsResponse{
		Ballots:     make([]BallotResponse, 0, len(res.Ballots)),
		ActiveCount: res.ActiveCount,
		ClosedCount: res.ClosedCount,
		MotionsView: res.MotionsView,
		Sort:        q.Sort,
	}
	for _, b := range res.Ballots {
		resp.Ballots = append(resp.Ballots, toBallotResponse(b))
	}
	return resp, nil
}

func (h *toolHandlers) getBallot(ctx context.Context, in GetBallotParams) (any, error) {
	b, err := h.svc.Ballots.Get(ctx, in.ID)
	if err != nil {
		return nil, err
	}
	return toBallotResponse(*b), nil
}

func (h *toolHandlers) addBallot(ctx context.Context, in AddBallotParams) (any, error) {
	motions := make([]ballot.Motion, 0, len(in.Motions))
	for _, m := range in.Motions {
		motions = append(motions, ballot.Motion{
			ID:          ballot.NewID(),
			Title:       m.Title,
			Description: m.Description,
			HurdleRate:  m.HurdleRate,
			Attachments: m.Attachments,
		})
	}
	b, err := h.svc.Ballots.Add(ctx, ballot.AddRequest{
		Corporation: in.Corporation,
		Title:       in.Title,
		Description: in.Description,
		Deadline:    in.Deadline,
		Motions:     motions,
		Attachments: in.Attachments,
	})
	if err != nil {
		return nil, err
	}
	return toBallotResponse(*b), nil
}

func (h *toolHandlers) wizardOpen(ctx context.Context, _ EmptyParams) (any, error) {
	return toDraftResponse(h.svc.Wizard.Open(ctx)), nil
}

func (h *toolHandlers) wizardGet(_ context.Context, in DraftParams) (any, error) {
	d, err := h.svc.Wizard.Get(in.DraftID)
	if err != nil {
		return nil, err
	}
	return toDraftResponse(d), nil
}

// update runs fn on the draft and returns its new state.
func (h *toolHandlers) update(id string, fn func(*wizard.Draft) error) (any, error) {
	d, err := h.svc.Wizard.Update(id, fn)
	if err != nil {
		return nil, err
	}
	return toDraftResponse(d), nil
}

func (h *toolHandlers) wizardSetFields(_ context.Context, in SetFieldsParams) (any, error) {
	names := make([]string, 0, len(in.Fields))
	for name := range in.Fields {
		names = append(names, name)
	}
	slices.Sort(names)

	return h.update(in.DraftID, func(d *wizard.Draft) error {
		for _, name := range names {
			if err := d.SetField(name, in.Fields[name]); err != nil {
				return err
			}
		}
		return nil
	})
}

func (h *toolHandlers) wizardNext(_ context.Context, in DraftParams) (any, error) {
	return h.update(in.DraftID, (*wizard.Draft).Next)
}

func (h *toolHandlers) wizardBack(_ context.Context, in DraftParams) (any, error) {
	return h.update(in.DraftID, (*wizard.Draft).Back)
}

func (h *toolHandlers) wizardStageMotion(_ context.Context, in StageMotionParams) (any, error) {
	return h.update(in.DraftID, func(d *wizard.Draft) error {
		d.StageMotion(in.Title, in.Description, in.HurdleRate)
		if in.Attachments != nil {
			d.SetMotionAttachments(in.Attachments)
		}
		return nil
	})
}

func (h *toolHandlers) wizardAddMotion(_ context.Context, in DraftParams) (any, error) {
	return h.update(in.DraftID, func(d *wizard.Draft) error {
		_, err := d.AddMotion()
		return err
	})
}

func (h *toolHandlers) wizardEditMotion(_ context.Context, in MotionRefParams) (any, error) {
	return h.update(in.DraftID, func(d *wizard.Draft) error {
		return d.EditMotion(in.MotionID)
	})
}

func (h *toolHandlers) wizardCancelMotionEdit(_ context.Context, in DraftParams) (any, error) {
	return h.update(in.DraftID, func(d *wizard.Draft) error {
		d.CancelMotionEdit()
		return nil
	})
}

func (h *toolHandlers) wizardRemoveMotion(_ context.Context, in MotionRefParams) (any, error) {
	return h.update(in.DraftID, func(d *wizard.Draft) error {
		return d.RemoveMotion(in.MotionID)
	})
}

func (h *toolHandlers) wizardAddAttachments(_ context.Context, in AddAttachmentsParams) (any, error) {
	return h.update(in.DraftID, func(d *wizard.Draft) error {
		if in.Drop {
			d.DragOver()
			d.Drop(in.Attachments...)
			return nil
		}
		d.AddAttachments(in.Attachments...)
		return nil
	})
}

func (h *toolHandlers) wizardRemoveAttachment(_ context.Context, in RemoveAttachmentParams) (any, error) {
	return h.update(in.DraftID, func(d *wizard.Draft) error {
		return d.RemoveAttachment(in.Index)
	})
}

func (h *toolHandlers) wizardReview(_ context.Context, in DraftParams) (any, error) {
	d, err := h.svc.Wizard.Get(in.DraftID)
	if err != nil {
		return nil, err
	}
	return d.Review(), nil
}

func (h *toolHandlers) wizardSaveDraft(ctx context.Context, in DraftParams) (any, error) {
	d, err := h.svc.Wizard.SaveDraft(ctx, in.DraftID)
	if err != nil {
		return nil, err
	}
	const msg = "Draft saved successfully!"
	h.toast("Draft Saved", msg)
	return SaveDraftResponse{DraftID: d.ID, Message: msg}, nil
}

func (h *toolHandlers) wizardSubmit(ctx context.Context, in DraftParams) (any, error) {
	b, err := h.svc.Wizard.Submit(ctx, in.DraftID)
	if err != nil {
		return nil, err
	}
	h.toast("Ballot Published", fmt.Sprintf("%q is now open for voting", b.Title))
	return toBallotResponse(*b), nil
}

func (h *toolHandlers) wizardClose(ctx context.Context, in CloseDraftParams) (any, error) {
	if err := h.svc.Wizard.Close(ctx, in.DraftID, in.Confirmed); err != nil {
		return nil, err
	}
	return CloseDraftResponse{DraftID: in.DraftID, Discarded: true}, nil
}

func (h *toolHandlers) reminderCompose(ctx context.Context, in ComposeReminderParams) (any, error) {
	t, err := reminder.ParseTemplate(in.Template)
	if err != nil {
		return nil, err
	}
	d, err := h.svc.Reminders.Compose(ctx, in.BallotID, t)
	if err != nil {
		return nil, err
	}
	return ReminderResponse{
		BallotID:  d.BallotID(),
		Template:  d.Template,
		Subject:   d.Subject,
		Body:      d.Body,
		Templates: reminder.Templates(),
	}, nil
}

func (h *toolHandlers) reminderSend(ctx context.Context, in SendReminderParams) (any, error) {
	t, err := reminder.ParseTemplate(in.Template)
	if err != nil {
		return nil, err
	}
	d, err := h.svc.Reminders.Compose(ctx, in.BallotID, t)
	if err != nil {
		return nil, err
	}
	if in.Subject != nil {
		d.SetSubject(*in.Subject)
	}
	if in.Message != nil {
		d.SetBody(*in.Message)
	}

	p, err := d.Payload()
	if err != nil {
		return nil, err
	}
	if err := h.svc.Reminders.Send(ctx, p); err != nil {
		return nil, err
	}
	return SendReminderResponse{Sent: true, Payload: p}, nil
}

func themeResponse(t preference.Theme) ThemeResponse {
	return ThemeResponse{Theme: string(t), Dark: t.Dark()}
}

func (h *toolHandlers) getTheme(ctx context.Context, _ EmptyParams) (any, error) {
	t, err := h.svc.Preferences.Theme(ctx)
	if err != nil {
		return nil, err
	}
	return themeResponse(t), nil
}

func (h *toolHandlers) setTheme(ctx context.Context, in SetThemeParams) (any, error) {
	t, err := preference.ParseTheme(in.Theme)
	if err != nil {
		return nil, err
	}
	if err := h.svc.Preferences.SetTheme(ctx, t); err != nil {
		return nil, err
	}
	return themeResponse(t), nil
}

func (h *toolHandlers) toggleTheme(ctx context.Context, _ EmptyParams) (any, error) {
	t, err := h.svc.Preferences.Toggle(ctx)
	if err != nil {
		return nil, err
	}
	return themeResponse(t), nil
}

func (h *toolHandlers) listActivity(ctx context.Context, in ListActivityParams) (any, error) {
	opts := activity.ListOptions{Limit: in.Limit, Offset: in.Offset}
	if opts.Limit <= 0 {
		opts.Limit = 20
	}
	if in.BallotID != "" {
		opts.BallotID = &in.BallotID
	}
	if in.Type != "" {
		t := activity.Type(in.Type)
		opts.Type = &t
	}
	entries, err := h.svc.Activity.GetRecentActivity(ctx, opts)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []activity.Entry{}
	}
	return ActivityResponse{Entries: entries}, nil
}

func (h *toolHandlers) listNotifications(_ context.Context, _ EmptyParams) (any, error) {
	return NotificationsResponse{Notifications: h.svc.Toasts.Active()}, nil
}

func (h *toolHandlers) dismissNotification(_ context.Context, in DismissNotificationParams) (any, error) {
	if !h.svc.Toasts.Dismiss(in.ID) {
		return nil, errNotificationNotFound
	}
	return DismissResponse{Dismissed: true}, nil
}

func (h *toolHandlers) toast(title, message string) {
	if h.svc.Toasts != nil {
		h.svc.Toasts.Push(title, message)
	}
}
