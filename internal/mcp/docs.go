package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `ballotdesk manages ballots for owners corporations.

Core concepts:
- Ballot: a vote item for one owners corporation, Active or Closed, with motions and attachments.
- Motion: a resolution with a hurdle rate (percent approval needed).
- Draft: a ballot being built in the four-step wizard (Basic Info, Motions, Attachments, Review).

Typical workflow:
1) list_corporations, then list_ballots (tab, search, corporations, toggle_sort).
2) Create: wizard_open, wizard_set_fields, wizard_next, wizard_stage_motion + wizard_add_motion,
   wizard_next, wizard_add_attachments, wizard_next, wizard_review, wizard_submit.
3) Remind voters: reminder_compose, edit if needed, reminder_send.

See ballotdesk://guide for field names and error codes.
`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "ballotdesk://guide",
		Name:        "guide",
		Title:       "ballotdesk guide",
		Description: "Wizard fields, list options, reminder templates and error codes.",
		Content: `# ballotdesk guide

## Listing ballots

` + "`list_ballots`" + ` applies, in order: corporation filter (empty means all), search
(case-insensitive substring of title, corporation or description), tab, then sort.

- tab: ` + "`active`" + ` (default), ` + "`closed`" + `, ` + "`motions`" + ` (no rows, motions view)
- sort_key: ` + "`deadline`" + `, ` + "`participation`" + `, ` + "`corporation`" + `, ` + "`title`" + `
- toggle_sort behaves like clicking a column header: the same key flips direction,
  a new key sorts ascending
- active_count and closed_count count ballots after the corporation and search filters

Ballots without a valid deadline sort before dated ones in ascending order.

## Creation wizard

Steps: 1 Basic Info, 2 Motions, 3 Attachments, 4 Review.

Basic Info fields for ` + "`wizard_set_fields`" + `:
title, description, deadline_date (YYYY-MM-DD), deadline_time (default 05:00 PM),
corporation, person_name, person_position, person_address, person_contact, secretary_name.

- wizard_next from step 1 needs title and description (STEP_INCOMPLETE lists the fields)
- wizard_next from step 2 needs at least one motion
- wizard_back never loses entered data
- a motion needs title, description and a hurdle rate from 1 to 100
- wizard_edit_motion loads a motion into the entry form; wizard_add_motion saves it in place,
  wizard_cancel_motion_edit leaves it unchanged
- wizard_save_draft records the draft without closing it
- wizard_close on a draft with changes needs confirmed=true

## Reminders

Templates: ` + "`Ballot Reminder`" + ` (default) and ` + "`New Ballot Notification`" + `.
Choosing a template regenerates subject and message. reminder_send rejects an empty
subject or message.

## Error codes

| Code | Meaning |
|---|---|
| VALIDATION_FAILED | Ballot fields are missing or invalid (details lists them) |
| STEP_INCOMPLETE | The current wizard step has missing fields (details lists them) |
| NO_MOTIONS | A ballot needs at least one motion |
| MOTION_INCOMPLETE | Motion title, description or hurdle rate missing |
| CONFIRMATION_REQUIRED | Closing would discard unsaved changes |
| NOT_AT_REVIEW | Publishing is only possible from step 4 |
| LAST_STEP, FIRST_STEP | No step in that direction |
| SUBJECT_REQUIRED, MESSAGE_REQUIRED | Reminder subject or message is blank |
| BALLOT_NOT_FOUND, DRAFT_NOT_FOUND, MOTION_NOT_FOUND | The id does not exist |
| ATTACHMENT_NOT_FOUND, NOTIFICATION_NOT_FOUND | Index or notification does not exist |
| INVALID_QUERY, INVALID_THEME, UNKNOWN_FIELD, UNKNOWN_TEMPLATE | Unsupported option value |
| INTERNAL | Unexpected failure; retry or check the server log |
`,
	},
}

// registerDocResources publishes the markdown guide as MCP resources.
func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			uri := doc.URI
			if req != nil && req.Params != nil && req.Params.URI != "" {
				uri = req.Params.URI
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     doc.Content,
				}},
			}, nil
		})
	}
}
