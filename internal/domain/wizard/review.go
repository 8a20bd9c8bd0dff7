package wizard

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/rpggio/ballotdesk/internal/domain/ballot"
)

const notProvided = "Not provided"

// Review is the read-only summary shown on the last step.
type Review struct {
	Title       string             `json:"title"`
	Description string             `json:"description"`
	SubmitBy    string             `json:"submit_by"`
	Corporation string             `json:"corporation"`
	NoticeGiver NoticeGiver        `json:"notice_giver"`
	Secretary   string             `json:"secretary,omitempty"`
	Motions     []ReviewMotion     `json:"motions"`
	Attachments []ReviewAttachment `json:"attachments"`
}

// NoticeGiver is the person giving notice of the ballot.
type NoticeGiver struct {
	Name     string `json:"name"`
	Position string `json:"position"`
	Address  string `json:"address"`
	Contact  string `json:"contact"`
}

type ReviewMotion struct {
	Number     int    `json:"number"`
	Title      string `json:"title"`
	Resolution string `json:"resolution"`
	Hurdle     string `json:"hurdle"`
}

type ReviewAttachment struct {
	Name string `json:"name"`
	Size string `json:"size"`
}

// Review summarises the draft. It is available from any step.
func (d *Draft) Review() Review {
	r := Review{
		Title:       d.Form.Title,
		Description: d.Form.Description,
		SubmitBy:    FormatSubmitBy(d.Form.DeadlineTime, d.Form.DeadlineDate),
		Corporation: d.Form.Corporation,
		NoticeGiver: NoticeGiver{
			Name:     orNotProvided(d.Form.PersonName),
			Position: orNotProvided(d.Form.PersonPosition),
			Address:  orNotProvided(d.Form.PersonAddress),
			Contact:  orNotProvided(d.Form.PersonContact),
		},
		Secretary:   strings.TrimSpace(d.Form.SecretaryName),
		Motions:     make([]ReviewMotion, 0, len(d.Motions)),
		Attachments: make([]ReviewAttachment, 0, len(d.Attachments)),
	}
	for i, m := range d.Motions {
		r.Motions = append(r.Motions, ReviewMotion{
			Number:     i + 1,
			Title:      m.Title,
			Resolution: m.Resolution(),
			Hurdle:     fmt.Sprintf("Hurdle: %d%%", m.HurdleRate),
		})
	}
	for _, a := range d.Attachments {
		r.Attachments = append(r.Attachments, ReviewAttachment{
			Name: a.Name,
			Size: humanize.Bytes(uint64(max(a.Size, 0))),
		})
	}
	return r
}

// FormatSubmitBy renders the deadline as "05:00 PM on 15 DEC 25".
func FormatSubmitBy(clock, date string) string {
	clock = strings.TrimSpace(clock)
	if clock == "" {
		clock = DefaultDeadlineTime
	}
	if strings.TrimSpace(date) == "" {
		return clock + " on " + notProvided
	}
	t, ok := ballot.ParseDeadline(date)
	if !ok {
		return clock + " on Invalid date"
	}
	return clock + " on " + strings.ToUpper(t.Format("02 Jan 06"))
}

func orNotProvided(s string) string {
	if strings.TrimSpace(s) == "" {
		return notProvided
	}
	return s
}

