package ballot

import (
	"strconv"
	"time"
)

// DemoBallots returns the sample ballots shown on a fresh portal.
func DemoBallots() []Ballot {
	demo := func(id, corp, title, desc string, participation int, deadline string, created time.Time, motions ...string) Ballot {
		b := Ballot{
			ID:            id,
			Corporation:   corp,
			Title:         title,
			Description:   desc,
			Status:        StatusActive,
			Participation: participation,
			Deadline:      deadline,
			CreatedAt:     created,
			Attachments:   []Attachment{},
		}
		for i, m := range motions {
			b.Motions = append(b.Motions, Motion{
				ID:          id + "-m" + strconv.Itoa(i+1),
				Title:       m,
				Description: m,
				HurdleRate:  50,
			})
		}
		return b
	}

	return []Ballot{
		demo("demo-1", "Riverside Towers OC", "Annual Budget Approval 2024",
			"Vote on the proposed annual budget for fiscal year 2024-2025",
			68, "2025-12-31", time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC),
			"Approve annual budget", "Allocate reserve funds", "Approve maintenance schedule"),
		demo("demo-2", "Parkview Gardens OC", "Swimming Pool Renovation",
			"Proposal to renovate and upgrade the community swimming pool facilities",
			45, "2025-12-15", time.Date(2024, 1, 10, 14, 30, 0, 0, time.UTC),
			"Approve renovation plans", "Approve contractor selection", "Approve budget allocation"),
		demo("demo-3", "Harbour View Estate OC", "New Security System Implementation",
			"Vote on installing a new modern security system with cameras and access control",
			82, "2026-01-30", time.Date(2024, 1, 5, 9, 15, 0, 0, time.UTC),
			"Approve security system upgrade", "Approve vendor contract", "Approve installation timeline"),
	}
}
