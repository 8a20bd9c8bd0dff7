package listing

import (
	"slices"
	"strings"
	"time"

	"github.com/rpggio/ballotdesk/internal/domain/ballot"
	"golang.org/x/text/cases"
)

// Result is the derived view of the ballot list.
type Result struct {
	Ballots     []ballot.Ballot `json:"ballots"`
	ActiveCount int             `json:"active_count"`
	ClosedCount int             `json:"closed_count"`
	// MotionsView is set for the motions tab, which shows no ballot rows.
	MotionsView bool `json:"motions_view"`
}

// Apply runs corporation filter, search, tab filter and sort, in that order.
// The query must have passed Validate; unknown values fall through as no-ops.
// The input slice is never modified.
func Apply(all []ballot.Ballot, q Query) Result {
	narrowed := Search(FilterCorporations(all, q.Corporations), q.Search)

	res := Result{Ballots: []ballot.Ballot{}}
	for _, b := range narrowed {
		if b.Status.IsActive() {
			res.ActiveCount++
		} else {
			res.ClosedCount++
		}
	}

	if q.Tab == TabMotions {
		res.MotionsView = true
		return res
	}

	res.Ballots = Sort(FilterTab(narrowed, q.Tab), q.Sort)
	return res
}

// FilterCorporations keeps ballots whose corporation is selected. No selection keeps all.
func FilterCorporations(in []ballot.Ballot, selected []string) []ballot.Ballot {
	if len(selected) == 0 {
		return slices.Clone(in)
	}
	out := make([]ballot.Ballot, 0, len(in))
	for _, b := range in {
		if slices.Contains(selected, b.Corporation) {
			out = append(out, b)
		}
	}
	return out
}

// Search keeps ballots whose title, corporation or description contains the query,
// ignoring case. A blank query keeps all.
func Search(in []ballot.Ballot, query string) []ballot.Ballot {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return slices.Clone(in)
	}
	out := make([]ballot.Ballot, 0, len(in))
	for _, b := range in {
		if strings.Contains(strings.ToLower(b.Title), q) ||
			strings.Contains(strings.ToLower(b.Corporation), q) ||
			strings.Contains(strings.ToLower(b.Description), q) {
			out = append(out, b)
		}
	}
	return out
}

// FilterTab splits on status. The motions tab is not a ballot filter and keeps all.
func FilterTab(in []ballot.Ballot, tab Tab) []ballot.Ballot {
	if tab != TabActive && tab != TabClosed {
		return slices.Clone(in)
	}
	out := make([]ballot.Ballot, 0, len(in))
	for _, b := range in {
		if b.Status.IsActive() == (tab == TabActive) {
			out = append(out, b)
		}
	}
	return out
}

type sortEntry struct {
	ballot ballot.Ballot
	text   string
	when   time.Time
	dated  bool
}

// Sort orders ballots stably by the configured column.
// Ballots without a parseable deadline are the earliest deadline values.
func Sort(in []ballot.Ballot, cfg SortConfig) []ballot.Ballot {
	if cfg.Key == SortNone {
		return slices.Clone(in)
	}

	folder := cases.Fold()
	entries := make([]sortEntry, len(in))
	for i, b := range in {
		e := sortEntry{ballot: b}
		switch cfg.Key {
		case SortDeadline:
			e.when, e.dated = b.DeadlineTime()
		case SortCorporation:
			e.text = folder.String(b.Corporation)
		case SortTitle:
			e.text = folder.String(b.Title)
		}
		entries[i] = e
	}

	sign := 1
	if cfg.Direction == Descending {
		sign = -1
	}

	slices.SortStableFunc(entries, func(a, b sortEntry) int {
		return sign * compare(cfg.Key, a, b)
	})

	out := make([]ballot.Ballot, len(entries))
	for i, e := range entries {
		out[i] = e.ballot
	}
	return out
}

func compare(key SortKey, a, b sortEntry) int {
	switch key {
	case SortDeadline:
		switch {
		case !a.dated && !b.dated:
			return 0
		case !a.dated:
			return -1
		case !b.dated:
			return 1
		}
		return a.when.Compare(b.when)
	case SortParticipation:
		return cmpInt(a.ballot.Participation, b.ballot.Participation)
	case SortCorporation, SortTitle:
		return strings.Compare(a.text, b.text)
	default:
		return 0
	}
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
