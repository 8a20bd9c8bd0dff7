package listing

import (
	"errors"
	"fmt"
)

// ErrInvalidQuery indicates an unknown tab, sort key or sort direction.
var ErrInvalidQuery = errors.New("invalid ballot query")

// Tab selects which slice of the ballot list is shown.
type Tab string

const (
	TabActive  Tab = "active"
	TabClosed  Tab = "closed"
	TabMotions Tab = "motions"
)

// SortKey names a sortable column. The zero value means unsorted.
type SortKey string

const (
	SortNone          SortKey = ""
	SortDeadline      SortKey = "deadline"
	SortParticipation SortKey = "participation"
	SortCorporation   SortKey = "corporation"
	SortTitle         SortKey = "title"
)

// Direction is the sort order.
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// SortConfig is the active sort column and direction.
type SortConfig struct {
	Key       SortKey   `json:"key,omitempty"`
	Direction Direction `json:"direction"`
}

// Toggle returns the config after a click on the key's column header:
// the same column flips direction, another column starts ascending.
func (c SortConfig) Toggle(key SortKey) SortConfig {
	if c.Key == key {
		if c.Direction == Ascending {
			return SortConfig{Key: key, Direction: Descending}
		}
		return SortConfig{Key: key, Direction: Ascending}
	}
	return SortConfig{Key: key, Direction: Ascending}
}

// Query holds the transient filter and sort parameters of the ballot list.
type Query struct {
	Corporations []string   `json:"corporations,omitempty"`
	Search       string     `json:"search,omitempty"`
	Tab          Tab        `json:"tab"`
	Sort         SortConfig `json:"sort"`
}

// DefaultQuery is the state of a freshly opened ballot list.
func DefaultQuery() Query {
	return Query{Tab: TabActive, Sort: SortConfig{Direction: Ascending}}
}

// Normalize fills zero-valued tab and direction with their defaults.
func (q Query) Normalize() Query {
	if q.Tab == "" {
		q.Tab = TabActive
	}
	if q.Sort.Direction == "" {
		q.Sort.Direction = Ascending
	}
	return q
}

// Validate rejects values the pipeline doesn't know.
func (q Query) Validate() error {
	switch q.Tab {
	case TabActive, TabClosed, TabMotions:
	default:
		return fmt.Errorf("%w: tab %q", ErrInvalidQuery, q.Tab)
	}
	switch q.Sort.Key {
	case SortNone, SortDeadline, SortParticipation, SortCorporation, SortTitle:
	default:
		return fmt.Errorf("%w: sort key %q", ErrInvalidQuery, q.Sort.Key)
	}
	switch q.Sort.Direction {
	case Ascending, Descending:
	default:
		return fmt.Errorf("%w: sort direction %q", ErrInvalidQuery, q.Sort.Direction)
	}
	return nil
}
