package ballot

import (
	"errors"
	"sort"
	"strings"
)

var (
	// ErrBallotNotFound indicates the ballot doesn't exist.
	ErrBallotNotFound = errors.New("ballot not found")
	// ErrInvalidInput indicates invalid ballot input.
	ErrInvalidInput = errors.New("invalid ballot input")
)

// FieldErrors maps a field name to a user-facing validation message.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	if len(fe) == 0 {
		return ErrInvalidInput.Error()
	}
	fields := make([]string, 0, len(fe))
	for field := range fe {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+fe[field])
	}
	return strings.Join(parts, "; ")
}

// Is lets callers match any FieldErrors with errors.Is(err, ErrInvalidInput).
func (fe FieldErrors) Is(target error) bool {
	return target == ErrInvalidInput
}

// Err returns nil when no field failed.
func (fe FieldErrors) Err() error {
	if len(fe) == 0 {
		return nil
	}
	return fe
}
