package mcp

import (
	"errors"
	"fmt"
	"testing"

	"github.com/rpggio/ballotdesk/internal/domain/ballot"
	"github.com/rpggio/ballotdesk/internal/domain/wizard"
	"github.com/stretchr/testify/require"
)

func TestMapError(t *testing.T) {
	fields := ballot.FieldErrors{"title": "Title is required"}

	tests := []struct {
		name string
		err  error
		code string
	}{
		{"step incomplete", fmt.Errorf("%w: %w", wizard.ErrStepInvalid, fields), "STEP_INCOMPLETE"},
		{"validation", fields, "VALIDATION_FAILED"},
		{"wrapped not found", fmt.Errorf("loading: %w", ballot.ErrBallotNotFound), "BALLOT_NOT_FOUND"},
		{"no motions", wizard.ErrNoMotions, "NO_MOTIONS"},
		{"unknown", errors.New("disk on fire"), "INTERNAL"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.code, MapError(tt.err).Code)
		})
	}
}

func TestMapError_FieldDetails(t *testing.T) {
	fields := ballot.FieldErrors{"title": "Title is required"}

	apiErr := MapError(fmt.Errorf("%w: %w", wizard.ErrStepInvalid, fields))
	require.Equal(t, fields, apiErr.Details)
	require.Nil(t, MapError(nil))
}
