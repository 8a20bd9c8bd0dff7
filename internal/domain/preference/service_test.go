package preference_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rpggio/ballotdesk/internal/domain/preference"
	"github.com/rpggio/ballotdesk/internal/repository"
	"github.com/rpggio/ballotdesk/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestPreferenceService_ThemeDefaultsToLight(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.PreferenceRepository{}
	repo.On("Get", ctx, preference.ThemeKey).Return("", repository.ErrNotFound)

	svc := preference.NewService(repo, nil)
	theme, err := svc.Theme(ctx)
	require.NoError(t, err)
	require.Equal(t, preference.ThemeLight, theme)
}

func TestPreferenceService_UnknownValueIsLight(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.PreferenceRepository{}
	repo.On("Get", ctx, preference.ThemeKey).Return("solarized", nil)

	svc := preference.NewService(repo, nil)
	theme, err := svc.Theme(ctx)
	require.NoError(t, err)
	require.False(t, theme.Dark())
}

func TestPreferenceService_Toggle(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.PreferenceRepository{}
	repo.On("Get", ctx, preference.ThemeKey).Return("light", nil).Once()
	repo.On("Set", ctx, preference.ThemeKey, "dark").Return(nil).Once()

	svc := preference.NewService(repo, nil)
	theme, err := svc.Toggle(ctx)
	require.NoError(t, err)
	require.Equal(t, preference.ThemeDark, theme)
	repo.AssertExpectations(t)
}

func TestPreferenceService_SetThemeValidation(t *testing.T) {
	repo := &mocks.PreferenceRepository{}
	svc := preference.NewService(repo, nil)

	err := svc.SetTheme(context.Background(), preference.Theme("neon"))
	require.ErrorIs(t, err, preference.ErrInvalidTheme)
	repo.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything)
}

func TestPreferenceService_LoadError(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.PreferenceRepository{}
	boom := errors.New("disk gone")
	repo.On("Get", ctx, preference.ThemeKey).Return("", boom)

	svc := preference.NewService(repo, nil)
	_, err := svc.Theme(ctx)
	require.ErrorIs(t, err, boom)
}
