package preference

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rpggio/ballotdesk/internal/repository"
)

// Service reads and writes the persisted theme preference.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new preference service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{repo: repo, logger: logger}
}

// Theme returns the saved theme. Anything other than a saved "dark" is light.
func (s *Service) Theme(ctx context.Context) (Theme, error) {
	value, err := s.repo.Get(ctx, ThemeKey)
	if errors.Is(err, repository.ErrNotFound) {
		return ThemeLight, nil
	}
	if err != nil {
		return "", fmt.Errorf("loading theme: %w", err)
	}
	if Theme(value) == ThemeDark {
		return ThemeDark, nil
	}
	if Theme(value) != ThemeLight {
		s.logger.Warn("unrecognised theme preference, using light", "value", value)
	}
	return ThemeLight, nil
}

// SetTheme stores the theme.
func (s *Service) SetTheme(ctx context.Context, theme Theme) error {
	if _, err := ParseTheme(string(theme)); err != nil {
		return err
	}
	if err := s.repo.Set(ctx, ThemeKey, string(theme)); err != nil {
		return fmt.Errorf("saving theme: %w", err)
	}
	return nil
}

// Toggle flips between light and dark and returns the new theme.
func (s *Service) Toggle(ctx context.Context) (Theme, error) {
	current, err := s.Theme(ctx)
	if err != nil {
		return "", err
	}
	next := ThemeDark
	if current.Dark() {
		next = ThemeLight
	}
	if err := s.SetTheme(ctx, next); err != nil {
		return "", err
	}
	return next, nil
}
