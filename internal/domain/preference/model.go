package preference

import (
	"errors"
	"fmt"
)

// ThemeKey is the storage key of the theme preference.
const ThemeKey = "theme"

// Theme is the portal colour scheme.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ErrInvalidTheme indicates an unknown theme name.
var ErrInvalidTheme = errors.New("invalid theme")

// ParseTheme validates a theme name.
func ParseTheme(s string) (Theme, error) {
	switch Theme(s) {
	case ThemeLight, ThemeDark:
		return Theme(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidTheme, s)
	}
}

// Dark reports whether the theme is the dark scheme.
func (t Theme) Dark() bool {
	return t == ThemeDark
}
