package main

import (
	"fmt"

	"github.com/rpggio/ballotdesk/internal/domain/preference"
	"github.com/rpggio/ballotdesk/internal/sqlite"
	"github.com/spf13/cobra"
)

// NewThemeCommand creates the theme command.
func NewThemeCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:       "theme [show|toggle|dark|light]",
		Short:     "Show or change the saved colour theme",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"show", "toggle", string(preference.ThemeDark), string(preference.ThemeLight)},
		RunE: func(cmd *cobra.Command, args []string) error {
			action := "show"
			if len(args) == 1 {
				action = args[0]
			}
			return runTheme(cmd, rootOpts, action)
		},
	}

	return cmd
}

func runTheme(cmd *cobra.Command, opts *RootOptions, action string) error {
	db, err := openDB(opts.cfg.Preferences.Path)
	if err != nil {
		return fmt.Errorf("preferences database: %w", err)
	}
	defer db.Close()

	logger, closeLog, err := newLogger(opts.cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer closeLog()

	svc := preference.NewService(sqlite.NewPreferenceRepository(db), logger)
	ctx := cmd.Context()

	var theme preference.Theme
	switch action {
	case "show":
		theme, err = svc.Theme(ctx)
	case "toggle":
		theme, err = svc.Toggle(ctx)
	default:
		theme, err = preference.ParseTheme(action)
		if err == nil {
			err = svc.SetTheme(ctx, theme)
		}
	}
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), theme)
	return err
}
