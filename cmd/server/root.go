package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rpggio/ballotdesk/internal/config"
	"github.com/spf13/cobra"
)

const defaultEnvFile = ".env"

// RootOptions holds global flags and the configuration resolved from them.
type RootOptions struct {
	EnvFile string

	cfg config.Config
}

// NewRootCommand creates the ballotdesk command tree.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "ballotdesk",
		Short:         "Ballot management for owners corporations",
		Long:          "ballotdesk lists, creates and reminds voters about owners corporation ballots over MCP.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load()
		},
	}

	cmd.PersistentFlags().StringVar(&opts.EnvFile, "env-file", defaultEnvFile, "dotenv file loaded before reading BALLOTDESK_* variables")

	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewThemeCommand(opts))
	cmd.AddCommand(NewConfigCommand(opts))

	return cmd
}

// load reads the dotenv file, then the configuration. The default dotenv file
// is optional; one named explicitly must exist.
func (o *RootOptions) load() error {
	if err := godotenv.Load(o.EnvFile); err != nil {
		if !(o.EnvFile == defaultEnvFile && errors.Is(err, fs.ErrNotExist)) {
			return fmt.Errorf("load env file: %w", err)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	o.cfg = cfg
	return nil
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// newLogger writes text logs to w, or to the configured log file when set.
// The returned close func releases the file.
func newLogger(cfg config.Config, w io.Writer) (*slog.Logger, func(), error) {
	closeFn := func() {}
	if cfg.Log.Path != "" {
		fileWriter, file, err := newLogFileWriter(cfg.Log.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("log file error: %w", err)
		}
		w = fileWriter
		closeFn = func() { _ = file.Close() }
	}
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))
	return logger, closeFn, nil
}

func stderrOrStdout(mode string) io.Writer {
	// Stdout carries JSON-RPC in stdio mode.
	if mode == config.TransportStdio {
		return os.Stderr
	}
	return os.Stdout
}
