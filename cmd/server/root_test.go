package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestThemeCommand_PersistsAcrossRuns(t *testing.T) {
	t.Setenv("BALLOTDESK_PREFERENCES_PATH", filepath.Join(t.TempDir(), "prefs", "preferences.db"))

	out, err := runCommand(t, "theme")
	require.NoError(t, err)
	require.Equal(t, "light\n", out)

	out, err = runCommand(t, "theme", "toggle")
	require.NoError(t, err)
	require.Equal(t, "dark\n", out)

	out, err = runCommand(t, "theme", "show")
	require.NoError(t, err)
	require.Equal(t, "dark\n", out)

	out, err = runCommand(t, "theme", "light")
	require.NoError(t, err)
	require.Equal(t, "light\n", out)

	_, err = runCommand(t, "theme", "purple")
	require.Error(t, err)
}

func TestConfigShow(t *testing.T) {
	t.Setenv("BALLOTDESK_PREFERENCES_PATH", filepath.Join(t.TempDir(), "preferences.db"))
	t.Setenv("BALLOTDESK_BASE_URL", "https://portal.example.com")

	out, err := runCommand(t, "config", "show")
	require.NoError(t, err)
	require.Contains(t, out, "base_url: https://portal.example.com")
	require.Contains(t, out, "toast_duration: 3s")
}

func TestEnvFile(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(envFile, []byte("BALLOTDESK_BASE_URL=https://from-dotenv.example.com\n"), 0o644))
	t.Setenv("BALLOTDESK_PREFERENCES_PATH", filepath.Join(dir, "preferences.db"))
	t.Cleanup(func() { os.Unsetenv("BALLOTDESK_BASE_URL") })

	out, err := runCommand(t, "--env-file", envFile, "config", "show")
	require.NoError(t, err)
	require.Contains(t, out, "https://from-dotenv.example.com")

	_, err = runCommand(t, "--env-file", filepath.Join(dir, "missing.env"), "config", "show")
	require.Error(t, err)
}

func TestServeRejectsUnknownTransport(t *testing.T) {
	t.Setenv("BALLOTDESK_PREFERENCES_PATH", filepath.Join(t.TempDir(), "preferences.db"))

	_, err := runCommand(t, "serve", "--transport", "carrier-pigeon")
	require.Error(t, err)
	require.Contains(t, err.Error(), "transport mode")
}

func TestLogFileWriter_KeepsTail(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "ballotdesk.log")

	w, file, err := newLogFileWriter(path)
	require.NoError(t, err)
	defer file.Close()
	w.maxSize = 20
	w.keep = 10

	_, err = w.Write([]byte(strings.Repeat("a", 15)))
	require.NoError(t, err)
	_, err = w.Write([]byte("0123456789"))
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "0123456789", string(data))
}
