package cmd

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skiff-browser/skiff/internal/cli/styles"
	"github.com/skiff-browser/skiff/internal/logging"
)

func writeSessionLog(t *testing.T, dir, sessionID, content string) {
	t.Helper()
	name := logging.SessionFilename(sessionID)
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
}

func TestGetSessionsNewestFirst(t *testing.T) {
	logDir := t.TempDir()

	writeSessionLog(t, logDir, "20260821_101500_aaaa", "old\n")
	writeSessionLog(t, logDir, "20260822_101500_bbbb", "new\n")
	require.NoError(t, os.WriteFile(filepath.Join(logDir, "notes.txt"), []byte("skip me\n"), 0o600))

	older := time.Now().Add(-2 * time.Hour)
	oldPath := filepath.Join(logDir, logging.SessionFilename("20260821_101500_aaaa"))
	require.NoError(t, os.Chtimes(oldPath, older, older))

	sessions, err := getSessions(logDir)
	require.NoError(t, err)
	require.Len(t, sessions, 2, "non-session files are skipped")

	assert.Equal(t, "bbbb", sessions[0].ShortID)
	assert.Equal(t, "aaaa", sessions[1].ShortID)
}

func TestGetSessionsMissingDir(t *testing.T) {
	sessions, err := getSessions(filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)
	assert.Empty(t, sessions)
}

func TestFindSessionShortID(t *testing.T) {
	logDir := t.TempDir()
	writeSessionLog(t, logDir, "20260822_101500_a7b3", "hi\n")

	info, err := findSession(logDir, "A7B3")
	require.NoError(t, err)
	assert.Equal(t, "20260822_101500_a7b3", info.SessionID)
}

func TestFindSessionPartialMatch(t *testing.T) {
	logDir := t.TempDir()
	writeSessionLog(t, logDir, "20260822_101500_aaaa", "hi\n")
	writeSessionLog(t, logDir, "20260823_101500_abab", "hi\n")

	info, err := findSession(logDir, "0823")
	require.NoError(t, err)
	assert.Equal(t, "abab", info.ShortID)

	_, err = findSession(logDir, "zzzz")
	assert.Error(t, err)

	_, err = findSession(logDir, "2026082")
	assert.Error(t, err, "both sessions match the prefix")
}

func TestColorizeLogLine(t *testing.T) {
	theme := styles.NewTheme()

	out := colorizeLogLine(`{"level":"info","time":"2026-08-22T10:15:00Z","message":"Tab created"}`, theme)
	assert.Contains(t, out, "Tab created")
	assert.Contains(t, out, "10:15:00")

	plain := colorizeLogLine("not json at all", theme)
	assert.Contains(t, plain, "not json at all")
}

func TestFormatSize(t *testing.T) {
	assert.Equal(t, "512 B", formatSize(512))
	assert.Equal(t, "2.0 KB", formatSize(2048))
	assert.Equal(t, "1.5 MB", formatSize(3*1024*1024/2))
}
