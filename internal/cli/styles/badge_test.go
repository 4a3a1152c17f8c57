package styles_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skiff-browser/skiff/internal/cli/styles"
	"github.com/skiff-browser/skiff/internal/messaging"
)

func TestVisitBadge(t *testing.T) {
	theme := styles.NewTheme()

	require.Contains(t, theme.VisitBadge(1), "1 visit")
	require.Contains(t, theme.VisitBadge(42), "42 visits")
}

func TestMessageLine(t *testing.T) {
	theme := styles.NewTheme()

	out := theme.MessageLine(messaging.Message{Level: messaging.LevelError, Text: "certificate rejected"})
	require.Contains(t, out, "certificate rejected")
}

func TestRelativeTime(t *testing.T) {
	now := time.Now()

	assert.Equal(t, "just now", styles.RelativeTime(now.Add(-10*time.Second)))
	assert.Equal(t, "1m ago", styles.RelativeTime(now.Add(-90*time.Second)))
	assert.Equal(t, "5m ago", styles.RelativeTime(now.Add(-5*time.Minute)))
	assert.Equal(t, "3h ago", styles.RelativeTime(now.Add(-3*time.Hour)))
	assert.Equal(t, "2d ago", styles.RelativeTime(now.Add(-48*time.Hour)))

	old := now.Add(-30 * 24 * time.Hour)
	assert.Equal(t, old.Format("2006-01-02"), styles.RelativeTime(old))
}
