package styles

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/skiff-browser/skiff/internal/engine"
	"github.com/skiff-browser/skiff/internal/messaging"
)

// VisitBadge renders a visit count badge.
func (t *Theme) VisitBadge(count int64) string {
	text := fmt.Sprintf("%d visits", count)
	if count == 1 {
		text = "1 visit"
	}
	return t.BadgeMuted.Render(text)
}

// TimeBadge renders a relative time badge.
func (t *Theme) TimeBadge(tm time.Time) string {
	return t.BadgeMuted.Render(RelativeTime(tm))
}

// AccentBadge renders a badge with accent colors.
func (t *Theme) AccentBadge(text string) string {
	return t.Badge.Render(text)
}

// MutedBadge renders a badge with muted colors.
func (t *Theme) MutedBadge(text string) string {
	return t.BadgeMuted.Render(text)
}

// LoadBadge renders the security/progress indicator for a load status.
func (t *Theme) LoadBadge(status engine.LoadStatus) string {
	switch status {
	case engine.LoadStatusLoading:
		return t.Subtle.Render("...")
	case engine.LoadStatusSuccess:
		return t.WarningStyle.Render(IconUnlock)
	case engine.LoadStatusSuccessHTTPS:
		return t.SuccessStyle.Render(IconLock)
	case engine.LoadStatusWarn:
		return t.WarningStyle.Render(IconWarning)
	case engine.LoadStatusError:
		return t.ErrorStyle.Render(IconX)
	default:
		return t.Subtle.Render(IconGlobe)
	}
}

// MessageLine renders one bridge message with its level icon.
func (t *Theme) MessageLine(msg messaging.Message) string {
	var icon string
	var style lipgloss.Style
	switch msg.Level {
	case messaging.LevelWarning:
		icon, style = IconWarning, t.WarningStyle
	case messaging.LevelError:
		icon, style = IconX, t.ErrorStyle
	default:
		icon, style = IconInfo, t.Subtle
	}
	return style.Render(icon) + " " + t.Normal.Render(msg.Text)
}

// RelativeTime formats a time as a human-readable relative string.
func RelativeTime(tm time.Time) string {
	diff := time.Since(tm)

	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		mins := int(diff.Minutes())
		if mins == 1 {
			return "1m ago"
		}
		return fmt.Sprintf("%dm ago", mins)
	case diff < 24*time.Hour:
		hours := int(diff.Hours())
		if hours == 1 {
			return "1h ago"
		}
		return fmt.Sprintf("%dh ago", hours)
	case diff < 7*24*time.Hour:
		days := int(diff.Hours() / 24)
		if days == 1 {
			return "1d ago"
		}
		return fmt.Sprintf("%dd ago", days)
	default:
		return tm.Format("2006-01-02")
	}
}
