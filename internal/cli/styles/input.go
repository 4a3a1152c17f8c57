package styles

import (
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
)

// NewStyledInput creates a themed text input.
func NewStyledInput(theme *Theme, placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.PlaceholderStyle = lipgloss.NewStyle().Foreground(theme.Muted)
	ti.TextStyle = lipgloss.NewStyle().Foreground(theme.Text)
	ti.Cursor.Style = lipgloss.NewStyle().Foreground(theme.Accent)
	ti.PromptStyle = lipgloss.NewStyle().Foreground(theme.Accent)
	ti.Prompt = "> "
	return ti
}

// NewURLInput creates the address-bar input.
func NewURLInput(theme *Theme) textinput.Model {
	ti := NewStyledInput(theme, "Enter URL or search query...")
	ti.Prompt = IconCursor + " "
	ti.CharLimit = 2048
	return ti
}

// NewFindInput creates the find-in-page input.
func NewFindInput(theme *Theme) textinput.Model {
	ti := NewStyledInput(theme, "Find in page...")
	ti.Prompt = "/ "
	ti.CharLimit = 256
	return ti
}

// NewPromptInput creates an input for question prompts. Secret hides
// the typed characters, for password prompts.
func NewPromptInput(theme *Theme, placeholder string, secret bool) textinput.Model {
	ti := NewStyledInput(theme, placeholder)
	ti.CharLimit = 1024
	if secret {
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '*'
	}
	return ti
}

// InputBox wraps a rendered input in a styled border box.
func (t *Theme) InputBox(input string, focused bool) string {
	style := t.Input
	if focused {
		style = t.InputFocused
	}
	return style.Render(input)
}
