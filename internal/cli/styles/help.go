package styles

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// KeyMap defines keybindings that can be rendered as help.
type KeyMap interface {
	ShortHelp() []key.Binding
	FullHelp() [][]key.Binding
}

// BrowseKeyMap defines keybindings for the browse shell.
type BrowseKeyMap struct {
	Open       key.Binding
	Back       key.Binding
	Forward    key.Binding
	Reload     key.Binding
	HardReload key.Binding
	Stop       key.Binding

	ScrollDown key.Binding
	ScrollUp   key.Binding
	PageDown   key.Binding
	PageUp     key.Binding
	Top        key.Binding
	Bottom     key.Binding

	ZoomIn    key.Binding
	ZoomOut   key.Binding
	ZoomReset key.Binding

	Find     key.Binding
	FindNext key.Binding
	FindPrev key.Binding

	Mute      key.Binding
	Pin       key.Binding
	Inspector key.Binding
	Yank      key.Binding

	Help key.Binding
	Quit key.Binding
}

// ShortHelp returns keybindings to show in compact help.
func (k BrowseKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Open, k.Back, k.Forward, k.Reload, k.Find, k.Help, k.Quit}
}

// FullHelp returns keybindings for expanded help.
func (k BrowseKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Open, k.Back, k.Forward, k.Reload, k.HardReload, k.Stop},
		{k.ScrollDown, k.ScrollUp, k.PageDown, k.PageUp, k.Top, k.Bottom},
		{k.ZoomIn, k.ZoomOut, k.ZoomReset},
		{k.Find, k.FindNext, k.FindPrev},
		{k.Mute, k.Pin, k.Inspector, k.Yank},
		{k.Help, k.Quit},
	}
}

// DefaultBrowseKeyMap returns the default browse shell keybindings.
func DefaultBrowseKeyMap() BrowseKeyMap {
	return BrowseKeyMap{
		Open: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open"),
		),
		Back: key.NewBinding(
			key.WithKeys("H", "backspace"),
			key.WithHelp("H", "back"),
		),
		Forward: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "forward"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		HardReload: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "reload (bypass cache)"),
		),
		Stop: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "stop"),
		),
		ScrollDown: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j", "scroll down"),
		),
		ScrollUp: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k", "scroll up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("ctrl+d", "pgdown"),
			key.WithHelp("C-d", "page down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("ctrl+u", "pgup"),
			key.WithHelp("C-u", "page up"),
		),
		Top: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G"),
			key.WithHelp("G", "bottom"),
		),
		ZoomIn: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "zoom in"),
		),
		ZoomOut: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "zoom out"),
		),
		ZoomReset: key.NewBinding(
			key.WithKeys("0"),
			key.WithHelp("0", "zoom reset"),
		),
		Find: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "find"),
		),
		FindNext: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "find next"),
		),
		FindPrev: key.NewBinding(
			key.WithKeys("N"),
			key.WithHelp("N", "find prev"),
		),
		Mute: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "toggle mute"),
		),
		Pin: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "toggle pin"),
		),
		Inspector: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "inspector"),
		),
		Yank: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "yank url"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// NewStyledHelp creates a themed help model.
func NewStyledHelp(theme *Theme) help.Model {
	h := help.New()
	h.Styles.ShortKey = theme.HelpKey
	h.Styles.ShortDesc = theme.HelpDesc
	h.Styles.ShortSeparator = lipgloss.NewStyle().Foreground(theme.Border)
	h.Styles.FullKey = theme.HelpKey
	h.Styles.FullDesc = theme.HelpDesc
	h.Styles.FullSeparator = lipgloss.NewStyle().Foreground(theme.Border)
	return h
}
