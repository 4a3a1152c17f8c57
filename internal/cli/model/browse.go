package model

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/skiff-browser/skiff/internal/browser"
	"github.com/skiff-browser/skiff/internal/cli/styles"
	"github.com/skiff-browser/skiff/internal/engine"
	"github.com/skiff-browser/skiff/internal/messaging"
	"github.com/skiff-browser/skiff/internal/promise"
	"github.com/skiff-browser/skiff/pkg/clipboard"
)

// PageStateMsg is a snapshot of the shown tab, pushed from the browser
// loop whenever something observable changed.
type PageStateMsg struct {
	URL     string
	Title   string
	Backend string

	Progress int
	Loading  bool
	Status   engine.LoadStatus

	ZoomPercent int

	Pinned     bool
	Muted      bool
	Fullscreen bool

	CanGoBack    bool
	CanGoForward bool
}

// BridgeMsg carries one user-visible message from the message bridge.
type BridgeMsg struct {
	Message messaging.Message
}

// BridgeClearedMsg drops all displayed messages.
type BridgeClearedMsg struct{}

// QuestionMsg asks the shell to prompt the user.
type QuestionMsg struct {
	Question *messaging.Question
}

// QuestionDoneMsg closes the active prompt, sent when the question
// resolved from anywhere, including aborts from the page side.
type QuestionDoneMsg struct{}

// SearchMatchMsg updates the current/total match position.
type SearchMatchMsg struct {
	Current int
	Total   int
}

type browseMode int

const (
	modeNormal browseMode = iota
	modeAddress
	modeFind
	modePrompt
)

// maxMessages bounds the message area of the shell.
const maxMessages = 3

// BrowseOptions carries the dependencies of the browse shell model.
type BrowseOptions struct {
	Theme    *styles.Theme
	Dispatch func(func())
	Tab      *browser.Tab
	// Open resolves user input to a navigation. The shell wires it to
	// the URL parser and the tab, off the TUI goroutine.
	Open func(string)
	// Incremental searches while the user is still typing.
	Incremental bool
}

// BrowseModel is the interactive shell around one tab: status line,
// message area, address and find inputs, and question prompts. All tab
// access runs through dispatch on the browser loop; the model itself
// only touches its own snapshot state.
type BrowseModel struct {
	theme    *styles.Theme
	keys     styles.BrowseKeyMap
	help     help.Model
	dispatch func(func())
	tab      *browser.Tab
	open     func(string)

	mode    browseMode
	address textinput.Model
	find    textinput.Model
	prompt  PromptModel

	page        PageStateMsg
	messages    []messaging.Message
	match       SearchMatchMsg
	incremental bool

	width  int
	height int
}

// NewBrowse builds the shell model. The first PageStateMsg fills in the
// page snapshot; until then the view renders a placeholder.
func NewBrowse(opts BrowseOptions) BrowseModel {
	return BrowseModel{
		theme:       opts.Theme,
		keys:        styles.DefaultBrowseKeyMap(),
		help:        styles.NewStyledHelp(opts.Theme),
		dispatch:    opts.Dispatch,
		tab:         opts.Tab,
		open:        opts.Open,
		address:     styles.NewURLInput(opts.Theme),
		find:        styles.NewFindInput(opts.Theme),
		incremental: opts.Incremental,
	}
}

// Init implements tea.Model.
func (m BrowseModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case PageStateMsg:
		m.page = msg
		return m, nil

	case BridgeMsg:
		m.messages = mergeMessage(m.messages, msg.Message, maxMessages)
		return m, nil

	case BridgeClearedMsg:
		m.messages = nil
		return m, nil

	case QuestionMsg:
		m.prompt = NewPrompt(m.theme, m.dispatch, msg.Question)
		m.mode = modePrompt
		return m, m.prompt.Init()

	case QuestionDoneMsg:
		if m.mode == modePrompt {
			m.mode = modeNormal
		}
		return m, nil

	case SearchMatchMsg:
		m.match = msg
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m BrowseModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case modeAddress:
		return m.updateAddress(msg)
	case modeFind:
		return m.updateFind(msg)
	case modePrompt:
		return m.updatePrompt(msg)
	default:
		return m.updateNormal(msg)
	}
}

func (m BrowseModel) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keys
	switch {
	case key.Matches(msg, k.Quit):
		return m, tea.Quit

	case key.Matches(msg, k.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, k.Open):
		m.mode = modeAddress
		m.address.SetValue("")
		m.address.Focus()
		return m, textinput.Blink

	case key.Matches(msg, k.Back):
		m.do(func(t *browser.Tab) error { return t.Hist.Back(1) })

	case key.Matches(msg, k.Forward):
		m.do(func(t *browser.Tab) error { return t.Hist.Forward(1) })

	case key.Matches(msg, k.Reload):
		m.do(func(t *browser.Tab) error { return t.Reload(false) })

	case key.Matches(msg, k.HardReload):
		m.do(func(t *browser.Tab) error { return t.Reload(true) })

	case key.Matches(msg, k.Stop):
		m.do(func(t *browser.Tab) error { return t.Stop() })

	case key.Matches(msg, k.ScrollDown):
		m.do(func(t *browser.Tab) error { return t.Scroll.Down(1) })

	case key.Matches(msg, k.ScrollUp):
		m.do(func(t *browser.Tab) error { return t.Scroll.Up(1) })

	case key.Matches(msg, k.PageDown):
		m.do(func(t *browser.Tab) error { return t.Scroll.PageDown(1) })

	case key.Matches(msg, k.PageUp):
		m.do(func(t *browser.Tab) error { return t.Scroll.PageUp(1) })

	case key.Matches(msg, k.Top):
		m.do(func(t *browser.Tab) error { return t.Scroll.Top() })

	case key.Matches(msg, k.Bottom):
		m.do(func(t *browser.Tab) error { return t.Scroll.Bottom() })

	case key.Matches(msg, k.ZoomIn):
		m.do(func(t *browser.Tab) error { _, err := t.Zoom.ApplyOffset(1); return err })

	case key.Matches(msg, k.ZoomOut):
		m.do(func(t *browser.Tab) error { _, err := t.Zoom.ApplyOffset(-1); return err })

	case key.Matches(msg, k.ZoomReset):
		m.do(func(t *browser.Tab) error { return t.Zoom.ApplyDefault() })

	case key.Matches(msg, k.Find):
		m.mode = modeFind
		m.find.SetValue("")
		m.find.Focus()
		return m, textinput.Blink

	case key.Matches(msg, k.FindNext):
		m.stepSearch(false)

	case key.Matches(msg, k.FindPrev):
		m.stepSearch(true)

	case key.Matches(msg, k.Mute):
		m.do(func(t *browser.Tab) error { return t.Audio.ToggleMuted() })

	case key.Matches(msg, k.Pin):
		pinned := m.page.Pinned
		m.do(func(t *browser.Tab) error { t.SetPinned(!pinned); return nil })

	case key.Matches(msg, k.Inspector):
		m.do(func(t *browser.Tab) error { return t.Inspector().Toggle() })

	case key.Matches(msg, k.Yank):
		m = m.yank()
	}

	return m, nil
}

func (m BrowseModel) updateAddress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeNormal
		m.address.Blur()
		return m, nil
	case "enter":
		input := m.address.Value()
		m.mode = modeNormal
		m.address.Blur()
		if input != "" && m.open != nil {
			m.open(input)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.address, cmd = m.address.Update(msg)
	return m, cmd
}

func (m BrowseModel) updateFind(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeNormal
		m.find.Blur()
		m.do(func(t *browser.Tab) error { return t.Search.Clear() })
		return m, nil
	case "enter":
		text := m.find.Value()
		m.mode = modeNormal
		m.find.Blur()
		if text != "" {
			m.startSearch(text)
		}
		return m, nil
	}

	before := m.find.Value()
	var cmd tea.Cmd
	m.find, cmd = m.find.Update(msg)
	if m.incremental && m.find.Value() != before && m.find.Value() != "" {
		m.startSearch(m.find.Value())
	}
	return m, cmd
}

func (m BrowseModel) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	prompt, cmd := m.prompt.Update(msg)
	m.prompt = prompt
	if m.prompt.Done() {
		m.mode = modeNormal
	}
	return m, cmd
}

// do runs op on the browser loop and routes its error into the message
// bridge, which loops back into the message area.
func (m BrowseModel) do(op func(*browser.Tab) error) {
	tab := m.tab
	m.dispatch(func() {
		if err := op(tab); err != nil {
			tab.Session().Bridge().Show(messaging.Message{
				Level:   messaging.LevelWarning,
				Text:    err.Error(),
				Replace: "status",
			})
		}
	})
}

func (m BrowseModel) startSearch(text string) {
	tab := m.tab
	m.dispatch(func() {
		tab.Search.Start(text, false).Then(func(found bool, err error) {
			bridge := tab.Session().Bridge()
			switch {
			case err != nil:
				bridge.Show(messaging.Message{Level: messaging.LevelError, Text: err.Error(), Replace: "find"})
			case !found:
				bridge.Show(messaging.Message{
					Level:   messaging.LevelWarning,
					Text:    fmt.Sprintf("Text %q not found on page", text),
					Replace: "find",
				})
			}
		})
	})
}

func (m BrowseModel) stepSearch(prev bool) {
	tab := m.tab
	m.dispatch(func() {
		var f *promise.Future[browser.NavResult]
		if prev {
			f = tab.Search.Prev()
		} else {
			f = tab.Search.Next()
		}
		f.Then(func(res browser.NavResult, err error) {
			bridge := tab.Session().Bridge()
			if err != nil {
				bridge.Show(messaging.Message{Level: messaging.LevelWarning, Text: err.Error(), Replace: "find"})
				return
			}
			if text := wrapText(res); text != "" {
				bridge.Show(messaging.Message{Level: messaging.LevelInfo, Text: text, Replace: "find"})
			}
		})
	})
}

// wrapText translates a search navigation outcome into the classic
// status notice, empty for a plain hit.
func wrapText(res browser.NavResult) string {
	switch res {
	case browser.NavNotFound:
		return "No more matches"
	case browser.NavWrappedBottom:
		return "Search hit BOTTOM, continuing at TOP"
	case browser.NavWrappedTop:
		return "Search hit TOP, continuing at BOTTOM"
	case browser.NavWrapPreventedBottom:
		return "Search hit BOTTOM"
	case browser.NavWrapPreventedTop:
		return "Search hit TOP"
	default:
		return ""
	}
}

func (m BrowseModel) yank() BrowseModel {
	msg := messaging.Message{Level: messaging.LevelInfo, Replace: "yank"}
	if m.page.URL == "" {
		msg.Level = messaging.LevelWarning
		msg.Text = "Nothing to yank"
	} else if err := clipboard.Copy(m.page.URL); err != nil {
		msg.Level = messaging.LevelError
		msg.Text = err.Error()
	} else {
		msg.Text = "Yanked URL to clipboard: " + m.page.URL
	}
	m.messages = mergeMessage(m.messages, msg, maxMessages)
	return m
}

// mergeMessage appends msg to list, superseding an earlier message in
// the same replace slot, and keeps at most max entries.
func mergeMessage(list []messaging.Message, msg messaging.Message, max int) []messaging.Message {
	if msg.Replace != "" {
		for i, old := range list {
			if old.Replace == msg.Replace {
				out := make([]messaging.Message, len(list))
				copy(out, list)
				out[i] = msg
				return out
			}
		}
	}
	out := make([]messaging.Message, 0, len(list)+1)
	out = append(out, list...)
	out = append(out, msg)
	if len(out) > max {
		out = out[len(out)-max:]
	}
	return out
}

// View implements tea.Model.
func (m BrowseModel) View() string {
	t := m.theme

	sections := []string{m.viewTitle()}

	for _, msg := range m.messages {
		sections = append(sections, t.MessageLine(msg))
	}

	switch m.mode {
	case modeAddress:
		sections = append(sections, t.InputBox(m.address.View(), true))
	case modeFind:
		sections = append(sections, t.InputBox(m.find.View(), true))
	case modePrompt:
		sections = append(sections, m.prompt.View())
	}

	sections = append(sections, m.help.View(m.keys), m.viewStatus())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m BrowseModel) viewTitle() string {
	t := m.theme

	title := m.page.Title
	if title == "" {
		title = "about:blank"
	}

	parts := []string{t.LoadBadge(m.page.Status), t.Title.Render(title)}
	if m.page.Pinned {
		parts = append(parts, t.Highlight.Render(styles.IconPin))
	}
	if m.page.Muted {
		parts = append(parts, t.Subtle.Render(styles.IconMute))
	}
	if m.page.ZoomPercent != 0 && m.page.ZoomPercent != 100 {
		parts = append(parts, t.MutedBadge(fmt.Sprintf("%d%%", m.page.ZoomPercent)))
	}

	return lipgloss.JoinHorizontal(lipgloss.Center, joinSpaced(parts)...)
}

func (m BrowseModel) viewStatus() string {
	t := m.theme

	left := m.page.URL
	if m.page.Loading {
		left = fmt.Sprintf("%s (%d%%)", left, m.page.Progress)
	}

	var right string
	if m.match.Total > 0 {
		right = fmt.Sprintf("match %d/%d", m.match.Current, m.match.Total)
	}
	if m.page.Backend != "" {
		if right != "" {
			right += "  "
		}
		right += m.page.Backend
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	line := " " + left + lipgloss.NewStyle().Width(gap).Render("") + right + " "

	return t.StatusBar.Render(line)
}

func joinSpaced(parts []string) []string {
	out := make([]string, 0, len(parts)*2)
	for i, p := range parts {
		if i > 0 {
			out = append(out, " ")
		}
		out = append(out, p)
	}
	return out
}

var _ tea.Model = (*BrowseModel)(nil)
