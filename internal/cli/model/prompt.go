// Package model holds the bubbletea models of the interactive shell.
package model

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/skiff-browser/skiff/internal/cli/styles"
	"github.com/skiff-browser/skiff/internal/messaging"
)

// PromptKeyMap defines keybindings shared by all prompt modes.
type PromptKeyMap struct {
	Submit       key.Binding
	Cancel       key.Binding
	ToggleOption key.Binding
	NextField    key.Binding
	PrevField    key.Binding
}

// DefaultPromptKeyMap returns the default prompt keybindings.
func DefaultPromptKeyMap() PromptKeyMap {
	return PromptKeyMap{
		Submit:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "answer")),
		Cancel:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "dismiss")),
		ToggleOption: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "toggle remember")),
		NextField:    key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab/↓", "next field")),
		PrevField:    key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab/↑", "previous field")),
	}
}

// PromptModel renders one page question and resolves it. Resolution
// runs through dispatch so the question's hooks fire on the browser
// loop, not the TUI goroutine.
type PromptModel struct {
	theme    *styles.Theme
	keys     PromptKeyMap
	dispatch func(func())
	question *messaging.Question

	confirm styles.ConfirmModel
	option  bool

	input textinput.Model
	user  textinput.Model
	pwd   textinput.Model
	focus int

	resolved bool
}

// NewPrompt builds the model for a pending question. The question's
// mode decides which widgets are shown.
func NewPrompt(theme *styles.Theme, dispatch func(func()), q *messaging.Question) PromptModel {
	m := PromptModel{
		theme:    theme,
		keys:     DefaultPromptKeyMap(),
		dispatch: dispatch,
		question: q,
	}

	switch q.Mode {
	case messaging.PromptYesNo:
		m.confirm = styles.NewConfirm(theme, q.Text)
		if d, ok := q.Default.(bool); ok {
			m.confirm.Yes = d
		}
		if q.Option != nil {
			m.option = *q.Option
		}
	case messaging.PromptText:
		m.input = styles.NewPromptInput(theme, "answer", false)
		if d, ok := q.Default.(string); ok {
			m.input.SetValue(d)
			m.input.CursorEnd()
		}
		m.input.Focus()
	case messaging.PromptDownload:
		m.input = styles.NewPromptInput(theme, "download path", false)
		if d, ok := q.Default.(string); ok {
			m.input.SetValue(d)
			m.input.CursorEnd()
		}
		m.input.Focus()
	case messaging.PromptUserPwd:
		m.user = styles.NewPromptInput(theme, "username", false)
		if d, ok := q.Default.(string); ok {
			m.user.SetValue(d)
			m.user.CursorEnd()
		}
		m.pwd = styles.NewPromptInput(theme, "password", true)
		m.user.Focus()
	}

	return m
}

// Init implements tea.Model.
func (m PromptModel) Init() tea.Cmd {
	return textinput.Blink
}

// Done reports whether the question has been resolved from this prompt.
func (m PromptModel) Done() bool {
	return m.resolved
}

// Update implements tea.Model.
func (m PromptModel) Update(msg tea.Msg) (PromptModel, tea.Cmd) {
	if m.resolved {
		return m, nil
	}

	switch m.question.Mode {
	case messaging.PromptYesNo:
		return m.updateYesNo(msg)
	case messaging.PromptAlert:
		return m.updateAlert(msg)
	case messaging.PromptUserPwd:
		return m.updateUserPwd(msg)
	default:
		return m.updateText(msg)
	}
}

func (m PromptModel) updateYesNo(msg tea.Msg) (PromptModel, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && m.question.Option != nil && key.Matches(k, m.keys.ToggleOption) {
		m.option = !m.option
		return m, nil
	}

	confirm, cmd := m.confirm.Update(msg)
	m.confirm = confirm

	if m.confirm.Done() {
		if m.confirm.Canceled {
			return m.cancel(), cmd
		}
		return m.answer(m.confirm.Yes), cmd
	}
	return m, cmd
}

func (m PromptModel) updateAlert(msg tea.Msg) (PromptModel, tea.Cmd) {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(k, m.keys.Submit):
		return m.answer(nil), nil
	case key.Matches(k, m.keys.Cancel):
		return m.cancel(), nil
	}
	return m, nil
}

func (m PromptModel) updateText(msg tea.Msg) (PromptModel, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(k, m.keys.Submit):
			return m.answer(m.input.Value()), nil
		case key.Matches(k, m.keys.Cancel):
			return m.cancel(), nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m PromptModel) updateUserPwd(msg tea.Msg) (PromptModel, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(k, m.keys.Cancel):
			return m.cancel(), nil
		case key.Matches(k, m.keys.Submit):
			if m.focus == 0 {
				return m.setFocus(1), nil
			}
			return m.answer(messaging.Authinfo{
				User:     m.user.Value(),
				Password: m.pwd.Value(),
			}), nil
		case key.Matches(k, m.keys.NextField), key.Matches(k, m.keys.PrevField):
			return m.setFocus((m.focus + 1) % 2), nil
		}
	}

	var cmd tea.Cmd
	if m.focus == 0 {
		m.user, cmd = m.user.Update(msg)
	} else {
		m.pwd, cmd = m.pwd.Update(msg)
	}
	return m, cmd
}

func (m PromptModel) setFocus(focus int) PromptModel {
	m.focus = focus
	if focus == 0 {
		m.user.Focus()
		m.pwd.Blur()
	} else {
		m.user.Blur()
		m.pwd.Focus()
	}
	return m
}

// answer resolves the question with the given value on the browser
// loop. The always/never choice is written back first so the asker
// sees it when the Answered hooks fire.
func (m PromptModel) answer(value any) PromptModel {
	m.resolved = true
	q := m.question
	option := m.option
	m.dispatch(func() {
		if q.Option != nil {
			*q.Option = option
		}
		q.Done(value)
	})
	return m
}

func (m PromptModel) cancel() PromptModel {
	m.resolved = true
	q := m.question
	m.dispatch(func() { q.Cancel() })
	return m
}

// View implements tea.Model.
func (m PromptModel) View() string {
	t := m.theme
	q := m.question

	lines := []string{t.Title.Render(q.Title)}
	if q.URL != "" {
		lines = append(lines, t.Subtle.Render(styles.IconGlobe+" "+q.URL))
	}

	switch q.Mode {
	case messaging.PromptYesNo:
		lines = append(lines, m.confirm.ViewContent())
		if q.Option != nil {
			check := "[ ]"
			if m.option {
				check = "[x]"
			}
			lines = append(lines, t.Subtle.Render(check+" remember for this site (tab to toggle)"))
		}

	case messaging.PromptAlert:
		lines = append(lines,
			t.Normal.Render(q.Text),
			"",
			t.Subtle.Render("enter to continue"),
		)

	case messaging.PromptUserPwd:
		lines = append(lines,
			t.Normal.Render(q.Text),
			"",
			t.HelpDesc.Render("Username"),
			t.InputBox(m.user.View(), m.focus == 0),
			t.HelpDesc.Render("Password"),
			t.InputBox(m.pwd.View(), m.focus == 1),
			"",
			t.Subtle.Render("tab to switch • enter to submit • esc to dismiss"),
		)

	default:
		lines = append(lines,
			t.Normal.Render(q.Text),
			"",
			t.InputBox(m.input.View(), true),
			"",
			t.Subtle.Render("enter to submit • esc to dismiss"),
		)
	}

	return m.theme.Box.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
