package styles_test

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skiff-browser/skiff/internal/cli/styles"
)

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestConfirmDefaultsToNo(t *testing.T) {
	m := styles.NewConfirm(styles.NewTheme(), "Delete everything?")
	require.False(t, m.Yes)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, m.Done())
	assert.False(t, m.Result())
}

func TestConfirmYesThenEnter(t *testing.T) {
	m := styles.NewConfirm(styles.NewTheme(), "Delete everything?")

	m, _ = m.Update(keyMsg("y"))
	require.True(t, m.Yes)
	require.False(t, m.Done())

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, m.Done())
	assert.True(t, m.Result())
}

func TestConfirmEscapeCancels(t *testing.T) {
	m := styles.NewConfirm(styles.NewTheme(), "Delete everything?")

	m, _ = m.Update(keyMsg("y"))
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})

	require.True(t, m.Done())
	assert.True(t, m.Canceled)
	assert.False(t, m.Result())
}

func TestConfirmViewShowsMessage(t *testing.T) {
	m := styles.NewConfirm(styles.NewTheme(), "Purge browsing data?")

	out := m.View()
	require.Contains(t, out, "Purge browsing data?")
	require.Contains(t, out, "Yes")
	require.Contains(t, out, "No")
}
