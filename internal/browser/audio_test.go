package browser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAudioMute(t *testing.T) {
	view := newFakeView()
	_, tab := newTestTab(t, view, Options{Backend: "fake"})

	var changes []bool
	tab.Audio.MutedChanged.Connect(func(m bool) { changes = append(changes, m) })

	require.NoError(t, tab.Audio.SetMuted(true, false))
	assert.True(t, tab.Audio.IsMuted())

	require.NoError(t, tab.Audio.ToggleMuted())
	assert.False(t, tab.Audio.IsMuted())

	assert.Equal(t, []bool{true, false}, changes)
}

func TestAudioOverrideBlocksConfigMute(t *testing.T) {
	view := newFakeView()
	_, tab := newTestTab(t, view, Options{Backend: "fake"})

	// The user unmuted explicitly; a config-driven mute must not undo it.
	require.NoError(t, tab.Audio.SetMuted(false, true))
	require.NoError(t, tab.Audio.SetMutedDefault(true))
	assert.False(t, tab.Audio.IsMuted())

	// Without an override the config value applies.
	view2 := newFakeView()
	_, tab2 := newTestTab(t, view2, Options{Backend: "fake"})
	require.NoError(t, tab2.Audio.SetMutedDefault(true))
	assert.True(t, tab2.Audio.IsMuted())
}
