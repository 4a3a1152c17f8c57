package state_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skiff-browser/skiff/internal/logging"
	"github.com/skiff-browser/skiff/internal/state"
)

func testCtx() context.Context {
	logger := logging.NewFromConfigValues("debug", "console")
	return logging.WithContext(context.Background(), logger)
}

func openTestStore(t *testing.T) *state.Store {
	t.Helper()
	ctx := testCtx()
	st, err := state.Open(ctx, filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func TestStateRoundTrip(t *testing.T) {
	ctx := testCtx()
	st := openTestStore(t)

	_, ok, err := st.State(ctx, "inspector", "position")
	require.NoError(t, err)
	assert.False(t, ok, "fresh store should hold nothing")

	require.NoError(t, st.SetState(ctx, "inspector", "position", "left"))

	got, ok, err := st.State(ctx, "inspector", "position")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "left", got)
}

func TestStateOverwrite(t *testing.T) {
	ctx := testCtx()
	st := openTestStore(t)

	require.NoError(t, st.SetState(ctx, "inspector", "position", "left"))
	require.NoError(t, st.SetState(ctx, "inspector", "position", "window"))

	got, ok, err := st.State(ctx, "inspector", "position")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "window", got)
}

func TestStateSectionsAreIndependent(t *testing.T) {
	ctx := testCtx()
	st := openTestStore(t)

	require.NoError(t, st.SetState(ctx, "inspector", "position", "top"))
	require.NoError(t, st.SetState(ctx, "window", "position", "maximized"))

	got, ok, err := st.State(ctx, "inspector", "position")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "top", got)

	got, ok, err = st.State(ctx, "window", "position")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "maximized", got)
}

func TestStateDeleteSection(t *testing.T) {
	ctx := testCtx()
	st := openTestStore(t)

	require.NoError(t, st.SetState(ctx, "inspector", "position", "right"))
	require.NoError(t, st.SetState(ctx, "inspector", "window", "Zm9v"))
	require.NoError(t, st.SetState(ctx, "window", "position", "maximized"))

	require.NoError(t, st.DeleteSection(ctx, "inspector"))

	_, ok, err := st.State(ctx, "inspector", "position")
	require.NoError(t, err)
	assert.False(t, ok)
	_, ok, err = st.State(ctx, "inspector", "window")
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = st.State(ctx, "window", "position")
	require.NoError(t, err)
	assert.True(t, ok, "other sections survive")
}

func TestStateClear(t *testing.T) {
	ctx := testCtx()
	st := openTestStore(t)

	require.NoError(t, st.SetState(ctx, "inspector", "position", "right"))
	require.NoError(t, st.SetState(ctx, "window", "position", "maximized"))

	require.NoError(t, st.Clear(ctx))

	_, ok, err := st.State(ctx, "inspector", "position")
	require.NoError(t, err)
	assert.False(t, ok)
	_, ok, err = st.State(ctx, "window", "position")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStateSurvivesReopen(t *testing.T) {
	ctx := testCtx()
	path := filepath.Join(t.TempDir(), "state.db")

	st, err := state.Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, st.SetState(ctx, "inspector", "position", "bottom"))
	require.NoError(t, st.Close())

	st, err = state.Open(ctx, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	got, ok, err := st.State(ctx, "inspector", "position")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "bottom", got)
}

func TestOpenRejectsEmptyPath(t *testing.T) {
	_, err := state.Open(testCtx(), "")
	assert.Error(t, err)
}
