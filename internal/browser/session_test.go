package browser

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skiff-browser/skiff/internal/engine"
	"github.com/skiff-browser/skiff/internal/messaging"
	"github.com/skiff-browser/skiff/internal/ui/mainloop"
)

func init() {
	engine.Register(&fakeFactory{name: "fake"})
}

func newTestSession(t *testing.T, opts Options) *Session {
	t.Helper()
	return NewSession(context.Background(), mainloop.New(), opts)
}

func TestSessionDefaults(t *testing.T) {
	s := newTestSession(t, Options{})

	opts := s.Options()
	assert.Equal(t, "webkit", opts.Backend)
	assert.Equal(t, DefaultZoomLevels(), opts.Zoom.Levels)
	assert.Equal(t, 100, opts.Zoom.Default)
	assert.Equal(t, "smart", opts.Search.IgnoreCase)
	assert.Equal(t, "right", opts.InspectorPosition)
}

func TestSessionNewTab(t *testing.T) {
	s := newTestSession(t, Options{Backend: "fake"})

	tab1, err := s.NewTab(context.Background())
	require.NoError(t, err)
	tab2, err := s.NewTab(context.Background())
	require.NoError(t, err)

	assert.Equal(t, uint64(1), tab1.ID)
	assert.Equal(t, uint64(2), tab2.ID)
	assert.Equal(t, "fake", tab1.Backend())
}

func TestSessionNewTabUnknownBackend(t *testing.T) {
	s := newTestSession(t, Options{Backend: "no-such-engine"})

	_, err := s.NewTab(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, engine.ErrNotReady)
}

func TestSessionInsecureHosts(t *testing.T) {
	s := newTestSession(t, Options{})

	s.RememberInsecureHost("Bad.Example.ORG")

	assert.True(t, s.IsInsecureHost("bad.example.org"))
	assert.True(t, s.IsInsecureHost("BAD.example.org"))
	assert.True(t, s.IsInsecureHost("deep.sub.bad.example.org"), "subdomains inherit the exception")
	assert.False(t, s.IsInsecureHost("example.org"), "parent domains do not")
	assert.False(t, s.IsInsecureHost("otherbad.example.com"))

	s.ClearInsecureHosts()
	assert.False(t, s.IsInsecureHost("bad.example.org"))
}

func TestSessionInsecureHostsAreSessionLocal(t *testing.T) {
	a := newTestSession(t, Options{})
	b := newTestSession(t, Options{})

	a.RememberInsecureHost("bad.example.org")
	assert.True(t, a.IsInsecureHost("bad.example.org"))
	assert.False(t, b.IsInsecureHost("bad.example.org"))
}

func TestSessionAskBlocking(t *testing.T) {
	s := newTestSession(t, Options{})
	loop := s.Loop()

	var sawBlocking bool
	s.Bridge().Questions.Connect(func(req messaging.AskRequest) {
		sawBlocking = req.Blocking
		// Answer on a later loop turn, like a real prompt would.
		loop.Post(func() {
			assert.Equal(t, 1, loop.NestedDepth(), "answer runs inside the nested pump")
			req.Question.Done("sesame")
		})
	})

	q, err := messaging.NewQuestion(messaging.QuestionOpts{
		Title: "Password",
		Text:  "Say the magic word",
		Mode:  messaging.PromptText,
	})
	require.NoError(t, err)

	answer := s.AskBlocking(q)

	assert.True(t, sawBlocking)
	assert.Equal(t, "sesame", answer)
	assert.False(t, q.IsPending())
	assert.Equal(t, 0, loop.NestedDepth())
}

func TestSessionAskBlockingAborted(t *testing.T) {
	s := newTestSession(t, Options{})
	loop := s.Loop()

	s.Bridge().Questions.Connect(func(req messaging.AskRequest) {
		loop.Post(func() { req.Question.Abort() })
	})

	q, err := messaging.NewQuestion(messaging.QuestionOpts{
		Text: "Never answered",
		Mode: messaging.PromptYesNo,
	})
	require.NoError(t, err)

	answer := s.AskBlocking(q)
	assert.Nil(t, answer)
	assert.True(t, q.IsAborted())
}

func TestSessionAskBlockingNoHandler(t *testing.T) {
	// With no prompt handler attached the question is aborted rather
	// than blocking forever.
	s := newTestSession(t, Options{})

	q, err := messaging.NewQuestion(messaging.QuestionOpts{
		Text: "Anyone there?",
		Mode: messaging.PromptYesNo,
	})
	require.NoError(t, err)

	answer := s.AskBlocking(q)
	assert.Nil(t, answer)
	assert.True(t, q.IsAborted())
}

func TestSessionAskNonBlocking(t *testing.T) {
	s := newTestSession(t, Options{})

	var asked []messaging.AskRequest
	s.Bridge().Questions.Connect(func(req messaging.AskRequest) { asked = append(asked, req) })

	q, err := messaging.NewQuestion(messaging.QuestionOpts{
		Text: "Later",
		Mode: messaging.PromptYesNo,
	})
	require.NoError(t, err)

	s.Ask(q)
	require.Len(t, asked, 1)
	assert.False(t, asked[0].Blocking)
	assert.True(t, q.IsPending())
}
