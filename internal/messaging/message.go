// Package messaging implements the user-facing notification and prompt
// plumbing: a bridge that buffers messages until a display attaches,
// and the question lifecycle for user prompts. The bridge is an
// explicit object owned by the session, created at startup and torn
// down with it.
package messaging

import "github.com/skiff-browser/skiff/internal/event"

// Level classifies a user-visible message.
type Level int

const (
	LevelInfo Level = iota
	LevelWarning
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelInfo:
		return "info"
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	default:
		return "unknown"
	}
}

// Message is one user-visible notification. Replace names a display
// slot: a later message with the same key supersedes the earlier one on
// screen. Rich marks the text as markup rather than plain text.
type Message struct {
	Level   Level
	Text    string
	Replace string
	Rich    bool
}

// AskRequest pairs a question with its delivery mode for the prompt
// handler.
type AskRequest struct {
	Question *Question
	Blocking bool
}

// Bridge routes messages and questions from anywhere in the application
// to the single attached display. Messages shown while nothing is
// attached accumulate in order and replay on Flush, so early-init
// messages are not lost.
//
// The bridge is owned by the dispatch loop; all methods must run there.
type Bridge struct {
	// Messages fires for every message once a consumer is attached.
	Messages *event.Hook[Message]
	// Questions fires for every ask; the subscriber must handle the
	// question synchronously when the request is blocking.
	Questions *event.Hook[AskRequest]
	// Cleared fires when a caller wants the displayed messages gone.
	Cleared *event.Hook[struct{}]

	connected bool
	cache     []Message
}

func NewBridge() *Bridge {
	return &Bridge{
		Messages:  event.NewHook[Message]("bridge-message"),
		Questions: event.NewHook[AskRequest]("bridge-question"),
		Cleared:   event.NewHook[struct{}]("bridge-cleared"),
	}
}

// Show delivers msg to the attached consumer, or buffers it in arrival
// order while none is attached.
func (b *Bridge) Show(msg Message) {
	if b.connected {
		b.Messages.Emit(msg)
		return
	}
	b.cache = append(b.cache, msg)
}

// Info shows an info-level message.
func (b *Bridge) Info(text string) {
	b.Show(Message{Level: LevelInfo, Text: text})
}

// Warning shows a warning-level message.
func (b *Bridge) Warning(text string) {
	b.Show(Message{Level: LevelWarning, Text: text})
}

// Error shows an error-level message.
func (b *Bridge) Error(text string) {
	b.Show(Message{Level: LevelError, Text: text})
}

// Flush marks the bridge attached and replays everything that
// accumulated, in original order, exactly once. Call it after
// subscribing to Messages.
func (b *Bridge) Flush() {
	b.connected = true
	cache := b.cache
	b.cache = nil
	for _, msg := range cache {
		b.Show(msg)
	}
}

// Detach returns the bridge to buffering. Messages shown afterwards
// accumulate again until the next Flush.
func (b *Bridge) Detach() {
	b.connected = false
}

// Connected reports whether a consumer is attached.
func (b *Bridge) Connected() bool {
	return b.connected
}

// Clear asks the display to drop currently shown messages.
func (b *Bridge) Clear() {
	b.Cleared.Emit(struct{}{})
}

// Ask dispatches a question to the prompt handler. With blocking set,
// the handler answers the question before Emit returns (pumping the
// loop while it waits); Ask itself never inspects the answer. With no
// handler attached the question simply stays unanswered.
func (b *Bridge) Ask(q *Question, blocking bool) {
	b.Questions.Emit(AskRequest{Question: q, Blocking: blocking})
}

// AskBlocking dispatches q in blocking mode and returns its answer, nil
// when the prompt was cancelled or nothing handled it.
func (b *Bridge) AskBlocking(q *Question) any {
	b.Ask(q, true)
	return q.Answer()
}

// AskAsync dispatches q without waiting; handler receives the answer
// when it arrives.
func (b *Bridge) AskAsync(q *Question, handler func(any)) {
	if handler != nil {
		q.Answered.Connect(handler)
	}
	b.Ask(q, false)
}

// ConfirmAsync dispatches a yes/no question and runs the matching
// action when it resolves. no and cancel may be nil.
func (b *Bridge) ConfirmAsync(q *Question, yes, no, cancel func()) {
	if yes != nil {
		q.AnsweredYes.Connect(func(struct{}) { yes() })
	}
	if no != nil {
		q.AnsweredNo.Connect(func(struct{}) { no() })
	}
	if cancel != nil {
		q.Cancelled.Connect(func(struct{}) { cancel() })
	}
	b.Ask(q, false)
}
