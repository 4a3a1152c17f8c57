package messaging

import (
	"errors"

	"github.com/skiff-browser/skiff/internal/event"
)

// ErrInvalidArgument marks a malformed question: the always/never
// option outside a yes/no prompt, or without a subject URL.
var ErrInvalidArgument = errors.New("messaging: invalid question")

// PromptMode describes what kind of answer a question expects.
type PromptMode int

const (
	// PromptYesNo asks a boolean question.
	PromptYesNo PromptMode = iota
	// PromptText asks for a line of text.
	PromptText
	// PromptUserPwd asks for a username and password pair.
	PromptUserPwd
	// PromptAlert shows text requiring acknowledgement only.
	PromptAlert
	// PromptDownload asks for a download target path.
	PromptDownload
)

func (m PromptMode) String() string {
	switch m {
	case PromptYesNo:
		return "yesno"
	case PromptText:
		return "text"
	case PromptUserPwd:
		return "user_pwd"
	case PromptAlert:
		return "alert"
	case PromptDownload:
		return "download"
	default:
		return "unknown"
	}
}

// Authinfo carries the answer of a user_pwd prompt.
type Authinfo struct {
	User     string
	Password string
}

type questionState int

const (
	statePending questionState = iota
	stateAnswered
	stateCancelled
	stateAborted
)

// Question is one in-flight user prompt. It resolves exactly once:
// pending, then answered, cancelled or aborted, terminal either way.
// Later resolution attempts are no-ops. Like everything bridge-related
// it lives on the dispatch loop.
type Question struct {
	Title string
	Text  string
	Mode  PromptMode
	// Default is the pre-filled answer: bool for yes/no, string for
	// text prompts.
	Default any
	// URL names the page the question is about, shown to the user and
	// required for the always/never option.
	URL string
	// Option, when non-nil, offers an always/never remember-choice
	// toggle with the given initial state. Yes/no prompts only.
	Option *bool

	// Answered fires with the answer value on success.
	Answered *event.Hook[any]
	// AnsweredYes and AnsweredNo split yes/no answers for callers
	// wiring actions directly.
	AnsweredYes *event.Hook[struct{}]
	AnsweredNo  *event.Hook[struct{}]
	// Cancelled fires when the user dismissed the prompt.
	Cancelled *event.Hook[struct{}]
	// Aborted fires when an external source killed the prompt.
	Aborted *event.Hook[struct{}]
	// Completed fires after any terminal transition.
	Completed *event.Hook[struct{}]

	state  questionState
	answer any
}

// QuestionOpts collects the constructor arguments for NewQuestion.
type QuestionOpts struct {
	Title   string
	Text    string
	Mode    PromptMode
	Default any
	URL     string
	Option  *bool
}

// NewQuestion validates opts and builds a pending question. The
// always/never option is only accepted on yes/no prompts carrying a
// URL.
func NewQuestion(opts QuestionOpts) (*Question, error) {
	if opts.Option != nil {
		if opts.Mode != PromptYesNo {
			return nil, errors.Join(ErrInvalidArgument,
				errors.New("option is only valid for yes/no prompts"))
		}
		if opts.URL == "" {
			return nil, errors.Join(ErrInvalidArgument,
				errors.New("option requires a URL"))
		}
	}

	return &Question{
		Title:       opts.Title,
		Text:        opts.Text,
		Mode:        opts.Mode,
		Default:     opts.Default,
		URL:         opts.URL,
		Option:      opts.Option,
		Answered:    event.NewHook[any]("question-answered"),
		AnsweredYes: event.NewHook[struct{}]("question-answered-yes"),
		AnsweredNo:  event.NewHook[struct{}]("question-answered-no"),
		Cancelled:   event.NewHook[struct{}]("question-cancelled"),
		Aborted:     event.NewHook[struct{}]("question-aborted"),
		Completed:   event.NewHook[struct{}]("question-completed"),
	}, nil
}

// Done resolves the question with answer and fires Answered, the
// yes/no split for boolean prompts, then Completed.
func (q *Question) Done(answer any) {
	if q.state != statePending {
		return
	}
	q.state = stateAnswered
	q.answer = answer

	q.Answered.Emit(answer)
	if q.Mode == PromptYesNo {
		if yes, ok := answer.(bool); ok && yes {
			q.AnsweredYes.Emit(struct{}{})
		} else {
			q.AnsweredNo.Emit(struct{}{})
		}
	}
	q.Completed.Emit(struct{}{})
}

// Cancel resolves the question as dismissed by the user.
func (q *Question) Cancel() {
	if q.state != statePending {
		return
	}
	q.state = stateCancelled
	q.Cancelled.Emit(struct{}{})
	q.Completed.Emit(struct{}{})
}

// Abort resolves the question from an external source, e.g. the owning
// tab closing. Any pending blocking wait unwinds through Completed.
func (q *Question) Abort() {
	if q.state != statePending {
		return
	}
	q.state = stateAborted
	q.Aborted.Emit(struct{}{})
	q.Completed.Emit(struct{}{})
}

// Answer returns the recorded answer, nil unless answered.
func (q *Question) Answer() any {
	return q.answer
}

// IsPending reports whether the question still awaits resolution.
func (q *Question) IsPending() bool {
	return q.state == statePending
}

// IsAborted reports whether the question ended via Abort.
func (q *Question) IsAborted() bool {
	return q.state == stateAborted
}
