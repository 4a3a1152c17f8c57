package browser

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument marks caller mistakes such as negative counts or
	// malformed zoom factors. The operation performs no work.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrAtBoundary marks history navigation that ran past the first or last
	// entry. The view has already been moved to the nearest valid entry when
	// this is returned.
	ErrAtBoundary = errors.New("at history boundary")
)

// User-facing texts for boundary and argument errors. These are shown
// verbatim in the status line, so they are full sentences.
const (
	msgHistoryStart  = "At beginning of history."
	msgHistoryEnd    = "At end of history."
	msgNegativeCount = "count needs to be positive!"
)

// taggedError carries a user-facing message while staying matchable with
// errors.Is against one of the sentinel errors above.
type taggedError struct {
	msg  string
	kind error
}

func (e *taggedError) Error() string { return e.msg }

func (e *taggedError) Unwrap() error { return e.kind }

func boundaryError(msg string) error {
	return &taggedError{msg: msg, kind: ErrAtBoundary}
}

func invalidArgument(format string, args ...any) error {
	return &taggedError{msg: fmt.Sprintf(format, args...), kind: ErrInvalidArgument}
}
