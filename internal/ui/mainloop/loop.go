package mainloop

import (
	"context"
	"errors"
	"sync"
)

// ErrStopped is returned by Call when the loop shut down before the
// posted task could run.
var ErrStopped = errors.New("mainloop: loop stopped")

// Loop is the single owning dispatch loop of the application. Every tab
// facade, event hook and future resolves its handlers here, which is
// what keeps the abstraction layer free of locks: state owned by the
// loop is only ever touched by loop tasks.
//
// Run must be called on exactly one goroutine; Post and Call are safe
// from any goroutine.
type Loop struct {
	mu      sync.Mutex
	queue   []func()
	wake    chan struct{}
	stopped bool
	pumping int
}

func New() *Loop {
	return &Loop{
		wake: make(chan struct{}, 1),
	}
}

// Post enqueues fn to run on the loop goroutine. It never blocks.
// Posting to a stopped loop is a no-op.
func (l *Loop) Post(fn func()) {
	if fn == nil {
		return
	}

	l.mu.Lock()
	if l.stopped {
		l.mu.Unlock()
		return
	}
	l.queue = append(l.queue, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Call posts fn and waits for it to finish. It must not be called from
// the loop goroutine itself, that would deadlock; loop-side code calls
// fn directly instead.
func (l *Loop) Call(fn func()) error {
	done := make(chan struct{})
	l.Post(func() {
		defer close(done)
		fn()
	})

	l.mu.Lock()
	stopped := l.stopped
	l.mu.Unlock()
	if stopped {
		return ErrStopped
	}

	<-done
	return nil
}

// Run processes tasks on the calling goroutine until ctx is cancelled
// or Quit is called. It drains whatever is queued before returning.
func (l *Loop) Run(ctx context.Context) {
	for {
		l.drain()

		l.mu.Lock()
		stopped := l.stopped
		empty := len(l.queue) == 0
		l.mu.Unlock()

		if stopped && empty {
			return
		}

		select {
		case <-ctx.Done():
			l.Quit()
			l.drain()
			return
		case <-l.wake:
		}
	}
}

// PumpUntil processes queued tasks until done() reports true. It must
// be called from a task already running on the loop goroutine: this is
// the reentrant wait used by blocking prompts, a nested iteration of
// the same dispatch loop rather than a second thread.
//
// When the loop stops while pumping, PumpUntil gives up and returns
// false so the nested waiter can unwind.
func (l *Loop) PumpUntil(done func() bool) bool {
	l.mu.Lock()
	l.pumping++
	l.mu.Unlock()
	defer func() {
		l.mu.Lock()
		l.pumping--
		l.mu.Unlock()
	}()

	for {
		if done() {
			return true
		}

		l.mu.Lock()
		if l.stopped && len(l.queue) == 0 {
			l.mu.Unlock()
			return done()
		}
		l.mu.Unlock()

		if !l.runOne() {
			// Nothing queued; wait for more work or shutdown.
			<-l.wake
		}
	}
}

// Quit stops the loop after the current queue drains. Pending Call
// waiters posted after Quit resolve with ErrStopped.
func (l *Loop) Quit() {
	l.mu.Lock()
	l.stopped = true
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// NestedDepth reports how many reentrant pumps are active, mainly for
// tests and debug logging.
func (l *Loop) NestedDepth() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.pumping
}

func (l *Loop) drain() {
	for l.runOne() {
	}
}

func (l *Loop) runOne() bool {
	l.mu.Lock()
	if len(l.queue) == 0 {
		l.mu.Unlock()
		return false
	}
	fn := l.queue[0]
	l.queue = l.queue[1:]
	l.mu.Unlock()

	fn()
	return true
}
