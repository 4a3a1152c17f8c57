// Package promise implements the deferred-result primitive used for
// engine operations that answer later (element lookup, script
// execution, page dump): a single-assignment future settled exactly
// once, with continuations delivered on the owning loop.
package promise

import (
	"context"
	"sync"
)

// Future carries one eventual value or error. Settling is safe from any
// goroutine (engine layers settle from toolkit threads); continuations
// always run via post, which is typically mainloop.Loop.Post, so
// consumers never observe results off the owning loop.
type Future[T any] struct {
	post func(func())

	mu      sync.Mutex
	done    chan struct{}
	value   T
	err     error
	settled bool
	conts   []func(T, error)
}

func NewFuture[T any](post func(func())) *Future[T] {
	if post == nil {
		post = func(fn func()) { fn() }
	}
	return &Future[T]{
		post: post,
		done: make(chan struct{}),
	}
}

// Resolved returns an already-settled future carrying value.
func Resolved[T any](post func(func()), value T) *Future[T] {
	f := NewFuture[T](post)
	f.Resolve(value)
	return f
}

// Failed returns an already-settled future carrying err.
func Failed[T any](post func(func()), err error) *Future[T] {
	f := NewFuture[T](post)
	f.Reject(err)
	return f
}

// Resolve settles the future with a value. Settling twice is a no-op;
// the first outcome wins.
func (f *Future[T]) Resolve(value T) {
	f.settle(value, nil)
}

// Reject settles the future with an error.
func (f *Future[T]) Reject(err error) {
	var zero T
	f.settle(zero, err)
}

func (f *Future[T]) settle(value T, err error) {
	f.mu.Lock()
	if f.settled {
		f.mu.Unlock()
		return
	}
	f.settled = true
	f.value = value
	f.err = err
	conts := f.conts
	f.conts = nil
	close(f.done)
	f.mu.Unlock()

	for _, fn := range conts {
		cont := fn
		f.post(func() { cont(value, err) })
	}
}

// Then registers a continuation invoked on the owning loop once the
// future settles. Registering after settlement still fires, on the next
// loop turn.
func (f *Future[T]) Then(fn func(T, error)) {
	if fn == nil {
		return
	}

	f.mu.Lock()
	if !f.settled {
		f.conts = append(f.conts, fn)
		f.mu.Unlock()
		return
	}
	value, err := f.value, f.err
	f.mu.Unlock()

	f.post(func() { fn(value, err) })
}

// Await blocks until the future settles or ctx is cancelled. It must
// not be called from the owning loop itself; loop-side waiters pump
// the loop instead.
func (f *Future[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		f.mu.Lock()
		defer f.mu.Unlock()
		return f.value, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Done is closed once the future settles, for select integration.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Settled reports whether an outcome has been recorded.
func (f *Future[T]) Settled() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.settled
}

// Result returns the outcome without waiting. Valid only after Settled
// reports true.
func (f *Future[T]) Result() (T, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.value, f.err
}
