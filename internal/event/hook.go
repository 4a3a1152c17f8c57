// Package event provides the callback-registration primitive the engine
// abstraction uses instead of toolkit signals: a Hook is one named
// event with a typed payload and an ordered subscriber list, fired
// synchronously on the owning loop.
package event

// Hook is owned by a single dispatch loop. None of its methods take a
// lock: subscribers connect, disconnect and fire on the loop goroutine
// only. Engine layers receiving toolkit events on other threads post to
// the loop before emitting.
type Hook[T any] struct {
	name   string
	nextID uint64
	subs   []subscription[T]
}

type subscription[T any] struct {
	id   uint64
	fn   func(T)
	once bool
}

func NewHook[T any](name string) *Hook[T] {
	return &Hook[T]{name: name}
}

func (h *Hook[T]) Name() string {
	return h.name
}

// Connect appends fn to the subscriber list and returns its handle.
func (h *Hook[T]) Connect(fn func(T)) uint64 {
	return h.connect(fn, false)
}

// ConnectOnce is Connect for a subscriber that detaches itself after
// the first emission.
func (h *Hook[T]) ConnectOnce(fn func(T)) uint64 {
	return h.connect(fn, true)
}

func (h *Hook[T]) connect(fn func(T), once bool) uint64 {
	if fn == nil {
		return 0
	}
	h.nextID++
	h.subs = append(h.subs, subscription[T]{id: h.nextID, fn: fn, once: once})
	return h.nextID
}

// Disconnect removes the subscriber with the given handle. Unknown
// handles report false.
func (h *Hook[T]) Disconnect(id uint64) bool {
	for i, sub := range h.subs {
		if sub.id == id {
			h.subs = append(h.subs[:i], h.subs[i+1:]...)
			return true
		}
	}
	return false
}

// Emit invokes every subscriber in connect order. Subscribers may
// connect or disconnect during emission; emission iterates a snapshot,
// so changes apply from the next Emit on. A subscriber disconnected
// mid-emission by an earlier one still gets skipped.
func (h *Hook[T]) Emit(value T) {
	if len(h.subs) == 0 {
		return
	}

	snapshot := make([]subscription[T], len(h.subs))
	copy(snapshot, h.subs)

	for _, sub := range snapshot {
		if !h.connected(sub.id) {
			continue
		}
		if sub.once {
			h.Disconnect(sub.id)
		}
		sub.fn(value)
	}
}

// Clear drops all subscribers, used on teardown.
func (h *Hook[T]) Clear() {
	h.subs = nil
}

func (h *Hook[T]) Len() int {
	return len(h.subs)
}

func (h *Hook[T]) connected(id uint64) bool {
	for _, sub := range h.subs {
		if sub.id == id {
			return true
		}
	}
	return false
}
