// Package neighborlist provides an ordered list with a tracked current
// pointer supporting relative stepping. The zoom facade uses it to walk
// the configured zoom-percentage levels.
package neighborlist

import "errors"

var (
	// ErrEmpty is returned when stepping an empty list.
	ErrEmpty = errors.New("neighborlist: no items")
	// ErrOutOfRange is returned in ModeRaise when stepping past an edge.
	ErrOutOfRange = errors.New("neighborlist: index out of range")
	// ErrNoCurrent is returned by Current before any position is set.
	ErrNoCurrent = errors.New("neighborlist: no current item")
	// ErrNoDefault is returned by Reset when the list has no default.
	ErrNoDefault = errors.New("neighborlist: no default set")
)

// Number covers the element types a list can hold; stepping needs
// ordering and distance.
type Number interface {
	~int | ~int32 | ~int64 | ~float32 | ~float64
}

// Mode controls edge behavior when a step would leave the list.
type Mode int

const (
	// ModeRaise reports ErrOutOfRange past an edge.
	ModeRaise Mode = iota
	// ModeEdge clamps to the first/last item instead.
	ModeEdge
)

// List tracks a current index into an ordered item slice. A "fuzzy"
// value may be set when the externally-applied value is not in the
// list; the next step first snaps to the closest item on the stepping
// side and counts that snap as one step.
type List[T Number] struct {
	items      []T
	idx        int // -1 while unset
	mode       Mode
	fuzzy      *T
	defaultVal *T
}

// New builds a list without a current position.
func New[T Number](items []T, mode Mode) *List[T] {
	copied := make([]T, len(items))
	copy(copied, items)
	return &List[T]{items: copied, idx: -1, mode: mode}
}

// NewWithDefault builds a list positioned at def. def must be one of
// items.
func NewWithDefault[T Number](items []T, def T, mode Mode) (*List[T], error) {
	l := New(items, mode)
	for i, item := range l.items {
		if item == def {
			l.idx = i
			d := def
			l.defaultVal = &d
			return l, nil
		}
	}
	return nil, ErrNoDefault
}

// SetFuzzy records an off-list value; the next step snaps from it.
func (l *List[T]) SetFuzzy(value T) {
	v := value
	l.fuzzy = &v
}

// ClearFuzzy drops a pending fuzzy value without snapping.
func (l *List[T]) ClearFuzzy() {
	l.fuzzy = nil
}

// Items returns a copy of the backing items.
func (l *List[T]) Items() []T {
	copied := make([]T, len(l.items))
	copy(copied, l.items)
	return copied
}

func (l *List[T]) Len() int {
	return len(l.items)
}

// Index returns the current index, -1 while unset.
func (l *List[T]) Index() int {
	return l.idx
}

// Current returns the item at the tracked position.
func (l *List[T]) Current() (T, error) {
	var zero T
	if l.idx < 0 || l.idx >= len(l.items) {
		return zero, ErrNoCurrent
	}
	return l.items[l.idx], nil
}

// Item moves the position by offset and returns the new item. When a
// fuzzy value is pending, the position first snaps to the closest item
// on the offset's side of the fuzzy value; if the fuzzy value itself
// was off-list, the snap consumes one step of the offset. Edge handling
// follows the list mode.
func (l *List[T]) Item(offset int) (T, error) {
	var zero T
	if len(l.items) == 0 {
		return zero, ErrEmpty
	}

	if l.fuzzy != nil {
		snapped := l.snapIn(offset)
		if snapped && offset > 0 {
			offset--
		} else if snapped && offset < 0 {
			offset++
		}
		l.fuzzy = nil
	}

	newIdx := l.idx + offset
	switch {
	case newIdx >= 0 && newIdx < len(l.items):
	case l.mode == ModeEdge:
		newIdx = max(0, min(newIdx, len(l.items)-1))
	default:
		return zero, ErrOutOfRange
	}

	l.idx = newIdx
	return l.items[newIdx], nil
}

// Next is Item(1).
func (l *List[T]) Next() (T, error) { return l.Item(1) }

// Prev is Item(-1).
func (l *List[T]) Prev() (T, error) { return l.Item(-1) }

// First jumps to the first item.
func (l *List[T]) First() (T, error) {
	var zero T
	if len(l.items) == 0 {
		return zero, ErrEmpty
	}
	l.idx = 0
	l.fuzzy = nil
	return l.items[0], nil
}

// Last jumps to the last item.
func (l *List[T]) Last() (T, error) {
	var zero T
	if len(l.items) == 0 {
		return zero, ErrEmpty
	}
	l.idx = len(l.items) - 1
	l.fuzzy = nil
	return l.items[l.idx], nil
}

// Reset jumps back to the default item.
func (l *List[T]) Reset() (T, error) {
	var zero T
	if l.defaultVal == nil {
		return zero, ErrNoDefault
	}
	for i, item := range l.items {
		if item == *l.defaultVal {
			l.idx = i
			l.fuzzy = nil
			return item, nil
		}
	}
	return zero, ErrNoDefault
}

// snapIn moves the position to the item closest to the fuzzy value on
// the stepping side: at or below it for negative offsets, at or above
// it otherwise. With no candidate on that side the position clamps to
// the extreme in the stepping direction. Reports whether the fuzzy
// value was off-list.
func (l *List[T]) snapIn(offset int) bool {
	fuzzy := *l.fuzzy

	best := -1
	for i, item := range l.items {
		onSide := (offset < 0 && item <= fuzzy) || (offset >= 0 && item >= fuzzy)
		if !onSide {
			continue
		}
		if best == -1 || absDiff(fuzzy, item) < absDiff(fuzzy, l.items[best]) {
			best = i
		}
	}

	if best == -1 {
		if offset < 0 {
			best = minIndex(l.items)
		} else {
			best = maxIndex(l.items)
		}
	}

	l.idx = best
	for _, item := range l.items {
		if item == fuzzy {
			return false
		}
	}
	return true
}

func absDiff[T Number](a, b T) T {
	if a > b {
		return a - b
	}
	return b - a
}

func minIndex[T Number](items []T) int {
	best := 0
	for i, item := range items {
		if item < items[best] {
			best = i
		}
	}
	return best
}

func maxIndex[T Number](items []T) int {
	best := 0
	for i, item := range items {
		if item >= items[best] {
			best = i
		}
	}
	return best
}
