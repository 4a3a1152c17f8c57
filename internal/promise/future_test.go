package promise

import (
	"context"
	"errors"
	"testing"
	"time"
)

// runInline executes continuations synchronously, standing in for the
// loop in tests.
func runInline(fn func()) { fn() }

func TestResolveDeliversToThen(t *testing.T) {
	f := NewFuture[int](runInline)

	var got int
	var gotErr error
	f.Then(func(v int, err error) { got, gotErr = v, err })

	f.Resolve(7)

	if got != 7 || gotErr != nil {
		t.Fatalf("expected (7, nil), got (%d, %v)", got, gotErr)
	}
}

func TestThenAfterSettlementStillFires(t *testing.T) {
	f := NewFuture[string](runInline)
	f.Resolve("done")

	var got string
	f.Then(func(v string, err error) { got = v })

	if got != "done" {
		t.Fatalf("expected late continuation to fire, got %q", got)
	}
}

func TestSecondSettlementIgnored(t *testing.T) {
	f := NewFuture[int](runInline)

	calls := 0
	f.Then(func(v int, err error) { calls++ })

	f.Resolve(1)
	f.Resolve(2)
	f.Reject(errors.New("late"))

	v, err := f.Result()
	if calls != 1 {
		t.Fatalf("expected exactly one continuation call, got %d", calls)
	}
	if v != 1 || err != nil {
		t.Fatalf("expected first outcome to win, got (%d, %v)", v, err)
	}
}

func TestRejectCarriesError(t *testing.T) {
	wantErr := errors.New("render process gone")
	f := Failed[int](runInline, wantErr)

	v, err := f.Await(context.Background())
	if v != 0 || !errors.Is(err, wantErr) {
		t.Fatalf("expected (0, %v), got (%d, %v)", wantErr, v, err)
	}
}

func TestAwaitBlocksUntilResolved(t *testing.T) {
	f := NewFuture[int](runInline)

	go func() {
		time.Sleep(5 * time.Millisecond)
		f.Resolve(99)
	}()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	v, err := f.Await(ctx)
	if v != 99 || err != nil {
		t.Fatalf("expected (99, nil), got (%d, %v)", v, err)
	}
}

func TestAwaitHonorsContext(t *testing.T) {
	f := NewFuture[int](runInline)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.Await(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestContinuationsRunThroughPoster(t *testing.T) {
	var posted []func()
	f := NewFuture[int](func(fn func()) { posted = append(posted, fn) })

	ran := false
	f.Then(func(int, error) { ran = true })
	f.Resolve(1)

	if ran {
		t.Fatalf("continuation ran before the poster scheduled it")
	}
	if len(posted) != 1 {
		t.Fatalf("expected one posted continuation, got %d", len(posted))
	}
	posted[0]()
	if !ran {
		t.Fatalf("expected continuation to run once posted")
	}
}
