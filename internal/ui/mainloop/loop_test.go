package mainloop

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func TestLoopRunsPostedTasksInOrder(t *testing.T) {
	l := New()
	var got []int
	for i := 1; i <= 4; i++ {
		v := i
		l.Post(func() { got = append(got, v) })
	}
	l.Post(func() { l.Quit() })

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	l.Run(ctx)

	if len(got) != 4 {
		t.Fatalf("expected 4 tasks, got %d", len(got))
	}
	for i, v := range got {
		if v != i+1 {
			t.Fatalf("tasks ran out of order: %v", got)
		}
	}
}

func TestPumpUntilNestedWait(t *testing.T) {
	l := New()
	answered := false
	var order []string

	l.Post(func() {
		order = append(order, "ask")
		ok := l.PumpUntil(func() bool { return answered })
		if !ok {
			t.Errorf("expected nested pump to finish with condition met")
		}
		order = append(order, "answered")
		l.Quit()
	})
	l.Post(func() {
		order = append(order, "deliver")
		answered = true
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	l.Run(ctx)

	want := []string{"ask", "deliver", "answered"}
	if len(order) != len(want) {
		t.Fatalf("expected order %v, got %v", want, order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, order)
		}
	}
}

func TestPumpUntilUnwindsOnQuit(t *testing.T) {
	l := New()
	done := make(chan bool, 1)

	l.Post(func() {
		done <- l.PumpUntil(func() bool { return false })
	})
	go func() {
		time.Sleep(10 * time.Millisecond)
		l.Quit()
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	l.Run(ctx)

	select {
	case ok := <-done:
		if ok {
			t.Fatalf("expected pump to report unmet condition on shutdown")
		}
	default:
		t.Fatalf("nested pump did not unwind")
	}
}

func TestCallFromAnotherGoroutine(t *testing.T) {
	l := New()
	var ran atomic.Bool

	go func() {
		if err := l.Call(func() { ran.Store(true) }); err != nil {
			t.Errorf("call failed: %v", err)
		}
		l.Quit()
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	l.Run(ctx)

	if !ran.Load() {
		t.Fatalf("expected call to run on the loop")
	}
}

func TestPostAfterQuitIsDropped(t *testing.T) {
	l := New()
	l.Quit()

	ran := false
	l.Post(func() { ran = true })

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	l.Run(ctx)

	if ran {
		t.Fatalf("expected task posted after quit to be dropped")
	}
}
