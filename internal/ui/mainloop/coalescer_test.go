package mainloop

import "testing"

func TestCoalescerMergesBurstIntoSingleTask(t *testing.T) {
	queue := make([]func(), 0, 8)
	c := NewCoalescer(func(fn func()) { queue = append(queue, fn) })

	value := 0
	for i := 1; i <= 5; i++ {
		v := i
		c.Post("status-progress", func() { value = v })
	}

	if len(queue) != 1 {
		t.Fatalf("expected 1 scheduled task, got %d", len(queue))
	}
	queue[0]()

	if value != 5 {
		t.Fatalf("expected latest update to run, got %d", value)
	}
}

func TestCoalescerKeepsDistinctKeysSeparate(t *testing.T) {
	queue := make([]func(), 0, 4)
	c := NewCoalescer(func(fn func()) { queue = append(queue, fn) })

	var progress, title int
	c.Post("status-progress", func() { progress++ })
	c.Post("status-title", func() { title++ })
	c.Post("status-progress", func() { progress += 10 })

	if len(queue) != 2 {
		t.Fatalf("expected 2 scheduled tasks, got %d", len(queue))
	}
	for _, fn := range queue {
		fn()
	}

	if progress != 10 || title != 1 {
		t.Fatalf("expected merged progress and one title update, got progress=%d title=%d", progress, title)
	}
}

func TestCoalescerDropsWorkAfterDestroy(t *testing.T) {
	queue := make([]func(), 0, 4)
	c := NewCoalescer(func(fn func()) { queue = append(queue, fn) })

	ran := false
	c.Post("status-clear", func() { ran = true })
	c.Destroy()

	if len(queue) != 1 {
		t.Fatalf("expected one queued task before destroy, got %d", len(queue))
	}
	queue[0]()

	if ran {
		t.Fatalf("expected queued work to be dropped after destroy")
	}

	c.Post("status-clear", func() { ran = true })
	if len(queue) != 1 {
		t.Fatalf("expected no new task after destroy, got %d", len(queue))
	}
}

func TestNewCoalescerPanicsOnNilPost(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected NewCoalescer to panic when post is nil")
		}
	}()

	_ = NewCoalescer(nil)
}
