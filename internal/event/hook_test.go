package event

import "testing"

func TestHookEmitsInConnectOrder(t *testing.T) {
	h := NewHook[int]("load-progress")

	var order []string
	h.Connect(func(int) { order = append(order, "first") })
	h.Connect(func(int) { order = append(order, "second") })
	h.Connect(func(int) { order = append(order, "third") })

	h.Emit(42)

	want := []string{"first", "second", "third"}
	if len(order) != len(want) {
		t.Fatalf("expected %v, got %v", want, order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, order)
		}
	}
}

func TestHookDisconnect(t *testing.T) {
	h := NewHook[string]("title-changed")

	calls := 0
	id := h.Connect(func(string) { calls++ })

	h.Emit("a")
	if !h.Disconnect(id) {
		t.Fatalf("expected disconnect of live handle to succeed")
	}
	h.Emit("b")

	if calls != 1 {
		t.Fatalf("expected 1 call, got %d", calls)
	}
	if h.Disconnect(id) {
		t.Fatalf("expected disconnect of dead handle to fail")
	}
	if h.Disconnect(9999) {
		t.Fatalf("expected disconnect of unknown handle to fail")
	}
}

func TestHookConnectOnce(t *testing.T) {
	h := NewHook[int]("load-finished")

	calls := 0
	h.ConnectOnce(func(int) { calls++ })

	h.Emit(1)
	h.Emit(2)

	if calls != 1 {
		t.Fatalf("expected once-subscriber to run a single time, got %d", calls)
	}
	if h.Len() != 0 {
		t.Fatalf("expected once-subscriber to be gone, have %d", h.Len())
	}
}

func TestHookDisconnectDuringEmit(t *testing.T) {
	h := NewHook[int]("url-changed")

	var secondID uint64
	ran := false
	h.Connect(func(int) { h.Disconnect(secondID) })
	secondID = h.Connect(func(int) { ran = true })

	h.Emit(0)

	if ran {
		t.Fatalf("expected subscriber removed mid-emission to be skipped")
	}
}

func TestHookConnectDuringEmitDefersToNextEmit(t *testing.T) {
	h := NewHook[int]("icon-changed")

	lateCalls := 0
	h.Connect(func(int) {
		if h.Len() == 1 {
			h.Connect(func(int) { lateCalls++ })
		}
	})

	h.Emit(0)
	if lateCalls != 0 {
		t.Fatalf("expected late subscriber to miss the emission it joined during")
	}

	h.Emit(0)
	if lateCalls != 1 {
		t.Fatalf("expected late subscriber to run on next emission, got %d", lateCalls)
	}
}

func TestHookNilSubscriberIgnored(t *testing.T) {
	h := NewHook[int]("fullscreen")

	if id := h.Connect(nil); id != 0 {
		t.Fatalf("expected nil subscriber to be rejected, got handle %d", id)
	}
	h.Emit(1)
}
