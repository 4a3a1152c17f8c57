package engine

import (
	"context"
	"errors"
	"testing"
)

type fakeFactory struct {
	name string
}

func (f fakeFactory) Name() string    { return f.name }
func (f fakeFactory) Available() bool { return true }
func (f fakeFactory) NewView(context.Context, Options) (View, error) {
	return nil, ErrUnsupported
}

func TestRegistryRoundTrip(t *testing.T) {
	Register(fakeFactory{name: "fake-roundtrip"})

	f, err := Get("fake-roundtrip")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if f.Name() != "fake-roundtrip" {
		t.Errorf("Name = %q", f.Name())
	}
}

func TestRegistryUnknownBackend(t *testing.T) {
	_, err := Get("no-such-backend")
	if err == nil {
		t.Fatal("expected error for unknown backend")
	}
	if !errors.Is(err, ErrNotReady) {
		t.Errorf("error %v is not ErrNotReady", err)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register(fakeFactory{name: "fake-dup"})
	defer func() {
		if recover() == nil {
			t.Error("expected panic on duplicate Register")
		}
	}()
	Register(fakeFactory{name: "fake-dup"})
}

func TestLoadStatusStrings(t *testing.T) {
	tests := []struct {
		status LoadStatus
		want   string
	}{
		{LoadStatusNone, "none"},
		{LoadStatusLoading, "loading"},
		{LoadStatusSuccess, "success"},
		{LoadStatusSuccessHTTPS, "success_https"},
		{LoadStatusWarn, "warn"},
		{LoadStatusError, "error"},
	}
	for _, tt := range tests {
		if got := tt.status.String(); got != tt.want {
			t.Errorf("LoadStatus(%d).String() = %q, want %q", tt.status, got, tt.want)
		}
	}
}

func TestTerminationStatusStrings(t *testing.T) {
	tests := []struct {
		status TerminationStatus
		want   string
	}{
		{TerminationUnknown, "unknown"},
		{TerminationNormal, "normal"},
		{TerminationAbnormal, "abnormal"},
		{TerminationCrashed, "crashed"},
		{TerminationKilled, "killed"},
		{TerminationStatus(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.status.String(); got != tt.want {
			t.Errorf("TerminationStatus(%d).String() = %q, want %q", tt.status, got, tt.want)
		}
	}
}

func TestNewEventsAllHooksReady(t *testing.T) {
	ev := NewEvents()
	ev.LoadStarted.Emit(struct{}{})
	ev.LoadProgress.Emit(50)
	ev.LoadFinished.Emit(true)
	ev.URLChanged.Emit("https://example.com/")
	ev.TitleChanged.Emit("Example")
	ev.IconChanged.Emit(nil)
	ev.FullscreenRequested.Emit(true)
	ev.RendererTerminated.Emit(Termination{Status: TerminationCrashed, Code: 11})
	ev.NewTabRequested.Emit("https://example.com/new")
}
