package logging

import (
	"log/slog"
	"testing"
)

func TestLoggerDefaultsToDiscard(t *testing.T) {
	SetLogger(nil)

	l := Logger()
	if l == nil {
		t.Fatal("Logger returned nil")
	}

	// Must not panic and must not be enabled for anything.
	l.Debug("dropped")
	l.Error("dropped")
}

func TestSetLogger(t *testing.T) {
	h := NewCaptureHandler(nil)
	SetLogger(slog.New(h))
	defer SetLogger(nil)

	Logger().Info("hello", "k", "v")

	if h.Len() != 1 {
		t.Fatalf("captured %d records, want 1", h.Len())
	}
	if !h.Contains("hello") {
		t.Error("captured output missing message")
	}
}

func TestSetLoggerNilDisables(t *testing.T) {
	h := NewCaptureHandler(nil)
	SetLogger(slog.New(h))
	SetLogger(nil)

	Logger().Info("after disable")

	if h.Len() != 0 {
		t.Errorf("captured %d records after disabling, want 0", h.Len())
	}
}
