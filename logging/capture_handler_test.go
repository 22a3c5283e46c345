package logging

import (
	"log/slog"
	"strings"
	"testing"
)

func TestCaptureHandlerRecordsEntries(t *testing.T) {
	h := NewCaptureHandler(nil)
	l := slog.New(h)

	l.Debug("page break", "page", 2, "height", 8.8)
	l.Info("done")

	entries := h.Entries()
	if len(entries) != 2 {
		t.Fatalf("captured %d entries, want 2", len(entries))
	}

	first := entries[0]
	if first.Level != slog.LevelDebug {
		t.Errorf("Level = %v, want debug", first.Level)
	}
	if first.Message != "page break" {
		t.Errorf("Message = %q, want %q", first.Message, "page break")
	}
	if got, ok := first.Attrs["page"].(int64); !ok || got != 2 {
		t.Errorf("Attrs[page] = %v, want 2", first.Attrs["page"])
	}
	if got, ok := first.Attrs["height"].(float64); !ok || got != 8.8 {
		t.Errorf("Attrs[height] = %v, want 8.8", first.Attrs["height"])
	}
}

func TestCaptureHandlerLevelFilter(t *testing.T) {
	h := NewCaptureHandler(slog.LevelInfo)
	l := slog.New(h)

	l.Debug("filtered out")
	l.Info("kept")
	l.Warn("also kept")

	if h.Len() != 2 {
		t.Fatalf("captured %d entries, want 2", h.Len())
	}
	if h.Contains("filtered out") {
		t.Error("debug record should have been filtered")
	}
}

func TestCaptureHandlerWithAttrs(t *testing.T) {
	h := NewCaptureHandler(nil)
	l := slog.New(h).With("component", "layout")

	l.Info("wrap", "lines", 3)

	entries := h.Entries()
	if len(entries) != 1 {
		t.Fatalf("captured %d entries, want 1", len(entries))
	}
	if got := entries[0].Attrs["component"]; got != "layout" {
		t.Errorf("Attrs[component] = %v, want layout", got)
	}
	if got, ok := entries[0].Attrs["lines"].(int64); !ok || got != 3 {
		t.Errorf("Attrs[lines] = %v, want 3", entries[0].Attrs["lines"])
	}
}

func TestCaptureHandlerWithGroup(t *testing.T) {
	h := NewCaptureHandler(nil)
	l := slog.New(h).WithGroup("engine")

	l.Info("break", "page", 2)

	entries := h.Entries()
	if len(entries) != 1 {
		t.Fatalf("captured %d entries, want 1", len(entries))
	}
	if _, ok := entries[0].Attrs["engine.page"]; !ok {
		t.Errorf("expected group-prefixed key engine.page, got %v", entries[0].Attrs)
	}
}

func TestCaptureHandlerReset(t *testing.T) {
	h := NewCaptureHandler(nil)
	l := slog.New(h)

	l.Info("one")
	l.Info("two")
	h.Reset()

	if h.Len() != 0 {
		t.Errorf("Len after Reset = %d, want 0", h.Len())
	}
	if h.Contains("one") {
		t.Error("Contains found a record after Reset")
	}
}

func TestCaptureHandlerString(t *testing.T) {
	h := NewCaptureHandler(nil)
	l := slog.New(h)

	l.Info("saved", "pages", 2)

	s := h.String()
	if !strings.Contains(s, "saved") {
		t.Errorf("String() = %q, want it to mention the message", s)
	}
	if !strings.Contains(s, "pages=2") {
		t.Errorf("String() = %q, want it to include attributes", s)
	}
}
