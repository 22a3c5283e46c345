package logging

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
)

// CaptureHandler is a slog.Handler that keeps log records in memory.
// It exists so tests can assert on the layout engine's debug output
// without touching stderr.
//
// Example:
//
//	h := logging.NewCaptureHandler(slog.LevelDebug)
//	logging.SetLogger(slog.New(h))
//
//	// ... lay out a document ...
//
//	for _, e := range h.Entries() {
//	    fmt.Println(e.Message, e.Attrs["page"])
//	}
type CaptureHandler struct {
	level slog.Leveler

	mu      sync.Mutex
	entries []Entry

	// preAttrs and groups come from WithAttrs / WithGroup and are
	// applied to every record this handler sees.
	preAttrs []slog.Attr
	groups   []string
}

// Entry is a single captured log record with attribute values decoded
// to their Go representations.
type Entry struct {
	Level   slog.Level
	Message string
	Attrs   map[string]any
}

// NewCaptureHandler creates a handler capturing records at or above
// level. Pass nil to capture everything.
func NewCaptureHandler(level slog.Leveler) *CaptureHandler {
	return &CaptureHandler{level: level}
}

// Enabled implements slog.Handler.
func (h *CaptureHandler) Enabled(_ context.Context, level slog.Level) bool {
	if h.level == nil {
		return true
	}
	return level >= h.level.Level()
}

// Handle implements slog.Handler.
func (h *CaptureHandler) Handle(_ context.Context, r slog.Record) error {
	e := Entry{
		Level:   r.Level,
		Message: r.Message,
		Attrs:   make(map[string]any),
	}
	for _, a := range h.preAttrs {
		e.Attrs[h.key(a.Key)] = a.Value.Any()
	}
	r.Attrs(func(a slog.Attr) bool {
		e.Attrs[h.key(a.Key)] = a.Value.Any()
		return true
	})

	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = append(h.entries, e)
	return nil
}

// key applies accumulated group prefixes to an attribute key.
func (h *CaptureHandler) key(k string) string {
	if len(h.groups) == 0 {
		return k
	}
	return strings.Join(h.groups, ".") + "." + k
}

// WithAttrs implements slog.Handler. The returned handler shares the
// captured entries with h.
func (h *CaptureHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := h.clone()
	c.preAttrs = append(c.preAttrs, attrs...)
	return c
}

// WithGroup implements slog.Handler. The returned handler shares the
// captured entries with h.
func (h *CaptureHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	c := h.clone()
	c.groups = append(c.groups, name)
	return c
}

// clone copies handler configuration but not the entry storage; the
// clone appends into the same backing handler via the shared pointer
// fields below.
func (h *CaptureHandler) clone() *captureChild {
	return &captureChild{
		parent:   h,
		preAttrs: append([]slog.Attr(nil), h.preAttrs...),
		groups:   append([]string(nil), h.groups...),
	}
}

// captureChild is a derived handler produced by WithAttrs/WithGroup.
// It records into its parent so tests can keep asserting on the root
// handler regardless of how the logger was decorated.
type captureChild struct {
	parent   *CaptureHandler
	preAttrs []slog.Attr
	groups   []string
}

func (c *captureChild) Enabled(ctx context.Context, level slog.Level) bool {
	return c.parent.Enabled(ctx, level)
}

func (c *captureChild) Handle(_ context.Context, r slog.Record) error {
	e := Entry{
		Level:   r.Level,
		Message: r.Message,
		Attrs:   make(map[string]any),
	}
	prefix := ""
	if len(c.groups) > 0 {
		prefix = strings.Join(c.groups, ".") + "."
	}
	for _, a := range c.preAttrs {
		e.Attrs[prefix+a.Key] = a.Value.Any()
	}
	r.Attrs(func(a slog.Attr) bool {
		e.Attrs[prefix+a.Key] = a.Value.Any()
		return true
	})

	c.parent.mu.Lock()
	defer c.parent.mu.Unlock()
	c.parent.entries = append(c.parent.entries, e)
	return nil
}

func (c *captureChild) WithAttrs(attrs []slog.Attr) slog.Handler {
	d := &captureChild{
		parent:   c.parent,
		preAttrs: append(append([]slog.Attr(nil), c.preAttrs...), attrs...),
		groups:   append([]string(nil), c.groups...),
	}
	return d
}

func (c *captureChild) WithGroup(name string) slog.Handler {
	if name == "" {
		return c
	}
	d := &captureChild{
		parent:   c.parent,
		preAttrs: append([]slog.Attr(nil), c.preAttrs...),
		groups:   append(append([]string(nil), c.groups...), name),
	}
	return d
}

// Entries returns a copy of all captured records.
func (h *CaptureHandler) Entries() []Entry {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]Entry(nil), h.entries...)
}

// Len returns the number of captured records.
func (h *CaptureHandler) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}

// Reset discards all captured records.
func (h *CaptureHandler) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = nil
}

// Contains reports whether any captured message contains s.
func (h *CaptureHandler) Contains(s string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, e := range h.entries {
		if strings.Contains(e.Message, s) {
			return true
		}
	}
	return false
}

// String renders the captured records one per line, for debugging
// failed tests.
func (h *CaptureHandler) String() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	var b strings.Builder
	for _, e := range h.entries {
		fmt.Fprintf(&b, "%s %s", e.Level, e.Message)
		for k, v := range e.Attrs {
			fmt.Fprintf(&b, " %s=%v", k, v)
		}
		b.WriteByte('\n')
	}
	return b.String()
}
