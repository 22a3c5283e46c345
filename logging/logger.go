// Package logging provides the package-level *slog.Logger for pdfflow.
//
// Layout code logs its decisions (page breaks, text wraps) at debug
// level through Logger(). By default everything is discarded; callers
// opt in with SetLogger.
package logging

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// logger holds the process-wide logger used by pdfflow internals.
// nil means no logger has been configured yet.
var logger atomic.Pointer[slog.Logger]

// discardHandler drops all records. It is equivalent to Go 1.24's
// slog.DiscardHandler, which is unavailable on this toolchain.
type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (discardHandler) WithAttrs([]slog.Attr) slog.Handler        { return discardHandler{} }
func (discardHandler) WithGroup(string) slog.Handler             { return discardHandler{} }

// discard returns a logger that drops all records.
func discard() *slog.Logger {
	return slog.New(discardHandler{})
}

// SetLogger configures the logger used by pdfflow for debug output.
// Passing nil disables logging again.
//
// SetLogger is safe for concurrent use.
//
// Example sending layout decisions to stderr:
//
//	logging.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))
//
// Example capturing output in a test:
//
//	h := logging.NewCaptureHandler(slog.LevelDebug)
//	logging.SetLogger(slog.New(h))
//	// ... lay out a document ...
//	if !h.Contains("page break") { ... }
func SetLogger(l *slog.Logger) {
	if l == nil {
		logger.Store(discard())
		return
	}
	logger.Store(l)
}

// Logger returns the configured logger, or a discard logger when none
// has been set. Safe for concurrent use.
func Logger() *slog.Logger {
	if l := logger.Load(); l != nil {
		return l
	}
	l := discard()
	logger.Store(l)
	return l
}
