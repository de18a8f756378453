package vkr

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler discards all log records. Enabled returns false so disabled
// logging skips message formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. Accessed atomically so SetLogger can
// race with logging from the validation callback goroutine.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the package logger. By default nothing is logged.
// Pass nil to restore the silent default.
//
// Levels used:
//   - [slog.LevelDebug]: per-resource events (buffer uploads, swapchain rebuilds)
//   - [slog.LevelInfo]: lifecycle events (device selected, swapchain created)
//   - [slog.LevelWarn]: validation layer warnings
//   - [slog.LevelError]: validation layer errors
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

func logger() *slog.Logger { return loggerPtr.Load() }
