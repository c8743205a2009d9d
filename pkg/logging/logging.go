// Package logging adapts log/slog to the tracker's core.Logger.
package logging

import (
	"context"
	"io"
	"log/slog"

	"github.com/proj-coursebook/change-tracker/pkg/core"
)

// LevelTrace sits below slog.LevelDebug for per-file events.
const LevelTrace = slog.LevelDebug - 4

type slogLogger struct {
	l *slog.Logger
}

// FromSlog wraps l as a core.Logger. A nil l yields a logger that discards everything.
func FromSlog(l *slog.Logger) core.Logger {
	if l == nil {
		return core.NopLogger{}
	}
	return &slogLogger{l: l}
}

func (s *slogLogger) Trace(msg string, args ...any) {
	s.l.Log(context.Background(), LevelTrace, msg, args...)
}

func (s *slogLogger) Debug(msg string, args ...any) { s.l.Debug(msg, args...) }
func (s *slogLogger) Info(msg string, args ...any)  { s.l.Info(msg, args...) }
func (s *slogLogger) Error(msg string, args ...any) { s.l.Error(msg, args...) }

// New builds a text logger on w. verbose enables debug output and trace
// enables everything down to LevelTrace.
func New(w io.Writer, verbose, trace bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	if trace {
		level = LevelTrace
	}

	opts := &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.LevelKey {
				if lvl, ok := a.Value.Any().(slog.Level); ok && lvl == LevelTrace {
					a.Value = slog.StringValue("TRACE")
				}
			}
			return a
		},
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
