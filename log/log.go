package log

import (
	"context"
	"io"
	"log/slog"
	"runtime"
	"time"
)

// Logger is a leveled structured logger. The zero value is valid and
// silent. Logger values are immutable and safe for concurrent use.
type Logger struct {
	handler slog.Handler
	config
}

// Make creates a Logger writing to w. Defaults are [DefaultLevel],
// [DefaultFormat], [DefaultTimeLayout], no caller info, and no color;
// override them with [WithLevel], [WithFormat], [WithTimeLayout],
// [WithCaller], and [WithColor].
func Make(w io.Writer, opts ...Option) Logger {
	cfg := makeConfig(w, opts...)

	return Logger{
		config:  cfg,
		handler: cfg.handler(),
	}
}

// Wrap returns a Logger with the receiver's configuration re-applied
// under the given options. Attributes added with [Logger.With] are not
// carried over.
func (l Logger) Wrap(opts ...Option) Logger {
	cfg := apply(l.config, opts...)

	return Logger{
		config:  cfg,
		handler: cfg.handler(),
	}
}

// With returns a Logger that includes attrs in every record.
func (l Logger) With(attrs ...slog.Attr) Logger {
	if l.handler == nil {
		return l
	}

	return Logger{
		config:  l.config,
		handler: l.handler.WithAttrs(attrs),
	}
}

// Level returns the configured minimum level.
func (l Logger) Level() Level {
	if l.handler == nil {
		return DefaultLevel
	}

	return l.level
}

// Format returns the configured output format.
func (l Logger) Format() Format {
	if l.handler == nil {
		return DefaultFormat
	}

	return l.format
}

// Enabled reports whether records at the given level are emitted.
func (l Logger) Enabled(ctx context.Context, level Level) bool {
	if l.handler == nil {
		return false
	}

	return l.handler.Enabled(ctx, slog.Level(level))
}

// TraceContext logs a message at Trace level with the provided context.
func (l Logger) TraceContext(
	ctx context.Context,
	msg string,
	attrs ...slog.Attr,
) {
	l.logContext(ctx, LevelTrace, msg, attrs...)
}

// Trace logs a message at Trace level.
func (l Logger) Trace(msg string, attrs ...slog.Attr) {
	l.logContext(context.Background(), LevelTrace, msg, attrs...)
}

// DebugContext logs a message at Debug level with the provided context.
func (l Logger) DebugContext(
	ctx context.Context,
	msg string,
	attrs ...slog.Attr,
) {
	l.logContext(ctx, LevelDebug, msg, attrs...)
}

// Debug logs a message at Debug level.
func (l Logger) Debug(msg string, attrs ...slog.Attr) {
	l.logContext(context.Background(), LevelDebug, msg, attrs...)
}

// InfoContext logs a message at Info level with the provided context.
func (l Logger) InfoContext(
	ctx context.Context,
	msg string,
	attrs ...slog.Attr,
) {
	l.logContext(ctx, LevelInfo, msg, attrs...)
}

// Info logs a message at Info level.
func (l Logger) Info(msg string, attrs ...slog.Attr) {
	l.logContext(context.Background(), LevelInfo, msg, attrs...)
}

// WarnContext logs a message at Warn level with the provided context.
func (l Logger) WarnContext(
	ctx context.Context,
	msg string,
	attrs ...slog.Attr,
) {
	l.logContext(ctx, LevelWarn, msg, attrs...)
}

// Warn logs a message at Warn level.
func (l Logger) Warn(msg string, attrs ...slog.Attr) {
	l.logContext(context.Background(), LevelWarn, msg, attrs...)
}

// ErrorContext logs a message at Error level with the provided context.
func (l Logger) ErrorContext(
	ctx context.Context,
	msg string,
	attrs ...slog.Attr,
) {
	l.logContext(ctx, LevelError, msg, attrs...)
}

// Error logs a message at Error level.
func (l Logger) Error(msg string, attrs ...slog.Attr) {
	l.logContext(context.Background(), LevelError, msg, attrs...)
}

func (l Logger) logContext(
	ctx context.Context,
	level Level,
	msg string,
	attrs ...slog.Attr,
) {
	if l.handler == nil || !l.handler.Enabled(ctx, slog.Level(level)) {
		return
	}

	// Capture the call site of the leveled method's caller:
	// 0=Callers, 1=logContext, 2=leveled method, 3=caller.
	var pcs [1]uintptr

	runtime.Callers(3, pcs[:])

	r := slog.NewRecord(time.Now(), slog.Level(level), msg, pcs[0])
	r.AddAttrs(attrs...)

	_ = l.handler.Handle(ctx, r)
}
