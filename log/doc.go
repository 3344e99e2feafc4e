// Package log wraps log/slog with a Trace level, selectable output
// formats, and optional ANSI-colorized rendering.
//
// The zero value Logger is valid and discards every message, so
// libraries can accept a Logger without forcing callers to configure
// one. Construct an active logger with [Make]:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithFormat(log.FormatText),
//	)
//	logger.Info("ready", slog.String("version", version))
//
// A Logger is immutable after construction. Derive variants with
// [Logger.Wrap] and [Logger.With].
package log
