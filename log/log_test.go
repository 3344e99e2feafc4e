package log

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestLogger_ZeroValue(t *testing.T) {
	var l Logger

	// Must not panic, must not emit.
	l.Trace("trace")
	l.Debug("debug")
	l.Info("info")
	l.Warn("warn")
	l.Error("error")

	if l.Level() != DefaultLevel {
		t.Errorf("zero logger level = %v, want %v", l.Level(), DefaultLevel)
	}

	if l.Format() != DefaultFormat {
		t.Errorf("zero logger format = %v, want %v", l.Format(), DefaultFormat)
	}

	if l.Enabled(context.Background(), LevelError) {
		t.Error("zero logger must not be enabled at any level")
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	tests := []struct {
		name    string
		level   Level
		emit    func(Logger)
		visible bool
	}{
		{
			name:    "trace hidden at info",
			level:   LevelInfo,
			emit:    func(l Logger) { l.Trace("msg") },
			visible: false,
		},
		{
			name:    "debug hidden at info",
			level:   LevelInfo,
			emit:    func(l Logger) { l.Debug("msg") },
			visible: false,
		},
		{
			name:    "info visible at info",
			level:   LevelInfo,
			emit:    func(l Logger) { l.Info("msg") },
			visible: true,
		},
		{
			name:    "trace visible at trace",
			level:   LevelTrace,
			emit:    func(l Logger) { l.Trace("msg") },
			visible: true,
		},
		{
			name:    "warn visible at info",
			level:   LevelInfo,
			emit:    func(l Logger) { l.Warn("msg") },
			visible: true,
		},
		{
			name:    "info hidden at error",
			level:   LevelError,
			emit:    func(l Logger) { l.Info("msg") },
			visible: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf strings.Builder

			tt.emit(Make(&buf, WithLevel(tt.level)))

			if got := buf.Len() > 0; got != tt.visible {
				t.Errorf("visible = %v, want %v (output %q)",
					got, tt.visible, buf.String())
			}
		})
	}
}

func TestLogger_TextOutput(t *testing.T) {
	var buf strings.Builder

	l := Make(&buf,
		WithFormat(FormatText),
		WithTimeLayout("none"),
	)
	l.Info("parse complete", slog.Int("blocks", 3))

	out := buf.String()
	for _, want := range []string{"INFO", "parse complete", "blocks=3"} {
		if !strings.Contains(out, want) {
			t.Errorf("text output missing %q: %q", want, out)
		}
	}

	if strings.Contains(out, "time=") {
		t.Errorf("timestamp not suppressed: %q", out)
	}
}

func TestLogger_JSONOutput(t *testing.T) {
	var buf strings.Builder

	l := Make(&buf, WithFormat(FormatJSON))
	l.Error("read failed", slog.String("path", "input.txt"))

	var record map[string]any
	if err := json.Unmarshal([]byte(buf.String()), &record); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}

	if record["level"] != "ERROR" {
		t.Errorf("level = %v, want ERROR", record["level"])
	}

	if record["msg"] != "read failed" {
		t.Errorf("msg = %v, want %q", record["msg"], "read failed")
	}

	if record["path"] != "input.txt" {
		t.Errorf("path = %v, want %q", record["path"], "input.txt")
	}
}

func TestLogger_TraceLevelName(t *testing.T) {
	var buf strings.Builder

	l := Make(&buf,
		WithFormat(FormatText),
		WithLevel(LevelTrace),
		WithTimeLayout("none"),
	)
	l.Trace("deep detail")

	out := buf.String()
	if !strings.Contains(out, "TRACE") {
		t.Errorf("expected TRACE level name: %q", out)
	}

	if strings.Contains(out, "DEBUG-4") {
		t.Errorf("raw slog level leaked: %q", out)
	}
}

func TestLogger_With(t *testing.T) {
	var buf strings.Builder

	l := Make(&buf, WithFormat(FormatText), WithTimeLayout("none"))
	scoped := l.With(slog.String("component", "parser"))

	scoped.Info("ready")

	if !strings.Contains(buf.String(), "component=parser") {
		t.Errorf("missing bound attribute: %q", buf.String())
	}

	buf.Reset()
	l.Info("ready")

	if strings.Contains(buf.String(), "component=parser") {
		t.Errorf("attribute leaked to base logger: %q", buf.String())
	}
}

func TestLogger_Wrap(t *testing.T) {
	var buf strings.Builder

	l := Make(&buf, WithLevel(LevelError))
	if l.Enabled(context.Background(), LevelDebug) {
		t.Fatal("debug unexpectedly enabled")
	}

	wrapped := l.Wrap(WithLevel(LevelDebug))
	if !wrapped.Enabled(context.Background(), LevelDebug) {
		t.Error("wrap did not lower the level")
	}

	if wrapped.Level() != LevelDebug {
		t.Errorf("wrapped level = %v, want %v", wrapped.Level(), LevelDebug)
	}

	// The original is unchanged.
	if l.Level() != LevelError {
		t.Errorf("base level = %v, want %v", l.Level(), LevelError)
	}
}

func TestLogger_ColorText(t *testing.T) {
	var buf strings.Builder

	l := Make(&buf,
		WithFormat(FormatText),
		WithColor(true),
		WithTimeLayout("none"),
	)
	l.Info("styled", slog.Bool("ok", true), slog.Int("n", 7))

	out := buf.String()
	for _, want := range []string{
		ansiGray, ansiGreen, ansiYellow, ansiReset, "styled", "true", "7",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("color output missing %q: %q", want, out)
		}
	}
}

func TestLogger_ColorJSON(t *testing.T) {
	var buf strings.Builder

	l := Make(&buf, WithFormat(FormatJSON), WithColor(true))
	l.Warn("styled")

	out := buf.String()
	if !strings.HasPrefix(out, "{\n") {
		t.Errorf("expected multiline object: %q", out)
	}

	for _, want := range []string{`"level"`, "warn", `"msg"`, "styled"} {
		if !strings.Contains(out, want) {
			t.Errorf("color JSON missing %q: %q", want, out)
		}
	}
}

func TestLogger_ColorWithAttrs(t *testing.T) {
	var buf strings.Builder

	l := Make(&buf,
		WithFormat(FormatText),
		WithColor(true),
		WithTimeLayout("none"),
	).With(slog.String("component", "lexer"))

	l.Info("scanning")

	out := buf.String()
	if !strings.Contains(out, "component") || !strings.Contains(out, "lexer") {
		t.Errorf("bound attribute missing from color output: %q", out)
	}
}
