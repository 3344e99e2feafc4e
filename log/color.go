package log

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"sync"
)

// ANSI escape sequences for colorized rendering.
const (
	ansiReset   = "\033[0m"
	ansiGray    = "\033[90m"
	ansiRed     = "\033[31m"
	ansiGreen   = "\033[32m"
	ansiYellow  = "\033[33m"
	ansiBlue    = "\033[34m"
	ansiMagenta = "\033[35m"
	ansiCyan    = "\033[36m"
)

// colorHandler renders records with ANSI colors, as a single line of
// key=value pairs in text format or an indented object in JSON format.
type colorHandler struct {
	opts   slog.HandlerOptions
	mu     *sync.Mutex
	w      io.Writer
	format Format
	attrs  []slog.Attr
}

func newColorHandler(
	w io.Writer,
	opts *slog.HandlerOptions,
	format Format,
) *colorHandler {
	return &colorHandler{
		opts:   *opts,
		mu:     &sync.Mutex{},
		w:      w,
		format: format,
	}
}

func (h *colorHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

func (h *colorHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append(h.attrs[:len(h.attrs):len(h.attrs)], attrs...)

	return &clone
}

// WithGroup is accepted but grouping is flattened in colorized output.
func (h *colorHandler) WithGroup(string) slog.Handler {
	return h
}

func (h *colorHandler) Handle(_ context.Context, r slog.Record) error {
	buf := new(bytes.Buffer)

	if h.format == FormatJSON {
		h.renderJSON(buf, r)
	} else {
		h.renderText(buf, r)
	}

	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

func (h *colorHandler) renderText(buf *bytes.Buffer, r slog.Record) {
	for a := range h.recordAttrs(r) {
		if buf.Len() > 0 {
			buf.WriteByte(' ')
		}

		buf.WriteString(ansiGray)
		buf.WriteString(a.Key)
		buf.WriteString(ansiReset)
		buf.WriteByte('=')
		writeColorValue(buf, a.Value)
	}
}

func (h *colorHandler) renderJSON(buf *bytes.Buffer, r slog.Record) {
	buf.WriteString("{\n")

	first := true
	for a := range h.recordAttrs(r) {
		if !first {
			buf.WriteString(",\n")
		}

		first = false

		buf.WriteString("  ")
		buf.WriteString(ansiGray)
		buf.WriteString(strconv.Quote(a.Key))
		buf.WriteString(ansiReset)
		buf.WriteString(": ")
		writeColorValue(buf, a.Value)
	}

	buf.WriteString("\n}")
}

// recordAttrs yields the built-in fields followed by handler and
// record attributes, in presentation order.
func (h *colorHandler) recordAttrs(r slog.Record) func(func(slog.Attr) bool) {
	return func(yield func(slog.Attr) bool) {
		if !r.Time.IsZero() {
			if !yield(slog.Time(slog.TimeKey, r.Time)) {
				return
			}
		}

		if !yield(slog.Any(slog.LevelKey, r.Level)) {
			return
		}

		if h.opts.AddSource {
			if src := r.Source(); src != nil {
				attr := slog.String(slog.SourceKey,
					fmt.Sprintf("%s:%d", src.File, src.Line))
				if !yield(attr) {
					return
				}
			}
		}

		if !yield(slog.String(slog.MessageKey, r.Message)) {
			return
		}

		for _, a := range h.attrs {
			if !yield(a) {
				return
			}
		}

		r.Attrs(yield)
	}
}

func writeColorValue(buf *bytes.Buffer, v slog.Value) {
	v = v.Resolve()

	switch v.Kind() {
	case slog.KindString:
		writeColored(buf, ansiCyan, v.String())

	case slog.KindInt64:
		writeColored(buf, ansiYellow, strconv.FormatInt(v.Int64(), 10))

	case slog.KindUint64:
		writeColored(buf, ansiYellow, strconv.FormatUint(v.Uint64(), 10))

	case slog.KindFloat64:
		writeColored(buf, ansiYellow,
			strconv.FormatFloat(v.Float64(), 'g', -1, 64))

	case slog.KindBool:
		if v.Bool() {
			writeColored(buf, ansiGreen, "true")
		} else {
			writeColored(buf, ansiRed, "false")
		}

	case slog.KindDuration:
		writeColored(buf, ansiMagenta, v.Duration().String())

	case slog.KindTime:
		writeColored(buf, ansiBlue, v.Time().String())

	case slog.KindAny:
		if level, ok := v.Any().(slog.Level); ok {
			writeColored(buf, levelColor(level),
				Level(level).String())

			return
		}

		writeColored(buf, ansiCyan, v.String())

	default:
		writeColored(buf, ansiCyan, v.String())
	}
}

func writeColored(buf *bytes.Buffer, color, text string) {
	buf.WriteString(color)
	buf.WriteString(text)
	buf.WriteString(ansiReset)
}

func levelColor(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return ansiRed
	case level >= slog.LevelWarn:
		return ansiYellow
	case level >= slog.LevelInfo:
		return ansiGreen
	default:
		return ansiBlue
	}
}
