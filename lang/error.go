package lang

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"
)

// Predefined errors (sentinel values).
var (
	ErrLexical       = NewError("lexical error")
	ErrSyntax        = NewError("syntax error")
	ErrReadInput     = NewError("failed to read input")
	ErrQueryCompile  = NewError("query compilation failed")
	ErrQueryEvaluate = NewError("query evaluation failed")
)

// Error represents an error with optional structured logging attributes.
// It implements both error and slog.LogValuer interfaces.
type Error struct {
	msg   string
	err   error       // Wrapped error (for errors.Unwrap)
	attrs []slog.Attr // Attributes for structured logging
}

// NewError creates a new Error with a message.
func NewError(msg string) *Error {
	return &Error{msg: msg}
}

// WrapError wraps a standard error into an Error.
func WrapError(err error) *Error {
	ee := &Error{}
	if errors.As(err, &ee) {
		return ee
	}

	return &Error{err: err}
}

// Error implements the error interface.
func (e *Error) Error() string {
	// Build error message using the first available format,
	// depending on which fields are set:
	//
	//   1. "<msg>: <err>" // base and wrapped error both set
	//   2. "<msg>"        // wrapped error is nil
	//   3. "<err>"        // base error message is empty
	//   4. ""             // no fields are set
	part := make([]string, 0, 2)

	if e.msg != "" {
		part = append(part, e.msg)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	return strings.Join(part, ": ")
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+2)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap creates a new Error wrapping another error.
func (e *Error) Wrap(err error) *Error {
	return &Error{
		msg:   e.msg,
		err:   err,
		attrs: e.attrs, // Share attrs
	}
}

// With adds attributes to the error for structured logging.
// This creates a new Error instance to maintain immutability.
func (e *Error) With(attrs ...slog.Attr) *Error {
	newAttrs := make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(newAttrs, e.attrs)
	copy(newAttrs[len(e.attrs):], attrs)

	return &Error{
		msg:   e.msg,
		err:   e.err,
		attrs: newAttrs,
	}
}

// ParseError is a lexical or syntax failure at a source position.
// Kind is either [ErrLexical] or [ErrSyntax] and is reachable through
// errors.Is.
type ParseError struct {
	Kind     *Error
	Pos      Position
	Token    string // offending source text, empty at end of input
	Expected string // description of what was expected instead
	Source   string // full source, used to render a context snippet
	attrs    []slog.Attr
}

// newParseError creates a ParseError of the given kind.
func newParseError(
	kind *Error,
	pos Position,
	source, token, expected string,
) *ParseError {
	return &ParseError{
		Kind:     kind,
		Pos:      pos,
		Token:    token,
		Expected: expected,
		Source:   source,
	}
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	var buf strings.Builder

	buf.WriteString(e.Kind.Error())
	buf.WriteString(" at line ")
	buf.WriteString(strconv.Itoa(e.Pos.Line))
	buf.WriteString(", column ")
	buf.WriteString(strconv.Itoa(e.Pos.Column))
	buf.WriteString(": ")

	if e.Token == "" {
		buf.WriteString("unexpected end of input")
	} else {
		buf.WriteString("unexpected ")
		buf.WriteString(strconv.Quote(e.Token))
	}

	if e.Expected != "" {
		buf.WriteString(", expected ")
		buf.WriteString(e.Expected)
	}

	if snippet := e.snippet(); snippet != "" {
		buf.WriteString("\n")
		buf.WriteString(snippet)
	}

	return buf.String()
}

// Unwrap returns the error kind so that errors.Is matches ErrLexical
// or ErrSyntax.
func (e *ParseError) Unwrap() error { return e.Kind }

// With adds attributes to the error for structured logging.
func (e *ParseError) With(attrs ...slog.Attr) *ParseError {
	clone := *e
	clone.attrs = make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(clone.attrs, e.attrs)
	copy(clone.attrs[len(e.attrs):], attrs)

	return &clone
}

// LogValue implements slog.LogValuer for rich structured logging.
func (e *ParseError) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+4)

	attrs = append(attrs,
		slog.String("error", e.Kind.Error()),
		slog.Int("line", e.Pos.Line),
		slog.Int("column", e.Pos.Column),
	)

	if e.Token != "" {
		attrs = append(attrs, slog.String("token", e.Token))
	}

	if e.Expected != "" {
		attrs = append(attrs, slog.String("expected", e.Expected))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// snippet renders the offending source line with a caret marker under
// the error column.
func (e *ParseError) snippet() string {
	if e.Source == "" || e.Pos.Line <= 0 {
		return ""
	}

	lines := strings.Split(e.Source, "\n")
	if e.Pos.Line > len(lines) {
		return ""
	}

	line := lines[e.Pos.Line-1]
	num := strconv.Itoa(e.Pos.Line)

	var buf strings.Builder

	buf.WriteString("  ")
	buf.WriteString(num)
	buf.WriteString(" | ")
	buf.WriteString(line)
	buf.WriteString("\n")

	// +5 accounts for: 2 leading spaces + " | " (3 chars)
	padding := len(num) + 5
	if e.Pos.Column > 0 {
		padding += e.Pos.Column - 1
	}

	buf.WriteString(strings.Repeat(" ", padding))
	buf.WriteString("^")

	return buf.String()
}
