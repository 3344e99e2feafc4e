package log

import (
	"slices"
	"testing"
	"time"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  Level
	}{
		{input: "trace", want: LevelTrace},
		{input: "TRACE", want: LevelTrace},
		{input: " Trace ", want: LevelTrace},
		{input: "debug", want: LevelDebug},
		{input: "info", want: LevelInfo},
		{input: "WARN", want: LevelWarn},
		{input: "error", want: LevelError},
		{input: "warn+2", want: LevelWarn + 2},
		{input: "bogus", want: DefaultLevel},
		{input: "", want: DefaultLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseLevel(tt.input); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestLevel_String(t *testing.T) {
	tests := []struct {
		level Level
		want  string
	}{
		{level: LevelTrace, want: "trace"},
		{level: LevelDebug, want: "debug"},
		{level: LevelInfo, want: "info"},
		{level: LevelWarn, want: "warn"},
		{level: LevelError, want: "error"},
	}

	for _, tt := range tests {
		if got := tt.level.String(); got != tt.want {
			t.Errorf("Level(%d).String() = %q, want %q",
				tt.level, got, tt.want)
		}
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input string
		want  Format
	}{
		{input: "text", want: FormatText},
		{input: "JSON", want: FormatJSON},
		{input: " json ", want: FormatJSON},
		{input: "yaml", want: DefaultFormat},
		{input: "", want: DefaultFormat},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseFormat(tt.input); got != tt.want {
				t.Errorf("ParseFormat(%q) = %v, want %v",
					tt.input, got, tt.want)
			}
		})
	}
}

func TestLevels(t *testing.T) {
	want := []string{"trace", "debug", "info", "warn", "error"}
	got := slices.Collect(Levels())

	if !slices.Equal(got, want) {
		t.Errorf("Levels() = %v, want %v", got, want)
	}
}

func TestFormats(t *testing.T) {
	want := []string{"text", "json"}
	got := slices.Collect(Formats())

	if !slices.Equal(got, want) {
		t.Errorf("Formats() = %v, want %v", got, want)
	}
}

func TestMakeFormatTimeFunc(t *testing.T) {
	at := time.Date(2024, time.March, 5, 13, 45, 30, 0, time.UTC)

	tests := []struct {
		name   string
		layout string
		want   string
	}{
		{name: "named rfc3339", layout: "RFC3339", want: "2024-03-05T13:45:30Z"},
		{name: "named kitchen", layout: "Kitchen", want: "1:45PM"},
		{name: "verbatim layout", layout: "2006/01/02", want: "2024/03/05"},
		{name: "disabled", layout: "", want: ""},
		{name: "named none", layout: "none", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			format := makeFormatTimeFunc(tt.layout)
			if got := format(at); got != tt.want {
				t.Errorf("format(%q) = %q, want %q", tt.layout, got, tt.want)
			}
		})
	}
}
