package cli

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/polir/log"
)

// logFormat configures the logger format as a side effect of parsing
// via encoding.TextUnmarshaler.
type logFormat string

// UnmarshalText implements encoding.TextUnmarshaler. As Kong parses the
// --log-format flag, this method is called, allowing the logger to be
// configured early enough to affect diagnostics emitted during parsing.
func (f *logFormat) UnmarshalText(text []byte) error {
	*f = logFormat(text)
	log.Config(log.WithFormat(log.ParseFormat(string(*f))))

	return nil
}

// logLevel configures the logger level as a side effect of parsing via
// encoding.TextUnmarshaler.
type logLevel string

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *logLevel) UnmarshalText(text []byte) error {
	*l = logLevel(text)
	log.Config(log.WithLevel(log.ParseLevel(string(*l))))

	return nil
}

type logConfig struct {
	Level      logLevel  `default:"info"    enum:"trace,debug,info,warn,error" help:"Set log level."`
	Format     logFormat `default:"text"    enum:"text,json"                   help:"Set log format."`
	TimeLayout string    `default:"RFC3339"                                    help:"Set timestamp format."`
	Caller     bool      `default:"false"                                      help:"Include caller information." negatable:""`
	Color      bool      `default:"false"                                      help:"Enable colorized output."    negatable:""`
}

func (*logConfig) vars() kong.Vars {
	return kong.Vars{}
}

func (*logConfig) group() kong.Group {
	var group kong.Group

	group.Key = "log"
	group.Title = "Logging options"

	return group
}

func (f *logConfig) start(ctx context.Context) {
	logger := log.Config(
		log.WithLevel(log.ParseLevel(string(f.Level))),
		log.WithFormat(log.ParseFormat(string(f.Format))),
		log.WithTimeLayout(f.TimeLayout),
		log.WithCaller(f.Caller),
		log.WithColor(f.Color),
	)

	logger.DebugContext(ctx, "logger initialized",
		slog.String("level", string(f.Level)),
		slog.String("format", string(f.Format)),
		slog.String("time", f.TimeLayout),
		slog.Bool("caller", f.Caller),
		slog.Bool("color", f.Color),
	)
}

// scan performs an early pass over command-line arguments to apply
// logger configuration before Kong begins parsing. Value flags reuse
// the TextUnmarshaler side effects; boolean flags are applied directly.
func (f *logConfig) scan(args []string) {
	for i := 0; i < len(args); i++ {
		name, value, assigned := strings.Cut(args[i], "=")

		// Non-boolean flags consume the next argument when the value
		// was not attached with "=".
		next := func() string {
			if assigned {
				return value
			}

			if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				i++

				return args[i]
			}

			return ""
		}

		boolValue := func(fallback bool) bool {
			if !assigned {
				return fallback
			}

			v, err := strconv.ParseBool(value)
			if err != nil {
				return fallback
			}

			return v
		}

		switch name {
		case "--log-level":
			_ = f.Level.UnmarshalText([]byte(next()))

		case "--log-format":
			_ = f.Format.UnmarshalText([]byte(next()))

		case "--log-color":
			f.Color = boolValue(true)
			log.Config(log.WithColor(f.Color))

		case "--no-log-color":
			f.Color = !boolValue(true)
			log.Config(log.WithColor(f.Color))

		case "--log-caller":
			f.Caller = boolValue(true)
			log.Config(log.WithCaller(f.Caller))

		case "--no-log-caller":
			f.Caller = !boolValue(true)
			log.Config(log.WithCaller(f.Caller))
		}
	}
}
