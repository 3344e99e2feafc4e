package cmd

import (
	"bufio"
	"context"
	"log/slog"

	"github.com/ardnew/polir/lang"
	"github.com/ardnew/polir/log"
)

// Fmt parses a fact program and reprints it in the chosen format.
type Fmt struct {
	Native Native `cmd:"" default:"withargs" help:"Print in canonical fact-program syntax (default)."`
	JSON   JSON   `cmd:""                    help:"Print as JSON."`
	YAML   YAML   `cmd:""                    help:"Print as YAML."`
}

// Native prints a program in canonical fact-program syntax.
type Native struct {
	Indent int `default:"4" help:"Indent width for block statements" short:"i"`

	Source string `arg:"" default:"-" help:"Source input file or '-' for stdin." name:"source"`
}

// Run executes the fmt native command.
func (f *Native) Run(ctx context.Context) error {
	input, err := parseSource(ctx, f.Source, "native")
	if err != nil {
		return err
	}

	if err := input.Format(ctx, output(ctx), f.Indent); err != nil {
		return ErrFormatProgram.Wrap(err).
			With(slog.String("format", "native"))
	}

	return nil
}

// JSON prints a program as JSON.
type JSON struct {
	Indent int `default:"2" help:"Indent width for JSON output" short:"i"`

	Source string `arg:"" default:"-" help:"Source input file or '-' for stdin." name:"source"`
}

// Run executes the fmt json command.
func (j *JSON) Run(ctx context.Context) error {
	input, err := parseSource(ctx, j.Source, "json")
	if err != nil {
		return err
	}

	if err := input.FormatJSON(ctx, output(ctx), j.Indent); err != nil {
		return ErrFormatProgram.Wrap(err).
			With(slog.String("format", "json"))
	}

	return nil
}

// YAML prints a program as YAML.
type YAML struct {
	Indent int `default:"2" help:"Indent width for YAML output" short:"i"`

	Source string `arg:"" default:"-" help:"Source input file or '-' for stdin." name:"source"`
}

// Run executes the fmt yaml command.
func (y *YAML) Run(ctx context.Context) error {
	input, err := parseSource(ctx, y.Source, "yaml")
	if err != nil {
		return err
	}

	if err := input.FormatYAML(ctx, output(ctx), y.Indent); err != nil {
		return ErrFormatProgram.Wrap(err).
			With(slog.String("format", "yaml"))
	}

	return nil
}

// parseSource opens and parses the named input, "-" meaning stdin.
func parseSource(
	ctx context.Context,
	source, format string,
) (*lang.Input, error) {
	file, err := openSource(source)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	input, err := lang.ParseReader(ctx, bufio.NewReader(file),
		lang.WithLogger(log.Default()))
	if err != nil {
		return nil, err
	}

	log.Default().TraceContext(ctx, "source parsed",
		slog.String("source", source),
		slog.String("format", format),
		slog.Int("blocks", len(input.Blocks)),
	)

	return input, nil
}
