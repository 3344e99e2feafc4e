package cli

import (
	"context"
	"os"

	"github.com/alecthomas/kong"

	"github.com/ardnew/polir/cli/cmd"
	"github.com/ardnew/polir/pkg"
)

// CLI is the top-level command-line interface for polir.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Version kong.VersionFlag `help:"Print version and exit." short:"V"`

	Fmt   cmd.Fmt   `cmd:"" help:"Parse a fact program and print it in the chosen format."`
	Query cmd.Query `cmd:"" help:"Evaluate a query expression against a fact program."`
	Repl  cmd.Repl  `cmd:"" help:"Interactively query a fact program."`
}

// defaultDirMode is the permission mode for created runtime directories.
var defaultDirMode os.FileMode = 0o700

// Run executes the polir CLI with the given context and arguments.
// The exit function is called with the appropriate exit code upon
// completion.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	// The cache directory holds REPL history and profiler output.
	if err := os.MkdirAll(pkg.CacheDir(), defaultDirMode); err != nil {
		return err
	}

	vars := kong.Vars{
		"version": pkg.Version,
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Pre-scan for logger flags so early diagnostics honor them
	// regardless of flag position. TextUnmarshaler on logFormat and
	// logLevel handles those flags during normal parsing, but this scan
	// also catches boolean flags like --log-color.
	cli.Log.scan(args)

	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups(
			[]kong.Group{cli.Log.group(), cli.Pprof.group()},
		),
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact:             true,
				Summary:             true,
				Tree:                true,
				NoExpandSubcommands: true,
			}),
		vars,
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	ctx = cmd.WithContext(ctx, ktx)

	// Finalize logger configuration with all parsed values including
	// TimeLayout and Caller which don't use TextUnmarshaler.
	cli.Log.start(ctx)

	// No-op unless built with tag pprof and enabled.
	defer cli.Pprof.start(ctx)()

	return ktx.Run(ctx, &cli)
}
