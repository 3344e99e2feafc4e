package cmd

import (
	"bufio"
	"context"

	"github.com/ardnew/polir/cli/cmd/repl"
	"github.com/ardnew/polir/lang"
	"github.com/ardnew/polir/log"
	"github.com/ardnew/polir/pkg"
)

// Repl starts an interactive query session over a parsed fact program.
type Repl struct {
	Source string `arg:"" help:"Source input file." name:"source"`
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) error {
	file, err := openSource(r.Source)
	if err != nil {
		return err
	}
	defer file.Close()

	input, err := lang.ParseReader(ctx, bufio.NewReader(file),
		lang.WithLogger(log.Default()))
	if err != nil {
		return err
	}

	return repl.Run(ctx, input, pkg.CacheDir(), log.Default())
}
