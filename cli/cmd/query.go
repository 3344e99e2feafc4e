package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
)

// Query evaluates an expression against a parsed fact program.
//
// The expression language is expr-lang, evaluated over the program's
// map rendering: universal_regions, var_uses_region, var_drops_region,
// and blocks. For example:
//
//	polir query 'len(blocks)' input.txt
//	polir query 'filter(blocks, len(.goto) == 0)' input.txt
type Query struct {
	Expr   string `arg:""             help:"Query expression to evaluate."                     name:"expr"`
	Source string `arg:"" default:"-" help:"Source input file or '-' for stdin." name:"source" optional:""`
}

// Run executes the query command.
func (q *Query) Run(ctx context.Context) error {
	input, err := parseSource(ctx, q.Source, "query")
	if err != nil {
		return err
	}

	result, err := input.Query(ctx, q.Expr)
	if err != nil {
		return err
	}

	out := output(ctx)

	// Scalars print bare; structured results print as indented JSON.
	switch v := result.(type) {
	case string:
		_, err = fmt.Fprintln(out, v)
	case bool, int, int64, uint64, float64, nil:
		_, err = fmt.Fprintln(out, v)
	default:
		data, merr := json.MarshalIndent(v, "", "  ")
		if merr != nil {
			return ErrRenderResult.Wrap(merr).
				With(slog.String("expr", q.Expr))
		}

		_, err = fmt.Fprintln(out, string(data))
	}

	return err
}
