package lang

import (
	"context"
	"log/slog"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// CompileQuery compiles an expr-lang expression against the program's
// map rendering. The environment exposes universal_regions,
// var_uses_region, var_drops_region, and blocks exactly as ToMap
// produces them.
func (in *Input) CompileQuery(src string) (*vm.Program, error) {
	program, err := expr.Compile(src, expr.Env(in.ToMap()))
	if err != nil {
		return nil, ErrQueryCompile.Wrap(err).
			With(slog.String("query", src))
	}

	return program, nil
}

// Query compiles and evaluates an expr-lang expression against the
// parsed program, e.g. "len(blocks)" or "blocks[0].name".
func (in *Input) Query(
	ctx context.Context,
	src string,
	opts ...Option,
) (any, error) {
	cfg := makeOptions(opts...)

	program, err := in.CompileQuery(src)
	if err != nil {
		return nil, err
	}

	result, err := expr.Run(program, in.ToMap())
	if err != nil {
		return nil, ErrQueryEvaluate.Wrap(err).
			With(slog.String("query", src))
	}

	cfg.logger.TraceContext(ctx, "query evaluated",
		slog.String("query", src),
	)

	return result, nil
}
