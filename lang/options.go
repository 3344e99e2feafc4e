package lang

import "github.com/ardnew/polir/log"

// Option applies a configuration option to the parse entry points.
type Option func(options) options

// options holds per-call parser configuration.
type options struct {
	logger log.Logger
}

// makeOptions applies opts over the defaults. The zero-value logger
// discards everything, so parsing is silent unless a logger is
// supplied.
func makeOptions(opts ...Option) options {
	var cfg options

	for _, opt := range opts {
		cfg = opt(cfg)
	}

	return cfg
}

// WithLogger returns an option that attaches a structured logger to
// the parse call for trace diagnostics.
func WithLogger(logger log.Logger) Option {
	return func(cfg options) options {
		cfg.logger = logger

		return cfg
	}
}
