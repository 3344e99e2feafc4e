// Package cli implements the polir command-line interface.
//
// The interface is declared as a Kong grammar on [CLI]: logging and
// profiling flags are embedded groups, and each subcommand lives in
// the cli/cmd package. Logger flags take effect during argument
// parsing so that diagnostics emitted while parsing already honor the
// requested level and format.
package cli
