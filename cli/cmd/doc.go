// Package cmd implements the polir subcommands.
package cmd
