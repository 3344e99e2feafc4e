package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/ardnew/polir/cli"
	"github.com/ardnew/polir/log"
)

func main() {
	err := cli.Run(context.Background(), os.Exit, os.Args[1:]...)
	if err != nil {
		log.Default().Error(
			"run failed",
			slog.Any("error", err),
		) // slog automatically uses LogValue()
		os.Exit(1)
	}
}
