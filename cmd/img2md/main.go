package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/roboco-io/img2md/internal/cli"
)

var version = "dev"

func main() {
	cli.SetVersion(version)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cli.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
