package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"mockupstudio/cmd/studio/commands"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := commands.RootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
