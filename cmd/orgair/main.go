package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/orgair/orgair-mcp/internal/cli"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := cli.CreateRootCommand(&cli.CommandConfig{
		Version:   Version,
		BuildTime: BuildTime,
	})
	cli.Execute(ctx, rootCmd)
}
