// Package main provides a CLI that simulates board games between strategies.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/louisbranch/boardwalk/internal/platform/config"

	simulatecmd "github.com/louisbranch/boardwalk/internal/cmd/simulate"
)

func main() {
	cfg, err := simulatecmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("Error: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := simulatecmd.Run(ctx, cfg, os.Stdout); err != nil {
		config.Exitf("Error: %v", err)
	}
}
