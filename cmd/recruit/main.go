package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/aussiebroadwan/dentalrecruit/internal/recruit/app"
	"github.com/aussiebroadwan/dentalrecruit/internal/recruit/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	cfg, err := app.LoadConfig(ctx)
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	code := cli.Execute(ctx, cfg, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
