package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/fatih/color"

	"github.com/hplandscaping/booking-platform/internal/cli"
	"github.com/hplandscaping/booking-platform/pkg/logging"
)

// Version is set by -ldflags during build
var Version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	app := &cli.App{
		Logger: logging.NewWithWriter(logLevel(), os.Stderr),
	}
	root := cli.NewRootCmd(app, Version)
	if err := root.ExecuteContext(ctx); err != nil {
		if errors.Is(err, cli.ErrAborted) {
			fmt.Fprintln(os.Stderr, "Cancelled.")
			os.Exit(130)
		}
		color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func logLevel() string {
	if level := os.Getenv("BOOKINGCTL_LOG_LEVEL"); level != "" {
		return level
	}
	return "warn"
}
