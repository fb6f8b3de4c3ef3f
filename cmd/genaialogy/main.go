package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/JeremyMcCormick/genaialogy/cmd/genaialogy/commands"
)

// Version information - set during build
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)

	// Ctrl-C cancels in-flight biography requests
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	// Errors are printed directly by the printer package with color formatting
	err := commands.Execute(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
