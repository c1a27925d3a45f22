// Package main is the entry point for the cargo-ci-precache CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Jarcho/cargo-ci-precache/cmd/precache/commands"
	"github.com/Jarcho/cargo-ci-precache/internal/app"
	_ "github.com/Jarcho/cargo-ci-precache/internal/wiring"
	"github.com/grindlemire/graft"
)

func main() {
	os.Exit(run())
}

func run(opts ...func(*app.App)) int {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	components, _, err := graft.ExecuteFor[*app.Components](ctx)
	if err != nil {
		// Logger is not available if initialization failed.
		_, _ = os.Stderr.WriteString("Error: " + err.Error() + "\n")
		return 1
	}

	for _, opt := range opts {
		opt(components.App)
	}

	cli := commands.New(components.App)

	if err := cli.Execute(ctx); err != nil {
		// zerr prints a report with stack trace and metadata when using %+v.
		_, _ = fmt.Fprintf(os.Stderr, "%+v\n", err)
		return 1
	}
	return 0
}
