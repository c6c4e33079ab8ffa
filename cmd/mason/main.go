// Package main is the entry point for the mason build orchestrator.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/grindlemire/graft"
	"github.com/masonbuild/mason/cmd/mason/commands"
	"github.com/masonbuild/mason/internal/app"
	"github.com/masonbuild/mason/internal/core/domain"
	_ "github.com/masonbuild/mason/internal/wiring"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Terminating the orchestrator is the only cancellation primitive;
	// the context tears down whatever step is currently running.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	components, _, err := graft.ExecuteFor[*app.Components](ctx)
	if err != nil {
		// Logger is not available if initialization failed.
		_, _ = os.Stderr.WriteString("Error: " + err.Error() + "\n")
		return 1
	}

	cli := commands.New(components.App)

	if err := cli.Execute(ctx); err != nil {
		components.Logger.Error(err)
		// A failed step's exit code propagates to the caller; anything
		// else (unknown target, malformed configuration) exits 1.
		return domain.ExitCode(err)
	}
	return 0
}
