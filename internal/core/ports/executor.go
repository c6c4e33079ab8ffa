// Package ports defines the core interfaces for the application.
package ports

import (
	"context"
	"io"

	"github.com/masonbuild/mason/internal/core/domain"
)

// StepInvocation carries the per-step execution context resolved by the
// runner: the merged environment, the unit directory and the writers that
// receive the spawned process's output.
type StepInvocation struct {
	// Env holds the fully merged environment in "KEY=VALUE" form. Merge
	// order, low to high: process environment, workspace vars, unit vars,
	// target vars, invocation overrides.
	Env []string
	// Dir is the absolute unit directory; a step's relative Dir resolves
	// against it.
	Dir    string
	Stdout io.Writer
	Stderr io.Writer
}

// Executor defines the interface for executing a single step.
//
//go:generate go run go.uber.org/mock/mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Executor interface {
	// Execute spawns the step's command and waits for it. It returns the
	// process exit code and a non-nil error when the code is non-zero or
	// the process could not be spawned.
	Execute(ctx context.Context, step domain.Step, inv StepInvocation) (int, error)
}
