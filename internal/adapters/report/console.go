// Package report provides Reporter implementations for run progress.
package report

import (
	"io"
	"os"

	"github.com/masonbuild/mason/internal/core/ports"
)

// Console is the default reporter. It hands steps the process's own stdout
// and stderr so the operator sees raw tool output in real time, with no
// buffering or filtering.
type Console struct {
	stdout io.Writer
	stderr io.Writer
}

// NewConsole creates a Console reporter bound to the process streams.
func NewConsole() *Console {
	return &Console{
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
}

// NewConsoleWriters creates a Console reporter bound to explicit writers.
// Used by tests.
func NewConsoleWriters(stdout, stderr io.Writer) *Console {
	return &Console{stdout: stdout, stderr: stderr}
}

// Begin does nothing; the plan is visible through the step echo.
func (c *Console) Begin(_ []string) {}

// Target opens a passthrough report for one target.
func (c *Console) Target(_ string) ports.TargetReport {
	return &consoleReport{stdout: c.stdout, stderr: c.stderr}
}

// Close does nothing.
func (c *Console) Close() error { return nil }

type consoleReport struct {
	stdout io.Writer
	stderr io.Writer
}

func (r *consoleReport) Stdout() io.Writer { return r.stdout }
func (r *consoleReport) Stderr() io.Writer { return r.stderr }
func (r *consoleReport) Done(_ error)      {}
