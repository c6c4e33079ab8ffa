package ports

import "io"

// Reporter receives run progress. The default implementation passes step
// output straight through to the operator's terminal; richer
// implementations may render it instead.
type Reporter interface {
	// Begin announces the ordered list of targets about to run.
	Begin(plan []string)
	// Target opens a report for one target run.
	Target(name string) TargetReport
	// Close flushes the reporter.
	Close() error
}

// TargetReport collects the output and outcome of one target run.
type TargetReport interface {
	// Stdout returns the writer receiving the steps' standard output.
	Stdout() io.Writer
	// Stderr returns the writer receiving the steps' standard error.
	Stderr() io.Writer
	// Done completes the report; err is nil on success.
	Done(err error)
}

// ReporterFactory selects a Reporter implementation for an invocation.
type ReporterFactory func(tui bool) Reporter
