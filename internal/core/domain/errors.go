package domain

import (
	"errors"

	"go.trai.ch/zerr"
)

var (
	// ErrTargetAlreadyExists is returned when attempting to add a target with a name that already exists.
	ErrTargetAlreadyExists = zerr.New("target already exists")

	// ErrTargetNotFound is returned when a requested target is not declared in the graph.
	ErrTargetNotFound = zerr.New("target not found")

	// ErrMissingPrerequisite is returned when a target references a prerequisite that doesn't exist in the graph.
	ErrMissingPrerequisite = zerr.New("missing prerequisite")

	// ErrCycleDetected is returned when a cycle is detected in the prerequisite graph.
	ErrCycleDetected = zerr.New("cycle detected")

	// ErrPrerequisiteFailed is returned when a prerequisite target's run failed,
	// preventing the dependent target's own steps from executing.
	ErrPrerequisiteFailed = zerr.New("prerequisite failed")

	// ErrNoDefaultTarget is returned when no target is named and the configuration declares no default.
	ErrNoDefaultTarget = zerr.New("no target specified and no default target declared")

	// ErrInvalidTargetName is returned when a target name contains invalid characters.
	ErrInvalidTargetName = zerr.New("target name can only contain alphanumeric characters, hyphens and underscores")

	// ErrInvalidUnitName is returned when a unit name is invalid.
	ErrInvalidUnitName = zerr.New("unit name can only contain alphanumeric characters, hyphens and underscores")

	// ErrDuplicateUnitName is returned when multiple units share the same name in a workspace.
	ErrDuplicateUnitName = zerr.New("duplicate unit name")

	// ErrEmptyStep is returned when a target declares a step with an empty command.
	ErrEmptyStep = zerr.New("step command is empty")

	// ErrConfigNotFound is returned when neither a workspace file nor a unit file can be found.
	ErrConfigNotFound = zerr.New("could not find mason.work.yaml or mason.yaml")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrInvalidTransition is returned when a run is moved to a state its current state does not allow.
	ErrInvalidTransition = zerr.New("invalid run state transition")

	// ErrHistoryReadFailed is returned when the run history cannot be read.
	ErrHistoryReadFailed = zerr.New("failed to read run history")

	// ErrHistoryWriteFailed is returned when the run history cannot be written.
	ErrHistoryWriteFailed = zerr.New("failed to write run history")
)

// StepError reports a step that returned a non-zero exit code, or could not
// be spawned at all. It carries the information the coordinator needs to
// translate a failed run into a process exit code.
type StepError struct {
	Target    string
	StepIndex int
	ExitCode  int
	Err       error
}

// Error implements the error interface.
func (e *StepError) Error() string {
	return "step failed"
}

// Unwrap returns the underlying execution error.
func (e *StepError) Unwrap() error {
	return e.Err
}

// ExitCode extracts the process exit code to report for err. A nil error
// maps to 0, a StepError anywhere in the chain maps to its captured exit
// code (propagate-exit-code policy), and anything else maps to 1.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var se *StepError
	if errors.As(err, &se) {
		return se.ExitCode
	}
	return 1
}
