package domain

import "go.trai.ch/zerr"

// RunPhase is the lifecycle state of a single run.
type RunPhase string

const (
	// RunPending indicates the run has been created but not started.
	RunPending RunPhase = "Pending"
	// RunningPrerequisites indicates prerequisite targets are executing.
	RunningPrerequisites RunPhase = "RunningPrerequisites"
	// RunningOwnSteps indicates the target's own steps are executing.
	RunningOwnSteps RunPhase = "RunningOwnSteps"
	// RunSucceeded is the terminal success state.
	RunSucceeded RunPhase = "Succeeded"
	// RunFailed is the terminal failure state.
	RunFailed RunPhase = "Failed"
)

// validTransitions maps each phase to the phases it may move to. Terminal
// states have no successors; there are no retries or re-entry.
var validTransitions = map[RunPhase][]RunPhase{
	RunPending:           {RunningPrerequisites},
	RunningPrerequisites: {RunningOwnSteps, RunFailed},
	RunningOwnSteps:      {RunSucceeded, RunFailed},
	RunSucceeded:         {},
	RunFailed:            {},
}

// Run is one execution attempt of a target, including its prerequisites.
// It lives only for the duration of the command sequence and is discarded
// after reporting its outcome.
type Run struct {
	Target InternedString
	phase  RunPhase
}

// NewRun creates a pending run for the named target.
func NewRun(target InternedString) *Run {
	return &Run{
		Target: target,
		phase:  RunPending,
	}
}

// Phase returns the current lifecycle state.
func (r *Run) Phase() RunPhase {
	return r.phase
}

// Transition moves the run to the next phase, rejecting moves the state
// machine does not allow.
func (r *Run) Transition(next RunPhase) error {
	for _, allowed := range validTransitions[r.phase] {
		if allowed == next {
			r.phase = next
			return nil
		}
	}
	return zerr.With(
		zerr.With(zerr.Wrap(ErrInvalidTransition, "cannot transition run"), "from", string(r.phase)),
		"to", string(next),
	)
}

// RunResult is the outcome of a run: a single pass/fail plus the failing
// step's position and exit code when the run failed.
type RunResult struct {
	Target  InternedString
	Success bool
	// FailedStep is the index of the first failing step, or -1 if no own
	// step failed (success, or a prerequisite failure).
	FailedStep int
	// ExitCode is 0 on success, otherwise the first failing step's exit
	// code.
	ExitCode int
}
