// Package runner executes targets sequentially with fail-fast semantics.
package runner

import (
	"context"
	"os"
	"slices"
	"strings"

	"github.com/masonbuild/mason/internal/core/domain"
	"github.com/masonbuild/mason/internal/core/ports"
	"go.trai.ch/zerr"
)

// Runner is the action runner: it executes one target at a time, running
// prerequisites depth-first before the target's own steps and stopping at
// the first failure. Nothing runs in parallel and nothing is retried.
type Runner struct {
	executor ports.Executor
	logger   ports.Logger
}

// NewRunner creates a new Runner with the given dependencies.
func NewRunner(executor ports.Executor, logger ports.Logger) *Runner {
	return &Runner{
		executor: executor,
		logger:   logger,
	}
}

// Run executes the named target, prerequisites included, and returns its
// result. The reporter receives per-target output; history records every
// executed target's outcome best-effort. Overrides are invocation-scoped
// bindings layered above everything else.
func (r *Runner) Run(
	ctx context.Context,
	ws *domain.Workspace,
	reporter ports.Reporter,
	history ports.HistoryStore,
	name domain.InternedString,
	overrides map[string]string,
) (domain.RunResult, error) {
	// Prerequisites shared by several targets run once per Run (diamond
	// graphs), the same way make executes each prerequisite once per
	// invocation.
	done := make(map[domain.InternedString]bool)
	return r.runTarget(ctx, ws, reporter, history, name, overrides, done)
}

func (r *Runner) runTarget(
	ctx context.Context,
	ws *domain.Workspace,
	reporter ports.Reporter,
	history ports.HistoryStore,
	name domain.InternedString,
	overrides map[string]string,
	done map[domain.InternedString]bool,
) (domain.RunResult, error) {
	// An unknown target must fail before any process is spawned.
	target, err := ws.Graph.Resolve(name)
	if err != nil {
		return failedResult(name, -1, 1), err
	}

	run := domain.NewRun(name)
	if err := run.Transition(domain.RunningPrerequisites); err != nil {
		return failedResult(name, -1, 1), err
	}

	for _, dep := range target.Prereqs {
		if done[dep] {
			continue
		}
		res, err := r.runTarget(ctx, ws, reporter, history, dep, overrides, done)
		if err != nil {
			// The dependent target's own steps never execute; the
			// prerequisite's failure propagates with its exit code.
			_ = run.Transition(domain.RunFailed)
			failed := failedResult(name, -1, res.ExitCode)
			r.record(history, &target, failed)
			return failed, zerr.With(
				zerr.Wrap(err, domain.ErrPrerequisiteFailed.Error()),
				"target", name.String(),
			)
		}
	}

	if err := run.Transition(domain.RunningOwnSteps); err != nil {
		return failedResult(name, -1, 1), err
	}

	report := reporter.Target(name.String())
	inv := ports.StepInvocation{
		Env:    resolveEnvironment(os.Environ(), ws.Vars, target.Vars, overrides),
		Dir:    target.Dir.String(),
		Stdout: report.Stdout(),
		Stderr: report.Stderr(),
	}

	for i, step := range target.Steps {
		code, err := r.executor.Execute(ctx, step, inv)
		if err != nil {
			_ = run.Transition(domain.RunFailed)
			stepErr := &domain.StepError{
				Target:    name.String(),
				StepIndex: i,
				ExitCode:  code,
				Err:       err,
			}
			report.Done(stepErr)
			res := failedResult(name, i, code)
			r.record(history, &target, res)
			return res, stepErr
		}
	}

	if err := run.Transition(domain.RunSucceeded); err != nil {
		return failedResult(name, -1, 1), err
	}
	report.Done(nil)
	done[name] = true

	res := domain.RunResult{Target: name, Success: true, FailedStep: -1}
	r.record(history, &target, res)
	return res, nil
}

// record persists the run outcome. History is best-effort: a store failure
// is logged and never fails the run.
func (r *Runner) record(history ports.HistoryStore, target *domain.Target, res domain.RunResult) {
	if history == nil {
		return
	}
	if err := history.Record(target, res); err != nil {
		r.logger.Warn("failed to record run history: " + err.Error())
	}
}

func failedResult(name domain.InternedString, step, exitCode int) domain.RunResult {
	return domain.RunResult{
		Target:     name,
		Success:    false,
		FailedStep: step,
		ExitCode:   exitCode,
	}
}

// resolveEnvironment merges the environment layers, low to high priority:
// process environment, workspace vars, target vars (which already include
// the unit-scoped bindings), invocation overrides.
func resolveEnvironment(sysEnv []string, wsVars, targetVars, overrides map[string]string) []string {
	envMap := make(map[string]string, len(sysEnv))
	order := make([]string, 0, len(sysEnv))

	set := func(k, v string) {
		if _, exists := envMap[k]; !exists {
			order = append(order, k)
		}
		envMap[k] = v
	}

	for _, entry := range sysEnv {
		if k, v, ok := strings.Cut(entry, "="); ok {
			set(k, v)
		}
	}
	for _, layer := range []map[string]string{wsVars, targetVars, overrides} {
		keys := make([]string, 0, len(layer))
		for k := range layer {
			keys = append(keys, k)
		}
		// Deterministic order within a layer.
		slices.Sort(keys)
		for _, k := range keys {
			set(k, layer[k])
		}
	}

	result := make([]string, 0, len(order))
	for _, k := range order {
		result = append(result, k+"="+envMap[k])
	}
	return result
}
