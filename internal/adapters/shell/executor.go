// Package shell provides the step executor adapter.
package shell

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/masonbuild/mason/internal/core/domain"
	"github.com/masonbuild/mason/internal/core/ports"
	"go.trai.ch/zerr"
)

// ExitCodeSpawnFailure is reported when the process could not be started at
// all, matching the shell convention for "command not found".
const ExitCodeSpawnFailure = 127

// Executor implements ports.Executor using os/exec.
type Executor struct {
	logger ports.Logger
}

// NewExecutor creates a new Executor.
func NewExecutor(logger ports.Logger) *Executor {
	return &Executor{
		logger: logger,
	}
}

// Execute spawns the step's command with the resolved invocation context
// and waits for it. ${VAR} references in the argv and working directory are
// expanded against the merged environment first. The process's stdout and
// stderr stream to the invocation writers as they are produced; nothing is
// buffered or filtered.
func (e *Executor) Execute(ctx context.Context, step domain.Step, inv ports.StepInvocation) (int, error) {
	if len(step.Argv) == 0 {
		return 0, zerr.New("step has no command")
	}

	envMap := environMap(inv.Env)
	argv := expandArgv(step.Argv, envMap)

	name := argv[0]
	args := argv[1:]

	// Resolve the executable against the merged environment's PATH, not
	// the orchestrator's own.
	executable := name
	if !filepath.IsAbs(name) {
		if lp, err := lookPath(name, envMap["PATH"]); err == nil {
			executable = lp
		}
	}

	cmd := exec.CommandContext(ctx, executable, args...) //nolint:gosec // user provided command

	// exec.CommandContext sets Args[0] to the executable path. Preserve
	// the name as invoked.
	if len(cmd.Args) > 0 {
		cmd.Args[0] = name
	}

	cmd.Dir = stepDir(step, inv, envMap)
	cmd.Env = inv.Env
	cmd.Stdout = inv.Stdout
	cmd.Stderr = inv.Stderr

	// Echo the command the way make does, so the operator sees what ran.
	e.logger.Info(strings.Join(argv, " "))

	if err := cmd.Run(); err != nil {
		exitCode := ExitCodeSpawnFailure
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		}
		return exitCode, zerr.With(zerr.Wrap(err, "command failed"), "exit_code", exitCode)
	}

	return 0, nil
}

// stepDir resolves the step's working directory: the unit directory by
// default, with a relative step dir joined onto it.
func stepDir(step domain.Step, inv ports.StepInvocation, env map[string]string) string {
	if step.Dir == "" {
		return inv.Dir
	}
	dir := os.Expand(step.Dir, func(k string) string { return env[k] })
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(inv.Dir, dir)
	}
	return dir
}

func expandArgv(argv []string, env map[string]string) []string {
	expanded := make([]string, len(argv))
	for i, a := range argv {
		expanded[i] = os.Expand(a, func(k string) string { return env[k] })
	}
	return expanded
}

func environMap(env []string) map[string]string {
	m := make(map[string]string, len(env))
	for _, entry := range env {
		if k, v, ok := strings.Cut(entry, "="); ok {
			m[k] = v
		}
	}
	return m
}

// lookPath searches for an executable in the directories named by path.
func lookPath(file, path string) (string, error) {
	if path == "" {
		return "", exec.ErrNotFound
	}

	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			// Unix shell semantics: path element "" means "."
			dir = "."
		}
		candidate := filepath.Join(dir, file)
		if err := findExecutable(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", exec.ErrNotFound
}

func findExecutable(file string) error {
	d, err := os.Stat(file)
	if err != nil {
		return err
	}
	if m := d.Mode(); !m.IsDir() && m&0o111 != 0 {
		return nil
	}
	return os.ErrPermission
}
