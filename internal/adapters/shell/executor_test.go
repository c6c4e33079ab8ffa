package shell_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/masonbuild/mason/internal/adapters/shell"
	"github.com/masonbuild/mason/internal/core/domain"
	"github.com/masonbuild/mason/internal/core/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noopLogger struct{}

func (noopLogger) Info(string) {}
func (noopLogger) Warn(string) {}
func (noopLogger) Error(error) {}

func newExecutor() *shell.Executor {
	return shell.NewExecutor(noopLogger{})
}

func invocation(env []string) (ports.StepInvocation, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	return ports.StepInvocation{
		Env:    env,
		Dir:    os.TempDir(),
		Stdout: &stdout,
		Stderr: &stderr,
	}, &stdout, &stderr
}

func TestExecute_Success(t *testing.T) {
	inv, stdout, _ := invocation(os.Environ())
	step := domain.Step{Argv: []string{"sh", "-c", "echo hello"}}

	code, err := newExecutor().Execute(context.Background(), step, inv)

	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Equal(t, "hello\n", stdout.String())
}

func TestExecute_ExitCodePropagated(t *testing.T) {
	inv, _, _ := invocation(os.Environ())
	step := domain.Step{Argv: []string{"sh", "-c", "exit 3"}}

	code, err := newExecutor().Execute(context.Background(), step, inv)

	require.Error(t, err)
	assert.Equal(t, 3, code)
}

func TestExecute_StderrStreams(t *testing.T) {
	inv, stdout, stderr := invocation(os.Environ())
	step := domain.Step{Argv: []string{"sh", "-c", "echo oops >&2"}}

	code, err := newExecutor().Execute(context.Background(), step, inv)

	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Empty(t, stdout.String())
	assert.Equal(t, "oops\n", stderr.String())
}

func TestExecute_ArgvExpansion(t *testing.T) {
	inv, stdout, _ := invocation(append(os.Environ(), "NAME=world"))
	step := domain.Step{Argv: []string{"echo", "${NAME}"}}

	code, err := newExecutor().Execute(context.Background(), step, inv)

	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Equal(t, "world\n", stdout.String())
}

func TestExecute_EnvReachesChild(t *testing.T) {
	inv, stdout, _ := invocation(append(os.Environ(), "NAME=child"))
	step := domain.Step{Argv: []string{"sh", "-c", "echo $NAME"}}

	code, err := newExecutor().Execute(context.Background(), step, inv)

	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Equal(t, "child\n", stdout.String())
}

func TestExecute_StepDirRelativeToUnitDir(t *testing.T) {
	unitDir := t.TempDir()
	sub := filepath.Join(unitDir, "sub")
	require.NoError(t, os.MkdirAll(sub, 0o750))

	var stdout bytes.Buffer
	inv := ports.StepInvocation{
		Env:    os.Environ(),
		Dir:    unitDir,
		Stdout: &stdout,
		Stderr: &bytes.Buffer{},
	}
	step := domain.Step{Argv: []string{"sh", "-c", "pwd"}, Dir: "sub"}

	code, err := newExecutor().Execute(context.Background(), step, inv)

	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Equal(t, sub+"\n", stdout.String())
}

func TestExecute_SpawnFailure(t *testing.T) {
	inv, _, _ := invocation(os.Environ())
	step := domain.Step{Argv: []string{"definitely-not-on-path-anywhere"}}

	code, err := newExecutor().Execute(context.Background(), step, inv)

	require.Error(t, err)
	assert.Equal(t, shell.ExitCodeSpawnFailure, code)
}

func TestExecute_EmptyArgv(t *testing.T) {
	inv, _, _ := invocation(os.Environ())

	_, err := newExecutor().Execute(context.Background(), domain.Step{}, inv)
	require.Error(t, err)
}
