package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/masonbuild/mason/internal/adapters/config"
	"github.com/masonbuild/mason/internal/adapters/report"
	"github.com/masonbuild/mason/internal/app"
	"github.com/masonbuild/mason/internal/build"
	"github.com/masonbuild/mason/internal/core/domain"
	"github.com/masonbuild/mason/internal/core/ports"
	"github.com/masonbuild/mason/internal/core/ports/mocks"
	"github.com/masonbuild/mason/internal/engine/runner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type noopLogger struct{}

func (noopLogger) Info(string) {}
func (noopLogger) Warn(string) {}
func (noopLogger) Error(error) {}

func newTestCLI(t *testing.T, executor ports.Executor) (*CLI, *bytes.Buffer) {
	t.Helper()
	logger := noopLogger{}
	reporters := func(bool) ports.Reporter {
		return report.NewConsoleWriters(&bytes.Buffer{}, &bytes.Buffer{})
	}
	openHistory := func(string) (ports.HistoryStore, error) { return nil, nil }
	a := app.New(config.NewLoader(logger), runner.NewRunner(executor, logger), logger, reporters, openHistory)

	c := New(a)
	var out bytes.Buffer
	c.rootCmd.SetOut(&out)
	c.rootCmd.SetErr(&out)
	return c, &out
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), config.UnitFilename)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestVersionCommand(t *testing.T) {
	ctrl := gomock.NewController(t)
	c, out := newTestCLI(t, mocks.NewMockExecutor(ctrl))

	c.SetArgs([]string{"version"})
	require.NoError(t, c.Execute(context.Background()))
	assert.Equal(t, build.Version+"\n", out.String())
}

func TestRootRunsDefaultTarget(t *testing.T) {
	ctrl := gomock.NewController(t)
	executor := mocks.NewMockExecutor(ctrl)
	c, _ := newTestCLI(t, executor)

	path := writeConfig(t, `
version: "1"
default: build
targets:
  build:
    steps:
      - cmd: ["python", "setup.py", "develop"]
`)

	executor.EXPECT().
		Execute(gomock.Any(), domain.Step{Argv: []string{"python", "setup.py", "develop"}}, gomock.Any()).
		Return(0, nil)

	c.SetArgs([]string{"-c", path})
	require.NoError(t, c.Execute(context.Background()))
}

func TestRunCommand(t *testing.T) {
	ctrl := gomock.NewController(t)
	executor := mocks.NewMockExecutor(ctrl)
	c, _ := newTestCLI(t, executor)

	path := writeConfig(t, `
version: "1"
targets:
  clean:
    steps:
      - cmd: ["rm", "-rf", "build"]
`)

	executor.EXPECT().
		Execute(gomock.Any(), domain.Step{Argv: []string{"rm", "-rf", "build"}}, gomock.Any()).
		Return(0, nil)

	c.SetArgs([]string{"run", "clean", "-c", path})
	require.NoError(t, c.Execute(context.Background()))
}

func TestTargetsCommand(t *testing.T) {
	ctrl := gomock.NewController(t)
	c, out := newTestCLI(t, mocks.NewMockExecutor(ctrl))

	path := writeConfig(t, `
version: "1"
targets:
  clean:
    description: Remove build artifacts
    steps:
      - cmd: ["rm", "-rf", "build"]
`)

	c.SetArgs([]string{"targets", "-c", path})
	require.NoError(t, c.Execute(context.Background()))

	assert.Contains(t, out.String(), "clean")
	assert.Contains(t, out.String(), "never run")
	assert.Contains(t, out.String(), "Remove build artifacts")
}
