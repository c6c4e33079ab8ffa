package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/masonbuild/mason/internal/adapters/config"
	"github.com/masonbuild/mason/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func newLoader() *config.Loader {
	return config.NewLoader(noopLogger{})
}

type noopLogger struct{}

func (noopLogger) Info(string) {}
func (noopLogger) Warn(string) {}
func (noopLogger) Error(error) {}

func TestLoadFile_Unit(t *testing.T) {
	content := `
version: "1"
default: build
vars:
  PY: python3
targets:
  clean:
    steps:
      - cmd: ["rm", "-rf", "build"]
  build:
    description: Build the unit in development mode
    deps: [clean]
    steps:
      - cmd: ["${PY}", "setup.py", "develop"]
`
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, config.UnitFilename)
	writeFile(t, path, content)

	ws, err := newLoader().LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "build", ws.Default.String())

	build, err := ws.Graph.Resolve(domain.NewInternedString("build"))
	require.NoError(t, err)
	require.Len(t, build.Prereqs, 1)
	assert.Equal(t, "clean", build.Prereqs[0].String())
	require.Len(t, build.Steps, 1)
	assert.Equal(t, []string{"${PY}", "setup.py", "develop"}, build.Steps[0].Argv)

	// Unit vars and the builtin unit dir binding fold into each target.
	assert.Equal(t, "python3", build.Vars["PY"])
	assert.Equal(t, build.Dir.String(), build.Vars[config.UnitDirVar])
}

func TestLoadFile_TargetVarsDoNotLeakToSiblings(t *testing.T) {
	content := `
version: "1"
targets:
  upload2:
    vars:
      PY: python2
    steps:
      - cmd: ["${PY}", "setup.py", "bdist_wheel"]
  upload3:
    steps:
      - cmd: ["${PY}", "setup.py", "bdist_wheel"]
`
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, config.UnitFilename)
	writeFile(t, path, content)

	ws, err := newLoader().LoadFile(path)
	require.NoError(t, err)

	upload2, err := ws.Graph.Resolve(domain.NewInternedString("upload2"))
	require.NoError(t, err)
	assert.Equal(t, "python2", upload2.Vars["PY"])

	upload3, err := ws.Graph.Resolve(domain.NewInternedString("upload3"))
	require.NoError(t, err)
	_, bound := upload3.Vars["PY"]
	assert.False(t, bound, "sibling target must not see upload2's binding")
}

func TestLoadFile_CycleFailsAtLoadTime(t *testing.T) {
	content := `
version: "1"
targets:
  a:
    deps: [b]
    steps:
      - cmd: ["true"]
  b:
    deps: [a]
    steps:
      - cmd: ["true"]
`
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, config.UnitFilename)
	writeFile(t, path, content)

	_, err := newLoader().LoadFile(path)
	assert.ErrorIs(t, err, domain.ErrCycleDetected)
}

func TestLoadFile_UnknownPrerequisite(t *testing.T) {
	content := `
version: "1"
targets:
  build:
    deps: [ghost]
    steps:
      - cmd: ["true"]
`
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, config.UnitFilename)
	writeFile(t, path, content)

	_, err := newLoader().LoadFile(path)
	assert.ErrorIs(t, err, domain.ErrMissingPrerequisite)
}

func TestLoadFile_InvalidTargetName(t *testing.T) {
	content := `
version: "1"
targets:
  "bad name":
    steps:
      - cmd: ["true"]
`
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, config.UnitFilename)
	writeFile(t, path, content)

	_, err := newLoader().LoadFile(path)
	assert.ErrorIs(t, err, domain.ErrInvalidTargetName)
}

func TestLoadFile_EmptyStep(t *testing.T) {
	content := `
version: "1"
targets:
  build:
    steps:
      - dir: sub
`
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, config.UnitFilename)
	writeFile(t, path, content)

	_, err := newLoader().LoadFile(path)
	assert.ErrorIs(t, err, domain.ErrEmptyStep)
}

func TestLoadFile_UndeclaredDefault(t *testing.T) {
	content := `
version: "1"
default: ghost
targets:
  build:
    steps:
      - cmd: ["true"]
`
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, config.UnitFilename)
	writeFile(t, path, content)

	_, err := newLoader().LoadFile(path)
	assert.ErrorIs(t, err, domain.ErrTargetNotFound)
}

func TestLoadFile_ParseError(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, config.UnitFilename)
	writeFile(t, path, "targets: [not, a, map]")

	_, err := newLoader().LoadFile(path)
	require.Error(t, err)
}

func TestLoad_DiscoversUpward(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, config.UnitFilename), `
version: "1"
targets:
  build:
    steps:
      - cmd: ["true"]
`)
	nested := filepath.Join(tmpDir, "src", "deep")
	require.NoError(t, os.MkdirAll(nested, 0o750))

	ws, err := newLoader().Load(nested)
	require.NoError(t, err)
	_, err = ws.Graph.Resolve(domain.NewInternedString("build"))
	assert.NoError(t, err)
}

func TestLoad_NotFound(t *testing.T) {
	_, err := newLoader().Load(t.TempDir())
	assert.ErrorIs(t, err, domain.ErrConfigNotFound)
}
