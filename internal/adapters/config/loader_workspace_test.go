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

const commonUnit = `
version: "1"
targets:
  clean:
    steps:
      - cmd: ["rm", "-rf", "build"]
  build:
    deps: [clean]
    steps:
      - cmd: ["python", "setup.py", "develop"]
`

const serverUnit = `
version: "1"
targets:
  build:
    deps: ["common:build"]
    steps:
      - cmd: ["python", "setup.py", "develop"]
  run-tests:
    deps: [build]
    steps:
      - cmd: ["pytest"]
`

func writeWorkspace(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, config.WorkspaceFilename), `
version: "1"
default: "server:run-tests"
vars:
  BASE_DIR: /opt/tools
units:
  - common
  - server
`)
	writeFile(t, filepath.Join(tmpDir, "common", config.UnitFilename), commonUnit)
	writeFile(t, filepath.Join(tmpDir, "server", config.UnitFilename), serverUnit)
	return tmpDir
}

func TestLoad_Workspace(t *testing.T) {
	tmpDir := writeWorkspace(t)

	ws, err := newLoader().Load(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "server:run-tests", ws.Default.String())
	assert.Equal(t, "/opt/tools", ws.Vars["BASE_DIR"])
	assert.Equal(t, 4, ws.Graph.TargetCount())

	// Unqualified deps resolve within the declaring unit; qualified deps
	// cross units.
	serverBuild, err := ws.Graph.Resolve(domain.NewInternedString("server:build"))
	require.NoError(t, err)
	require.Len(t, serverBuild.Prereqs, 1)
	assert.Equal(t, "common:build", serverBuild.Prereqs[0].String())

	commonBuild, err := ws.Graph.Resolve(domain.NewInternedString("common:build"))
	require.NoError(t, err)
	require.Len(t, commonBuild.Prereqs, 1)
	assert.Equal(t, "common:clean", commonBuild.Prereqs[0].String())
	assert.Equal(t, filepath.Join(tmpDir, "common"), commonBuild.Dir.String())
}

func TestLoad_Workspace_PrecedenceOverUnitFile(t *testing.T) {
	tmpDir := writeWorkspace(t)
	// A stray unit file next to the workspace file must lose.
	writeFile(t, filepath.Join(tmpDir, config.UnitFilename), commonUnit)

	ws, err := newLoader().Load(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, 4, ws.Graph.TargetCount())
}

func TestLoad_Workspace_DuplicateUnit(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, config.WorkspaceFilename), `
version: "1"
units:
  - common
  - common
`)
	writeFile(t, filepath.Join(tmpDir, "common", config.UnitFilename), commonUnit)

	_, err := newLoader().Load(tmpDir)
	assert.ErrorIs(t, err, domain.ErrDuplicateUnitName)
}

func TestLoad_Workspace_MissingUnitFile(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, config.WorkspaceFilename), `
version: "1"
units:
  - common
`)
	require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, "common"), 0o750))

	_, err := newLoader().Load(tmpDir)
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrConfigReadFailed.Error())
}

func TestLoad_Workspace_CrossUnitCycle(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, config.WorkspaceFilename), `
version: "1"
units:
  - a
  - b
`)
	writeFile(t, filepath.Join(tmpDir, "a", config.UnitFilename), `
version: "1"
targets:
  build:
    deps: ["b:build"]
    steps:
      - cmd: ["true"]
`)
	writeFile(t, filepath.Join(tmpDir, "b", config.UnitFilename), `
version: "1"
targets:
  build:
    deps: ["a:build"]
    steps:
      - cmd: ["true"]
`)

	_, err := newLoader().Load(tmpDir)
	assert.ErrorIs(t, err, domain.ErrCycleDetected)
}
