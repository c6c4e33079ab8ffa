// Package config provides the configuration loader for mason.
package config

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/masonbuild/mason/internal/core/domain"
	"github.com/masonbuild/mason/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

const (
	// UnitFilename is the per-unit configuration file name.
	UnitFilename = "mason.yaml"
	// WorkspaceFilename is the workspace configuration file name. When both
	// files exist in a directory the workspace file wins.
	WorkspaceFilename = "mason.work.yaml"

	// UnitDirVar is the builtin binding holding the absolute unit
	// directory, available to every step of the unit.
	UnitDirVar = "MASON_UNIT_DIR"
)

var nameRe = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// Loader implements ports.ConfigLoader for YAML unit and workspace files.
type Loader struct {
	logger ports.Logger
}

// NewLoader creates a new Loader.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{logger: logger}
}

// Load discovers the configuration by walking upward from cwd and returns
// the validated workspace.
func (l *Loader) Load(cwd string) (*domain.Workspace, error) {
	dir, err := filepath.Abs(cwd)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to resolve working directory")
	}

	for {
		workPath := filepath.Join(dir, WorkspaceFilename)
		if _, err := os.Stat(workPath); err == nil {
			return l.LoadFile(workPath)
		}
		unitPath := filepath.Join(dir, UnitFilename)
		if _, err := os.Stat(unitPath); err == nil {
			return l.LoadFile(unitPath)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, zerr.With(zerr.Wrap(domain.ErrConfigNotFound, "configuration discovery failed"), "cwd", cwd)
		}
		dir = parent
	}
}

// LoadFile reads the configuration file at the given path. Workspace files
// are recognized by name; anything else is treated as a unit file.
func (l *Loader) LoadFile(path string) (*domain.Workspace, error) {
	if filepath.Base(path) == WorkspaceFilename {
		return l.loadWorkspace(path)
	}
	return l.loadUnit(path)
}

// loadUnit loads a single-unit workspace from a mason.yaml file. Target
// names stay unqualified.
func (l *Loader) loadUnit(path string) (*domain.Workspace, error) {
	uf, err := readUnitfile(path)
	if err != nil {
		return nil, err
	}

	unitDir, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, zerr.Wrap(err, "failed to resolve unit directory")
	}

	g := domain.NewGraph()
	if err := addUnitTargets(g, "", unitDir, uf); err != nil {
		return nil, err
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}

	ws := &domain.Workspace{
		Root:  unitDir,
		Graph: g,
	}
	if uf.Default != "" {
		ws.Default = domain.NewInternedString(uf.Default)
		if _, err := g.Resolve(ws.Default); err != nil {
			return nil, zerr.Wrap(err, "default target is not declared")
		}
	}
	return ws, nil
}

// loadWorkspace loads a multi-unit workspace. Each unit's mason.yaml is
// read concurrently; target names are qualified as "unit:target" and deps
// may reference other units by qualified name.
func (l *Loader) loadWorkspace(path string) (*domain.Workspace, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	var wf Workfile
	if err := yaml.Unmarshal(data, &wf); err != nil {
		return nil, zerr.Wrap(err, domain.ErrConfigParseFailed.Error())
	}

	root, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, zerr.Wrap(err, "failed to resolve workspace root")
	}

	type unit struct {
		name string
		dir  string
		file *Unitfile
	}
	units := make([]unit, len(wf.Units))

	seen := make(map[string]bool, len(wf.Units))
	for i, rel := range wf.Units {
		name := filepath.Base(filepath.Clean(rel))
		if !nameRe.MatchString(name) {
			return nil, zerr.With(zerr.Wrap(domain.ErrInvalidUnitName, "invalid workspace file"), "unit", name)
		}
		if seen[name] {
			return nil, zerr.With(zerr.Wrap(domain.ErrDuplicateUnitName, "invalid workspace file"), "unit", name)
		}
		seen[name] = true
		units[i] = unit{name: name, dir: filepath.Join(root, rel)}
	}

	// Unit files are independent of each other; reading them is the only
	// concurrent part of the orchestrator. Execution stays sequential.
	var g errgroup.Group
	for i := range units {
		g.Go(func() error {
			uf, err := readUnitfile(filepath.Join(units[i].dir, UnitFilename))
			if err != nil {
				return zerr.With(err, "unit", units[i].name)
			}
			units[i].file = uf
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	graph := domain.NewGraph()
	for _, u := range units {
		if err := addUnitTargets(graph, u.name, u.dir, u.file); err != nil {
			return nil, err
		}
	}
	if err := graph.Validate(); err != nil {
		return nil, err
	}

	ws := &domain.Workspace{
		Root:  root,
		Vars:  wf.Vars,
		Graph: graph,
	}
	if wf.Default != "" {
		ws.Default = domain.NewInternedString(wf.Default)
		if _, err := graph.Resolve(ws.Default); err != nil {
			return nil, zerr.Wrap(err, "default target is not declared")
		}
	}
	return ws, nil
}

func readUnitfile(path string) (*Unitfile, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	var uf Unitfile
	if err := yaml.Unmarshal(data, &uf); err != nil {
		return nil, zerr.Wrap(err, domain.ErrConfigParseFailed.Error())
	}
	return &uf, nil
}

// addUnitTargets converts a unit file's targets into domain targets and
// adds them to the graph. unitName is empty in single-unit mode.
func addUnitTargets(g *domain.Graph, unitName, unitDir string, uf *Unitfile) error {
	for name, dto := range uf.Targets {
		if !nameRe.MatchString(name) {
			return zerr.With(zerr.Wrap(domain.ErrInvalidTargetName, "invalid unit file"), "target", name)
		}

		steps := make([]domain.Step, len(dto.Steps))
		for i, s := range dto.Steps {
			if len(s.Cmd) == 0 {
				return zerr.With(
					zerr.With(zerr.Wrap(domain.ErrEmptyStep, "invalid unit file"), "target", name),
					"step", i,
				)
			}
			steps[i] = domain.Step{Argv: s.Cmd, Dir: s.Dir}
		}

		prereqs := make([]domain.InternedString, len(dto.Deps))
		for i, dep := range dto.Deps {
			prereqs[i] = domain.NewInternedString(qualify(unitName, dep))
		}

		t := &domain.Target{
			Name:        domain.NewInternedString(qualify(unitName, name)),
			Unit:        domain.NewInternedString(unitName),
			Description: dto.Description,
			Steps:       steps,
			Prereqs:     prereqs,
			Vars:        mergeVars(unitDir, uf.Vars, dto.Vars),
			Dir:         domain.NewInternedString(unitDir),
		}
		if err := g.AddTarget(t); err != nil {
			return err
		}
	}
	return nil
}

// qualify prefixes an unqualified name with the unit name. Already
// qualified names (explicit inter-unit edges) pass through unchanged.
func qualify(unitName, name string) string {
	if unitName == "" || strings.Contains(name, ":") {
		return name
	}
	return unitName + ":" + name
}

// mergeVars folds the unit-scoped bindings and the builtin unit directory
// binding under the target-scoped bindings. The copy is per target, so
// target bindings never leak into siblings.
func mergeVars(unitDir string, unitVars, targetVars map[string]string) map[string]string {
	merged := make(map[string]string, len(unitVars)+len(targetVars)+1)
	merged[UnitDirVar] = unitDir
	for k, v := range unitVars {
		merged[k] = v
	}
	for k, v := range targetVars {
		merged[k] = v
	}
	return merged
}
