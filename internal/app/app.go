// Package app implements the application layer for mason: the workspace
// coordinator that turns an invocation into target runs.
package app

import (
	"context"
	"strings"

	"github.com/masonbuild/mason/internal/core/domain"
	"github.com/masonbuild/mason/internal/core/ports"
	"github.com/masonbuild/mason/internal/engine/runner"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	loader    ports.ConfigLoader
	runner    *runner.Runner
	logger    ports.Logger
	reporters ports.ReporterFactory
	history   ports.HistoryOpener
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	r *runner.Runner,
	logger ports.Logger,
	reporters ports.ReporterFactory,
	history ports.HistoryOpener,
) *App {
	return &App{
		loader:    loader,
		runner:    r,
		logger:    logger,
		reporters: reporters,
		history:   history,
	}
}

// RunOptions carries per-invocation settings.
type RunOptions struct {
	// ConfigPath is an explicit configuration file; empty means upward
	// discovery from the working directory.
	ConfigPath string
	// TUI selects the progrock reporter instead of raw passthrough.
	TUI bool
}

// Run parses the invocation arguments into target names and key=value
// overrides, then executes the targets in order as a fail-fast aggregate
// run. With no target names the workspace's default target runs.
func (a *App) Run(ctx context.Context, args []string, opts RunOptions) error {
	ws, err := a.load(opts)
	if err != nil {
		return err
	}

	names, overrides := splitArgs(args)
	targets := make([]domain.InternedString, 0, max(len(names), 1))
	if len(names) == 0 {
		if ws.Default == (domain.InternedString{}) {
			return domain.ErrNoDefaultTarget
		}
		targets = append(targets, ws.Default)
	}
	for _, name := range names {
		targets = append(targets, domain.NewInternedString(name))
	}

	// Resolve every listed target up front: an undeclared name anywhere in
	// the aggregate must fail before a single process is spawned.
	plan := make([]string, len(targets))
	for i, t := range targets {
		if _, err := ws.Graph.Resolve(t); err != nil {
			return err
		}
		plan[i] = t.String()
	}

	hist := a.openHistory(ws.Root)

	rep := a.reporters(opts.TUI)
	defer func() {
		if err := rep.Close(); err != nil {
			a.logger.Warn("failed to close reporter: " + err.Error())
		}
	}()
	rep.Begin(plan)

	for _, t := range targets {
		if _, err := a.runner.Run(ctx, ws, rep, hist, t, overrides); err != nil {
			// Fail-fast: later targets of the aggregate never run.
			return zerr.With(err, "failed_target", t.String())
		}
	}
	return nil
}

// TargetInfo describes a declared target for listings.
type TargetInfo struct {
	Name        string
	Description string
	// LastRun is the last recorded outcome, nil if the target never ran.
	LastRun *domain.RunRecord
	// Stale reports that the last outcome predates the current definition.
	Stale bool
}

// Targets returns the declared targets in a valid execution order, joined
// with their recorded history.
func (a *App) Targets(opts RunOptions) ([]TargetInfo, error) {
	ws, err := a.load(opts)
	if err != nil {
		return nil, err
	}

	hist := a.openHistory(ws.Root)

	infos := make([]TargetInfo, 0, ws.Graph.TargetCount())
	for target := range ws.Graph.Walk() {
		info := TargetInfo{
			Name:        target.Name.String(),
			Description: target.Description,
		}
		if hist != nil {
			record, stale, err := hist.Get(&target)
			if err != nil {
				return nil, err
			}
			info.LastRun = record
			info.Stale = stale
		}
		infos = append(infos, info)
	}
	return infos, nil
}

func (a *App) load(opts RunOptions) (*domain.Workspace, error) {
	var (
		ws  *domain.Workspace
		err error
	)
	if opts.ConfigPath != "" {
		ws, err = a.loader.LoadFile(opts.ConfigPath)
	} else {
		ws, err = a.loader.Load(".")
	}
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}
	return ws, nil
}

// openHistory opens the run history store. History is best-effort; an
// unreadable store degrades to no recording rather than blocking the run.
func (a *App) openHistory(root string) ports.HistoryStore {
	hist, err := a.history(root)
	if err != nil {
		a.logger.Warn("run history unavailable: " + err.Error())
		return nil
	}
	return hist
}

// splitArgs partitions invocation arguments into target names and KEY=VALUE
// variable overrides.
func splitArgs(args []string) ([]string, map[string]string) {
	var names []string
	overrides := make(map[string]string)
	for _, arg := range args {
		if k, v, ok := strings.Cut(arg, "="); ok && k != "" {
			overrides[k] = v
			continue
		}
		names = append(names, arg)
	}
	return names, overrides
}
