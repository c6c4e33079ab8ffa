package app

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/masonbuild/mason/internal/adapters/config"  //nolint:depguard // Wired in app layer
	"github.com/masonbuild/mason/internal/adapters/history" //nolint:depguard // Wired in app layer
	"github.com/masonbuild/mason/internal/adapters/logger"  //nolint:depguard // Wired in app layer
	"github.com/masonbuild/mason/internal/adapters/report"  //nolint:depguard // Wired in app layer
	"github.com/masonbuild/mason/internal/core/ports"
	"github.com/masonbuild/mason/internal/engine/runner"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			runner.NodeID,
			logger.NodeID,
			report.NodeID,
			history.NodeID,
		},
		Run: func(ctx context.Context) (*App, error) {
			loader, err := graft.Dep[ports.ConfigLoader](ctx)
			if err != nil {
				return nil, err
			}

			r, err := graft.Dep[*runner.Runner](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			reporters, err := graft.Dep[ports.ReporterFactory](ctx)
			if err != nil {
				return nil, err
			}

			opener, err := graft.Dep[ports.HistoryOpener](ctx)
			if err != nil {
				return nil, err
			}

			return New(loader, r, log, reporters, opener), nil
		},
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			application, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return &Components{
				App:    application,
				Logger: log,
			}, nil
		},
	})
}

// Components contains the initialized application components needed by the
// CLI layer.
type Components struct {
	App    *App
	Logger ports.Logger
}
