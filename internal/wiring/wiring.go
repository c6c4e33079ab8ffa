// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "github.com/masonbuild/mason/internal/adapters/config"
	_ "github.com/masonbuild/mason/internal/adapters/history"
	_ "github.com/masonbuild/mason/internal/adapters/logger"
	_ "github.com/masonbuild/mason/internal/adapters/report"
	_ "github.com/masonbuild/mason/internal/adapters/shell"
	// Register app and engine nodes.
	_ "github.com/masonbuild/mason/internal/app"
	_ "github.com/masonbuild/mason/internal/engine/runner"
)
