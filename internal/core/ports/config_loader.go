package ports

import "github.com/masonbuild/mason/internal/core/domain"

// ConfigLoader defines the interface for loading the workspace configuration.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load discovers and reads the configuration starting from the given
	// working directory and returns the validated workspace. Cycles in the
	// prerequisite graph fail here, before anything executes.
	Load(cwd string) (*domain.Workspace, error)

	// LoadFile reads the configuration from an explicit file path.
	LoadFile(path string) (*domain.Workspace, error)
}
