package history

import (
	"context"
	"path/filepath"

	"github.com/grindlemire/graft"
	"github.com/masonbuild/mason/internal/core/ports"
)

const NodeID graft.ID = "adapter.history"

// Open opens the history store under the given workspace root.
func Open(root string) (ports.HistoryStore, error) {
	return NewStore(filepath.Join(root, DefaultPath))
}

func init() {
	graft.Register(graft.Node[ports.HistoryOpener]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.HistoryOpener, error) {
			return Open, nil
		},
	})
}
