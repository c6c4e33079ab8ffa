package report

import (
	"context"

	"github.com/grindlemire/graft"
	rockreport "github.com/masonbuild/mason/internal/adapters/report/progrock"
	"github.com/masonbuild/mason/internal/core/ports"
)

const NodeID graft.ID = "adapter.reporter"

func init() {
	graft.Register(graft.Node[ports.ReporterFactory]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.ReporterFactory, error) {
			return func(tui bool) ports.Reporter {
				if tui {
					return rockreport.New()
				}
				return NewConsole()
			}, nil
		},
	})
}
