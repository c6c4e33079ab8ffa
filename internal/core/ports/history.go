package ports

import "github.com/masonbuild/mason/internal/core/domain"

// HistoryStore defines the interface for recording and retrieving run
// outcomes.
//
//go:generate go run go.uber.org/mock/mockgen -source=history.go -destination=mocks/mock_history.go -package=mocks
type HistoryStore interface {
	// Get retrieves the last recorded run for the target, along with
	// whether the record predates the target's current definition.
	// Returns a nil record if none exists.
	Get(target *domain.Target) (record *domain.RunRecord, stale bool, err error)

	// Record stores the outcome of a target run, replacing any previous
	// record for the same target. The store derives the definition
	// fingerprint and timestamp itself.
	Record(target *domain.Target, result domain.RunResult) error
}

// HistoryOpener opens the run history store for a workspace root. The store
// location depends on where configuration discovery lands, so it cannot be
// opened before the workspace is loaded.
type HistoryOpener func(root string) (HistoryStore, error)
