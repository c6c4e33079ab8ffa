// Package history implements the run history store backed by a JSON file.
package history

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/masonbuild/mason/internal/core/domain"
	"go.trai.ch/zerr"
)

// DefaultPath is the history file location relative to the workspace root.
const DefaultPath = ".mason/history.json"

// Store implements ports.HistoryStore using a flat JSON file keyed by
// target name.
type Store struct {
	path  string
	mu    sync.RWMutex
	cache map[string]domain.RunRecord
}

// NewStore creates a new HistoryStore backed by the file at the given path.
func NewStore(path string) (*Store, error) {
	s := &Store{
		path:  filepath.Clean(path),
		cache: make(map[string]domain.RunRecord),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	//nolint:gosec // Path is cleaned and provided by trusted caller
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return zerr.Wrap(err, domain.ErrHistoryReadFailed.Error())
	}

	if len(data) == 0 {
		return nil
	}

	if err := json.Unmarshal(data, &s.cache); err != nil {
		return zerr.Wrap(err, domain.ErrHistoryReadFailed.Error())
	}

	return nil
}

func (s *Store) save() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(s.cache, "", "  ")
	if err != nil {
		return zerr.Wrap(err, domain.ErrHistoryWriteFailed.Error())
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return zerr.Wrap(err, domain.ErrHistoryWriteFailed.Error())
	}

	//nolint:gosec // Path is cleaned and provided by trusted caller
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return zerr.Wrap(err, domain.ErrHistoryWriteFailed.Error())
	}

	return nil
}

// Get retrieves the last recorded run for the target. A record whose
// fingerprint no longer matches the target's current definition is reported
// as stale.
func (s *Store) Get(target *domain.Target) (*domain.RunRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.cache[target.Name.String()]
	if !ok {
		return nil, false, nil
	}
	return &record, record.Fingerprint != Fingerprint(target), nil
}

// Record stores the outcome of a target run, replacing any previous record
// for the target.
func (s *Store) Record(target *domain.Target, result domain.RunResult) error {
	record := domain.RunRecord{
		Target:      target.Name.String(),
		Success:     result.Success,
		ExitCode:    result.ExitCode,
		FailedStep:  result.FailedStep,
		Fingerprint: Fingerprint(target),
		Timestamp:   time.Now(),
	}

	s.mu.Lock()
	s.cache[record.Target] = record
	s.mu.Unlock()

	return s.save()
}
