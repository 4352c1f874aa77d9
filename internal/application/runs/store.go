// Package runs keeps completed generation runs in memory for the lifetime of
// the process.  Nothing is persisted across restarts; the store exists so the
// HTTP layer can serve follow-up requests (CSV download, per-molecule images)
// against a finished run.
package runs

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/turtacn/molforge/pkg/errors"
	mtypes "github.com/turtacn/molforge/pkg/types/molecule"
)

// maxRuns bounds the number of retained runs; the oldest run is evicted
// first.
const maxRuns = 64

// Run is one completed generation run.
type Run struct {
	ID        string             `json:"run_id"`
	CreatedAt time.Time          `json:"created_at"`
	Requested int                `json:"requested"`
	Molecules []mtypes.RecordDTO `json:"molecules"`
}

// Generated returns the number of accepted molecules.
func (r *Run) Generated() int { return len(r.Molecules) }

// Store is a concurrency-safe in-memory run registry.
type Store struct {
	mu    sync.RWMutex
	runs  map[string]*Run
	order []string
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{runs: make(map[string]*Run)}
}

// Save registers a completed run under a fresh identifier and returns it.
func (s *Store) Save(requested int, molecules []mtypes.RecordDTO) *Run {
	run := &Run{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Requested: requested,
		Molecules: molecules,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.runs[run.ID] = run
	s.order = append(s.order, run.ID)
	for len(s.order) > maxRuns {
		delete(s.runs, s.order[0])
		s.order = s.order[1:]
	}
	return run
}

// Get returns the run with the given identifier.
func (s *Store) Get(runID string) (*Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	run, ok := s.runs[runID]
	if !ok {
		return nil, errors.New(errors.ErrCodeRunNotFound,
			fmt.Sprintf("run %q not found", runID))
	}
	return run, nil
}

// Molecule returns one record of a run by its ordinal identifier.
func (s *Store) Molecule(runID, moleculeID string) (mtypes.RecordDTO, error) {
	run, err := s.Get(runID)
	if err != nil {
		return mtypes.RecordDTO{}, err
	}
	for _, rec := range run.Molecules {
		if rec.ID == moleculeID {
			return rec, nil
		}
	}
	return mtypes.RecordDTO{}, errors.New(errors.ErrCodeMoleculeNotFound,
		fmt.Sprintf("molecule %q not found in run %q", moleculeID, runID))
}

// Len returns the number of retained runs.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.runs)
}
