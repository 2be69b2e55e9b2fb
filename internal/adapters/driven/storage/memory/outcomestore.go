package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/cliprelay/internal/core/domain"
	"github.com/custodia-labs/cliprelay/internal/core/ports/driven"
)

// Ensure OutcomeStore implements the interface.
var _ driven.OutcomeStore = (*OutcomeStore)(nil)

// OutcomeStore keeps outcomes in insertion order for the life of the process.
type OutcomeStore struct {
	mu       sync.RWMutex
	outcomes []domain.Outcome
}

// NewOutcomeStore creates an empty in-memory outcome store.
func NewOutcomeStore() *OutcomeStore {
	return &OutcomeStore{}
}

// Record appends an outcome. An outcome with an existing ID replaces it.
func (s *OutcomeStore) Record(_ context.Context, outcome domain.Outcome) error {
	if outcome.ID == "" {
		return domain.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.outcomes {
		if s.outcomes[i].ID == outcome.ID {
			s.outcomes[i] = outcome
			return nil
		}
	}
	s.outcomes = append(s.outcomes, outcome)
	return nil
}

// Recent returns up to limit outcomes, most recent first.
// A non-positive limit returns every outcome.
func (s *OutcomeStore) Recent(_ context.Context, limit int) ([]domain.Outcome, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := len(s.outcomes)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]domain.Outcome, 0, n)
	for i := len(s.outcomes) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, s.outcomes[i])
	}
	return out, nil
}

// Get retrieves an outcome by ID.
func (s *OutcomeStore) Get(_ context.Context, id string) (*domain.Outcome, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.outcomes {
		if s.outcomes[i].ID == id {
			o := s.outcomes[i]
			return &o, nil
		}
	}
	return nil, domain.ErrNotFound
}

// Stats aggregates every stored outcome.
func (s *OutcomeStore) Stats(_ context.Context) (domain.DeliveryStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var stats domain.DeliveryStats
	for _, o := range s.outcomes {
		stats.Add(o)
	}
	return stats, nil
}

// Prune removes all but the most recent keep outcomes.
func (s *OutcomeStore) Prune(_ context.Context, keep int) error {
	if keep < 0 {
		return domain.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.outcomes) <= keep {
		return nil
	}
	drop := len(s.outcomes) - keep
	s.outcomes = append([]domain.Outcome(nil), s.outcomes[drop:]...)
	return nil
}
