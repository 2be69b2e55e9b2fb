package services

import (
	"context"

	"github.com/custodia-labs/cliprelay/internal/core/domain"
	"github.com/custodia-labs/cliprelay/internal/core/ports/driven"
	"github.com/custodia-labs/cliprelay/internal/core/ports/driving"
)

// Ensure HistoryService implements the interface.
var _ driving.HistoryService = (*HistoryService)(nil)

// defaultHistoryLimit is used when callers pass a non-positive limit.
const defaultHistoryLimit = 20

// HistoryService reads outcomes recorded by the relay.
type HistoryService struct {
	store driven.OutcomeStore
}

// NewHistoryService creates a history service. store may be nil, in which
// case the history is always empty.
func NewHistoryService(store driven.OutcomeStore) *HistoryService {
	return &HistoryService{store: store}
}

// Recent returns up to limit outcomes, most recent first.
func (s *HistoryService) Recent(ctx context.Context, limit int) ([]domain.Outcome, error) {
	if s.store == nil {
		return []domain.Outcome{}, nil
	}
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	return s.store.Recent(ctx, limit)
}

// Get returns one outcome by ID.
func (s *HistoryService) Get(ctx context.Context, id string) (*domain.Outcome, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	if s.store == nil {
		return nil, domain.ErrNotFound
	}
	return s.store.Get(ctx, id)
}

// Stats aggregates recorded outcomes.
func (s *HistoryService) Stats(ctx context.Context) (domain.DeliveryStats, error) {
	if s.store == nil {
		return domain.DeliveryStats{}, nil
	}
	return s.store.Stats(ctx)
}
