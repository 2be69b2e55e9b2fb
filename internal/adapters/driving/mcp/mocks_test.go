package mcp

import (
	"context"

	"github.com/custodia-labs/cliprelay/internal/core/domain"
)

// mockRelay is a mock implementation of driving.Relay.
type mockRelay struct {
	outcome domain.Outcome
	items   []*domain.ClipboardItem
	stats   domain.DeliveryStats
}

func (m *mockRelay) Process(_ context.Context, item *domain.ClipboardItem) domain.Outcome {
	m.items = append(m.items, item)
	return m.outcome
}

func (m *mockRelay) Stats() domain.DeliveryStats {
	return m.stats
}

// mockHistoryService is a mock implementation of driving.HistoryService.
type mockHistoryService struct {
	outcomes  []domain.Outcome
	stats     domain.DeliveryStats
	err       error
	lastLimit int
}

func (m *mockHistoryService) Recent(_ context.Context, limit int) ([]domain.Outcome, error) {
	m.lastLimit = limit
	return m.outcomes, m.err
}

func (m *mockHistoryService) Get(_ context.Context, id string) (*domain.Outcome, error) {
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.outcomes {
		if m.outcomes[i].ID == id {
			return &m.outcomes[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockHistoryService) Stats(_ context.Context) (domain.DeliveryStats, error) {
	return m.stats, m.err
}
