package driving

import (
	"context"

	"github.com/custodia-labs/cliprelay/internal/core/domain"
)

// HistoryService exposes recorded relay outcomes.
type HistoryService interface {
	// Recent returns up to limit outcomes, most recent first.
	Recent(ctx context.Context, limit int) ([]domain.Outcome, error)

	// Get returns one outcome by ID.
	Get(ctx context.Context, id string) (*domain.Outcome, error)

	// Stats aggregates recorded outcomes.
	Stats(ctx context.Context) (domain.DeliveryStats, error)
}
