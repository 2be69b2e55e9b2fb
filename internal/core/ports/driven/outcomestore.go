package driven

import (
	"context"

	"github.com/custodia-labs/cliprelay/internal/core/domain"
)

// OutcomeStore keeps a bounded history of relay outcomes.
// It stores metadata only, never clipboard payloads.
type OutcomeStore interface {
	// Record appends an outcome.
	Record(ctx context.Context, outcome domain.Outcome) error

	// Recent returns up to limit outcomes, most recent first.
	Recent(ctx context.Context, limit int) ([]domain.Outcome, error)

	// Get retrieves an outcome by ID.
	// Returns domain.ErrNotFound if it does not exist.
	Get(ctx context.Context, id string) (*domain.Outcome, error)

	// Stats aggregates every stored outcome.
	Stats(ctx context.Context) (domain.DeliveryStats, error)

	// Prune removes all but the most recent keep outcomes.
	Prune(ctx context.Context, keep int) error
}
