package driven

import (
	"context"

	"github.com/custodia-labs/cliprelay/internal/core/domain"
)

// ClipboardHost reads the current clipboard item from the host environment.
// Reads must not change the clipboard.
type ClipboardHost interface {
	// CurrentItem returns the most recent clipboard item.
	CurrentItem(ctx context.Context) (*domain.ClipboardItem, error)
}
