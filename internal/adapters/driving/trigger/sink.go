package trigger

import (
	"github.com/custodia-labs/cliprelay/internal/core/domain"
	"github.com/custodia-labs/cliprelay/internal/core/ports/driving"
	"github.com/custodia-labs/cliprelay/internal/logger"
)

// Sink receives items produced by a trigger. It must not block for long.
type Sink func(item *domain.ClipboardItem)

// SubmitTo returns a sink that hands items to a dispatcher.
// Rejected items are logged and dropped.
func SubmitTo(d driving.Dispatcher) Sink {
	return func(item *domain.ClipboardItem) {
		if err := d.Submit(item); err != nil {
			logger.Warn("trigger: item not queued: %v", err)
		}
	}
}
