package driving

import (
	"context"

	"github.com/custodia-labs/cliprelay/internal/core/domain"
)

// Relay runs the capture, decide, encode and upload pipeline for one item.
type Relay interface {
	// Process handles one clipboard item synchronously.
	// It never returns an error: failures are reported in the outcome.
	Process(ctx context.Context, item *domain.ClipboardItem) domain.Outcome

	// Stats returns counters for invocations handled by this process.
	Stats() domain.DeliveryStats
}

// Dispatcher hands items to the relay without blocking the caller.
type Dispatcher interface {
	// Start runs the worker loop. It blocks until Stop is called or ctx ends.
	Start(ctx context.Context) error

	// Stop stops accepting items and waits for the in-flight item to finish.
	Stop() error

	// Submit enqueues an item. It returns domain.ErrQueueFull when the
	// queue is at capacity and domain.ErrDispatcherStopped when not running.
	Submit(item *domain.ClipboardItem) error

	// Pending returns the number of queued items.
	Pending() int
}
