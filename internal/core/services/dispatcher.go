package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/custodia-labs/cliprelay/internal/core/domain"
	"github.com/custodia-labs/cliprelay/internal/core/ports/driving"
	"github.com/custodia-labs/cliprelay/internal/logger"
)

// Ensure DispatchService implements the interface.
var _ driving.Dispatcher = (*DispatchService)(nil)

// DispatchService feeds clipboard items to a relay from a bounded queue.
// A single worker processes items in submission order, so uploads never overlap.
type DispatchService struct {
	relay driving.Relay
	queue chan *domain.ClipboardItem

	mu        sync.Mutex
	running   bool
	closed    bool
	stopCh    chan struct{}
	wg        sync.WaitGroup
	onOutcome func(domain.Outcome)
}

// NewDispatchService creates a dispatcher with room for queueSize pending items.
func NewDispatchService(relay driving.Relay, queueSize int) *DispatchService {
	if queueSize <= 0 {
		queueSize = 1
	}
	return &DispatchService{
		relay:  relay,
		queue:  make(chan *domain.ClipboardItem, queueSize),
		stopCh: make(chan struct{}),
	}
}

// OnOutcome registers a callback run after every processed item.
// It must be set before Start.
func (d *DispatchService) OnOutcome(fn func(domain.Outcome)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.onOutcome = fn
}

// Start runs the worker loop. This method blocks until Stop is called.
func (d *DispatchService) Start(ctx context.Context) error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return domain.ErrDispatcherStopped
	}
	if d.running {
		d.mu.Unlock()
		return nil // Already running
	}
	d.running = true
	d.wg.Add(1)
	d.mu.Unlock()

	defer d.wg.Done()

	for {
		select {
		case <-ctx.Done():
			d.markStopped()
			return ctx.Err()
		case <-d.stopCh:
			return nil
		case item := <-d.queue:
			d.handle(ctx, item)
		}
	}
}

// Stop stops accepting items and waits for the in-flight item to finish.
// Items still queued are dropped.
func (d *DispatchService) Stop() error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil
	}
	d.closed = true
	d.running = false
	close(d.stopCh)
	d.mu.Unlock()

	d.wg.Wait()

	if dropped := len(d.queue); dropped > 0 {
		logger.Warn("dispatch: dropped %d queued items on stop", dropped)
	}
	return nil
}

// Submit enqueues an item without blocking.
func (d *DispatchService) Submit(item *domain.ClipboardItem) error {
	if item == nil {
		return domain.ErrInvalidInput
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return domain.ErrDispatcherStopped
	}

	select {
	case d.queue <- item:
		logger.Debug("dispatch: queued item with %d formats (%d pending)", item.Len(), len(d.queue))
		return nil
	default:
		logger.Error("dispatch: queue full, dropping item with %d formats", item.Len())
		return domain.ErrQueueFull
	}
}

// Pending returns the number of queued items.
func (d *DispatchService) Pending() int {
	return len(d.queue)
}

func (d *DispatchService) markStopped() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.running = false
	d.closed = true
}

// handle processes one item. A panic fails only this item.
func (d *DispatchService) handle(ctx context.Context, item *domain.ClipboardItem) {
	started := time.Now()
	var out domain.Outcome

	func() {
		defer func() {
			if r := recover(); r != nil {
				out = domain.Outcome{
					Status:    domain.OutcomeFailed,
					Reason:    domain.ReasonDispatchPanic,
					Error:     fmt.Sprintf("panic: %v", r),
					StartedAt: started,
					Duration:  time.Since(started),
				}
				logger.Error("dispatch: recovered from panic: %v", r)
			}
		}()
		out = d.relay.Process(ctx, item)
	}()

	d.mu.Lock()
	cb := d.onOutcome
	d.mu.Unlock()
	if cb != nil {
		cb(out)
	}
}
