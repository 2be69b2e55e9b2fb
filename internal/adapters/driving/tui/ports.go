// Package tui provides a live delivery monitor for cliprelay.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/cliprelay/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// History provides recorded outcomes and stats.
	History driving.HistoryService

	// Dispatcher reports queue depth. Optional.
	Dispatcher driving.Dispatcher
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.History == nil {
		return ErrMissingHistoryService
	}
	return nil
}
