package mcp

import (
	"github.com/custodia-labs/cliprelay/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Relay runs items through the upload pipeline.
	Relay driving.Relay

	// History exposes recorded outcomes.
	History driving.HistoryService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Relay == nil {
		return ErrMissingRelay
	}
	// History is optional; without it the history tool reports process stats only
	return nil
}
