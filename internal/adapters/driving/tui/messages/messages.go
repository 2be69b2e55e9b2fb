// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/cliprelay/internal/core/domain"
)

// OutcomeReceived carries an outcome reported by the dispatcher.
type OutcomeReceived struct {
	Outcome domain.Outcome
}

// HistoryLoaded carries recorded outcomes and their stats.
type HistoryLoaded struct {
	Outcomes []domain.Outcome
	Stats    domain.DeliveryStats
	Err      error
}

// Tick refreshes values that are polled, such as the queue depth.
type Tick struct{}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMonitor lists outcomes as they arrive.
	ViewMonitor ViewType = iota
	// ViewDetail shows one outcome.
	ViewDetail
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMonitor:
		return "monitor"
	case ViewDetail:
		return "detail"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
