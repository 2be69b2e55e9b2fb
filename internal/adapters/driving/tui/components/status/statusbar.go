// Package status provides status bar components for the TUI.
package status

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/cliprelay/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/cliprelay/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/cliprelay/internal/core/domain"
)

// State represents the current monitor state for display.
type State string

const (
	StateWatching State = "watching"
	StatePaused   State = "paused"
	StateError    State = "error"
	StateDetail   State = "detail"
)

// Bar displays delivery counters and keybinding hints.
type Bar struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	state   State
	message string
	stats   domain.DeliveryStats
	pending int
	width   int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles: s,
		keymap: km,
		state:  StateWatching,
		width:  80,
	}
}

// Init initialises the status bar.
func (s *Bar) Init() tea.Cmd {
	return nil
}

// Update handles status bar messages.
func (s *Bar) Update(_ tea.Msg) (*Bar, tea.Cmd) {
	// Bar is passive, updated via Set methods
	return s, nil
}

// View renders the status bar.
func (s *Bar) View() string {
	left := s.renderLeft()
	right := s.renderRight()

	padding := s.width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}

	return s.styles.StatusBar.Width(s.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

func (s *Bar) renderLeft() string {
	var state string
	switch s.state {
	case StateError:
		if s.message != "" {
			return s.styles.Error.Render(fmt.Sprintf("Error: %s", s.message))
		}
		return s.styles.Error.Render("Error")
	case StatePaused:
		state = s.styles.Warning.Render("Paused")
	case StateDetail:
		state = s.styles.Normal.Render("Detail")
	case StateWatching:
		state = s.styles.Muted.Render("Watching")
	default:
		state = s.styles.Muted.Render("Watching")
	}

	counts := []string{
		s.styles.Success.Render(fmt.Sprintf("%d sent", s.stats.Sent)),
		s.styles.Warning.Render(fmt.Sprintf("%d skipped", s.stats.Skipped)),
		s.styles.Error.Render(fmt.Sprintf("%d failed", s.stats.Failed)),
	}
	if s.pending > 0 {
		counts = append(counts, s.styles.Muted.Render(fmt.Sprintf("%d queued", s.pending)))
	}
	return state + "  " + strings.Join(counts, " ")
}

func (s *Bar) renderRight() string {
	bindings := s.keymap.ShortHelp()
	if s.state == StateDetail {
		bindings = s.keymap.DetailHelp()
	}

	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return s.styles.Muted.Render(strings.Join(hints, " | "))
}

// SetState sets the current state.
func (s *Bar) SetState(state State) {
	s.state = state
}

// State returns the current state.
func (s *Bar) State() State {
	return s.state
}

// SetMessage sets the error message.
func (s *Bar) SetMessage(message string) {
	s.message = message
}

// Message returns the current message.
func (s *Bar) Message() string {
	return s.message
}

// SetStats sets the delivery counters.
func (s *Bar) SetStats(stats domain.DeliveryStats) {
	s.stats = stats
}

// Stats returns the delivery counters.
func (s *Bar) Stats() domain.DeliveryStats {
	return s.stats
}

// SetPending sets the number of queued items.
func (s *Bar) SetPending(n int) {
	s.pending = n
}

// Pending returns the number of queued items.
func (s *Bar) Pending() int {
	return s.pending
}

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}

// Width returns the current width.
func (s *Bar) Width() int {
	return s.width
}
