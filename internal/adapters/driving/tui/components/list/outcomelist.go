// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/cliprelay/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/cliprelay/internal/core/domain"
)

// DefaultCapacity bounds the number of outcomes held by a list.
const DefaultCapacity = 500

// OutcomeList displays relay outcomes, newest first, in a navigable list.
type OutcomeList struct {
	outcomes []domain.Outcome
	selected int
	capacity int
	styles   *styles.Styles
	width    int
	height   int
}

// NewOutcomeList creates a new outcome list component.
func NewOutcomeList(s *styles.Styles) *OutcomeList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &OutcomeList{
		capacity: DefaultCapacity,
		styles:   s,
		width:    80,
		height:   10,
	}
}

// Init initialises the list.
func (l *OutcomeList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (l *OutcomeList) Update(msg tea.Msg) (*OutcomeList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			l.MoveUp()
		case "down", "j":
			l.MoveDown()
		}
	}
	return l, nil
}

// View renders the list.
func (l *OutcomeList) View() string {
	if len(l.outcomes) == 0 {
		return l.styles.Muted.Render("Waiting for clipboard changes...")
	}

	lines := make([]string, 0, len(l.outcomes)+2)
	lines = append(lines, l.styles.Subtitle.Render(fmt.Sprintf("Outcomes (%d)", len(l.outcomes))), "")

	visible := l.height - 2
	if visible < 1 {
		visible = 1
	}
	start := 0
	if l.selected >= visible {
		start = l.selected - visible + 1
	}
	end := start + visible
	if end > len(l.outcomes) {
		end = len(l.outcomes)
	}

	for i := start; i < end; i++ {
		lines = append(lines, l.renderRow(i, &l.outcomes[i]))
	}
	return strings.Join(lines, "\n")
}

func (l *OutcomeList) renderRow(index int, o *domain.Outcome) string {
	indicator := "  "
	if index == l.selected {
		indicator = "> "
	}

	when := "--:--:--"
	if !o.StartedAt.IsZero() {
		when = o.StartedAt.Local().Format("15:04:05")
	}

	detail := o.Reason
	if o.StatusCode != 0 {
		detail = fmt.Sprintf("%s (%d)", detail, o.StatusCode)
	}
	maxDetail := l.width - 48
	if maxDetail < 10 {
		maxDetail = 10
	}
	if len(detail) > maxDetail {
		detail = detail[:maxDetail-3] + "..."
	}

	status := fmt.Sprintf("%-7s", o.Status)
	row := fmt.Sprintf("%s%s  %s  %-10s %9s  %s",
		indicator, when, status, o.Schema, formatBytes(o.ItemBytes), detail)

	if index == l.selected {
		return l.styles.Selected.Render(row)
	}
	return l.styles.Normal.Render(fmt.Sprintf("%s%s  ", indicator, when)) +
		l.styles.ForStatus(o.Status).Render(status) +
		l.styles.Muted.Render(fmt.Sprintf("  %-10s %9s  %s", o.Schema, formatBytes(o.ItemBytes), detail))
}

func formatBytes(n int) string {
	switch {
	case n >= 1000*1000:
		return fmt.Sprintf("%.1f MB", float64(n)/1e6)
	case n >= 1000:
		return fmt.Sprintf("%.1f kB", float64(n)/1e3)
	default:
		return fmt.Sprintf("%d B", n)
	}
}

// SetOutcomes replaces the list. outcomes must be newest first.
func (l *OutcomeList) SetOutcomes(outcomes []domain.Outcome) {
	if len(outcomes) > l.capacity {
		outcomes = outcomes[:l.capacity]
	}
	l.outcomes = append([]domain.Outcome(nil), outcomes...)
	l.selected = 0
}

// Prepend adds an outcome at the top. The selection stays on the same
// outcome unless it was at the top.
func (l *OutcomeList) Prepend(o domain.Outcome) {
	l.outcomes = append([]domain.Outcome{o}, l.outcomes...)
	if len(l.outcomes) > l.capacity {
		l.outcomes = l.outcomes[:l.capacity]
	}
	if l.selected > 0 {
		l.selected++
	}
	if l.selected >= len(l.outcomes) {
		l.selected = len(l.outcomes) - 1
	}
}

// Outcomes returns the held outcomes.
func (l *OutcomeList) Outcomes() []domain.Outcome {
	return l.outcomes
}

// Selected returns the index of the selected outcome.
func (l *OutcomeList) Selected() int {
	return l.selected
}

// SelectedOutcome returns the selected outcome, or nil if the list is empty.
func (l *OutcomeList) SelectedOutcome() *domain.Outcome {
	if l.selected < 0 || l.selected >= len(l.outcomes) {
		return nil
	}
	return &l.outcomes[l.selected]
}

// MoveUp moves selection up.
func (l *OutcomeList) MoveUp() {
	if l.selected > 0 {
		l.selected--
	}
}

// MoveDown moves selection down.
func (l *OutcomeList) MoveDown() {
	if l.selected < len(l.outcomes)-1 {
		l.selected++
	}
}

// Clear removes every outcome.
func (l *OutcomeList) Clear() {
	l.outcomes = nil
	l.selected = 0
}

// SetCapacity changes the maximum number of outcomes held.
func (l *OutcomeList) SetCapacity(n int) {
	if n > 0 {
		l.capacity = n
	}
}

// SetDimensions sets the component dimensions.
func (l *OutcomeList) SetDimensions(width, height int) {
	l.width = width
	l.height = height
}

// Count returns the number of outcomes.
func (l *OutcomeList) Count() int {
	return len(l.outcomes)
}
