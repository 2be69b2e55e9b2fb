package messages

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/cliprelay/internal/core/domain"
)

func TestViewType_String(t *testing.T) {
	tests := []struct {
		view     ViewType
		expected string
	}{
		{ViewMonitor, "monitor"},
		{ViewDetail, "detail"},
		{ViewHelp, "help"},
		{ViewType(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.view.String())
		})
	}
}

func TestMessages_AreTeaMessages(t *testing.T) {
	msgs := []tea.Msg{
		OutcomeReceived{Outcome: domain.Outcome{ID: "a"}},
		HistoryLoaded{Err: errors.New("x")},
		Tick{},
		ViewChanged{View: ViewHelp},
		ErrorOccurred{Err: errors.New("y")},
		Quit{},
	}

	for _, msg := range msgs {
		assert.NotNil(t, msg)
	}
}

func TestHistoryLoaded_CarriesStats(t *testing.T) {
	msg := HistoryLoaded{
		Outcomes: []domain.Outcome{{ID: "1"}, {ID: "2"}},
		Stats:    domain.DeliveryStats{Sent: 2},
	}

	assert.Len(t, msg.Outcomes, 2)
	assert.Equal(t, 2, msg.Stats.Total())
}
