package mcp

import (
	"context"
	"errors"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/cliprelay/internal/core/domain"
)

// RelayTextInput is the input schema for the relay_text tool.
type RelayTextInput struct {
	Text     string `json:"text" jsonschema:"the text to upload as a clipboard item"`
	CopyTime int64  `json:"copy_time,omitempty" jsonschema:"user copy time in unix milliseconds (default now)"`
}

// HistoryInput is the input schema for the delivery_history tool.
type HistoryInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"maximum number of outcomes to return (default 10)"`
}

// HistoryOutput is the output schema for the delivery_history tool.
type HistoryOutput struct {
	Outcomes []OutcomeOutput `json:"outcomes"`
	Count    int             `json:"count"`
	Stats    StatsOutput     `json:"stats"`
}

// OutcomeOutput represents one relay outcome. Payloads are never exposed.
type OutcomeOutput struct {
	ID           string `json:"id"`
	Status       string `json:"status"`
	Reason       string `json:"reason,omitempty"`
	Schema       string `json:"schema,omitempty"`
	URL          string `json:"url,omitempty"`
	ItemBytes    int    `json:"item_bytes"`
	PayloadBytes int    `json:"payload_bytes"`
	StatusCode   int    `json:"status_code,omitempty"`
	Hash         string `json:"hash,omitempty"`
	Error        string `json:"error,omitempty"`
	StartedAt    string `json:"started_at,omitempty"`
	DurationMs   int64  `json:"duration_ms"`
}

// StatsOutput summarises outcome counts.
type StatsOutput struct {
	Sent        int    `json:"sent"`
	Skipped     int    `json:"skipped"`
	Failed      int    `json:"failed"`
	LastError   string `json:"last_error,omitempty"`
	LastFailure string `json:"last_failure,omitempty"`
}

const defaultHistoryLimit = 10

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "relay_text",
		Description: "Upload text to the configured endpoint as a clipboard item",
	}, s.handleRelayText)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "delivery_history",
		Description: "List recent relay outcomes and delivery counters",
	}, s.handleHistory)
}

// handleRelayText runs one text item through the relay synchronously.
// A failed outcome is a tool result, not a protocol error.
func (s *Server) handleRelayText(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RelayTextInput,
) (*mcp.CallToolResult, OutcomeOutput, error) {
	if input.Text == "" {
		return nil, OutcomeOutput{}, errors.New("text is required")
	}

	copyTime := input.CopyTime
	if copyTime == 0 {
		copyTime = time.Now().UnixMilli()
	}

	out := s.ports.Relay.Process(ctx, domain.NewTextItem(input.Text, copyTime))
	result := toOutcomeOutput(out)

	if !out.Succeeded() {
		return &mcp.CallToolResult{
			IsError: true,
			Content: []mcp.Content{&mcp.TextContent{Text: out.Reason + ": " + out.Error}},
		}, result, nil
	}
	return nil, result, nil
}

// handleHistory returns recent outcomes. Without a history service it
// reports the counters of this process only.
func (s *Server) handleHistory(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input HistoryInput,
) (*mcp.CallToolResult, HistoryOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	if s.ports.History == nil {
		return nil, HistoryOutput{
			Outcomes: []OutcomeOutput{},
			Stats:    toStatsOutput(s.ports.Relay.Stats()),
		}, nil
	}

	outcomes, err := s.ports.History.Recent(ctx, limit)
	if err != nil {
		return nil, HistoryOutput{}, err
	}
	stats, err := s.ports.History.Stats(ctx)
	if err != nil {
		return nil, HistoryOutput{}, err
	}

	output := HistoryOutput{
		Outcomes: make([]OutcomeOutput, len(outcomes)),
		Count:    len(outcomes),
		Stats:    toStatsOutput(stats),
	}
	for i := range outcomes {
		output.Outcomes[i] = toOutcomeOutput(outcomes[i])
	}

	return nil, output, nil
}

func toOutcomeOutput(o domain.Outcome) OutcomeOutput {
	out := OutcomeOutput{
		ID:           o.ID,
		Status:       o.Status.String(),
		Reason:       o.Reason,
		Schema:       o.Schema.String(),
		URL:          o.URL,
		ItemBytes:    o.ItemBytes,
		PayloadBytes: o.PayloadBytes,
		StatusCode:   o.StatusCode,
		Hash:         o.Hash,
		Error:        o.Error,
		DurationMs:   o.Duration.Milliseconds(),
	}
	if !o.StartedAt.IsZero() {
		out.StartedAt = o.StartedAt.UTC().Format(time.RFC3339Nano)
	}
	return out
}

func toStatsOutput(s domain.DeliveryStats) StatsOutput {
	out := StatsOutput{
		Sent:      s.Sent,
		Skipped:   s.Skipped,
		Failed:    s.Failed,
		LastError: s.LastError,
	}
	if !s.LastFailure.IsZero() {
		out.LastFailure = s.LastFailure.UTC().Format(time.RFC3339Nano)
	}
	return out
}
