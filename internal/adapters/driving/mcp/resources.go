package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/cliprelay/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for cliprelay resources.
	uriScheme = "cliprelay://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "stats",
		Name:        "stats",
		Description: "Delivery counters for recorded relay outcomes",
		MIMEType:    "application/json",
	}, s.handleStatsResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "outcomes/{outcomeId}",
		Name:        "outcome",
		Description: "One recorded relay outcome",
		MIMEType:    "application/json",
	}, s.handleOutcomeResource)
}

// handleStatsResource returns delivery counters.
func (s *Server) handleStatsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	stats := s.ports.Relay.Stats()
	if s.ports.History != nil {
		var err error
		stats, err = s.ports.History.Stats(ctx)
		if err != nil {
			return nil, fmt.Errorf("reading stats: %w", err)
		}
	}
	return jsonResult(req.Params.URI, toStatsOutput(stats))
}

// handleOutcomeResource returns one outcome by ID.
func (s *Server) handleOutcomeResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.History == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	// cliprelay://outcomes/{outcomeId}
	id := extractOutcomeID(req.Params.URI)
	if id == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	outcome, err := s.ports.History.Get(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("getting outcome: %w", err)
	}

	return jsonResult(req.Params.URI, toOutcomeOutput(*outcome))
}

func jsonResult(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling resource: %w", err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractOutcomeID extracts the ID from a URI like cliprelay://outcomes/{outcomeId}.
func extractOutcomeID(uri string) string {
	const prefix = uriScheme + "outcomes/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	id := strings.TrimPrefix(uri, prefix)
	if strings.Contains(id, "/") {
		return ""
	}
	return id
}
