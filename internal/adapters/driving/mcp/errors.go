// Package mcp provides an MCP (Model Context Protocol) server adapter for cliprelay.
// It lets assistants push text through the relay and inspect delivery history.
package mcp

import "errors"

// ErrMissingRelay is returned when the relay service is not provided.
var ErrMissingRelay = errors.New("mcp: relay service is required")
