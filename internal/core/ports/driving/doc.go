// Package driving defines the interfaces that infrastructure calls IN to core.
//
// These are the "driving" or "primary" ports in hexagonal architecture.
// The CLI, TUI, MCP server and trigger sources call these interfaces,
// and core services implement them.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driving
