package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/cliprelay/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server so AI assistants can relay text
and read delivery history.

Tools:
  relay_text        - relay a text item through the configured pipeline
  delivery_history  - list recent outcomes and totals

Resources:
  cliprelay://stats                 - delivery totals
  cliprelay://outcomes/{outcomeId}  - one recorded outcome

By default, the server communicates over stdio using JSON-RPC.
Use --port to start an HTTP server instead.

Examples:
  # Stdio mode (default)
  cliprelay mcp serve

  # HTTP mode (for MCP Inspector, remote access)
  cliprelay mcp serve --port 8090

Client configuration:
  {
    "mcpServers": {
      "cliprelay": {
        "command": "/path/to/cliprelay",
        "args": ["mcp", "serve"]
      }
    }
  }`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}

	s, err := requireServices()
	if err != nil {
		return err
	}

	ports := &mcp.Ports{
		Relay:   s.Relay,
		History: s.History,
	}

	server, err := mcp.NewServer(ports, version)
	if err != nil {
		return err
	}

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}

	return server.Run(cmd.Context())
}
