package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/acdrive/acdrive/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start an MCP server exposing acdrive commands",
	Long: `Start a Model Context Protocol (MCP) server that exposes the boundary
commands as tools. AI agents can call tools directly without shell
overhead.

Supported transports:
  stdio             Standard I/O (default, for MCP clients)
  streamable-http   Streamable HTTP transport (for remote agents)

Examples:
  acdrive serve
  acdrive serve --transport streamable-http --port 8080`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("transport", "stdio", "Transport: stdio, streamable-http")
	serveCmd.Flags().Int("port", 8080, "HTTP port for streamable-http transport")
}

func runServe(cmd *cobra.Command, args []string) error {
	transport, _ := cmd.Flags().GetString("transport")
	port, _ := cmd.Flags().GetInt("port")

	disp, closer, err := newDispatcher()
	if err != nil {
		return fmt.Errorf("failed to create dispatcher: %w", err)
	}
	defer closer()

	return server.New(disp).Serve(server.Config{Transport: transport, Port: port})
}
