// Package server exposes the boundary commands as MCP tools so agents
// can drive the host application without shell overhead. The host UI is
// single-threaded state; every tool call is serialized behind one mutex.
package server

import (
	"context"
	"fmt"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/acdrive/acdrive/internal/dispatch"
	"github.com/acdrive/acdrive/internal/jsonio"
	"github.com/acdrive/acdrive/internal/version"
)

// Config holds the serve transport settings.
type Config struct {
	Transport string
	Port      int
}

// Server wraps the dispatcher behind an MCP server.
type Server struct {
	disp *dispatch.Dispatcher
	mu   sync.Mutex
	mcp  *mcpserver.MCPServer
}

// New builds a Server over disp with all tools registered.
func New(disp *dispatch.Dispatcher) *Server {
	s := &Server{disp: disp}
	s.mcp = mcpserver.NewMCPServer("acdrive", version.Version)
	s.registerTools()
	return s
}

// Serve starts the MCP server with the configured transport.
func (s *Server) Serve(cfg Config) error {
	switch cfg.Transport {
	case "stdio":
		return mcpserver.ServeStdio(s.mcp)
	case "streamable-http":
		httpServer := mcpserver.NewStreamableHTTPServer(s.mcp)
		return httpServer.Start(fmt.Sprintf(":%d", cfg.Port))
	default:
		return fmt.Errorf("unsupported transport: %s (use stdio or streamable-http)", cfg.Transport)
	}
}

func (s *Server) registerTools() {
	s.mcp.AddTool(
		mcp.NewTool(dispatch.CmdStatus,
			mcp.WithDescription("Report the host application's current activity, busy flag, and open alerts"),
		),
		s.handleStatus,
	)

	s.mcp.AddTool(
		mcp.NewTool(dispatch.CmdList,
			mcp.WithDescription("List every row of the device table, keyed by column name plus 'selected'"),
		),
		s.handleList,
	)

	s.mcp.AddTool(
		mcp.NewTool(dispatch.CmdCancel,
			mcp.WithDescription("Resolve the topmost prompt with the Cancel choice"),
		),
		s.handleCancel,
	)

	s.mcp.AddTool(
		mcp.NewTool(dispatch.CmdAction,
			mcp.WithDescription("Resolve the topmost prompt: switch the named checkboxes on, then invoke the chosen button"),
			mcp.WithString("choice", mcp.Description("Button label to invoke"), mcp.Required()),
			mcp.WithArray("options", mcp.Description("Checkbox labels to switch on first")),
		),
		s.handleAction,
	)

	s.mcp.AddTool(
		mcp.NewTool(dispatch.CmdBlueprint,
			mcp.WithDescription("Apply a named blueprint to the devices identified by UDID and confirm the prompt"),
			mcp.WithString("blueprint", mcp.Description("Blueprint name"), mcp.Required()),
			mcp.WithArray("udids", mcp.Description("Target device UDIDs"), mcp.Required()),
		),
		s.handleBlueprint,
	)

	s.mcp.AddTool(
		mcp.NewTool(dispatch.CmdVPPApps,
			mcp.WithDescription("Install licensed apps on the devices identified by UDID; fails before installing anything if an app is not offered"),
			mcp.WithArray("apps", mcp.Description("App names to install"), mcp.Required()),
			mcp.WithArray("udids", mcp.Description("Target device UDIDs"), mcp.Required()),
		),
		s.handleVPPApps,
	)
}

// dispatchTool serializes the call, runs one command, and renders the
// result or the structured error payload as text.
func (s *Server) dispatchTool(ctx context.Context, command string, payload []byte) (*mcp.CallToolResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.disp.Dispatch(ctx, command, payload)
	if err != nil {
		return mcp.NewToolResultError(string(dispatch.ErrorPayload(err))), nil
	}
	if len(result) == 0 {
		return mcp.NewToolResultText(`{"ok":true}`), nil
	}
	return mcp.NewToolResultText(string(result)), nil
}

// argsPayload re-encodes the tool arguments as the command payload so
// they pass through the same validation as CLI input.
func argsPayload(request mcp.CallToolRequest) ([]byte, error) {
	return jsonio.Encode(request.GetArguments())
}

func (s *Server) handleStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.dispatchTool(ctx, dispatch.CmdStatus, nil)
}

func (s *Server) handleList(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.dispatchTool(ctx, dispatch.CmdList, nil)
}

func (s *Server) handleCancel(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.dispatchTool(ctx, dispatch.CmdCancel, nil)
}

func (s *Server) handleAction(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	payload, err := argsPayload(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return s.dispatchTool(ctx, dispatch.CmdAction, payload)
}

func (s *Server) handleBlueprint(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	payload, err := argsPayload(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return s.dispatchTool(ctx, dispatch.CmdBlueprint, payload)
}

func (s *Server) handleVPPApps(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	payload, err := argsPayload(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return s.dispatchTool(ctx, dispatch.CmdVPPApps, payload)
}
