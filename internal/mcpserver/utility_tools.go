package mcpserver

import (
	"context"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) utilityTools() []toolDef {
	return []toolDef{
		{
			tool: mcp.NewTool("get_server_info",
				mcp.WithDescription("Get server name, version and the feature areas it exposes."),
			),
			handler: s.handleGetServerInfo,
		},
		{
			tool: mcp.NewTool("ping_server",
				mcp.WithDescription("Check that the server is responding."),
			),
			handler: s.handlePingServer,
		},
	}
}

func (s *Server) handleGetServerInfo(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(map[string]any{
		"name":    "canva-mcp",
		"version": s.version,
		"status":  "running",
		"features": []string{
			"Authentication (OAuth 2.0)",
			"User Management",
			"Design Management",
			"Asset Management",
			"Folder Management",
			"Export Operations",
			"Brand Templates",
			"Autofill Operations",
			"Comment Management",
		},
	})
}

func (s *Server) handlePingServer(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(map[string]any{
		"message":   "pong",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
