package mcpserver

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) userTools() []toolDef {
	return []toolDef{
		{
			tool: mcp.NewTool("get_current_user",
				mcp.WithDescription("Get the authenticated user's user and team IDs."),
			),
			handler: s.handleGetCurrentUser,
		},
		{
			tool: mcp.NewTool("get_user_profile",
				mcp.WithDescription("Get the authenticated user's display profile."),
			),
			handler: s.handleGetUserProfile,
		},
		{
			tool: mcp.NewTool("get_user_capabilities",
				mcp.WithDescription("List the API capabilities available to the user's plan."),
			),
			handler: s.handleGetUserCapabilities,
		},
	}
}

func (s *Server) handleGetCurrentUser(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	user, err := s.client.GetCurrentUser(ctx)
	if err != nil {
		return errResult(err)
	}
	return jsonResult(user)
}

func (s *Server) handleGetUserProfile(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := s.client.GetUserProfile(ctx)
	if err != nil {
		return errResult(err)
	}
	return rawResult(raw)
}

func (s *Server) handleGetUserCapabilities(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := s.client.GetUserCapabilities(ctx)
	if err != nil {
		return errResult(err)
	}
	return rawResult(raw)
}
