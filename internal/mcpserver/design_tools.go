package mcpserver

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) designTools() []toolDef {
	return []toolDef{
		{
			tool: mcp.NewTool("create_design",
				mcp.WithDescription("Create a new Canva design."),
				mcp.WithString("title", mcp.Required(), mcp.Description("Title for the new design")),
				mcp.WithString("brand_kit_id", mcp.Description("Brand kit to apply")),
				mcp.WithString("folder_id", mcp.Description("Folder to place the design in")),
			),
			handler: s.handleCreateDesign,
		},
		{
			tool: mcp.NewTool("list_designs",
				mcp.WithDescription("List the user's designs, paginated."),
				mcp.WithNumber("limit", mcp.Description("Maximum designs to return")),
				mcp.WithString("page_token", mcp.Description("Continuation token from a previous page")),
				mcp.WithString("folder_id", mcp.Description("Restrict to a folder")),
			),
			handler: s.handleListDesigns,
		},
		{
			tool: mcp.NewTool("get_design",
				mcp.WithDescription("Get a single design's metadata."),
				mcp.WithString("design_id", mcp.Required(), mcp.Description("The design ID")),
			),
			handler: s.handleGetDesign,
		},
		{
			tool: mcp.NewTool("get_design_pages",
				mcp.WithDescription("Get page metadata for a design."),
				mcp.WithString("design_id", mcp.Required(), mcp.Description("The design ID")),
			),
			handler: s.handleGetDesignPages,
		},
		{
			tool: mcp.NewTool("get_design_export_formats",
				mcp.WithDescription("List the formats a design can be exported to."),
				mcp.WithString("design_id", mcp.Required(), mcp.Description("The design ID")),
			),
			handler: s.handleGetDesignExportFormats,
		},
	}
}

func (s *Server) handleCreateDesign(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title, err := req.RequireString("title")
	if err != nil {
		return errResult(err)
	}
	design, err := s.client.CreateDesign(ctx, title, req.GetString("brand_kit_id", ""), req.GetString("folder_id", ""))
	if err != nil {
		return errResult(err)
	}
	return jsonResult(design)
}

func (s *Server) handleListDesigns(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := s.client.ListDesigns(ctx,
		req.GetInt("limit", 0),
		req.GetString("page_token", ""),
		req.GetString("folder_id", ""),
	)
	if err != nil {
		return errResult(err)
	}
	return rawResult(raw)
}

func (s *Server) handleGetDesign(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	designID, err := req.RequireString("design_id")
	if err != nil {
		return errResult(err)
	}
	design, err := s.client.GetDesign(ctx, designID)
	if err != nil {
		return errResult(err)
	}
	return jsonResult(design)
}

func (s *Server) handleGetDesignPages(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	designID, err := req.RequireString("design_id")
	if err != nil {
		return errResult(err)
	}
	raw, err := s.client.GetDesignPages(ctx, designID)
	if err != nil {
		return errResult(err)
	}
	return rawResult(raw)
}

func (s *Server) handleGetDesignExportFormats(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	designID, err := req.RequireString("design_id")
	if err != nil {
		return errResult(err)
	}
	raw, err := s.client.GetDesignExportFormats(ctx, designID)
	if err != nil {
		return errResult(err)
	}
	return rawResult(raw)
}
