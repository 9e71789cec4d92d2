package mcpserver

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) brandTemplateTools() []toolDef {
	return []toolDef{
		{
			tool: mcp.NewTool("list_brand_templates",
				mcp.WithDescription("List the user's brand templates, paginated."),
				mcp.WithNumber("limit", mcp.Description("Maximum templates to return")),
				mcp.WithString("page_token", mcp.Description("Continuation token from a previous page")),
			),
			handler: s.handleListBrandTemplates,
		},
		{
			tool: mcp.NewTool("get_brand_template",
				mcp.WithDescription("Get a single brand template."),
				mcp.WithString("template_id", mcp.Required(), mcp.Description("The brand template ID")),
			),
			handler: s.handleGetBrandTemplate,
		},
		{
			tool: mcp.NewTool("get_brand_template_dataset",
				mcp.WithDescription("Get the dataset fields an autofill job for this template must provide."),
				mcp.WithString("template_id", mcp.Required(), mcp.Description("The brand template ID")),
			),
			handler: s.handleGetBrandTemplateDataset,
		},
	}
}

func (s *Server) handleListBrandTemplates(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := s.client.ListBrandTemplates(ctx, req.GetInt("limit", 0), req.GetString("page_token", ""))
	if err != nil {
		return errResult(err)
	}
	return rawResult(raw)
}

func (s *Server) handleGetBrandTemplate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	templateID, err := req.RequireString("template_id")
	if err != nil {
		return errResult(err)
	}
	tpl, err := s.client.GetBrandTemplate(ctx, templateID)
	if err != nil {
		return errResult(err)
	}
	return jsonResult(tpl)
}

func (s *Server) handleGetBrandTemplateDataset(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	templateID, err := req.RequireString("template_id")
	if err != nil {
		return errResult(err)
	}
	raw, err := s.client.GetBrandTemplateDataset(ctx, templateID)
	if err != nil {
		return errResult(err)
	}
	return rawResult(raw)
}
