package mcpserver

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/thellimist/canva-mcp/internal/canva"
)

func (s *Server) exportTools() []toolDef {
	fileTypeDesc := "Export format, one of: " + strings.Join(canva.ExportFileTypes, ", ")
	return []toolDef{
		{
			tool: mcp.NewTool("create_design_export_job",
				mcp.WithDescription("Start a design export job without waiting. Use get_design_export_job to poll, or export_design to block until done."),
				mcp.WithString("design_id", mcp.Required(), mcp.Description("The design to export")),
				mcp.WithString("file_type", mcp.Required(), mcp.Description(fileTypeDesc)),
				mcp.WithString("page_range", mcp.Description("Pages to export, e.g. \"1-3\" or \"1,3,5\"")),
			),
			handler: s.handleCreateDesignExportJob,
		},
		{
			tool: mcp.NewTool("get_design_export_job",
				mcp.WithDescription("Get the status and result of an export job."),
				mcp.WithString("job_id", mcp.Required(), mcp.Description("The export job ID")),
			),
			handler: s.handleGetDesignExportJob,
		},
		{
			tool: mcp.NewTool("export_design",
				mcp.WithDescription("Export a design and wait until the job succeeds or fails. Returns the download URL on success."),
				mcp.WithString("design_id", mcp.Required(), mcp.Description("The design to export")),
				mcp.WithString("file_type", mcp.Required(), mcp.Description(fileTypeDesc)),
				mcp.WithString("page_range", mcp.Description("Pages to export, e.g. \"1-3\" or \"1,3,5\"")),
				mcp.WithNumber("timeout_seconds", mcp.Description("How long to wait before giving up (default 120)")),
			),
			handler: s.handleExportDesign,
		},
	}
}

func requireFileType(req mcp.CallToolRequest) (string, error) {
	fileType, err := req.RequireString("file_type")
	if err != nil {
		return "", err
	}
	if !slices.Contains(canva.ExportFileTypes, fileType) {
		return "", fmt.Errorf("unsupported file_type %q, expected one of: %s", fileType, strings.Join(canva.ExportFileTypes, ", "))
	}
	return fileType, nil
}

func (s *Server) handleCreateDesignExportJob(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	designID, err := req.RequireString("design_id")
	if err != nil {
		return errResult(err)
	}
	fileType, err := requireFileType(req)
	if err != nil {
		return errResult(err)
	}
	job, err := s.client.CreateDesignExportJob(ctx, designID, fileType, req.GetString("page_range", ""))
	if err != nil {
		return errResult(err)
	}
	return jsonResult(job)
}

func (s *Server) handleGetDesignExportJob(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	jobID, err := req.RequireString("job_id")
	if err != nil {
		return errResult(err)
	}
	job, err := s.client.GetDesignExportJob(ctx, jobID)
	if err != nil {
		return errResult(err)
	}
	return jsonResult(job)
}

func (s *Server) handleExportDesign(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	designID, err := req.RequireString("design_id")
	if err != nil {
		return errResult(err)
	}
	fileType, err := requireFileType(req)
	if err != nil {
		return errResult(err)
	}
	job, err := s.client.ExportDesign(ctx, designID, fileType, req.GetString("page_range", ""), pollPolicy(req))
	if err != nil {
		return errResult(err)
	}
	return jsonResult(job)
}
