package mcpserver

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) autofillTools() []toolDef {
	return []toolDef{
		{
			tool: mcp.NewTool("create_design_autofill_job",
				mcp.WithDescription("Start a job that fills a brand template with data, without waiting. Use get_design_autofill_job to poll, or autofill_design to block until done."),
				mcp.WithString("brand_template_id", mcp.Required(), mcp.Description("The brand template to fill")),
				mcp.WithObject("dataset", mcp.Required(), mcp.Description("Field values keyed by the template's dataset field names")),
			),
			handler: s.handleCreateDesignAutofillJob,
		},
		{
			tool: mcp.NewTool("get_design_autofill_job",
				mcp.WithDescription("Get the status and result of an autofill job."),
				mcp.WithString("job_id", mcp.Required(), mcp.Description("The autofill job ID")),
			),
			handler: s.handleGetDesignAutofillJob,
		},
		{
			tool: mcp.NewTool("autofill_design",
				mcp.WithDescription("Fill a brand template with data and wait until the job succeeds or fails. Returns the created design on success."),
				mcp.WithString("brand_template_id", mcp.Required(), mcp.Description("The brand template to fill")),
				mcp.WithObject("dataset", mcp.Required(), mcp.Description("Field values keyed by the template's dataset field names")),
				mcp.WithNumber("timeout_seconds", mcp.Description("How long to wait before giving up (default 120)")),
			),
			handler: s.handleAutofillDesign,
		},
	}
}

func requireDataset(req mcp.CallToolRequest) (map[string]any, error) {
	raw, ok := req.GetArguments()["dataset"]
	if !ok {
		return nil, fmt.Errorf("dataset argument is required")
	}
	dataset, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("dataset must be a JSON object")
	}
	return dataset, nil
}

func (s *Server) handleCreateDesignAutofillJob(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	templateID, err := req.RequireString("brand_template_id")
	if err != nil {
		return errResult(err)
	}
	dataset, err := requireDataset(req)
	if err != nil {
		return errResult(err)
	}
	job, err := s.client.CreateDesignAutofillJob(ctx, templateID, dataset)
	if err != nil {
		return errResult(err)
	}
	return jsonResult(job)
}

func (s *Server) handleGetDesignAutofillJob(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	jobID, err := req.RequireString("job_id")
	if err != nil {
		return errResult(err)
	}
	job, err := s.client.GetDesignAutofillJob(ctx, jobID)
	if err != nil {
		return errResult(err)
	}
	return jsonResult(job)
}

func (s *Server) handleAutofillDesign(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	templateID, err := req.RequireString("brand_template_id")
	if err != nil {
		return errResult(err)
	}
	dataset, err := requireDataset(req)
	if err != nil {
		return errResult(err)
	}
	job, err := s.client.AutofillDesign(ctx, templateID, dataset, pollPolicy(req))
	if err != nil {
		return errResult(err)
	}
	return jsonResult(job)
}
