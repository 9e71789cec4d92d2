package mcpserver

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) assetTools() []toolDef {
	return []toolDef{
		{
			tool: mcp.NewTool("create_asset_upload_job",
				mcp.WithDescription("Start an asset upload job without waiting for it. Use get_asset_upload_job to poll, or upload_asset to block until done."),
				mcp.WithString("filename", mcp.Required(), mcp.Description("Name of the file to upload")),
				mcp.WithNumber("file_size", mcp.Required(), mcp.Description("File size in bytes")),
				mcp.WithString("folder_id", mcp.Description("Folder to place the asset in")),
			),
			handler: s.handleCreateAssetUploadJob,
		},
		{
			tool: mcp.NewTool("get_asset_upload_job",
				mcp.WithDescription("Get the status and result of an asset upload job."),
				mcp.WithString("job_id", mcp.Required(), mcp.Description("The upload job ID")),
			),
			handler: s.handleGetAssetUploadJob,
		},
		{
			tool: mcp.NewTool("upload_asset",
				mcp.WithDescription("Start an asset upload job and wait until it succeeds or fails."),
				mcp.WithString("filename", mcp.Required(), mcp.Description("Name of the file to upload")),
				mcp.WithNumber("file_size", mcp.Required(), mcp.Description("File size in bytes")),
				mcp.WithString("folder_id", mcp.Description("Folder to place the asset in")),
				mcp.WithNumber("timeout_seconds", mcp.Description("How long to wait before giving up (default 120)")),
			),
			handler: s.handleUploadAsset,
		},
		{
			tool: mcp.NewTool("create_url_asset_upload_job",
				mcp.WithDescription("Start a job that uploads an asset from a URL, without waiting."),
				mcp.WithString("url", mcp.Required(), mcp.Description("URL of the asset to fetch")),
				mcp.WithString("filename", mcp.Required(), mcp.Description("Name for the uploaded file")),
				mcp.WithString("folder_id", mcp.Description("Folder to place the asset in")),
			),
			handler: s.handleCreateURLAssetUploadJob,
		},
		{
			tool: mcp.NewTool("get_url_asset_upload_job",
				mcp.WithDescription("Get the status and result of a URL asset upload job."),
				mcp.WithString("job_id", mcp.Required(), mcp.Description("The upload job ID")),
			),
			handler: s.handleGetURLAssetUploadJob,
		},
		{
			tool: mcp.NewTool("upload_asset_from_url",
				mcp.WithDescription("Upload an asset from a URL and wait until the job succeeds or fails."),
				mcp.WithString("url", mcp.Required(), mcp.Description("URL of the asset to fetch")),
				mcp.WithString("filename", mcp.Required(), mcp.Description("Name for the uploaded file")),
				mcp.WithString("folder_id", mcp.Description("Folder to place the asset in")),
				mcp.WithNumber("timeout_seconds", mcp.Description("How long to wait before giving up (default 120)")),
			),
			handler: s.handleUploadAssetFromURL,
		},
		{
			tool: mcp.NewTool("get_asset",
				mcp.WithDescription("Get an asset's metadata."),
				mcp.WithString("asset_id", mcp.Required(), mcp.Description("The asset ID")),
			),
			handler: s.handleGetAsset,
		},
		{
			tool: mcp.NewTool("update_asset",
				mcp.WithDescription("Update an asset's title and/or tags."),
				mcp.WithString("asset_id", mcp.Required(), mcp.Description("The asset ID")),
				mcp.WithString("title", mcp.Description("New title")),
				mcp.WithArray("tags", mcp.Description("New tags"), mcp.WithStringItems()),
			),
			handler: s.handleUpdateAsset,
		},
		{
			tool: mcp.NewTool("delete_asset",
				mcp.WithDescription("Delete an asset."),
				mcp.WithString("asset_id", mcp.Required(), mcp.Description("The asset ID")),
			),
			handler: s.handleDeleteAsset,
		},
	}
}

func (s *Server) handleCreateAssetUploadJob(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	filename, err := req.RequireString("filename")
	if err != nil {
		return errResult(err)
	}
	fileSize, err := req.RequireInt("file_size")
	if err != nil {
		return errResult(err)
	}
	job, err := s.client.CreateAssetUploadJob(ctx, filename, int64(fileSize), req.GetString("folder_id", ""))
	if err != nil {
		return errResult(err)
	}
	return jsonResult(job)
}

func (s *Server) handleGetAssetUploadJob(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	jobID, err := req.RequireString("job_id")
	if err != nil {
		return errResult(err)
	}
	job, err := s.client.GetAssetUploadJob(ctx, jobID)
	if err != nil {
		return errResult(err)
	}
	return jsonResult(job)
}

func (s *Server) handleUploadAsset(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	filename, err := req.RequireString("filename")
	if err != nil {
		return errResult(err)
	}
	fileSize, err := req.RequireInt("file_size")
	if err != nil {
		return errResult(err)
	}
	job, err := s.client.UploadAsset(ctx, filename, int64(fileSize), req.GetString("folder_id", ""), pollPolicy(req))
	if err != nil {
		return errResult(err)
	}
	return jsonResult(job)
}

func (s *Server) handleCreateURLAssetUploadJob(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	srcURL, err := req.RequireString("url")
	if err != nil {
		return errResult(err)
	}
	filename, err := req.RequireString("filename")
	if err != nil {
		return errResult(err)
	}
	job, err := s.client.CreateURLAssetUploadJob(ctx, srcURL, filename, req.GetString("folder_id", ""))
	if err != nil {
		return errResult(err)
	}
	return jsonResult(job)
}

func (s *Server) handleGetURLAssetUploadJob(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	jobID, err := req.RequireString("job_id")
	if err != nil {
		return errResult(err)
	}
	job, err := s.client.GetURLAssetUploadJob(ctx, jobID)
	if err != nil {
		return errResult(err)
	}
	return jsonResult(job)
}

func (s *Server) handleUploadAssetFromURL(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	srcURL, err := req.RequireString("url")
	if err != nil {
		return errResult(err)
	}
	filename, err := req.RequireString("filename")
	if err != nil {
		return errResult(err)
	}
	job, err := s.client.UploadAssetFromURL(ctx, srcURL, filename, req.GetString("folder_id", ""), pollPolicy(req))
	if err != nil {
		return errResult(err)
	}
	return jsonResult(job)
}

func (s *Server) handleGetAsset(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	assetID, err := req.RequireString("asset_id")
	if err != nil {
		return errResult(err)
	}
	asset, err := s.client.GetAsset(ctx, assetID)
	if err != nil {
		return errResult(err)
	}
	return jsonResult(asset)
}

func (s *Server) handleUpdateAsset(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	assetID, err := req.RequireString("asset_id")
	if err != nil {
		return errResult(err)
	}
	asset, err := s.client.UpdateAsset(ctx, assetID, req.GetString("title", ""), req.GetStringSlice("tags", nil))
	if err != nil {
		return errResult(err)
	}
	return jsonResult(asset)
}

func (s *Server) handleDeleteAsset(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	assetID, err := req.RequireString("asset_id")
	if err != nil {
		return errResult(err)
	}
	if err := s.client.DeleteAsset(ctx, assetID); err != nil {
		return errResult(err)
	}
	return mcp.NewToolResultText("Asset " + assetID + " deleted."), nil
}
