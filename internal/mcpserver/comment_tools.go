package mcpserver

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) commentTools() []toolDef {
	return []toolDef{
		{
			tool: mcp.NewTool("create_comment_thread",
				mcp.WithDescription("Start a new comment thread on a design."),
				mcp.WithString("design_id", mcp.Required(), mcp.Description("The design to comment on")),
				mcp.WithString("content", mcp.Required(), mcp.Description("Comment text")),
				mcp.WithString("page_id", mcp.Description("Page of the design to attach the comment to")),
			),
			handler: s.handleCreateCommentThread,
		},
		{
			tool: mcp.NewTool("create_comment_reply",
				mcp.WithDescription("Reply to an existing comment thread."),
				mcp.WithString("design_id", mcp.Required(), mcp.Description("The design the thread is on")),
				mcp.WithString("thread_id", mcp.Required(), mcp.Description("The comment thread ID")),
				mcp.WithString("content", mcp.Required(), mcp.Description("Reply text")),
			),
			handler: s.handleCreateCommentReply,
		},
		{
			tool: mcp.NewTool("get_comment_thread",
				mcp.WithDescription("Get a comment thread's metadata."),
				mcp.WithString("design_id", mcp.Required(), mcp.Description("The design the thread is on")),
				mcp.WithString("thread_id", mcp.Required(), mcp.Description("The comment thread ID")),
			),
			handler: s.handleGetCommentThread,
		},
		{
			tool: mcp.NewTool("list_comment_replies",
				mcp.WithDescription("List the replies to a comment thread, paginated."),
				mcp.WithString("design_id", mcp.Required(), mcp.Description("The design the thread is on")),
				mcp.WithString("thread_id", mcp.Required(), mcp.Description("The comment thread ID")),
				mcp.WithNumber("limit", mcp.Description("Maximum replies to return")),
				mcp.WithString("page_token", mcp.Description("Continuation token from a previous page")),
			),
			handler: s.handleListCommentReplies,
		},
	}
}

func (s *Server) handleCreateCommentThread(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	designID, err := req.RequireString("design_id")
	if err != nil {
		return errResult(err)
	}
	content, err := req.RequireString("content")
	if err != nil {
		return errResult(err)
	}
	raw, err := s.client.CreateCommentThread(ctx, designID, content, req.GetString("page_id", ""))
	if err != nil {
		return errResult(err)
	}
	return rawResult(raw)
}

func (s *Server) handleCreateCommentReply(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	designID, err := req.RequireString("design_id")
	if err != nil {
		return errResult(err)
	}
	threadID, err := req.RequireString("thread_id")
	if err != nil {
		return errResult(err)
	}
	content, err := req.RequireString("content")
	if err != nil {
		return errResult(err)
	}
	raw, err := s.client.CreateCommentReply(ctx, designID, threadID, content)
	if err != nil {
		return errResult(err)
	}
	return rawResult(raw)
}

func (s *Server) handleGetCommentThread(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	designID, err := req.RequireString("design_id")
	if err != nil {
		return errResult(err)
	}
	threadID, err := req.RequireString("thread_id")
	if err != nil {
		return errResult(err)
	}
	raw, err := s.client.GetCommentThread(ctx, designID, threadID)
	if err != nil {
		return errResult(err)
	}
	return rawResult(raw)
}

func (s *Server) handleListCommentReplies(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	designID, err := req.RequireString("design_id")
	if err != nil {
		return errResult(err)
	}
	threadID, err := req.RequireString("thread_id")
	if err != nil {
		return errResult(err)
	}
	raw, err := s.client.ListCommentReplies(ctx, designID, threadID,
		req.GetInt("limit", 0),
		req.GetString("page_token", ""),
	)
	if err != nil {
		return errResult(err)
	}
	return rawResult(raw)
}
