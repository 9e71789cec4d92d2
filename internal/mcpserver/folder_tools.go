package mcpserver

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) folderTools() []toolDef {
	return []toolDef{
		{
			tool: mcp.NewTool("create_folder",
				mcp.WithDescription("Create a folder."),
				mcp.WithString("name", mcp.Required(), mcp.Description("Folder name")),
				mcp.WithString("parent_folder_id", mcp.Description("Parent folder (defaults to the root)")),
			),
			handler: s.handleCreateFolder,
		},
		{
			tool: mcp.NewTool("get_folder",
				mcp.WithDescription("Get a folder's metadata."),
				mcp.WithString("folder_id", mcp.Required(), mcp.Description("The folder ID")),
			),
			handler: s.handleGetFolder,
		},
		{
			tool: mcp.NewTool("update_folder",
				mcp.WithDescription("Rename a folder."),
				mcp.WithString("folder_id", mcp.Required(), mcp.Description("The folder ID")),
				mcp.WithString("name", mcp.Required(), mcp.Description("New folder name")),
			),
			handler: s.handleUpdateFolder,
		},
		{
			tool: mcp.NewTool("delete_folder",
				mcp.WithDescription("Delete a folder."),
				mcp.WithString("folder_id", mcp.Required(), mcp.Description("The folder ID")),
			),
			handler: s.handleDeleteFolder,
		},
		{
			tool: mcp.NewTool("list_folder_items",
				mcp.WithDescription("List a folder's contents, paginated."),
				mcp.WithString("folder_id", mcp.Required(), mcp.Description("The folder ID")),
				mcp.WithNumber("limit", mcp.Description("Maximum items to return")),
				mcp.WithString("page_token", mcp.Description("Continuation token from a previous page")),
				mcp.WithArray("item_types", mcp.Description("Filter by item type, e.g. design, folder, image"), mcp.WithStringItems()),
			),
			handler: s.handleListFolderItems,
		},
		{
			tool: mcp.NewTool("move_folder_item",
				mcp.WithDescription("Move an item into another folder."),
				mcp.WithString("item_id", mcp.Required(), mcp.Description("The item to move")),
				mcp.WithString("to_folder_id", mcp.Required(), mcp.Description("Destination folder")),
			),
			handler: s.handleMoveFolderItem,
		},
	}
}

func (s *Server) handleCreateFolder(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return errResult(err)
	}
	folder, err := s.client.CreateFolder(ctx, name, req.GetString("parent_folder_id", ""))
	if err != nil {
		return errResult(err)
	}
	return jsonResult(folder)
}

func (s *Server) handleGetFolder(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	folderID, err := req.RequireString("folder_id")
	if err != nil {
		return errResult(err)
	}
	folder, err := s.client.GetFolder(ctx, folderID)
	if err != nil {
		return errResult(err)
	}
	return jsonResult(folder)
}

func (s *Server) handleUpdateFolder(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	folderID, err := req.RequireString("folder_id")
	if err != nil {
		return errResult(err)
	}
	name, err := req.RequireString("name")
	if err != nil {
		return errResult(err)
	}
	folder, err := s.client.UpdateFolder(ctx, folderID, name)
	if err != nil {
		return errResult(err)
	}
	return jsonResult(folder)
}

func (s *Server) handleDeleteFolder(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	folderID, err := req.RequireString("folder_id")
	if err != nil {
		return errResult(err)
	}
	if err := s.client.DeleteFolder(ctx, folderID); err != nil {
		return errResult(err)
	}
	return mcp.NewToolResultText("Folder " + folderID + " deleted."), nil
}

func (s *Server) handleListFolderItems(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	folderID, err := req.RequireString("folder_id")
	if err != nil {
		return errResult(err)
	}
	raw, err := s.client.ListFolderItems(ctx, folderID,
		req.GetInt("limit", 0),
		req.GetString("page_token", ""),
		req.GetStringSlice("item_types", nil),
	)
	if err != nil {
		return errResult(err)
	}
	return rawResult(raw)
}

func (s *Server) handleMoveFolderItem(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	itemID, err := req.RequireString("item_id")
	if err != nil {
		return errResult(err)
	}
	toFolderID, err := req.RequireString("to_folder_id")
	if err != nil {
		return errResult(err)
	}
	if err := s.client.MoveFolderItem(ctx, itemID, toFolderID); err != nil {
		return errResult(err)
	}
	return mcp.NewToolResultText("Item " + itemID + " moved to folder " + toFolderID + "."), nil
}
