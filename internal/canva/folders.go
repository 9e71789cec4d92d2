package canva

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"
)

type createFolderRequest struct {
	Name           string `json:"name"`
	ParentFolderID string `json:"parent_folder_id,omitempty"`
}

// CreateFolder creates a folder, optionally inside a parent folder.
func (c *Client) CreateFolder(ctx context.Context, name, parentFolderID string) (*Folder, error) {
	raw, err := c.Post(ctx, "/folders", createFolderRequest{Name: name, ParentFolderID: parentFolderID})
	if err != nil {
		return nil, err
	}
	return folderFrom(raw)
}

// GetFolder fetches a folder.
func (c *Client) GetFolder(ctx context.Context, folderID string) (*Folder, error) {
	raw, err := c.Get(ctx, "/folders/"+folderID, nil)
	if err != nil {
		return nil, err
	}
	return folderFrom(raw)
}

// UpdateFolder renames a folder.
func (c *Client) UpdateFolder(ctx context.Context, folderID, name string) (*Folder, error) {
	raw, err := c.Patch(ctx, "/folders/"+folderID, map[string]any{"name": name})
	if err != nil {
		return nil, err
	}
	return folderFrom(raw)
}

// DeleteFolder deletes a folder.
func (c *Client) DeleteFolder(ctx context.Context, folderID string) error {
	_, err := c.Delete(ctx, "/folders/"+folderID)
	return err
}

// ListFolderItems returns a page of a folder's contents. itemTypes filters
// by type (e.g. "design", "folder", "image"); empty means all.
func (c *Client) ListFolderItems(ctx context.Context, folderID string, limit int, pageToken string, itemTypes []string) (json.RawMessage, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	if pageToken != "" {
		q.Set("continuation", pageToken)
	}
	for _, t := range itemTypes {
		q.Add("item_types", t)
	}
	return c.Get(ctx, "/folders/"+folderID+"/items", q)
}

// MoveFolderItem moves an item into another folder.
func (c *Client) MoveFolderItem(ctx context.Context, itemID, toFolderID string) error {
	_, err := c.Post(ctx, "/folders/items/"+itemID+"/move", map[string]any{"to_folder_id": toFolderID})
	return err
}

func folderFrom(raw json.RawMessage) (*Folder, error) {
	var envelope struct {
		Folder Folder `json:"folder"`
	}
	if err := decodeInto(raw, &envelope, "folder"); err != nil {
		return nil, err
	}
	return &envelope.Folder, nil
}
