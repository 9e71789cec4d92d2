package canva

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"
)

type createDesignRequest struct {
	Title      string `json:"title"`
	BrandKitID string `json:"brand_kit_id,omitempty"`
	FolderID   string `json:"folder_id,omitempty"`
}

// CreateDesign creates a new empty design.
func (c *Client) CreateDesign(ctx context.Context, title, brandKitID, folderID string) (*Design, error) {
	raw, err := c.Post(ctx, "/designs", createDesignRequest{Title: title, BrandKitID: brandKitID, FolderID: folderID})
	if err != nil {
		return nil, err
	}
	return designFrom(raw)
}

// ListDesigns returns a page of the user's designs. pageToken and folderID
// are optional; limit <= 0 uses the provider default.
func (c *Client) ListDesigns(ctx context.Context, limit int, pageToken, folderID string) (json.RawMessage, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	if pageToken != "" {
		q.Set("continuation", pageToken)
	}
	if folderID != "" {
		q.Set("folder_id", folderID)
	}
	return c.Get(ctx, "/designs", q)
}

// GetDesign fetches a single design.
func (c *Client) GetDesign(ctx context.Context, designID string) (*Design, error) {
	raw, err := c.Get(ctx, "/designs/"+designID, nil)
	if err != nil {
		return nil, err
	}
	return designFrom(raw)
}

// GetDesignPages returns the page metadata for a design.
func (c *Client) GetDesignPages(ctx context.Context, designID string) (json.RawMessage, error) {
	return c.Get(ctx, "/designs/"+designID+"/pages", nil)
}

// GetDesignExportFormats returns the formats a design can be exported to.
func (c *Client) GetDesignExportFormats(ctx context.Context, designID string) (json.RawMessage, error) {
	return c.Get(ctx, "/designs/"+designID+"/export/formats", nil)
}

func designFrom(raw json.RawMessage) (*Design, error) {
	var envelope struct {
		Design Design `json:"design"`
	}
	if err := decodeInto(raw, &envelope, "design"); err != nil {
		return nil, err
	}
	return &envelope.Design, nil
}
