package canva

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"
)

// ListBrandTemplates returns a page of the user's brand templates.
func (c *Client) ListBrandTemplates(ctx context.Context, limit int, pageToken string) (json.RawMessage, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	if pageToken != "" {
		q.Set("continuation", pageToken)
	}
	return c.Get(ctx, "/brand-templates", q)
}

// GetBrandTemplate fetches a single brand template.
func (c *Client) GetBrandTemplate(ctx context.Context, templateID string) (*BrandTemplate, error) {
	raw, err := c.Get(ctx, "/brand-templates/"+templateID, nil)
	if err != nil {
		return nil, err
	}
	var envelope struct {
		BrandTemplate BrandTemplate `json:"brand_template"`
	}
	if err := decodeInto(raw, &envelope, "brand template"); err != nil {
		return nil, err
	}
	return &envelope.BrandTemplate, nil
}

// GetBrandTemplateDataset returns the fields an autofill job for this
// template must provide.
func (c *Client) GetBrandTemplateDataset(ctx context.Context, templateID string) (json.RawMessage, error) {
	return c.Get(ctx, "/brand-templates/"+templateID+"/dataset", nil)
}
