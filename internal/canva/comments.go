package canva

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"
)

type createCommentRequest struct {
	Content string `json:"content"`
	PageID  string `json:"page_id,omitempty"`
}

// CreateCommentThread starts a new comment thread on a design.
func (c *Client) CreateCommentThread(ctx context.Context, designID, content, pageID string) (json.RawMessage, error) {
	return c.Post(ctx, "/designs/"+designID+"/comments", createCommentRequest{Content: content, PageID: pageID})
}

// CreateCommentReply replies to an existing comment thread.
func (c *Client) CreateCommentReply(ctx context.Context, designID, threadID, content string) (json.RawMessage, error) {
	return c.Post(ctx, "/designs/"+designID+"/comments/"+threadID+"/replies", map[string]any{"content": content})
}

// GetCommentThread fetches a comment thread's metadata.
func (c *Client) GetCommentThread(ctx context.Context, designID, threadID string) (json.RawMessage, error) {
	return c.Get(ctx, "/designs/"+designID+"/comments/"+threadID, nil)
}

// ListCommentReplies returns a page of a thread's replies.
func (c *Client) ListCommentReplies(ctx context.Context, designID, threadID string, limit int, pageToken string) (json.RawMessage, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	if pageToken != "" {
		q.Set("continuation", pageToken)
	}
	return c.Get(ctx, "/designs/"+designID+"/comments/"+threadID+"/replies", q)
}
