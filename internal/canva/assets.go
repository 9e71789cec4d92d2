package canva

import (
	"context"
	"encoding/json"
)

// UploadJob is an asset upload job, either from metadata or from a URL.
type UploadJob struct {
	ID          string    `json:"id"`
	Status      JobStatus `json:"status"`
	Filename    string    `json:"filename,omitempty"`
	FileSize    int64     `json:"file_size,omitempty"`
	AssetID     string    `json:"asset_id,omitempty"`
	CreatedAt   string    `json:"created_at,omitempty"`
	CompletedAt string    `json:"completed_at,omitempty"`
	Error       *JobError `json:"error,omitempty"`
}

type assetUploadRequest struct {
	Filename string `json:"filename,omitempty"`
	FileSize int64  `json:"file_size,omitempty"`
	URL      string `json:"url,omitempty"`
	FolderID string `json:"folder_id,omitempty"`
}

// CreateAssetUploadJob starts an asset upload job and returns its initial
// state without waiting.
func (c *Client) CreateAssetUploadJob(ctx context.Context, filename string, fileSize int64, folderID string) (*UploadJob, error) {
	raw, err := c.Post(ctx, "/assets/upload", assetUploadRequest{Filename: filename, FileSize: fileSize, FolderID: folderID})
	if err != nil {
		return nil, err
	}
	return uploadJobFrom(raw)
}

// GetAssetUploadJob fetches the current state of an asset upload job.
func (c *Client) GetAssetUploadJob(ctx context.Context, jobID string) (*UploadJob, error) {
	raw, err := c.Get(ctx, "/assets/upload/"+jobID, nil)
	if err != nil {
		return nil, err
	}
	return uploadJobFrom(raw)
}

// UploadAsset starts an asset upload job and polls it to completion.
func (c *Client) UploadAsset(ctx context.Context, filename string, fileSize int64, folderID string, policy PollPolicy) (*UploadJob, error) {
	job, err := awaitJob(ctx, c,
		func(ctx context.Context) (json.RawMessage, error) {
			return c.Post(ctx, "/assets/upload", assetUploadRequest{Filename: filename, FileSize: fileSize, FolderID: folderID})
		},
		func(jobID string) string { return "/assets/upload/" + jobID },
		policy,
	)
	if err != nil {
		return nil, err
	}
	return uploadJobDecode(job)
}

// CreateURLAssetUploadJob starts an upload job that pulls the asset from a URL.
func (c *Client) CreateURLAssetUploadJob(ctx context.Context, srcURL, filename, folderID string) (*UploadJob, error) {
	raw, err := c.Post(ctx, "/assets/upload/url", assetUploadRequest{URL: srcURL, Filename: filename, FolderID: folderID})
	if err != nil {
		return nil, err
	}
	return uploadJobFrom(raw)
}

// GetURLAssetUploadJob fetches the current state of a URL upload job.
func (c *Client) GetURLAssetUploadJob(ctx context.Context, jobID string) (*UploadJob, error) {
	raw, err := c.Get(ctx, "/assets/upload/url/"+jobID, nil)
	if err != nil {
		return nil, err
	}
	return uploadJobFrom(raw)
}

// UploadAssetFromURL starts a URL upload job and polls it to completion.
func (c *Client) UploadAssetFromURL(ctx context.Context, srcURL, filename, folderID string, policy PollPolicy) (*UploadJob, error) {
	job, err := awaitJob(ctx, c,
		func(ctx context.Context) (json.RawMessage, error) {
			return c.Post(ctx, "/assets/upload/url", assetUploadRequest{URL: srcURL, Filename: filename, FolderID: folderID})
		},
		func(jobID string) string { return "/assets/upload/url/" + jobID },
		policy,
	)
	if err != nil {
		return nil, err
	}
	return uploadJobDecode(job)
}

// GetAsset fetches asset metadata.
func (c *Client) GetAsset(ctx context.Context, assetID string) (*Asset, error) {
	raw, err := c.Get(ctx, "/assets/"+assetID, nil)
	if err != nil {
		return nil, err
	}
	return assetFrom(raw)
}

// UpdateAsset changes an asset's title and/or tags. Empty values are left
// untouched.
func (c *Client) UpdateAsset(ctx context.Context, assetID, title string, tags []string) (*Asset, error) {
	body := map[string]any{}
	if title != "" {
		body["title"] = title
	}
	if len(tags) > 0 {
		body["tags"] = tags
	}
	raw, err := c.Patch(ctx, "/assets/"+assetID, body)
	if err != nil {
		return nil, err
	}
	return assetFrom(raw)
}

// DeleteAsset deletes an asset.
func (c *Client) DeleteAsset(ctx context.Context, assetID string) error {
	_, err := c.Delete(ctx, "/assets/"+assetID)
	return err
}

func uploadJobFrom(raw json.RawMessage) (*UploadJob, error) {
	job, _, err := decodeJob(raw)
	if err != nil {
		return nil, err
	}
	return uploadJobDecode(job)
}

func uploadJobDecode(job json.RawMessage) (*UploadJob, error) {
	var out UploadJob
	if err := decodeInto(job, &out, "upload job"); err != nil {
		return nil, err
	}
	return &out, nil
}

func assetFrom(raw json.RawMessage) (*Asset, error) {
	var envelope struct {
		Asset Asset `json:"asset"`
	}
	if err := decodeInto(raw, &envelope, "asset"); err != nil {
		return nil, err
	}
	return &envelope.Asset, nil
}
