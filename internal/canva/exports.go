package canva

import (
	"context"
	"encoding/json"
)

// ExportJob renders a design into a downloadable file.
type ExportJob struct {
	ID          string    `json:"id"`
	Status      JobStatus `json:"status"`
	FileType    string    `json:"file_type,omitempty"`
	DownloadURL string    `json:"download_url,omitempty"`
	URLs        []string  `json:"urls,omitempty"`
	CreatedAt   string    `json:"created_at,omitempty"`
	CompletedAt string    `json:"completed_at,omitempty"`
	Error       *JobError `json:"error,omitempty"`
}

// ExportFileTypes are the formats Canva can export a design to.
var ExportFileTypes = []string{"pdf", "jpg", "png", "gif", "pptx", "mp4"}

type exportRequest struct {
	FileType  string `json:"file_type"`
	PageRange string `json:"page_range,omitempty"`
}

// CreateDesignExportJob starts an export job without waiting.
func (c *Client) CreateDesignExportJob(ctx context.Context, designID, fileType, pageRange string) (*ExportJob, error) {
	raw, err := c.Post(ctx, "/designs/"+designID+"/exports", exportRequest{FileType: fileType, PageRange: pageRange})
	if err != nil {
		return nil, err
	}
	return exportJobFrom(raw)
}

// GetDesignExportJob fetches the current state of an export job.
func (c *Client) GetDesignExportJob(ctx context.Context, jobID string) (*ExportJob, error) {
	raw, err := c.Get(ctx, "/exports/"+jobID, nil)
	if err != nil {
		return nil, err
	}
	return exportJobFrom(raw)
}

// ExportDesign starts an export job and polls it to completion.
func (c *Client) ExportDesign(ctx context.Context, designID, fileType, pageRange string, policy PollPolicy) (*ExportJob, error) {
	job, err := awaitJob(ctx, c,
		func(ctx context.Context) (json.RawMessage, error) {
			return c.Post(ctx, "/designs/"+designID+"/exports", exportRequest{FileType: fileType, PageRange: pageRange})
		},
		func(jobID string) string { return "/exports/" + jobID },
		policy,
	)
	if err != nil {
		return nil, err
	}
	var out ExportJob
	if err := decodeInto(job, &out, "export job"); err != nil {
		return nil, err
	}
	return &out, nil
}

func exportJobFrom(raw json.RawMessage) (*ExportJob, error) {
	job, _, err := decodeJob(raw)
	if err != nil {
		return nil, err
	}
	var out ExportJob
	if err := decodeInto(job, &out, "export job"); err != nil {
		return nil, err
	}
	return &out, nil
}
