package canva

import (
	"context"
	"encoding/json"
)

// AutofillJob instantiates a brand template with a dataset, producing a new
// design.
type AutofillJob struct {
	ID              string    `json:"id"`
	Status          JobStatus `json:"status"`
	BrandTemplateID string    `json:"brand_template_id,omitempty"`
	DesignID        string    `json:"design_id,omitempty"`
	CreatedAt       string    `json:"created_at,omitempty"`
	CompletedAt     string    `json:"completed_at,omitempty"`
	Error           *JobError `json:"error,omitempty"`
}

type autofillRequest struct {
	BrandTemplateID string         `json:"brand_template_id"`
	Dataset         map[string]any `json:"dataset"`
}

// CreateDesignAutofillJob starts an autofill job without waiting. dataset
// maps template field names to their fill values.
func (c *Client) CreateDesignAutofillJob(ctx context.Context, brandTemplateID string, dataset map[string]any) (*AutofillJob, error) {
	raw, err := c.Post(ctx, "/autofills", autofillRequest{BrandTemplateID: brandTemplateID, Dataset: dataset})
	if err != nil {
		return nil, err
	}
	return autofillJobFrom(raw)
}

// GetDesignAutofillJob fetches the current state of an autofill job.
func (c *Client) GetDesignAutofillJob(ctx context.Context, jobID string) (*AutofillJob, error) {
	raw, err := c.Get(ctx, "/autofills/"+jobID, nil)
	if err != nil {
		return nil, err
	}
	return autofillJobFrom(raw)
}

// AutofillDesign starts an autofill job and polls it to completion.
func (c *Client) AutofillDesign(ctx context.Context, brandTemplateID string, dataset map[string]any, policy PollPolicy) (*AutofillJob, error) {
	job, err := awaitJob(ctx, c,
		func(ctx context.Context) (json.RawMessage, error) {
			return c.Post(ctx, "/autofills", autofillRequest{BrandTemplateID: brandTemplateID, Dataset: dataset})
		},
		func(jobID string) string { return "/autofills/" + jobID },
		policy,
	)
	if err != nil {
		return nil, err
	}
	var out AutofillJob
	if err := decodeInto(job, &out, "autofill job"); err != nil {
		return nil, err
	}
	return &out, nil
}

func autofillJobFrom(raw json.RawMessage) (*AutofillJob, error) {
	job, _, err := decodeJob(raw)
	if err != nil {
		return nil, err
	}
	var out AutofillJob
	if err := decodeInto(job, &out, "autofill job"); err != nil {
		return nil, err
	}
	return &out, nil
}
