package canva

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// JobStatus is the provider-reported state of an asynchronous job. Status
// only moves forward: in_progress to exactly one of success or failed.
type JobStatus string

const (
	JobInProgress JobStatus = "in_progress"
	JobSuccess    JobStatus = "success"
	JobFailed     JobStatus = "failed"
)

// Terminal reports whether the status is success or failed.
func (s JobStatus) Terminal() bool {
	return s == JobSuccess || s == JobFailed
}

// JobError is the provider's failure report inside a job body.
type JobError struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

// PollPolicy controls the polling loop for one job. Intervals grow from
// Initial by Factor up to MaxInterval, so slow jobs cost few requests.
type PollPolicy struct {
	Initial     time.Duration
	Factor      float64
	MaxInterval time.Duration
	Timeout     time.Duration
}

// DefaultPollPolicy is suitable for uploads and exports, which usually
// finish within a minute.
func DefaultPollPolicy() PollPolicy {
	return PollPolicy{
		Initial:     1 * time.Second,
		Factor:      1.5,
		MaxInterval: 10 * time.Second,
		Timeout:     2 * time.Minute,
	}
}

// jobHeader is the part of every job body the engine itself needs. The rest
// of the body is kind-specific and passed through untouched.
type jobHeader struct {
	ID           string    `json:"id"`
	Status       JobStatus `json:"status"`
	Error        *JobError `json:"error,omitempty"`
	ErrorMessage string    `json:"error_message,omitempty"`
}

// awaitJob is the generic job engine: submit a job-creating request, then
// poll its status endpoint at growing intervals until the job is terminal,
// the policy timeout elapses, or ctx is cancelled. On success it returns the
// raw job body; the engine keeps no history beyond the active poll.
//
// A failed job surfaces as *JobFailedError and is never retried here: job
// failure is a content outcome, not a transient fault.
func awaitJob(ctx context.Context, c *Client, create func(ctx context.Context) (json.RawMessage, error), pollPath func(jobID string) string, policy PollPolicy) (json.RawMessage, error) {
	raw, err := create(ctx)
	if err != nil {
		return nil, err
	}
	job, hdr, err := decodeJob(raw)
	if err != nil {
		return nil, err
	}

	deadline := time.Now().Add(policy.Timeout)
	interval := policy.Initial

	for {
		switch hdr.Status {
		case JobSuccess:
			return job, nil
		case JobFailed:
			return nil, failedError(hdr)
		}

		if time.Now().After(deadline) {
			return nil, fmt.Errorf("%w: job %s still %s after %s", ErrJobTimeout, hdr.ID, hdr.Status, policy.Timeout)
		}

		if err := c.sleep(ctx, interval); err != nil {
			return nil, err
		}
		if next := time.Duration(float64(interval) * policy.Factor); next < policy.MaxInterval {
			interval = next
		} else {
			interval = policy.MaxInterval
		}

		raw, err = c.Get(ctx, pollPath(hdr.ID), nil)
		if err != nil {
			return nil, err
		}
		job, hdr, err = decodeJob(raw)
		if err != nil {
			return nil, err
		}
	}
}

// decodeJob unwraps the {"job": {...}} envelope and extracts the header.
func decodeJob(raw json.RawMessage) (json.RawMessage, jobHeader, error) {
	var envelope struct {
		Job json.RawMessage `json:"job"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil || envelope.Job == nil {
		return nil, jobHeader{}, fmt.Errorf("response missing job envelope: %s", raw)
	}
	var hdr jobHeader
	if err := json.Unmarshal(envelope.Job, &hdr); err != nil {
		return nil, jobHeader{}, fmt.Errorf("decode job: %w", err)
	}
	if hdr.ID == "" {
		return nil, jobHeader{}, fmt.Errorf("job body missing id: %s", envelope.Job)
	}
	return envelope.Job, hdr, nil
}

func failedError(hdr jobHeader) *JobFailedError {
	e := &JobFailedError{JobID: hdr.ID}
	if hdr.Error != nil {
		e.Code = hdr.Error.Code
		e.Message = hdr.Error.Message
	}
	if e.Message == "" {
		e.Message = hdr.ErrorMessage
	}
	if e.Message == "" {
		e.Message = "job failed without a reported reason"
	}
	return e
}
