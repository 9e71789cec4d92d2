package canva

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrJobTimeout means a job was still in progress when the polling deadline
// elapsed. The job may yet complete on the provider side; we just stop
// observing it.
var ErrJobTimeout = errors.New("job did not finish before the timeout")

// APIError is a non-retryable provider rejection (4xx other than 401/429).
// Code and Message carry the provider's own error body when parseable.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("canva API error %d: %s: %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("canva API error %d: %s", e.Status, e.Message)
}

// apiErrorFrom builds an APIError from a response body, which Canva shapes
// as {"code": ..., "message": ...} when it cooperates.
func apiErrorFrom(status int, body []byte) *APIError {
	e := &APIError{Status: status}
	var parsed struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	if json.Unmarshal(body, &parsed) == nil && (parsed.Code != "" || parsed.Message != "") {
		e.Code = parsed.Code
		e.Message = parsed.Message
	} else {
		e.Message = string(body)
	}
	return e
}

// RateLimitError means the request was still rate-limited after the bounded
// number of waits.
type RateLimitError struct {
	RetryAfter time.Duration
	Attempts   int
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limited after %d attempts (retry after %s)", e.Attempts, e.RetryAfter)
}

// TransientError means a request kept failing with network errors or 5xx
// responses through the bounded retry budget.
type TransientError struct {
	Attempts int
	Last     error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("request failed after %d attempts: %v", e.Attempts, e.Last)
}

func (e *TransientError) Unwrap() error { return e.Last }

// JobFailedError is a job that reached the failed status. This is a business
// outcome reported by the provider, never retried automatically.
type JobFailedError struct {
	JobID   string
	Code    string
	Message string
}

func (e *JobFailedError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("job %s failed: %s: %s", e.JobID, e.Code, e.Message)
	}
	return fmt.Sprintf("job %s failed: %s", e.JobID, e.Message)
}
