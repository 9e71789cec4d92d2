// Package canva is the HTTP gateway to the Canva Connect API: authenticated
// requests with retry and rate-limit handling, plus typed wrappers for the
// endpoints the MCP tools expose. Asynchronous endpoints (uploads, exports,
// autofill) share one generic polling engine in jobs.go.
package canva

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/thellimist/canva-mcp/internal/auth"
	"github.com/thellimist/canva-mcp/internal/logging"
)

// TokenProvider supplies bearer tokens for outbound requests. ForceRefresh
// is invoked after a 401, where the current token is known-bad regardless of
// its recorded expiry.
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
	ForceRefresh(ctx context.Context) (string, error)
}

// Retry policy. 401 is retried exactly once after a forced refresh; 429 and
// transient failures get a bounded number of waits.
const (
	maxTransientAttempts = 4
	maxRateLimitWaits    = 3

	backoffBase = 1 * time.Second
	backoffCap  = 30 * time.Second

	// Used when a 429 arrives without a Retry-After header.
	defaultRetryAfter = 5 * time.Second
)

// ClientConfig configures the API client.
type ClientConfig struct {
	// BaseURL is the REST base, e.g. https://api.canva.com/rest/v1.
	BaseURL string
	Tokens  TokenProvider

	// HTTPClient defaults to a client with a 30s timeout.
	HTTPClient *http.Client
}

// Client issues authenticated requests against the Canva Connect API.
// Safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenProvider
	limits  rateLimits
	log     *slog.Logger

	// sleep is swappable in tests so retry paths run instantly.
	sleep func(ctx context.Context, d time.Duration) error
}

// NewClient builds an API client.
func NewClient(cfg ClientConfig) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		baseURL: cfg.BaseURL,
		http:    httpClient,
		tokens:  cfg.Tokens,
		log:     logging.For("canva"),
		sleep:   sleepCtx,
	}
}

// Get issues a GET request with optional query parameters.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, path, nil, query)
}

// Post issues a POST request with a JSON body (nil for no body).
func (c *Client) Post(ctx context.Context, path string, body any) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPost, path, body, nil)
}

// Patch issues a PATCH request with a JSON body.
func (c *Client) Patch(ctx context.Context, path string, body any) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPatch, path, body, nil)
}

// Delete issues a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

// do sends one logical request, absorbing only the transient failure
// classes: one forced-refresh retry on 401, bounded waits on 429, bounded
// backoff on 5xx and network errors. Everything else surfaces unchanged.
func (c *Client) do(ctx context.Context, method, path string, body any, query url.Values) (json.RawMessage, error) {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
	}

	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}

	reqID := uuid.NewString()[:8]
	log := c.log.With("req_id", reqID, "method", method, "path", path)

	refreshed := false
	transientAttempts := 0
	rateLimitWaits := 0

	for {
		// Honor advisory backoff left behind by other requests' 429s.
		if d := c.limits.wait(time.Now()); d > 0 {
			log.Debug("holding for shared rate limit", "wait", d)
			if err := c.sleep(ctx, d); err != nil {
				return nil, err
			}
		}

		status, respBody, retryAfter, err := c.send(ctx, method, path, payload, query, token)
		if err != nil {
			transientAttempts++
			if transientAttempts >= maxTransientAttempts {
				return nil, &TransientError{Attempts: transientAttempts, Last: err}
			}
			d := backoffDelay(transientAttempts)
			log.Debug("network error, backing off", "attempt", transientAttempts, "wait", d, "error", err)
			if err := c.sleep(ctx, d); err != nil {
				return nil, err
			}
			continue
		}

		switch {
		case status >= 200 && status < 300:
			return respBody, nil

		case status == http.StatusUnauthorized:
			if refreshed {
				return nil, auth.ErrUnauthorized
			}
			refreshed = true
			log.Debug("401 received, forcing token refresh")
			token, err = c.tokens.ForceRefresh(ctx)
			if err != nil {
				return nil, err
			}

		case status == http.StatusTooManyRequests:
			if retryAfter <= 0 {
				retryAfter = defaultRetryAfter
			}
			c.limits.observe(time.Now(), retryAfter)
			rateLimitWaits++
			if rateLimitWaits > maxRateLimitWaits {
				return nil, &RateLimitError{RetryAfter: retryAfter, Attempts: rateLimitWaits}
			}
			log.Debug("rate limited", "retry_after", retryAfter, "attempt", rateLimitWaits)
			if err := c.sleep(ctx, retryAfter); err != nil {
				return nil, err
			}

		case status >= 500:
			transientAttempts++
			if transientAttempts >= maxTransientAttempts {
				return nil, &TransientError{Attempts: transientAttempts, Last: fmt.Errorf("server returned %d", status)}
			}
			d := backoffDelay(transientAttempts)
			log.Debug("server error, backing off", "status", status, "attempt", transientAttempts, "wait", d)
			if err := c.sleep(ctx, d); err != nil {
				return nil, err
			}

		default:
			return nil, apiErrorFrom(status, respBody)
		}
	}
}

// send performs a single HTTP round trip. retryAfter is the parsed
// Retry-After header in seconds form, or 0 when absent.
func (c *Client) send(ctx context.Context, method, path string, payload []byte, query url.Values, token string) (status int, body []byte, retryAfter time.Duration, err error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return 0, nil, 0, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, 0, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, 0, err
	}

	if secs, perr := strconv.Atoi(resp.Header.Get("Retry-After")); perr == nil && secs > 0 {
		retryAfter = time.Duration(secs) * time.Second
	}

	return resp.StatusCode, respBody, retryAfter, nil
}

// backoffDelay is exponential with full jitter: for attempt n, a random
// duration between base*2^(n-1)/2 and base*2^(n-1), capped.
func backoffDelay(attempt int) time.Duration {
	d := backoffBase << (attempt - 1)
	if d > backoffCap {
		d = backoffCap
	}
	half := d / 2
	return half + rand.N(half+1)
}

// sleepCtx waits for d or until ctx is done, whichever comes first.
func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
