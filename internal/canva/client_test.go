package canva

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thellimist/canva-mcp/internal/auth"
)

type fakeTokens struct {
	mu           sync.Mutex
	token        string
	next         string
	refreshCalls atomic.Int32
	refreshErr   error
}

func (f *fakeTokens) Token(ctx context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.token, nil
}

func (f *fakeTokens) ForceRefresh(ctx context.Context) (string, error) {
	f.refreshCalls.Add(1)
	if f.refreshErr != nil {
		return "", f.refreshErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.token = f.next
	return f.token, nil
}

// sleepRecorder replaces the client's sleep so retry paths run instantly
// while still capturing the waits that would have happened.
type sleepRecorder struct {
	mu        sync.Mutex
	durations []time.Duration
}

func (s *sleepRecorder) sleep(ctx context.Context, d time.Duration) error {
	s.mu.Lock()
	s.durations = append(s.durations, d)
	s.mu.Unlock()
	return ctx.Err()
}

func (s *sleepRecorder) all() []time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]time.Duration(nil), s.durations...)
}

func newTestClient(t *testing.T, handler http.Handler) (*Client, *fakeTokens, *sleepRecorder) {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	tokens := &fakeTokens{token: "tok-1", next: "tok-2"}
	rec := &sleepRecorder{}
	c := NewClient(ClientConfig{BaseURL: ts.URL, Tokens: tokens, HTTPClient: ts.Client()})
	c.sleep = rec.sleep
	return c, tokens, rec
}

func TestClient_Success(t *testing.T) {
	c, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
		w.Write([]byte(`{"ok":true}`))
	}))

	body, err := c.Get(context.Background(), "/users/me", nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, string(body))
}

func TestClient_401_RefreshAndRetryOnce(t *testing.T) {
	var requests atomic.Int32
	c, tokens, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		if r.Header.Get("Authorization") != "Bearer tok-2" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Write([]byte(`{"ok":true}`))
	}))

	_, err := c.Get(context.Background(), "/users/me", nil)
	require.NoError(t, err)
	assert.Equal(t, int32(2), requests.Load(), "one original request plus one retry")
	assert.Equal(t, int32(1), tokens.refreshCalls.Load(), "exactly one forced refresh")
}

func TestClient_401Twice_SurfacesUnauthorized(t *testing.T) {
	var requests atomic.Int32
	c, tokens, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	}))

	_, err := c.Get(context.Background(), "/users/me", nil)
	require.ErrorIs(t, err, auth.ErrUnauthorized)
	assert.Equal(t, int32(2), requests.Load(), "no retry loop after the second 401")
	assert.Equal(t, int32(1), tokens.refreshCalls.Load())
}

func TestClient_429_HonorsRetryAfter(t *testing.T) {
	var requests atomic.Int32
	c, _, rec := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if requests.Add(1) == 1 {
			w.Header().Set("Retry-After", "5")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(`{}`))
	}))

	_, err := c.Get(context.Background(), "/designs", nil)
	require.NoError(t, err)

	var waited time.Duration
	for _, d := range rec.all() {
		if d > waited {
			waited = d
		}
	}
	assert.GreaterOrEqual(t, waited, 5*time.Second, "must wait at least the advertised Retry-After")
}

func TestClient_429_BoundedRetries(t *testing.T) {
	c, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "1")
		w.WriteHeader(http.StatusTooManyRequests)
	}))

	_, err := c.Get(context.Background(), "/designs", nil)
	var rle *RateLimitError
	require.ErrorAs(t, err, &rle)
	assert.Greater(t, rle.Attempts, maxRateLimitWaits)
}

func TestClient_5xx_RetriesThenSucceeds(t *testing.T) {
	var requests atomic.Int32
	c, _, rec := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if requests.Add(1) <= 2 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{}`))
	}))

	_, err := c.Get(context.Background(), "/designs", nil)
	require.NoError(t, err)
	assert.Equal(t, int32(3), requests.Load())
	assert.Len(t, rec.all(), 2, "one backoff per failed attempt")
}

func TestClient_5xx_Exhausted(t *testing.T) {
	c, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	_, err := c.Get(context.Background(), "/designs", nil)
	var te *TransientError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, maxTransientAttempts, te.Attempts)
}

func TestClient_NetworkError_Transient(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	ts.Close() // every request now fails at the transport level

	tokens := &fakeTokens{token: "tok-1"}
	rec := &sleepRecorder{}
	c := NewClient(ClientConfig{BaseURL: ts.URL, Tokens: tokens})
	c.sleep = rec.sleep

	_, err := c.Get(context.Background(), "/designs", nil)
	var te *TransientError
	require.ErrorAs(t, err, &te)
}

func TestClient_4xx_NeverRetried(t *testing.T) {
	var requests atomic.Int32
	c, _, rec := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"code":"not_found","message":"design missing"}`))
	}))

	_, err := c.Get(context.Background(), "/designs/missing", nil)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "not_found", apiErr.Code)
	assert.Equal(t, "design missing", apiErr.Message)
	assert.Equal(t, int32(1), requests.Load(), "4xx must not be retried")
	assert.Empty(t, rec.all())
}

func TestClient_UnauthenticatedShortCircuits(t *testing.T) {
	var requests atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
	}))
	t.Cleanup(ts.Close)

	c := NewClient(ClientConfig{BaseURL: ts.URL, Tokens: &errTokens{}})
	_, err := c.Get(context.Background(), "/users/me", nil)
	require.ErrorIs(t, err, auth.ErrUnauthenticated)
	assert.Equal(t, int32(0), requests.Load())
}

type errTokens struct{}

func (e *errTokens) Token(ctx context.Context) (string, error) {
	return "", auth.ErrUnauthenticated
}

func (e *errTokens) ForceRefresh(ctx context.Context) (string, error) {
	return "", auth.ErrUnauthenticated
}

func TestBackoffDelay_GrowsAndCaps(t *testing.T) {
	for attempt := 1; attempt <= 8; attempt++ {
		d := backoffDelay(attempt)
		assert.Greater(t, d, time.Duration(0))
		assert.LessOrEqual(t, d, backoffCap)
	}
}

func TestRateLimits_SharedAdvisoryState(t *testing.T) {
	var rl rateLimits
	now := time.Now()
	assert.Zero(t, rl.wait(now))

	rl.observe(now, 5*time.Second)
	assert.InDelta(t, float64(5*time.Second), float64(rl.wait(now)), float64(50*time.Millisecond))

	// A shorter hint must not shrink an existing hold.
	rl.observe(now, time.Second)
	assert.GreaterOrEqual(t, rl.wait(now), 4*time.Second)

	assert.Zero(t, rl.wait(now.Add(6*time.Second)))
}

func TestClient_429_UpdatesSharedState(t *testing.T) {
	var requests atomic.Int32
	c, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if requests.Add(1) == 1 {
			w.Header().Set("Retry-After", "7")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(`{}`))
	}))

	_, err := c.Get(context.Background(), "/designs", nil)
	require.NoError(t, err)
	assert.Greater(t, c.limits.wait(time.Now()), time.Duration(0),
		"a 429 must leave advisory state for other requests")
}

func TestClient_ContextCancelDuringBackoff(t *testing.T) {
	c, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	// Real sleep so cancellation actually interrupts a wait.
	c.sleep = sleepCtx

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	_, err := c.Get(ctx, "/designs", nil)
	require.ErrorIs(t, err, context.Canceled)
}

func TestAPIError_UnparseableBody(t *testing.T) {
	e := apiErrorFrom(http.StatusBadRequest, []byte("plain text failure"))
	assert.Equal(t, http.StatusBadRequest, e.Status)
	assert.Equal(t, "plain text failure", e.Message)
	assert.Empty(t, e.Code)
}

var _ TokenProvider = (*fakeTokens)(nil)
var _ TokenProvider = (*errTokens)(nil)
