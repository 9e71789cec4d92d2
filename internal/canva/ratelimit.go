package canva

import (
	"sync"
	"time"
)

// rateLimits is shared, advisory backoff state. When any request observes a
// 429 with Retry-After, other requests consult it before sending and avoid
// piling on. Races here only cost an extra 429, not correctness.
type rateLimits struct {
	mu    sync.Mutex
	until time.Time
}

// observe records a Retry-After hint starting from now.
func (r *rateLimits) observe(now time.Time, retryAfter time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	until := now.Add(retryAfter)
	if until.After(r.until) {
		r.until = until
	}
}

// wait returns how long a new request should hold off, or 0.
func (r *rateLimits) wait(now time.Time) time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	if d := r.until.Sub(now); d > 0 {
		return d
	}
	return 0
}
