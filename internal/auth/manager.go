package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/thellimist/canva-mcp/internal/logging"
)

// refreshSafetyMargin is how close to expiry a token may get before it is
// treated as expired. Covers clock skew and in-flight request latency.
const refreshSafetyMargin = 60 * time.Second

// refreshTimeout bounds a coalesced refresh so it cannot outlive every
// waiter indefinitely.
const refreshTimeout = 30 * time.Second

// Refresher exchanges a refresh token for a new credential.
type Refresher interface {
	Refresh(ctx context.Context, refreshToken string) (Credential, error)
}

// Manager hands out valid access tokens. Concurrent callers that all find
// the token expired share a single network refresh; every waiter receives
// the one outcome.
type Manager struct {
	store     *Store
	refresher Refresher
	group     singleflight.Group
	log       *slog.Logger

	// now is swappable for tests.
	now func() time.Time
}

// NewManager builds a token manager over the given store and refresher.
func NewManager(store *Store, refresher Refresher) *Manager {
	return &Manager{
		store:     store,
		refresher: refresher,
		log:       logging.For("auth"),
		now:       time.Now,
	}
}

// Token returns a non-expired access token, refreshing first if the stored
// one is within the safety margin of expiry.
func (m *Manager) Token(ctx context.Context) (string, error) {
	cred, ok := m.store.Get()
	if !ok {
		return "", ErrUnauthenticated
	}
	if m.fresh(cred) {
		return cred.AccessToken, nil
	}
	return m.refresh(ctx, false)
}

// ForceRefresh refreshes regardless of the stored expiry. Used by the HTTP
// gateway after a 401, where the token is known-bad whatever its expiry says.
func (m *Manager) ForceRefresh(ctx context.Context) (string, error) {
	if _, ok := m.store.Get(); !ok {
		return "", ErrUnauthenticated
	}
	return m.refresh(ctx, true)
}

func (m *Manager) fresh(cred Credential) bool {
	return cred.ExpiresAt.Sub(m.now()) > refreshSafetyMargin
}

// refresh coalesces concurrent refreshes into one network call via
// singleflight. DoChan rather than Do so each waiter stays interruptible by
// its own context; the shared call itself is detached from any single
// caller's cancellation and bounded by refreshTimeout instead.
func (m *Manager) refresh(ctx context.Context, force bool) (string, error) {
	ch := m.group.DoChan("refresh", func() (any, error) {
		rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), refreshTimeout)
		defer cancel()
		return m.doRefresh(rctx, force)
	})

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	}
}

func (m *Manager) doRefresh(ctx context.Context, force bool) (string, error) {
	cred, ok := m.store.Get()
	if !ok {
		return "", ErrUnauthenticated
	}
	// A refresh that completed while this call was queued may have already
	// replaced the credential. Skipped when forced: a 401 proves the token
	// bad regardless of its recorded expiry.
	if !force && m.fresh(cred) {
		return cred.AccessToken, nil
	}
	if cred.RefreshToken == "" {
		m.store.Clear()
		return "", fmt.Errorf("%w: no refresh token stored", ErrRefreshFailed)
	}

	m.log.Debug("refreshing access token")
	fresh, err := m.refresher.Refresh(ctx, cred.RefreshToken)
	if err != nil {
		if errors.Is(err, ErrInvalidGrant) {
			// The refresh token is dead; keeping it would make every future
			// call repeat the same doomed refresh.
			m.store.Clear()
			m.log.Warn("refresh token rejected, credential cleared")
			return "", fmt.Errorf("%w: %v", ErrRefreshFailed, err)
		}
		// Transient failure: keep stored state so a later call can retry.
		return "", err
	}

	// Providers may omit the refresh token when it is not rotated.
	if fresh.RefreshToken == "" {
		fresh.RefreshToken = cred.RefreshToken
	}
	m.store.Set(fresh)
	return fresh.AccessToken, nil
}
