package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

type fakeRefresher struct {
	calls atomic.Int32
	delay time.Duration
	cred  Credential
	err   error
}

func (f *fakeRefresher) Refresh(ctx context.Context, refreshToken string) (Credential, error) {
	f.calls.Add(1)
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return Credential{}, ctx.Err()
		}
	}
	if f.err != nil {
		return Credential{}, f.err
	}
	return f.cred, nil
}

func expiredCredential() Credential {
	return Credential{
		AccessToken:  "stale",
		RefreshToken: "rt",
		ExpiresAt:    time.Now().Add(-time.Minute),
	}
}

func TestManager_Unauthenticated(t *testing.T) {
	m := NewManager(NewStore(), &fakeRefresher{})
	if _, err := m.Token(context.Background()); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("got %v, want ErrUnauthenticated", err)
	}
}

func TestManager_FreshTokenNotRefreshed(t *testing.T) {
	store := NewStore()
	store.Set(Credential{AccessToken: "good", RefreshToken: "rt", ExpiresAt: time.Now().Add(time.Hour)})
	r := &fakeRefresher{}
	m := NewManager(store, r)

	tok, err := m.Token(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tok != "good" {
		t.Errorf("token = %q, want %q", tok, "good")
	}
	if n := r.calls.Load(); n != 0 {
		t.Errorf("refresher called %d times for a fresh token", n)
	}
}

func TestManager_ConcurrentCallersShareOneRefresh(t *testing.T) {
	store := NewStore()
	store.Set(expiredCredential())
	r := &fakeRefresher{
		delay: 30 * time.Millisecond,
		cred:  Credential{AccessToken: "new", RefreshToken: "rt2", ExpiresAt: time.Now().Add(time.Hour)},
	}
	m := NewManager(store, r)

	const callers = 10
	var wg sync.WaitGroup
	tokens := make([]string, callers)
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tokens[i], errs[i] = m.Token(context.Background())
		}(i)
	}
	wg.Wait()

	for i := 0; i < callers; i++ {
		if errs[i] != nil {
			t.Fatalf("caller %d: unexpected error: %v", i, errs[i])
		}
		if tokens[i] != "new" {
			t.Errorf("caller %d got token %q, want %q", i, tokens[i], "new")
		}
	}
	if n := r.calls.Load(); n != 1 {
		t.Errorf("refresher called %d times for %d concurrent callers, want 1", n, callers)
	}
}

func TestManager_ConcurrentCallersShareOneFailure(t *testing.T) {
	store := NewStore()
	store.Set(expiredCredential())
	r := &fakeRefresher{
		delay: 30 * time.Millisecond,
		err:   fmt.Errorf("token refresh: %w: expired", ErrInvalidGrant),
	}
	m := NewManager(store, r)

	const callers = 10
	var wg sync.WaitGroup
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = m.Token(context.Background())
		}(i)
	}
	wg.Wait()

	for i := 0; i < callers; i++ {
		if !errors.Is(errs[i], ErrRefreshFailed) {
			t.Errorf("caller %d got %v, want ErrRefreshFailed", i, errs[i])
		}
	}
	if n := r.calls.Load(); n != 1 {
		t.Errorf("refresher called %d times, want 1", n)
	}
}

func TestManager_InvalidGrantClearsStore(t *testing.T) {
	store := NewStore()
	store.Set(expiredCredential())
	r := &fakeRefresher{err: fmt.Errorf("token refresh: %w", ErrInvalidGrant)}
	m := NewManager(store, r)

	_, err := m.Token(context.Background())
	if !errors.Is(err, ErrRefreshFailed) {
		t.Fatalf("got %v, want ErrRefreshFailed", err)
	}
	if _, ok := store.Get(); ok {
		t.Error("store still holds a credential after invalid_grant refresh")
	}
}

func TestManager_TransientFailureKeepsStore(t *testing.T) {
	store := NewStore()
	store.Set(expiredCredential())
	r := &fakeRefresher{err: errors.New("connection reset")}
	m := NewManager(store, r)

	_, err := m.Token(context.Background())
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if errors.Is(err, ErrRefreshFailed) {
		t.Error("transient failure classified as refresh_failed")
	}
	if _, ok := store.Get(); !ok {
		t.Error("store cleared on transient failure; a later retry is now impossible")
	}
}

func TestManager_RateLimitedTokenEndpointKeepsStore(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(map[string]string{
			"error":             "rate_limited",
			"error_description": "slow down",
		})
	}))
	defer ts.Close()

	store := NewStore()
	store.Set(expiredCredential())
	flow := NewFlow(FlowConfig{
		ClientID:     "client-1",
		ClientSecret: "secret-1",
		RedirectURI:  "http://127.0.0.1:8080/callback",
		AuthorizeURL: "https://www.example.com/api/oauth/authorize",
		TokenURL:     ts.URL,
	})
	m := NewManager(store, flow)

	_, err := m.Token(context.Background())
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if errors.Is(err, ErrRefreshFailed) {
		t.Errorf("429 from the token endpoint classified as refresh_failed: %v", err)
	}
	if _, ok := store.Get(); !ok {
		t.Error("store cleared on a rate-limited refresh; a later retry is now impossible")
	}
}

func TestManager_RefreshTokenRotationKeepsOldWhenOmitted(t *testing.T) {
	store := NewStore()
	store.Set(expiredCredential())
	r := &fakeRefresher{
		cred: Credential{AccessToken: "new", ExpiresAt: time.Now().Add(time.Hour)},
	}
	m := NewManager(store, r)

	if _, err := m.Token(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cred, _ := store.Get()
	if cred.RefreshToken != "rt" {
		t.Errorf("refresh token = %q, want the previous %q kept", cred.RefreshToken, "rt")
	}
}

func TestManager_ForceRefreshIgnoresFreshness(t *testing.T) {
	store := NewStore()
	store.Set(Credential{AccessToken: "looks-fine", RefreshToken: "rt", ExpiresAt: time.Now().Add(time.Hour)})
	r := &fakeRefresher{
		cred: Credential{AccessToken: "replaced", RefreshToken: "rt2", ExpiresAt: time.Now().Add(time.Hour)},
	}
	m := NewManager(store, r)

	tok, err := m.ForceRefresh(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tok != "replaced" {
		t.Errorf("token = %q, want %q", tok, "replaced")
	}
	if n := r.calls.Load(); n != 1 {
		t.Errorf("refresher called %d times, want 1", n)
	}
}

func TestManager_CallerCancellation(t *testing.T) {
	store := NewStore()
	store.Set(expiredCredential())
	r := &fakeRefresher{delay: time.Second, cred: Credential{AccessToken: "slow"}}
	m := NewManager(store, r)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := m.Token(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("got %v, want context deadline exceeded", err)
	}
}
