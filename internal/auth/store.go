package auth

import (
	"sync"
	"time"
)

// Credential is an OAuth credential as held in memory. ExpiresAt is absolute,
// derived from issuance time plus the server-reported lifetime.
type Credential struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
	Scopes       []string
}

// Store holds the current credential, or none. It is the single source of
// truth for "are we authenticated". All access is mutually exclusive; the
// store performs no I/O.
type Store struct {
	mu   sync.Mutex
	cred *Credential
}

// NewStore returns an empty credential store.
func NewStore() *Store {
	return &Store{}
}

// Get returns a copy of the stored credential, or false if none is stored.
func (s *Store) Get() (Credential, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cred == nil {
		return Credential{}, false
	}
	return *s.cred, true
}

// Set replaces the stored credential.
func (s *Store) Set(cred Credential) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cred = &cred
}

// Clear discards the stored credential. This is local-only: the refresh
// token is not revoked with the provider.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cred = nil
}
