package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/thellimist/canva-mcp/internal/logging"
)

// AuthorizationRequest is the result of CreateAuthorizationURL. The verifier
// and state are returned to the caller for out-of-band persistence; they are
// not stored server-side and each pair is consumed by at most one exchange.
type AuthorizationRequest struct {
	URL          string `json:"authorization_url"`
	CodeVerifier string `json:"code_verifier"`
	State        string `json:"state"`
}

// Flow generates PKCE authorization requests and exchanges authorization
// codes and refresh tokens for credentials at the provider's token endpoint.
type Flow struct {
	conf       oauth2.Config
	httpClient *http.Client
	log        *slog.Logger
}

// FlowConfig carries the provider endpoints and client registration values.
type FlowConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
	AuthorizeURL string
	TokenURL     string

	// HTTPClient is used for token endpoint requests. Defaults to a client
	// with a 30s timeout.
	HTTPClient *http.Client
}

// NewFlow builds an authorization flow. Canva authenticates the token
// endpoint with HTTP basic auth (client_id:client_secret).
func NewFlow(cfg FlowConfig) *Flow {
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Flow{
		conf: oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURI,
			Endpoint: oauth2.Endpoint{
				AuthURL:   cfg.AuthorizeURL,
				TokenURL:  cfg.TokenURL,
				AuthStyle: oauth2.AuthStyleInHeader,
			},
		},
		httpClient: cfg.HTTPClient,
		log:        logging.For("auth"),
	}
}

// CreateAuthorizationURL generates a fresh PKCE verifier and state and builds
// the provider's authorization URL for the given scopes.
func (f *Flow) CreateAuthorizationURL(scopes []string) (*AuthorizationRequest, error) {
	verifier, err := GenerateCodeVerifier()
	if err != nil {
		return nil, fmt.Errorf("generate code verifier: %w", err)
	}
	state, err := GenerateState()
	if err != nil {
		return nil, fmt.Errorf("generate state: %w", err)
	}

	conf := f.conf
	conf.Scopes = scopes

	// Canva expects the lowercase "s256" method name.
	url := conf.AuthCodeURL(state,
		oauth2.SetAuthURLParam("code_challenge", GenerateCodeChallenge(verifier)),
		oauth2.SetAuthURLParam("code_challenge_method", "s256"),
	)

	f.log.Debug("authorization URL created", "scopes", strings.Join(scopes, " "))

	return &AuthorizationRequest{URL: url, CodeVerifier: verifier, State: state}, nil
}

// Exchange redeems an authorization code for a credential. The received
// state must match the expected one; on mismatch no network call is made.
// The verifier is single-use by protocol contract, so a failed exchange is
// never retried with the same verifier.
func (f *Flow) Exchange(ctx context.Context, code, verifier, expectedState, receivedState string) (Credential, error) {
	if receivedState != expectedState {
		return Credential{}, ErrInvalidState
	}

	tok, err := f.conf.Exchange(f.withHTTPClient(ctx), code, oauth2.VerifierOption(verifier))
	if err != nil {
		return Credential{}, classifyTokenError("code exchange", err)
	}

	cred := credentialFromToken(tok)
	f.log.Info("code exchange successful", "expires_at", cred.ExpiresAt)
	return cred, nil
}

// Refresh obtains a new credential using a refresh token.
func (f *Flow) Refresh(ctx context.Context, refreshToken string) (Credential, error) {
	src := f.conf.TokenSource(f.withHTTPClient(ctx), &oauth2.Token{RefreshToken: refreshToken})
	tok, err := src.Token()
	if err != nil {
		return Credential{}, classifyTokenError("token refresh", err)
	}

	cred := credentialFromToken(tok)
	f.log.Info("token refresh successful", "expires_at", cred.ExpiresAt)
	return cred, nil
}

func (f *Flow) withHTTPClient(ctx context.Context) context.Context {
	return context.WithValue(ctx, oauth2.HTTPClient, f.httpClient)
}

// classifyTokenError separates grant rejections from everything else. Only
// the RFC 6749 grant-family error codes invalidate stored state upstream; a
// rate-limited or failing token endpoint is transient and must leave the
// stored credential alone so a later attempt can succeed.
func classifyTokenError(op string, err error) error {
	var re *oauth2.RetrieveError
	if errors.As(err, &re) {
		switch re.ErrorCode {
		case "invalid_grant", "invalid_client", "unauthorized_client":
			return fmt.Errorf("%s: %w: %s %s", op, ErrInvalidGrant, re.ErrorCode, re.ErrorDescription)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}

func credentialFromToken(tok *oauth2.Token) Credential {
	cred := Credential{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		ExpiresAt:    tok.Expiry,
	}
	if scope, ok := tok.Extra("scope").(string); ok {
		cred.Scopes = strings.Fields(scope)
	}
	return cred
}
