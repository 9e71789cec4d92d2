package auth

import "errors"

// Sentinel errors for the auth lifecycle. Callers classify with errors.Is;
// the MCP layer maps them to tool error results.
var (
	// ErrUnauthenticated means no credential is stored at all.
	ErrUnauthenticated = errors.New("not authenticated: create an authorization URL and exchange the code first")

	// ErrInvalidState means the state returned by the provider does not match
	// the one generated for the authorization request.
	ErrInvalidState = errors.New("oauth state mismatch")

	// ErrInvalidGrant means the provider rejected the code or refresh token
	// as invalid, expired or revoked.
	ErrInvalidGrant = errors.New("authorization grant rejected")

	// ErrRefreshFailed means the stored refresh token is dead and the
	// credential has been cleared. The user must re-authenticate.
	ErrRefreshFailed = errors.New("token refresh failed: re-authentication required")

	// ErrUnauthorized means a request was rejected with 401 even after a
	// forced token refresh.
	ErrUnauthorized = errors.New("unauthorized after token refresh")
)
