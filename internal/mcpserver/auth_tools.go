package mcpserver

import (
	"context"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

// defaultScopes is requested when the caller does not name any. Matches the
// minimum surface the read/write tools need.
var defaultScopes = []string{
	"asset:read",
	"asset:write",
	"design:meta:read",
	"folder:read",
}

func (s *Server) authTools() []toolDef {
	return []toolDef{
		{
			tool: mcp.NewTool("create_authorization_url",
				mcp.WithDescription("Create a Canva OAuth authorization URL with PKCE. Returns the URL to open in a browser plus the code_verifier and state needed later by exchange_code_for_token. Keep both; they are single-use and not stored server-side."),
				mcp.WithString("scopes",
					mcp.Description("Space-separated OAuth scopes to request. Defaults to: "+strings.Join(defaultScopes, " ")),
				),
			),
			handler: s.handleCreateAuthorizationURL,
		},
		{
			tool: mcp.NewTool("exchange_code_for_token",
				mcp.WithDescription("Exchange an authorization code for tokens. The state returned on the redirect must match the one from create_authorization_url."),
				mcp.WithString("authorization_code", mcp.Required(), mcp.Description("The code from the OAuth redirect")),
				mcp.WithString("code_verifier", mcp.Required(), mcp.Description("The code_verifier from create_authorization_url")),
				mcp.WithString("expected_state", mcp.Required(), mcp.Description("The state from create_authorization_url")),
				mcp.WithString("received_state", mcp.Required(), mcp.Description("The state parameter on the OAuth redirect")),
			),
			handler: s.handleExchangeCode,
		},
		{
			tool: mcp.NewTool("refresh_access_token",
				mcp.WithDescription("Force a token refresh using the stored refresh token."),
			),
			handler: s.handleRefreshToken,
		},
		{
			tool: mcp.NewTool("get_oauth_config",
				mcp.WithDescription("Show the OAuth configuration and current authentication state."),
			),
			handler: s.handleGetOAuthConfig,
		},
		{
			tool: mcp.NewTool("clear_tokens",
				mcp.WithDescription("Discard the stored credential. Local-only: the refresh token is not revoked with Canva."),
			),
			handler: s.handleClearTokens,
		},
	}
}

func (s *Server) handleCreateAuthorizationURL(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	scopes := defaultScopes
	if raw := req.GetString("scopes", ""); raw != "" {
		scopes = strings.Fields(raw)
	}
	ar, err := s.flow.CreateAuthorizationURL(scopes)
	if err != nil {
		return errResult(err)
	}
	return jsonResult(ar)
}

func (s *Server) handleExchangeCode(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	code, err := req.RequireString("authorization_code")
	if err != nil {
		return errResult(err)
	}
	verifier, err := req.RequireString("code_verifier")
	if err != nil {
		return errResult(err)
	}
	expectedState, err := req.RequireString("expected_state")
	if err != nil {
		return errResult(err)
	}
	receivedState, err := req.RequireString("received_state")
	if err != nil {
		return errResult(err)
	}

	cred, err := s.flow.Exchange(ctx, code, verifier, expectedState, receivedState)
	if err != nil {
		return errResult(err)
	}
	s.store.Set(cred)

	return jsonResult(map[string]any{
		"authenticated": true,
		"expires_at":    cred.ExpiresAt,
		"scopes":        cred.Scopes,
	})
}

func (s *Server) handleRefreshToken(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if _, err := s.manager.ForceRefresh(ctx); err != nil {
		return errResult(err)
	}
	cred, _ := s.store.Get()
	return jsonResult(map[string]any{
		"refreshed":  true,
		"expires_at": cred.ExpiresAt,
	})
}

func (s *Server) handleGetOAuthConfig(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	out := map[string]any{
		"client_id_configured": s.cfg.ClientID != "",
		"redirect_uri":         s.cfg.RedirectURI,
		"api_base_url":         s.cfg.APIBaseURL,
		"authenticated":        false,
	}
	if cred, ok := s.store.Get(); ok {
		out["authenticated"] = true
		out["expires_at"] = cred.ExpiresAt
		out["scopes"] = cred.Scopes
	}
	return jsonResult(out)
}

func (s *Server) handleClearTokens(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.store.Clear()
	return mcp.NewToolResultText("Stored credential cleared. The refresh token was not revoked with Canva; re-authentication is required for further API calls."), nil
}
