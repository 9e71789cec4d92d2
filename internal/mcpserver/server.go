// Package mcpserver exposes the Canva Connect API as MCP tools over stdio.
// Each tool maps to exactly one of: an authorization flow operation, a
// direct API passthrough, or a blocking async-job invocation.
package mcpserver

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/thellimist/canva-mcp/internal/auth"
	"github.com/thellimist/canva-mcp/internal/canva"
	"github.com/thellimist/canva-mcp/internal/config"
	"github.com/thellimist/canva-mcp/internal/logging"
)

// Options configures the server.
type Options struct {
	Config  *config.Config
	Version string

	// IncludeTools / ExcludeTools are comma-separated tool name filters.
	// At most one may be set.
	IncludeTools string
	ExcludeTools string

	// HTTPClient overrides the outbound client, for tests.
	HTTPClient *http.Client
}

// Server wires the auth components and the API client to an MCP stdio server.
type Server struct {
	mcp     *server.MCPServer
	cfg     *config.Config
	version string
	store   *auth.Store
	flow    *auth.Flow
	manager *auth.Manager
	client  *canva.Client
	log     *slog.Logger
}

// toolDef pairs a tool declaration with its handler so registration can be
// filtered by name before anything is added to the MCP server.
type toolDef struct {
	tool    mcp.Tool
	handler server.ToolHandlerFunc
}

// New constructs the full stack: credential store, authorization flow,
// token manager, API client, and the MCP server with its tools registered.
func New(opts Options) (*Server, error) {
	cfg := opts.Config

	store := auth.NewStore()
	flow := auth.NewFlow(auth.FlowConfig{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		RedirectURI:  cfg.RedirectURI,
		AuthorizeURL: cfg.AuthorizeURL(),
		TokenURL:     cfg.TokenURL(),
		HTTPClient:   opts.HTTPClient,
	})
	manager := auth.NewManager(store, flow)
	client := canva.NewClient(canva.ClientConfig{
		BaseURL:    cfg.APIBaseURL,
		Tokens:     manager,
		HTTPClient: opts.HTTPClient,
	})

	s := &Server{
		cfg:     cfg,
		version: opts.Version,
		store:   store,
		flow:    flow,
		manager: manager,
		client:  client,
		log:     logging.For("mcpserver"),
	}

	s.mcp = server.NewMCPServer("canva-mcp", opts.Version,
		server.WithToolCapabilities(false),
	)

	defs, err := filterTools(s.toolDefs(),
		parseToolList(opts.IncludeTools), parseToolList(opts.ExcludeTools))
	if err != nil {
		return nil, err
	}
	for _, d := range defs {
		s.mcp.AddTool(d.tool, d.handler)
	}
	s.log.Info("tools registered", "count", len(defs))

	return s, nil
}

// ServeStdio runs the MCP protocol over stdin/stdout until the client
// disconnects.
func (s *Server) ServeStdio(ctx context.Context) error {
	s.log.Info("serving MCP over stdio")
	return server.ServeStdio(s.mcp, server.WithStdioContextFunc(
		func(context.Context) context.Context { return ctx },
	))
}

// toolDefs assembles every tool the server can expose, grouped by API area.
func (s *Server) toolDefs() []toolDef {
	var defs []toolDef
	defs = append(defs, s.authTools()...)
	defs = append(defs, s.userTools()...)
	defs = append(defs, s.designTools()...)
	defs = append(defs, s.assetTools()...)
	defs = append(defs, s.folderTools()...)
	defs = append(defs, s.exportTools()...)
	defs = append(defs, s.brandTemplateTools()...)
	defs = append(defs, s.autofillTools()...)
	defs = append(defs, s.commentTools()...)
	defs = append(defs, s.utilityTools()...)
	return defs
}

// pollPolicy builds the polling policy for a blocking job tool, honoring an
// optional timeout_seconds argument.
func pollPolicy(req mcp.CallToolRequest) canva.PollPolicy {
	p := canva.DefaultPollPolicy()
	if secs := req.GetInt("timeout_seconds", 0); secs > 0 {
		p.Timeout = time.Duration(secs) * time.Second
	}
	return p
}

// jsonResult marshals v as indented JSON into a text tool result.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError("failed to encode result: " + err.Error()), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// rawResult returns a provider response body verbatim.
func rawResult(raw json.RawMessage) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(string(raw)), nil
}

// errResult converts an error into a tool error result. Errors never crash
// the host; everything surfaces as a typed message to the caller.
func errResult(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}
