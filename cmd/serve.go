package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thellimist/canva-mcp/internal/config"
	"github.com/thellimist/canva-mcp/internal/logging"
	"github.com/thellimist/canva-mcp/internal/mcpserver"
)

var (
	includeTools string
	excludeTools string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP server on stdio",
	Long: `Starts the Canva MCP server on stdio.

Requires CANVA_CLIENT_ID, CANVA_CLIENT_SECRET and CANVA_REDIRECT_URI to be
set in the environment (or a .env file in the working directory).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		logging.Init(cfg.LogLevel)

		if includeTools != "" && excludeTools != "" {
			return fmt.Errorf("--include-tools and --exclude-tools cannot be used together")
		}

		srv, err := mcpserver.New(mcpserver.Options{
			Config:       cfg,
			Version:      appVersion,
			IncludeTools: includeTools,
			ExcludeTools: excludeTools,
		})
		if err != nil {
			return err
		}

		return srv.ServeStdio(cmd.Context())
	},
}

func init() {
	serveCmd.Flags().StringVar(&includeTools, "include-tools", "", "Comma-separated list of tool names to expose (all others are hidden)")
	serveCmd.Flags().StringVar(&excludeTools, "exclude-tools", "", "Comma-separated list of tool names to hide")
}
