package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var appVersion = "dev"

func SetVersion(v string) {
	appVersion = v
}

var rootCmd = &cobra.Command{
	Use:   "canva-mcp",
	Short: "MCP server for the Canva Connect API",
	Long:  "canva-mcp exposes the Canva Connect API as MCP tools over stdio, handling OAuth and async job polling.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("canva-mcp v%s\n", appVersion)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

func Execute() error {
	rootCmd.Version = appVersion
	return rootCmd.Execute()
}
