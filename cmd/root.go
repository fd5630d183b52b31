package cmd

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the mcp-productboard application.
// It is the entry point when the application is called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "mcp-productboard",
	Short: "MCP server for the Productboard API",
	Long: `mcp-productboard is a Model Context Protocol (MCP) server that exposes
the Productboard REST API as tools for conversational AI agents. It covers
features, releases, notes, companies, and products, and can optionally
deliver tool output to Slack channels.

When run without subcommands, it starts the MCP server (equivalent to
'mcp-productboard serve').`,
	// SilenceUsage prevents Cobra from printing the usage message on
	// errors that are handled by the application.
	SilenceUsage: true,
}

// SetVersion sets the version for the root command. Called from the main
// package to inject the build version.
func SetVersion(v string) {
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application.
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "mcp-productboard version %s\n" .Version}}`)

	// Local .env files carry the API tokens during development. A
	// missing file is not an error.
	_ = godotenv.Load()

	// If no subcommand is provided, run the serve command by default
	if len(os.Args) == 1 {
		os.Args = append(os.Args, "serve")
	}

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newServeCmd())
}
