// Package cmd contains the CLI commands of the storefront dashboard server.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version is the current version of the server
var Version = "0.1.0"

var configPath string

var rootCmd = &cobra.Command{
	Use:   "server",
	Short: "Storefront analytics dashboard backend",
	Long: `server loads the storefront table (CSV or XLSX, local or remote), caches it
in SQLite and serves the dashboard charts as Plotly-compatible JSON.

Examples:
  server serve                               # Start the HTTP API
  server sync                                # Refresh the cached snapshot
  server render top-rated --min-rating 4.7   # Print one figure as JSON
  server render business-mix --out mix.png   # Export a bar chart as PNG`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default: ./storefront.yaml)")
}
