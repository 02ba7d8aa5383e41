package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	_ "kb-integration/docs" // Swagger docs
)

var Version = "dev"

// @title       Knowledge Base Integration API
// @description GitHub pull request intake, repository ingestion configs and versioned documentation proposals.
// @version     1
// @host        localhost:8080
// @schemes     http
// @securityDefinitions.apikey BearerAuth
// @in          header
// @name        Authorization
func main() {
	rootCmd := &cobra.Command{
		Use:     "kb-integration",
		Short:   "Change-integration pipeline for the documentation knowledge base",
		Version: Version,
		// Running the binary without a subcommand serves.
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
