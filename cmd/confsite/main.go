// Command confsite serves the proposal submission API.
//
// @title Conference Site API
// @version 1.0
// @description Proposal submission and speaker invitations for the conference site.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

const appName = "confsite"

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           appName,
		Short:         "Conference proposal submission service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(serveCmd(), migrateCmd(), tokenCmd(), &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s (build: %s)\n", appName, Version, BuildTime)
		},
	})

	return cmd
}
