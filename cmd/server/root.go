package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "server",
	Short: "Delivery notes API",
	Long: `Multi-tenant API for clients, projects and delivery notes.

Delivery notes can be signed: the signature and the rendered PDF are
uploaded to content-addressed storage and their URLs stored on the note.
Running without a subcommand starts the HTTP server.`,
	SilenceUsage: true,
	RunE:         runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(versionCmd)
}
