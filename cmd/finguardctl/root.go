package main

import (
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "finguardctl",
		Short: "finguardctl - operator CLI for the FinGuard gateway",
		Long: `finguardctl talks to a running FinGuard gateway over HTTP.

It covers the day-to-day operator flows: inspecting the pond, drafting
and broadcasting SMS reports, asking the assistant, and pulling weather
for a location.`,
		Version:      version,
		SilenceUsage: true,
	}

	defaultAddr := os.Getenv("FINGUARD_ADDR")
	if defaultAddr == "" {
		defaultAddr = "http://localhost:8081"
	}
	cmd.PersistentFlags().String("addr", defaultAddr, "Gateway base URL")

	// Add subcommands
	cmd.AddCommand(newPondCommand())
	cmd.AddCommand(newDraftCommand())
	cmd.AddCommand(newBroadcastCommand())
	cmd.AddCommand(newAskCommand())
	cmd.AddCommand(newWeatherCommand())
	cmd.AddCommand(newMarketCommand())

	return cmd
}

func execute() error {
	rootCmd := newRootCommand()
	return rootCmd.Execute()
}
