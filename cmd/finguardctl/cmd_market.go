package main

import (
	"net/url"

	"github.com/spf13/cobra"
)

func newMarketCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "market",
		Short: "Browse the marketplace catalog",
		RunE: func(cmd *cobra.Command, _ []string) error {
			category, _ := cmd.Flags().GetString("category")
			q := url.Values{}
			if category != "" {
				q.Set("category", category)
			}
			return getJSON(cmd, "/api/market/items", q)
		},
	}
	cmd.Flags().String("category", "", "Filter by category: MEDICINE | FEED | EQUIPMENT | SEEDS")

	coldStorage := &cobra.Command{
		Use:   "cold-storage",
		Short: "List cold-storage facilities",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return getJSON(cmd, "/api/market/cold-storage", nil)
		},
	}
	cmd.AddCommand(coldStorage)
	return cmd
}
