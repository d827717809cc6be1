package main

import (
	"strconv"

	"github.com/spf13/cobra"
)

func newPondCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pond",
		Short: "Inspect and manipulate the pond",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return getJSON(cmd, "/api/pond", nil)
		},
	}

	metrics := &cobra.Command{
		Use:   "metrics",
		Short: "Update pond metrics (blank flags leave a metric unchanged)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			body := map[string]string{}
			for _, name := range []string{"temp", "ph", "oxygen", "ammonia"} {
				if v, _ := cmd.Flags().GetString(name); v != "" {
					body[name] = v
				}
			}
			return postJSON(cmd, "/api/pond/metrics", body)
		},
	}
	metrics.Flags().String("temp", "", "Water temperature, °C")
	metrics.Flags().String("ph", "", "pH")
	metrics.Flags().String("oxygen", "", "Dissolved oxygen, mg/L")
	metrics.Flags().String("ammonia", "", "Ammonia, mg/L")

	health := &cobra.Command{
		Use:   "health <score>",
		Short: "Set the health score (0-100)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			score, err := strconv.Atoi(args[0])
			if err != nil {
				return err
			}
			return postJSON(cmd, "/api/pond/health", map[string]int{"score": score})
		},
	}

	crisis := &cobra.Command{
		Use:   "crisis",
		Short: "Trigger the crisis simulation",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return postJSON(cmd, "/api/pond/crisis", map[string]any{})
		},
	}

	reset := &cobra.Command{
		Use:   "reset",
		Short: "Restore the pond to its session seed",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return postJSON(cmd, "/api/pond/reset", map[string]any{})
		},
	}

	cmd.AddCommand(metrics, health, crisis, reset)
	return cmd
}
