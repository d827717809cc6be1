package main

import (
	"strings"

	"github.com/spf13/cobra"
)

func newAskCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ask <question...>",
		Short: "Ask the assistant a question about the pond",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return postJSON(cmd, "/api/assistant/ask", map[string]string{
				"text": strings.Join(args, " "),
			})
		},
	}

	transcript := &cobra.Command{
		Use:   "transcript",
		Short: "Show the assistant transcript for this session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return getJSON(cmd, "/api/assistant/transcript", nil)
		},
	}
	cmd.AddCommand(transcript)
	return cmd
}
