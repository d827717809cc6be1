package main

import (
	"strings"

	"github.com/spf13/cobra"
)

func newDraftCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "draft",
		Short: "Draft the SMS health report for the current pond",
		RunE: func(cmd *cobra.Command, _ []string) error {
			lang, _ := cmd.Flags().GetString("lang")
			return postJSON(cmd, "/api/notify/draft", map[string]string{"lang": lang})
		},
	}
	cmd.Flags().String("lang", "English", "Language to draft the report in")
	return cmd
}

func newBroadcastCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "broadcast <message...>",
		Short: "Send a message to every configured stakeholder",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return postJSON(cmd, "/api/notify/broadcast", map[string]string{
				"message": strings.Join(args, " "),
			})
		},
	}
}
