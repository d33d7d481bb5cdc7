package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/talentscout/internal/cli"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Run a screening conversation in the terminal",
	Long: `Starts an interactive screening. Type "exit", "quit" or "bye" at any time to stop.

With --json the conversation is exchanged as newline-delimited JSON on stdin/stdout,
one {"messages":[...],"continue":bool,"phase":"..."} object per turn.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd, cli.AppOptions{})
		if err != nil {
			return err
		}
		defer app.Close()

		opts := cli.ChatOptions{}
		opts.JSON, _ = cmd.Flags().GetBool("json")
		opts.Summary, _ = cmd.Flags().GetBool("summary")
		opts.SessionID, _ = cmd.Flags().GetString("session")
		opts.Fresh, _ = cmd.Flags().GetBool("fresh")
		opts.Plain, _ = cmd.Flags().GetBool("plain")

		return cli.RunChat(cmd.Context(), app, opts, os.Stdin, os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
	chatCmd.Flags().Bool("json", false, "Exchange turns as JSON lines")
	chatCmd.Flags().Bool("summary", false, "Print the candidate summary when the chat ends")
	chatCmd.Flags().StringP("session", "s", "", "Session ID to resume or create (requires a shared store to outlive the process)")
	chatCmd.Flags().Bool("fresh", false, "Discard the stored session before starting")
	chatCmd.Flags().Bool("plain", false, "Disable the banner and markdown rendering")
}
