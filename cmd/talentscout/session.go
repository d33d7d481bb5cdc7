package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/talentscout/internal/cli"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Manage stored sessions",
	Long: `List, inspect, and remove sessions held in the configured Redis store.

Sessions kept in memory do not outlive the process, so these commands are only
useful with TALENTSCOUT_REDIS_URL set.`,
}

var sessionLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List stored sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd, cli.AppOptions{WithoutLLM: true})
		if err != nil {
			return err
		}
		defer app.Close()
		return cli.ListSessions(cmd.Context(), app, cmd.OutOrStdout())
	},
}

var sessionInspectCmd = &cobra.Command{
	Use:   "inspect <session-id>",
	Short: "Inspect the state of a session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd, cli.AppOptions{WithoutLLM: true})
		if err != nil {
			return err
		}
		defer app.Close()
		reveal, _ := cmd.Flags().GetBool("reveal")
		return cli.InspectSession(cmd.Context(), app, args[0], reveal, cmd.OutOrStdout())
	},
}

var sessionRmCmd = &cobra.Command{
	Use:     "rm <session-id>",
	Aliases: []string{"delete"},
	Short:   "Remove a session",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd, cli.AppOptions{WithoutLLM: true})
		if err != nil {
			return err
		}
		defer app.Close()
		return cli.RemoveSession(cmd.Context(), app, args[0], cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(sessionCmd)
	sessionCmd.AddCommand(sessionLsCmd)
	sessionCmd.AddCommand(sessionInspectCmd)
	sessionCmd.AddCommand(sessionRmCmd)
	sessionInspectCmd.Flags().Bool("reveal", false, "Show identifying answers instead of masking them")
}
