package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aretw0/talentscout/internal/cli"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP session API",
	Long: `Serves screening sessions over HTTP:

  POST   /sessions                 start a session
  POST   /sessions/{id}/messages   send an answer
  GET    /sessions/{id}            session status
  GET    /sessions/{id}/summary    candidate summary
  GET    /sessions/{id}/events     turns as server-sent events
  DELETE /sessions/{id}            discard a session
  GET    /health, /metrics`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd, cli.AppOptions{})
		if err != nil {
			return err
		}
		defer app.Close()

		addr := app.Config.HTTP.Addr
		if cmd.Flags().Changed("addr") {
			addr, _ = cmd.Flags().GetString("addr")
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return cli.RunServe(ctx, app, addr)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("addr", "a", "", "Address to listen on (default from config, :8080)")
}
