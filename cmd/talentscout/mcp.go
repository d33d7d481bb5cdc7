package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aretw0/talentscout/internal/cli"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Starts TalentScout as an MCP Server so AI agents can run screenings as tools.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd, cli.AppOptions{})
		if err != nil {
			return err
		}
		defer app.Close()

		opts := cli.MCPOptions{
			Addr:    app.Config.MCP.Addr,
			BaseURL: app.Config.MCP.BaseURL,
		}
		opts.Transport, _ = cmd.Flags().GetString("transport")
		if cmd.Flags().Changed("addr") {
			opts.Addr, _ = cmd.Flags().GetString("addr")
		}

		// Ensure logs don't corrupt JSON-RPC on Stdout
		log.SetOutput(os.Stderr)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return cli.RunMCP(ctx, app, opts)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
	mcpCmd.Flags().StringP("transport", "t", "stdio", "Transport: stdio or sse")
	mcpCmd.Flags().String("addr", "", "Listen address for SSE (default from config, :8081)")
}
