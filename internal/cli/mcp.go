package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/aretw0/talentscout"
	"github.com/aretw0/talentscout/pkg/adapters/mcp"
)

// MCPOptions selects the MCP transport.
type MCPOptions struct {
	Transport string // "stdio" or "sse"
	Addr      string
	BaseURL   string
}

// RunMCP serves the MCP tools until ctx is cancelled (SSE) or stdin closes (stdio).
func RunMCP(ctx context.Context, app *App, opts MCPOptions) error {
	srv := mcp.NewServer(app.Assistant, app.Sessions, talentscout.Version, mcp.WithLogger(app.Logger))

	switch opts.Transport {
	case "", "stdio":
		app.Logger.Info("Starting TalentScout MCP Server (Stdio)...")
		return srv.ServeStdio()
	case "sse":
		baseURL := opts.BaseURL
		if baseURL == "" {
			baseURL = defaultBaseURL(opts.Addr)
		}
		app.Logger.Info("Starting TalentScout MCP Server (SSE)", "address", opts.Addr, "base_url", baseURL)
		return srv.ServeSSE(ctx, opts.Addr, baseURL)
	default:
		return fmt.Errorf("unknown transport %q (want stdio or sse)", opts.Transport)
	}
}

// defaultBaseURL turns ":8081" into "http://localhost:8081".
func defaultBaseURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		return "http://localhost" + addr
	}
	return "http://" + addr
}
