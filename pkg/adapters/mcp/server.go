package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/aretw0/talentscout/internal/logging"
	"github.com/aretw0/talentscout/pkg/domain"
	"github.com/aretw0/talentscout/pkg/ports"
	"github.com/aretw0/talentscout/pkg/session"
)

// FieldsURI is the resource listing the fields collected during screening.
const FieldsURI = "talentscout://fields"

// TurnResponse is the structured result of the tools that advance a conversation.
type TurnResponse struct {
	SessionID string       `json:"session_id" jsonschema_description:"Session to pass to send_message"`
	Messages  []string     `json:"messages" jsonschema_description:"Assistant messages to show the candidate, in order"`
	Continue  bool         `json:"continue" jsonschema_description:"False once the conversation has ended"`
	Phase     domain.Phase `json:"phase" jsonschema_description:"collecting, generating or done"`
}

// Server exposes screening conversations as MCP tools.
type Server struct {
	screener  ports.StatelessScreener
	sessions  *session.Manager
	mcpServer *server.MCPServer
	logger    *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithLogger configures the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(screener ports.StatelessScreener, sessions *session.Manager, version string, opts ...Option) *Server {
	s := &Server{
		screener:  screener,
		sessions:  sessions,
		mcpServer: server.NewMCPServer("talentscout-mcp", strings.TrimSpace(version)),
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying mcp-go server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves the SSE transport on addr until ctx is cancelled.
func (s *Server) ServeSSE(ctx context.Context, addr, baseURL string) error {
	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("start_screening",
		mcp.WithDescription("Start a new candidate screening. Returns the session ID and the greeting to show."),
		mcp.WithOutputSchema[TurnResponse](),
	), mcp.NewStructuredToolHandler(s.handleStart))

	s.mcpServer.AddTool(mcp.NewTool("send_message",
		mcp.WithDescription("Send the candidate's reply and get the assistant's next message."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session returned by start_screening")),
		mcp.WithString("message", mcp.Required(), mcp.Description("The candidate's reply, verbatim")),
		mcp.WithOutputSchema[TurnResponse](),
	), mcp.NewStructuredToolHandler(s.handleSendMessage))

	s.mcpServer.AddTool(mcp.NewTool("reset_screening",
		mcp.WithDescription("Discard a screening and start over with a fresh session."),
		mcp.WithString("session_id", mcp.Description("Session to discard (optional)")),
		mcp.WithOutputSchema[TurnResponse](),
	), mcp.NewStructuredToolHandler(s.handleReset))

	s.mcpServer.AddTool(mcp.NewTool("candidate_summary",
		mcp.WithDescription("Get the Markdown summary of the details collected so far."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session to summarise")),
	), s.handleSummary)
}

func (s *Server) handleStart(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (TurnResponse, error) {
	return s.start(ctx)
}

func (s *Server) start(ctx context.Context) (TurnResponse, error) {
	id, snap, err := s.sessions.Create(ctx)
	if err != nil {
		return TurnResponse{}, fmt.Errorf("start failed: %w", err)
	}
	msgs, err := s.screener.Open(ctx, snap)
	if err != nil {
		return TurnResponse{}, fmt.Errorf("start failed: %w", err)
	}
	s.logger.Info("MCP session started", "session_id", id)
	return TurnResponse{SessionID: id, Messages: msgs, Continue: true, Phase: snap.Phase()}, nil
}

func (s *Server) handleSendMessage(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (TurnResponse, error) {
	id, _ := args["session_id"].(string)
	input, ok := args["message"].(string)
	if id == "" || !ok {
		return TurnResponse{}, errors.New("session_id and message are required")
	}

	var (
		reply string
		more  bool
	)
	next, err := s.sessions.Update(context.WithoutCancel(ctx), id, func(ctx context.Context, snap *domain.Snapshot) (*domain.Snapshot, error) {
		var err error
		var out *domain.Snapshot
		out, reply, more, err = s.screener.Respond(ctx, snap, input)
		return out, err
	})
	if err != nil {
		return TurnResponse{}, fmt.Errorf("send_message failed: %w", err)
	}
	return TurnResponse{SessionID: id, Messages: []string{reply}, Continue: more, Phase: next.Phase()}, nil
}

func (s *Server) handleReset(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (TurnResponse, error) {
	if id, _ := args["session_id"].(string); id != "" {
		if err := s.sessions.Delete(ctx, id); err != nil && !errors.Is(err, domain.ErrSessionNotFound) {
			return TurnResponse{}, fmt.Errorf("reset failed: %w", err)
		}
		s.logger.Info("MCP session discarded", "session_id", id)
	}
	return s.start(ctx)
}

func (s *Server) handleSummary(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	snap, err := s.sessions.Load(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("summary failed: %v", err)), nil
	}
	return mcp.NewToolResultText(snap.Record.Summary()), nil
}

type fieldResource struct {
	Name   string `json:"name"`
	Prompt string `json:"prompt"`
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(FieldsURI, "Screening Fields",
		mcp.WithResourceDescription("The candidate details collected, in order, with their prompts"),
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		specs := domain.Fields()
		out := make([]fieldResource, len(specs))
		for i, spec := range specs {
			out[i] = fieldResource{Name: spec.Name(), Prompt: spec.Prompt}
		}
		jsonBytes, err := json.Marshal(out)
		if err != nil {
			return nil, err
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      FieldsURI,
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
