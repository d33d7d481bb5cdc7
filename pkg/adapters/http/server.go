package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aretw0/talentscout/internal/logging"
	"github.com/aretw0/talentscout/pkg/domain"
	"github.com/aretw0/talentscout/pkg/ports"
	"github.com/aretw0/talentscout/pkg/session"
)

// maxBodyBytes caps request bodies; answers are truncated far below this anyway.
const maxBodyBytes = 64 << 10

// Server serves the session API.
type Server struct {
	Screener ports.StatelessScreener
	Sessions *session.Manager
	Streams  *StreamManager

	logger   *slog.Logger
	gatherer prometheus.Gatherer
	version  string
}

// Option configures the Server.
type Option func(*Server)

// WithLogger configures the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetrics exposes the gatherer on GET /metrics.
func WithMetrics(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.gatherer = g
	}
}

// WithVersion sets the version reported by GET /health.
func WithVersion(v string) Option {
	return func(s *Server) {
		s.version = strings.TrimSpace(v)
	}
}

// NewServer creates a Server.
func NewServer(screener ports.StatelessScreener, sessions *session.Manager, opts ...Option) *Server {
	s := &Server{
		Screener: screener,
		Sessions: sessions,
		Streams:  NewStreamManager(),
		logger:   logging.NewNop(),
		version:  "unknown",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewHandler creates the HTTP handler for the screener.
func NewHandler(screener ports.StatelessScreener, sessions *session.Manager, opts ...Option) http.Handler {
	return NewServer(screener, sessions, opts...).Routes()
}

// Routes builds the router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/health", s.GetHealth)
	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", s.CreateSession)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.GetSession)
			r.Delete("/", s.DeleteSession)
			r.Post("/messages", s.SendMessage)
			r.Get("/summary", s.GetSummary)
			r.Get("/events", s.SubscribeEvents)
		})
	})

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// TurnResponse is returned by the endpoints that advance a conversation.
type TurnResponse struct {
	SessionID string       `json:"session_id"`
	Messages  []string     `json:"messages"`
	Continue  bool         `json:"continue"`
	Phase     domain.Phase `json:"phase"`
}

// MessageRequest is the body of POST /sessions/{id}/messages.
// "message" is accepted as an alias of "input".
type MessageRequest struct {
	Input   *string `json:"input"`
	Message *string `json:"message"`
}

func (m MessageRequest) text() (string, bool) {
	switch {
	case m.Input != nil:
		return *m.Input, true
	case m.Message != nil:
		return *m.Message, true
	}
	return "", false
}

// SessionResponse describes a session without exposing candidate answers.
type SessionResponse struct {
	SessionID          string       `json:"session_id"`
	Phase              domain.Phase `json:"phase"`
	Cursor             int          `json:"cursor"`
	Active             bool         `json:"active"`
	QuestionsGenerated bool         `json:"questions_generated"`
	Collected          []string     `json:"collected"`
	Pending            string       `json:"pending,omitempty"`
}

// CreateSession handles POST /sessions.
func (s *Server) CreateSession(w http.ResponseWriter, r *http.Request) {
	id, snap, err := s.Sessions.Create(r.Context())
	if err != nil {
		s.fail(w, "CreateSession", err)
		return
	}
	msgs, err := s.Screener.Open(r.Context(), snap)
	if err != nil {
		s.fail(w, "CreateSession", err)
		return
	}
	s.logger.Info("session created", "session_id", id)
	writeJSON(w, http.StatusCreated, TurnResponse{
		SessionID: id,
		Messages:  msgs,
		Continue:  true,
		Phase:     snap.Phase(),
	})
}

// SendMessage handles POST /sessions/{id}/messages.
func (s *Server) SendMessage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var body MessageRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("SendMessage: Invalid request body", "session_id", id, "err", err)
		return
	}
	input, ok := body.text()
	if !ok {
		http.Error(w, "Missing input", http.StatusBadRequest)
		return
	}

	var (
		reply string
		more  bool
	)
	// The turn finishes even if the client disconnects mid-generation.
	ctx := context.WithoutCancel(r.Context())
	next, err := s.Sessions.Update(ctx, id, func(ctx context.Context, snap *domain.Snapshot) (*domain.Snapshot, error) {
		var err error
		var out *domain.Snapshot
		out, reply, more, err = s.Screener.Respond(ctx, snap, input)
		return out, err
	})
	if err != nil {
		s.fail(w, "SendMessage", err)
		return
	}

	resp := TurnResponse{
		SessionID: id,
		Messages:  []string{reply},
		Continue:  more,
		Phase:     next.Phase(),
	}
	if payload, err := json.Marshal(resp); err == nil {
		s.Streams.Broadcast(id, string(payload))
	}
	writeJSON(w, http.StatusOK, resp)
}

// GetSession handles GET /sessions/{id}.
func (s *Server) GetSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	snap, err := s.Sessions.Load(r.Context(), id)
	if err != nil {
		s.fail(w, "GetSession", err)
		return
	}

	resp := SessionResponse{
		SessionID:          id,
		Phase:              snap.Phase(),
		Cursor:             snap.Cursor,
		Active:             snap.Active,
		QuestionsGenerated: snap.QuestionsGenerated,
		Collected:          []string{},
	}
	for _, spec := range domain.Fields() {
		if snap.Record.Has(spec.Field) {
			resp.Collected = append(resp.Collected, spec.Name())
		}
	}
	if snap.Phase() == domain.PhaseCollecting {
		resp.Pending = domain.Field(snap.Cursor).String()
	}
	writeJSON(w, http.StatusOK, resp)
}

// GetSummary handles GET /sessions/{id}/summary.
func (s *Server) GetSummary(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	snap, err := s.Sessions.Load(r.Context(), id)
	if err != nil {
		s.fail(w, "GetSummary", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"session_id": id,
		"summary":    snap.Record.Summary(),
		"record":     snap.Record.Map(),
	})
}

// DeleteSession handles DELETE /sessions/{id}.
func (s *Server) DeleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.Sessions.Delete(r.Context(), id); err != nil {
		s.fail(w, "DeleteSession", err)
		return
	}
	s.logger.Info("session deleted", "session_id", id)
	w.WriteHeader(http.StatusNoContent)
}

// GetHealth handles GET /health.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"app":     "talentscout",
		"version": s.version,
	})
}

// SubscribeEvents handles GET /sessions/{id}/events (SSE).
// Every turn applied to the session is pushed as a TurnResponse.
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		s.logger.Error("SubscribeEvents: Streaming not supported")
		return
	}

	id := chi.URLParam(r, "id")
	if _, err := s.Sessions.Load(r.Context(), id); err != nil {
		s.fail(w, "SubscribeEvents", err)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch, cancel := s.Streams.Subscribe(id)
	defer cancel()

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			s.logger.Debug("SSE client disconnected", "session_id", id)
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			fmt.Fprintf(w, "event: turn\ndata: %s\n\n", msg)
			flusher.Flush()
		}
	}
}

// fail maps domain errors to status codes.
func (s *Server) fail(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		http.Error(w, "Session not found", http.StatusNotFound)
	case errors.Is(err, domain.ErrInvalidSnapshot):
		http.Error(w, "Session state is corrupt", http.StatusConflict)
		s.logger.Error(op+" failed", "err", err)
	default:
		http.Error(w, "Internal error", http.StatusInternalServerError)
		s.logger.Error(op+" failed", "err", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "err", err)
	}
}
