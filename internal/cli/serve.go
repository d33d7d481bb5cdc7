package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/aretw0/talentscout"
	httpadapter "github.com/aretw0/talentscout/pkg/adapters/http"
)

// ShutdownTimeout bounds graceful shutdown of the servers.
const ShutdownTimeout = 5 * time.Second

// NewHTTPHandler builds the session API for app.
func NewHTTPHandler(app *App) http.Handler {
	return httpadapter.NewHandler(app.Assistant, app.Sessions,
		httpadapter.WithLogger(app.Logger),
		httpadapter.WithMetrics(app.Registry),
		httpadapter.WithVersion(talentscout.Version),
	)
}

// RunServe serves the HTTP API on addr until ctx is cancelled.
func RunServe(ctx context.Context, app *App, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           NewHTTPHandler(app),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		app.Logger.Info("Starting TalentScout Server", "address", addr)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		app.Logger.Info("Start shutdown...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			app.Logger.Warn("Graceful shutdown did not complete", "timeout", ShutdownTimeout, "err", err)
			return srv.Close()
		}
		app.Logger.Info("TalentScout Server stopped gracefully")
		return nil
	}
}
