package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/talentscout"
	"github.com/aretw0/talentscout/internal/config"
	"github.com/aretw0/talentscout/internal/logging"
	"github.com/aretw0/talentscout/pkg/adapters/gemini"
	"github.com/aretw0/talentscout/pkg/adapters/memory"
	"github.com/aretw0/talentscout/pkg/adapters/redis"
	"github.com/aretw0/talentscout/pkg/observability"
	"github.com/aretw0/talentscout/pkg/persistence/middleware"
	"github.com/aretw0/talentscout/pkg/ports"
	"github.com/aretw0/talentscout/pkg/session"
)

// App bundles everything a command needs.
type App struct {
	Config    *config.Config
	Logger    *slog.Logger
	Registry  *prometheus.Registry
	Metrics   *observability.Metrics
	Assistant *talentscout.Assistant
	Store     ports.SnapshotStore
	Sessions  *session.Manager

	closers []func() error
}

// AppOptions adjusts how NewApp builds the App.
type AppOptions struct {
	// LLM replaces the Gemini client (tests, offline demos).
	LLM ports.LLM

	// WithoutLLM skips the assistant entirely, for commands that only touch stored sessions.
	WithoutLLM bool

	// LogWriter receives logs; defaults to stderr.
	LogWriter io.Writer
}

// NewApp builds the App described by cfg.
func NewApp(ctx context.Context, cfg *config.Config, opts AppOptions) (*App, error) {
	app := &App{
		Config:   cfg,
		Logger:   createLogger(cfg, opts.LogWriter),
		Registry: prometheus.NewRegistry(),
	}
	app.Metrics = observability.NewMetrics(app.Registry)

	if err := app.buildStore(); err != nil {
		return nil, err
	}

	if opts.WithoutLLM {
		return app, nil
	}

	llm := opts.LLM
	if llm == nil {
		if err := cfg.Validate(); err != nil {
			app.Close()
			return nil, err
		}
		client, err := gemini.New(ctx, gemini.Config{
			APIKey:      cfg.APIKey,
			Model:       cfg.Model,
			Temperature: float32Ptr(cfg.Temperature),
		})
		if err != nil {
			app.Close()
			return nil, fmt.Errorf("create gemini client: %w", err)
		}
		app.Logger.Debug("gemini client ready", "model", client.Model())
		llm = client
	}

	assistant, err := talentscout.New(llm,
		talentscout.WithLogger(app.Logger),
		talentscout.WithLifecycleHooks(app.Metrics.Hooks()),
		talentscout.WithLifecycleHooks(observability.LogHooks(app.Logger)),
	)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.Assistant = assistant
	return app, nil
}

// buildStore picks Redis when configured, memory otherwise, and seals snapshots when a key is set.
func (a *App) buildStore() error {
	cfg := a.Config
	var (
		store ports.SnapshotStore
		opts  []session.Option
	)

	if cfg.Redis.URL != "" {
		rs, err := redis.NewFromURL(cfg.Redis.URL,
			redis.WithPrefix(cfg.Redis.Prefix),
			redis.WithTTL(cfg.Redis.TTL),
		)
		if err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		a.closers = append(a.closers, rs.Close)
		store = rs
		opts = append(opts,
			session.WithLocker(redis.NewLocker(rs.Client(), rs.Prefix())),
			session.WithLockTTL(cfg.Redis.LockTTL),
		)
		a.Logger.Debug("using redis session store", "prefix", rs.Prefix(), "ttl", cfg.Redis.TTL)
	} else {
		store = memory.NewStore(memory.WithTTL(cfg.SessionTTL))
	}

	if cfg.EncryptionKey != "" {
		key, err := middleware.ParseKey(cfg.EncryptionKey)
		if err != nil {
			a.Close()
			return err
		}
		store = middleware.Chain(store, middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: key}))
	}

	a.Store = store
	a.Sessions = session.NewManager(store, append(opts, session.WithLogger(a.Logger))...)
	return nil
}

// Close releases connections held by the App.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	a.closers = nil
	return errors.Join(errs...)
}

// createLogger configures the application logger.
// Logs go to stderr so stdout stays reserved for the conversation.
func createLogger(cfg *config.Config, w io.Writer) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}
	level := logging.ParseLevel(cfg.LogLevel)
	if cfg.LogFormat == "json" {
		return logging.NewJSON(w, level)
	}
	return logging.NewText(w, level)
}

func float32Ptr(v *float64) *float32 {
	if v == nil {
		return nil
	}
	f := float32(*v)
	return &f
}

var _ ports.StatelessScreener = (*talentscout.Assistant)(nil)
