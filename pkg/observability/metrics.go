package observability

import (
	"context"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/talentscout/pkg/domain"
)

// Generation outcome label values.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomeSkipped = "skipped"
)

// Metrics holds the collectors fed by conversation hooks.
type Metrics struct {
	FieldsCommitted    *prometheus.CounterVec
	ValidationFailures *prometheus.CounterVec
	Exits              *prometheus.CounterVec
	Generations        *prometheus.CounterVec
	GenerationDuration prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with reg.
// Registering twice on the same registry panics, as with prometheus.MustRegister.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		FieldsCommitted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "talentscout_fields_committed_total",
				Help: "Total number of candidate fields accepted",
			},
			[]string{"field"},
		),
		ValidationFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "talentscout_validation_failures_total",
				Help: "Total number of rejected answers",
			},
			[]string{"field"},
		),
		Exits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "talentscout_conversations_exited_total",
				Help: "Total number of conversations ended by the candidate",
			},
			[]string{"phase"},
		),
		Generations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "talentscout_generations_total",
				Help: "Total number of question generation attempts",
			},
			[]string{"outcome"},
		),
		GenerationDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "talentscout_generation_duration_seconds",
				Help:    "Duration of language model calls",
				Buckets: prometheus.ExponentialBuckets(0.25, 2, 8),
			},
		),
	}
	reg.MustRegister(m.FieldsCommitted, m.ValidationFailures, m.Exits, m.Generations, m.GenerationDuration)
	return m
}

// Hooks returns lifecycle hooks that record into m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnFieldCommitted: func(_ context.Context, e *domain.FieldEvent) {
			m.FieldsCommitted.WithLabelValues(e.Field.String()).Inc()
		},
		OnValidationFailed: func(_ context.Context, e *domain.FieldEvent) {
			m.ValidationFailures.WithLabelValues(e.Field.String()).Inc()
		},
		OnExit: func(_ context.Context, e *domain.ExitEvent) {
			m.Exits.WithLabelValues(string(e.Phase)).Inc()
		},
		OnGeneration: func(_ context.Context, e *domain.GenerationEvent) {
			switch {
			case e.Skipped:
				m.Generations.WithLabelValues(OutcomeSkipped).Inc()
				return
			case e.Err != nil:
				m.Generations.WithLabelValues(OutcomeFailure).Inc()
			default:
				m.Generations.WithLabelValues(OutcomeSuccess).Inc()
			}
			m.GenerationDuration.Observe(e.Duration.Seconds())
		},
	}
}

// LogHooks returns lifecycle hooks that write one structured line per event.
func LogHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnFieldCommitted: func(ctx context.Context, e *domain.FieldEvent) {
			logger.DebugContext(ctx, "field_committed", "field", e.Field.String(), "cursor", e.Cursor)
		},
		OnValidationFailed: func(ctx context.Context, e *domain.FieldEvent) {
			logger.DebugContext(ctx, "validation_failed", "field", e.Field.String(), "cursor", e.Cursor)
		},
		OnExit: func(ctx context.Context, e *domain.ExitEvent) {
			logger.InfoContext(ctx, "conversation_exited", "phase", e.Phase, "cursor", e.Cursor)
		},
		OnGeneration: func(ctx context.Context, e *domain.GenerationEvent) {
			logger.InfoContext(ctx, "questions_generated",
				"technologies", e.Technologies,
				"duration", e.Duration,
				"skipped", e.Skipped,
				"ok", e.Err == nil,
			)
		},
	}
}
