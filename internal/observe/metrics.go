// Package observe holds the OpenTelemetry instruments for spellquest.
// Methods on a nil *Metrics are no-ops so callers never need to check.
package observe

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/mind-engage/spellquest"

type Metrics struct {
	// attrs: mode, error_type
	Evaluations metric.Int64Counter
	// attrs: mode
	EvaluationScore metric.Float64Histogram
	ActiveSessions  metric.Int64UpDownCounter
	// attrs: kind, status
	ContentRequests metric.Int64Counter
	// attrs: method, route, status
	HTTPRequestDuration metric.Float64Histogram
}

var (
	scoreBuckets   = []float64{0, 10, 20, 30, 40, 50, 60, 70, 80, 90, 100}
	latencyBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30}
)

func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	m := mp.Meter(meterName)
	var err error
	met := &Metrics{}

	if met.Evaluations, err = m.Int64Counter("spellquest.evaluations",
		metric.WithDescription("Answers evaluated."),
	); err != nil {
		return nil, err
	}
	if met.EvaluationScore, err = m.Float64Histogram("spellquest.evaluation.score",
		metric.WithDescription("Percentage score of evaluated answers."),
		metric.WithUnit("%"),
		metric.WithExplicitBucketBoundaries(scoreBuckets...),
	); err != nil {
		return nil, err
	}
	if met.ActiveSessions, err = m.Int64UpDownCounter("spellquest.sessions.active",
		metric.WithDescription("Game sessions currently in progress."),
	); err != nil {
		return nil, err
	}
	if met.ContentRequests, err = m.Int64Counter("spellquest.content.requests",
		metric.WithDescription("Calls to the content provider."),
	); err != nil {
		return nil, err
	}
	if met.HTTPRequestDuration, err = m.Float64Histogram("spellquest.http.request.duration",
		metric.WithDescription("HTTP request processing time."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}
	return met, nil
}

func (m *Metrics) RecordEvaluation(ctx context.Context, mode, errorType string, score float64) {
	if m == nil {
		return
	}
	if errorType == "" {
		errorType = "none"
	}
	m.Evaluations.Add(ctx, 1, metric.WithAttributes(
		attribute.String("mode", mode),
		attribute.String("error_type", errorType),
	))
	m.EvaluationScore.Record(ctx, score, metric.WithAttributes(attribute.String("mode", mode)))
}

func (m *Metrics) SessionStarted(ctx context.Context) {
	if m == nil {
		return
	}
	m.ActiveSessions.Add(ctx, 1)
}

func (m *Metrics) SessionEnded(ctx context.Context) {
	if m == nil {
		return
	}
	m.ActiveSessions.Add(ctx, -1)
}

func (m *Metrics) ContentRequest(ctx context.Context, kind string, err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.ContentRequests.Add(ctx, 1, metric.WithAttributes(
		attribute.String("kind", kind),
		attribute.String("status", status),
	))
}
