package visionmetrics

import (
	"context"
	"time"

	visiontypes "github.com/Black-And-White-Club/scorecard-vision/app/modules/vision/domain/types"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "vision"

// PrometheusMetrics implements VisionMetrics with client_golang collectors.
type PrometheusMetrics struct {
	operationAttempts  *prometheus.CounterVec
	operationSuccesses *prometheus.CounterVec
	operationFailures  *prometheus.CounterVec
	operationDuration  *prometheus.HistogramVec

	outcomes       *prometheus.CounterVec
	unresolved     *prometheus.CounterVec
	defaultedStats *prometheus.CounterVec
	batchSize      *prometheus.HistogramVec

	handlerAttempts  *prometheus.CounterVec
	handlerSuccesses *prometheus.CounterVec
	handlerFailures  *prometheus.CounterVec
	handlerDuration  *prometheus.HistogramVec
}

var _ VisionMetrics = (*PrometheusMetrics)(nil)

// NewPrometheusMetrics creates the collectors and registers them on reg.
func NewPrometheusMetrics(reg prometheus.Registerer) (*PrometheusMetrics, error) {
	m := &PrometheusMetrics{
		operationAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "operation_attempts_total", Help: "Service operations started.",
		}, []string{"operation", "game"}),
		operationSuccesses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "operation_success_total", Help: "Service operations completed without error.",
		}, []string{"operation", "game"}),
		operationFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "operation_failures_total", Help: "Service operations that errored or panicked.",
		}, []string{"operation", "game"}),
		operationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Name: "operation_duration_seconds", Help: "Service operation latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation", "game"}),
		outcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "outcomes_total", Help: "Screenshot outcomes by game and status.",
		}, []string{"game", "status"}),
		unresolved: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "unresolved_players_total", Help: "Extracted players left off the roster.",
		}, []string{"game", "reason"}),
		defaultedStats: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "defaulted_stats_total", Help: "Stat readings replaced by a default.",
		}, []string{"game"}),
		batchSize: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Name: "batch_items", Help: "Items per bulk import.",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		}, []string{"game"}),
		handlerAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "handler_attempts_total", Help: "Messages received per handler.",
		}, []string{"handler"}),
		handlerSuccesses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "handler_success_total", Help: "Messages handled per handler.",
		}, []string{"handler"}),
		handlerFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "handler_failures_total", Help: "Messages that failed per handler.",
		}, []string{"handler"}),
		handlerDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Name: "handler_duration_seconds", Help: "Handler latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"handler"}),
	}

	for _, c := range []prometheus.Collector{
		m.operationAttempts, m.operationSuccesses, m.operationFailures, m.operationDuration,
		m.outcomes, m.unresolved, m.defaultedStats, m.batchSize,
		m.handlerAttempts, m.handlerSuccesses, m.handlerFailures, m.handlerDuration,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *PrometheusMetrics) RecordOperationAttempt(_ context.Context, operation string, game visiontypes.GameID) {
	m.operationAttempts.WithLabelValues(operation, string(game)).Inc()
}

func (m *PrometheusMetrics) RecordOperationSuccess(_ context.Context, operation string, game visiontypes.GameID) {
	m.operationSuccesses.WithLabelValues(operation, string(game)).Inc()
}

func (m *PrometheusMetrics) RecordOperationFailure(_ context.Context, operation string, game visiontypes.GameID) {
	m.operationFailures.WithLabelValues(operation, string(game)).Inc()
}

func (m *PrometheusMetrics) RecordOperationDuration(_ context.Context, operation string, game visiontypes.GameID, duration time.Duration) {
	m.operationDuration.WithLabelValues(operation, string(game)).Observe(duration.Seconds())
}

func (m *PrometheusMetrics) RecordOutcome(_ context.Context, game visiontypes.GameID, status visiontypes.Status) {
	m.outcomes.WithLabelValues(string(game), string(status)).Inc()
}

func (m *PrometheusMetrics) RecordUnresolvedPlayers(_ context.Context, game visiontypes.GameID, reason visiontypes.UnresolvedReason, count int) {
	if count <= 0 {
		return
	}
	m.unresolved.WithLabelValues(string(game), string(reason)).Add(float64(count))
}

func (m *PrometheusMetrics) RecordDefaultedStats(_ context.Context, game visiontypes.GameID, count int) {
	if count <= 0 {
		return
	}
	m.defaultedStats.WithLabelValues(string(game)).Add(float64(count))
}

func (m *PrometheusMetrics) RecordBatchSize(_ context.Context, game visiontypes.GameID, size int) {
	m.batchSize.WithLabelValues(string(game)).Observe(float64(size))
}

func (m *PrometheusMetrics) RecordHandlerAttempt(_ context.Context, handler string) {
	m.handlerAttempts.WithLabelValues(handler).Inc()
}

func (m *PrometheusMetrics) RecordHandlerSuccess(_ context.Context, handler string) {
	m.handlerSuccesses.WithLabelValues(handler).Inc()
}

func (m *PrometheusMetrics) RecordHandlerFailure(_ context.Context, handler string) {
	m.handlerFailures.WithLabelValues(handler).Inc()
}

func (m *PrometheusMetrics) RecordHandlerDuration(_ context.Context, handler string, duration time.Duration) {
	m.handlerDuration.WithLabelValues(handler).Observe(duration.Seconds())
}
