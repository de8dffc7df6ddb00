package visionservice

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"github.com/Black-And-White-Club/scorecard-vision/app/modules/vision/application/games"
	"github.com/Black-And-White-Club/scorecard-vision/app/modules/vision/domain/catalog"
	visiontypes "github.com/Black-And-White-Club/scorecard-vision/app/modules/vision/domain/types"
	visionmetrics "github.com/Black-And-White-Club/scorecard-vision/app/modules/vision/infrastructure/metrics"
	"github.com/Black-And-White-Club/scorecard-vision/app/observability/attr"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Config tunes the service.
type Config struct {
	// Workers bounds bulk fan-out. Zero means runtime.NumCPU().
	Workers int
}

// VisionService implements the Service interface.
type VisionService struct {
	registry *games.Registry
	logger   *slog.Logger
	metrics  visionmetrics.VisionMetrics
	tracer   trace.Tracer
	workers  int
}

var _ Service = (*VisionService)(nil)

// NewVisionService creates a new VisionService.
func NewVisionService(
	registry *games.Registry,
	logger *slog.Logger,
	metrics visionmetrics.VisionMetrics,
	tracer trace.Tracer,
	cfg Config,
) *VisionService {
	if logger == nil {
		logger = slog.Default()
	}
	if metrics == nil {
		metrics = visionmetrics.NoOpMetrics{}
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &VisionService{
		registry: registry,
		logger:   logger,
		metrics:  metrics,
		tracer:   tracer,
		workers:  workers,
	}
}

// Games lists every registered game with its declared stats and victory rule.
func (s *VisionService) Games() []GameInfo {
	type describer interface {
		DeclaredStats() []catalog.Entry
		WinnerRule() *visiontypes.WinnerConfig
	}

	ids := s.registry.Games()
	out := make([]GameInfo, 0, len(ids))
	for _, id := range ids {
		p, err := s.registry.Get(id)
		if err != nil {
			continue
		}
		info := GameInfo{Game: id, DisplayName: p.DisplayName(), Shape: p.Shape(), Stats: []string{}}
		if d, ok := p.(describer); ok {
			for _, e := range d.DeclaredStats() {
				info.Stats = append(info.Stats, e.Key)
			}
			info.Winner = d.WinnerRule()
		}
		out = append(out, info)
	}
	return out
}

// operationFunc is the signature for service operation functions.
type operationFunc[T any] func(ctx context.Context) (T, error)

// withTelemetry wraps a service operation with tracing, metrics, and panic recovery. A
// recovered panic is returned as an ImportError with code PANIC.
func withTelemetry[T any](
	s *VisionService,
	ctx context.Context,
	operationName string,
	game visiontypes.GameID,
	identifier string,
	op operationFunc[T],
) (result T, err error) {
	var span trace.Span
	if s.tracer != nil {
		ctx, span = s.tracer.Start(ctx, operationName, trace.WithAttributes(
			attribute.String("operation", operationName),
			attribute.String("game", string(game)),
			attribute.String("identifier", identifier),
		))
	} else {
		span = trace.SpanFromContext(ctx)
	}
	defer span.End()

	s.metrics.RecordOperationAttempt(ctx, operationName, game)

	startTime := time.Now()
	defer func() {
		s.metrics.RecordOperationDuration(ctx, operationName, game, time.Since(startTime))
	}()

	s.logger.DebugContext(ctx, operationName+" triggered",
		attr.ExtractCorrelationID(ctx),
		attr.String("game", string(game)),
		attr.String("identifier", identifier),
	)

	defer func() {
		if r := recover(); r != nil {
			err = &games.ImportError{
				Code:    games.CodePanic,
				Message: fmt.Sprintf("panic in %s", operationName),
				Err:     fmt.Errorf("%v", r),
			}
			s.logger.ErrorContext(ctx, "Critical panic recovered",
				attr.ExtractCorrelationID(ctx),
				attr.String("operation", operationName),
				attr.String("identifier", identifier),
				attr.Error(err),
			)
			s.metrics.RecordOperationFailure(ctx, operationName, game)
			span.RecordError(err)
			var zero T
			result = zero
		}
	}()

	result, err = op(ctx)
	if err != nil {
		wrappedErr := fmt.Errorf("%s: %w", operationName, err)
		s.logger.ErrorContext(ctx, "Operation failed with error",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.String("identifier", identifier),
			attr.Error(wrappedErr),
		)
		s.metrics.RecordOperationFailure(ctx, operationName, game)
		span.RecordError(wrappedErr)
		return result, wrappedErr
	}

	s.metrics.RecordOperationSuccess(ctx, operationName, game)
	return result, nil
}
