package visionrouter

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Black-And-White-Club/scorecard-vision/app/eventbus/handlerwrapper"
	visionevents "github.com/Black-And-White-Club/scorecard-vision/app/modules/vision/events"
	visionhandlers "github.com/Black-And-White-Club/scorecard-vision/app/modules/vision/infrastructure/handlers"
	visionmetrics "github.com/Black-And-White-Club/scorecard-vision/app/modules/vision/infrastructure/metrics"
	"github.com/Black-And-White-Club/scorecard-vision/app/observability/attr"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/components/metrics"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/trace"
)

// VisionRouter registers the vision handlers on a watermill router.
type VisionRouter struct {
	logger         *slog.Logger
	Router         *message.Router
	subscriber     message.Subscriber
	publisher      message.Publisher
	tracer         trace.Tracer
	metrics        visionmetrics.VisionMetrics
	metricsBuilder *metrics.PrometheusMetricsBuilder
}

// NewVisionRouter creates a VisionRouter. A nil registry skips the router metrics middleware.
func NewVisionRouter(
	logger *slog.Logger,
	router *message.Router,
	subscriber message.Subscriber,
	publisher message.Publisher,
	tracer trace.Tracer,
	visionMetrics visionmetrics.VisionMetrics,
	prometheusRegistry *prometheus.Registry,
) *VisionRouter {
	var metricsBuilder *metrics.PrometheusMetricsBuilder
	if prometheusRegistry != nil {
		builder := metrics.NewPrometheusMetricsBuilder(prometheusRegistry, "", "")
		metricsBuilder = &builder
	}
	return &VisionRouter{
		logger:         logger,
		Router:         router,
		subscriber:     subscriber,
		publisher:      publisher,
		tracer:         tracer,
		metrics:        visionMetrics,
		metricsBuilder: metricsBuilder,
	}
}

// Configure adds middleware and registers the vision handlers.
func (r *VisionRouter) Configure(routerCtx context.Context, handlers visionhandlers.Handlers) error {
	if r.metricsBuilder != nil {
		r.logger.Info("Adding Prometheus router metrics middleware")
		r.metricsBuilder.AddPrometheusRouterMetrics(r.Router)
	} else {
		r.logger.Info("Skipping Prometheus router metrics middleware - metrics not configured")
	}

	r.Router.AddMiddleware(
		middleware.CorrelationID,
		middleware.Recoverer,
		middleware.Retry{
			MaxRetries:      3,
			InitialInterval: 100 * time.Millisecond,
			Logger:          watermill.NewSlogLogger(r.logger),
		}.Middleware,
	)

	registerHandler(routerCtx, r, visionevents.ScreenshotSubmittedV1, handlers.HandleScreenshotSubmitted)
	registerHandler(routerCtx, r, visionevents.BatchSubmittedV1, handlers.HandleBatchSubmitted)
	return nil
}

// registerHandler wires a typed handler to its topic. Results are published to the topic
// carried in their metadata, so one handler may emit on several topics.
func registerHandler[T any](
	ctx context.Context,
	r *VisionRouter,
	topic string,
	handler func(context.Context, *T) ([]handlerwrapper.Result, error),
) {
	handlerName := "vision." + topic
	wrapped := handlerwrapper.WrapTransformingTyped(handlerName, r.logger, r.tracer, r.metrics, handler)

	r.Router.AddHandler(
		handlerName,
		topic,
		r.subscriber,
		"",
		nil,
		func(msg *message.Message) ([]*message.Message, error) {
			messages, err := wrapped(msg)
			if err != nil {
				r.logger.ErrorContext(ctx, "Error processing message", attr.String("message_id", msg.UUID), attr.Error(err))
				return nil, err
			}
			for _, m := range messages {
				publishTopic := m.Metadata.Get(handlerwrapper.TopicMetadataKey)
				if publishTopic == "" {
					r.logger.Error("router failed to resolve publish topic - MESSAGE DROPPED",
						attr.String("handler", handlerName),
						attr.String("msg_uuid", m.UUID),
						attr.CorrelationIDFromMsg(m),
					)
					continue
				}

				r.logger.InfoContext(ctx, "publishing message",
					attr.String("topic", publishTopic),
					attr.String("handler", handlerName),
					attr.CorrelationIDFromMsg(m),
				)
				if err := r.publisher.Publish(publishTopic, m); err != nil {
					return nil, fmt.Errorf("failed to publish to %s: %w", publishTopic, err)
				}
			}
			return nil, nil
		},
	)
}

// Run starts the underlying watermill router and blocks until it stops.
func (r *VisionRouter) Run(ctx context.Context) error {
	return r.Router.Run(ctx)
}

func (r *VisionRouter) Close() error {
	return r.Router.Close()
}
