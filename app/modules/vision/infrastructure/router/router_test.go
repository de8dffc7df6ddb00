package visionrouter

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	visionservice "github.com/Black-And-White-Club/scorecard-vision/app/modules/vision/application"
	"github.com/Black-And-White-Club/scorecard-vision/app/modules/vision/application/games"
	visiontypes "github.com/Black-And-White-Club/scorecard-vision/app/modules/vision/domain/types"
	visionevents "github.com/Black-And-White-Club/scorecard-vision/app/modules/vision/events"
	visionhandlers "github.com/Black-And-White-Club/scorecard-vision/app/modules/vision/infrastructure/handlers"
	visionmetrics "github.com/Black-And-White-Club/scorecard-vision/app/modules/vision/infrastructure/metrics"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
)

var roster = []visiontypes.RosterPlayer{
	{PlayerID: 1, PlayerName: "Ghost"},
	{PlayerID: 2, PlayerName: "Soap"},
}

// startRouter runs a configured vision router over an in-memory pubsub and returns the pubsub.
func startRouter(t *testing.T) *gochannel.GoChannel {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tracer := noop.NewTracerProvider().Tracer("test")
	pubSub := gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: 16}, watermill.NopLogger{})

	router, err := message.NewRouter(message.RouterConfig{}, watermill.NopLogger{})
	require.NoError(t, err)

	svc := visionservice.NewVisionService(games.NewDefaultRegistry(games.Options{}), logger, visionmetrics.NoOpMetrics{}, tracer, visionservice.Config{Workers: 2})
	handlers := visionhandlers.NewVisionHandlers(svc, logger, tracer)

	ctx, cancel := context.WithCancel(context.Background())
	vr := NewVisionRouter(logger, router, pubSub, pubSub, tracer, visionmetrics.NoOpMetrics{}, prometheus.NewRegistry())
	require.NoError(t, vr.Configure(ctx, handlers))

	go func() { _ = vr.Run(ctx) }()
	select {
	case <-router.Running():
	case <-time.After(5 * time.Second):
		t.Fatal("router did not start")
	}

	t.Cleanup(func() {
		cancel()
		_ = vr.Close()
		_ = pubSub.Close()
	})
	return pubSub
}

func publish(t *testing.T, pub message.Publisher, topic, correlationID string, payload any) {
	t.Helper()
	data, err := json.Marshal(payload)
	require.NoError(t, err)
	msg := message.NewMessage(watermill.NewUUID(), data)
	middleware.SetCorrelationID(correlationID, msg)
	require.NoError(t, pub.Publish(topic, msg))
}

func receive(t *testing.T, ch <-chan *message.Message) *message.Message {
	t.Helper()
	select {
	case msg := <-ch:
		msg.Ack()
		return msg
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for result")
		return nil
	}
}

func TestVisionRouter_ScreenshotRoutedByStatus(t *testing.T) {
	pubSub := startRouter(t)
	ctx := context.Background()

	processed, err := pubSub.Subscribe(ctx, visionevents.ResultProcessedV1)
	require.NoError(t, err)
	review, err := pubSub.Subscribe(ctx, visionevents.ResultReviewRequiredV1)
	require.NoError(t, err)
	failed, err := pubSub.Subscribe(ctx, visionevents.ResultFailedV1)
	require.NoError(t, err)

	publish(t, pubSub, visionevents.ScreenshotSubmittedV1, "corr-ok", visionevents.ScreenshotSubmittedPayloadV1{
		ItemID: "clean",
		Game:   visiontypes.GameCodGunGame,
		Extraction: json.RawMessage(`{"players":[
			{"name":"Ghost","stats":{"COD_SCORE":"300","COD_KILLS":10,"COD_DEATHS":2}},
			{"name":"soap","stats":{"COD_SCORE":"1,200","COD_KILLS":20,"COD_DEATHS":4}}]}`),
		Roster: roster,
	})
	got := receive(t, processed)
	require.Equal(t, "corr-ok", middleware.MessageCorrelationID(got))
	require.Equal(t, string(visiontypes.GameCodGunGame), got.Metadata.Get(visionhandlers.GameMetadataKey))

	var result visionevents.ResultPayloadV1
	require.NoError(t, json.Unmarshal(got.Payload, &result))
	require.Equal(t, "clean", result.ItemID)
	require.Equal(t, visiontypes.StatusSuccess, result.Outcome.Status)
	require.Len(t, result.Outcome.Data.Winner, 1)
	require.Equal(t, 2, result.Outcome.Data.Winner[0].PlayerID)

	publish(t, pubSub, visionevents.ScreenshotSubmittedV1, "corr-review", visionevents.ScreenshotSubmittedPayloadV1{
		ItemID:     "stranger",
		Game:       visiontypes.GameCodGunGame,
		Extraction: json.RawMessage(`{"players":[{"name":"Ghost","stats":{"COD_SCORE":"3"}},{"name":"Nikolai","stats":{"COD_SCORE":"9"}}]}`),
		Roster:     roster,
	})
	got = receive(t, review)
	require.Equal(t, "corr-review", middleware.MessageCorrelationID(got))
	require.NoError(t, json.Unmarshal(got.Payload, &result))
	require.Equal(t, visiontypes.StatusCheckRequest, result.Outcome.Status)
	require.Len(t, result.Outcome.Unresolved, 1)

	publish(t, pubSub, visionevents.ScreenshotSubmittedV1, "corr-fail", visionevents.ScreenshotSubmittedPayloadV1{
		ItemID:     "teams",
		Game:       visiontypes.GameCodGunGame,
		Extraction: json.RawMessage(`{"teams":[{"name":"A","players":[{"name":"Ghost"}]}]}`),
		Roster:     roster,
	})
	got = receive(t, failed)
	require.NoError(t, json.Unmarshal(got.Payload, &result))
	require.Equal(t, visiontypes.StatusFailed, result.Outcome.Status)
}

func TestVisionRouter_Batch(t *testing.T) {
	pubSub := startRouter(t)
	ctx := context.Background()

	reports, err := pubSub.Subscribe(ctx, visionevents.BatchProcessedV1)
	require.NoError(t, err)
	rejections, err := pubSub.Subscribe(ctx, visionevents.BatchRejectedV1)
	require.NoError(t, err)

	publish(t, pubSub, visionevents.BatchSubmittedV1, "corr-batch", visionevents.BatchSubmittedPayloadV1{
		Game:   visiontypes.GameMarioKart,
		Roster: roster,
		Items: []visionevents.BatchItemV1{
			{ID: "race-1", Extraction: json.RawMessage(`{"players":[{"name":"Ghost","stats":{"MK_POS":"2","MK_POINTS":"13"}},{"name":"Soap","stats":{"MK_POS":"1","MK_POINTS":"15"}}]}`)},
			{ID: "race-2", Extraction: json.RawMessage(`not json`)},
		},
	})

	got := receive(t, reports)
	require.Equal(t, "corr-batch", middleware.MessageCorrelationID(got))
	var report visionevents.BatchProcessedPayloadV1
	require.NoError(t, json.Unmarshal(got.Payload, &report))
	require.NotEmpty(t, report.BatchID)
	require.Len(t, report.Succeeded, 1)
	require.Equal(t, "race-1", report.Succeeded[0].ItemID)
	require.Equal(t, 2, report.Succeeded[0].Outcome.Data.Winner[0].PlayerID)
	require.Len(t, report.Failed, 1)
	require.Equal(t, "race-2", report.Failed[0].ItemID)
	require.Contains(t, report.Failed[0].Outcome.Message, "could not be read")

	publish(t, pubSub, visionevents.BatchSubmittedV1, "corr-dup", visionevents.BatchSubmittedPayloadV1{
		Game:  visiontypes.GameMarioKart,
		Items: []visionevents.BatchItemV1{{ID: "x"}, {ID: "x"}},
	})
	got = receive(t, rejections)
	var rejected visionevents.BatchRejectedPayloadV1
	require.NoError(t, json.Unmarshal(got.Payload, &rejected))
	require.Contains(t, rejected.Reason, "duplicate")
}
