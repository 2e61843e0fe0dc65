package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/streamhub/video-catalog-go/internal/metrics"
	"github.com/streamhub/video-catalog-go/internal/models"
	"github.com/streamhub/video-catalog-go/pkg/logger"
)

// eventEmitter publishes domain events on behalf of the services.
// Failures are logged and counted but never surface to the caller.
type eventEmitter struct {
	publisher EventPublisher
	metrics   *metrics.Metrics
}

func newEventEmitter(publisher EventPublisher, m *metrics.Metrics) eventEmitter {
	if publisher == nil {
		publisher = NoopPublisher{}
	}
	return eventEmitter{publisher: publisher, metrics: m}
}

func (e eventEmitter) emit(ctx context.Context, event *models.CatalogEvent) {
	err := e.publisher.PublishEvent(ctx, event)
	e.metrics.IncDomainEvent(string(event.Type), err)
	if err != nil {
		logger.Log.Warn("Failed to publish domain event",
			zap.Error(err),
			zap.String("eventId", event.ID.String()),
			zap.String("eventType", string(event.Type)),
			zap.String("videoId", event.VideoID.String()),
		)
	}
}
