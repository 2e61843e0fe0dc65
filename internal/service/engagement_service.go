package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/streamhub/video-catalog-go/internal/db"
	dbmodels "github.com/streamhub/video-catalog-go/internal/db/models"
	"github.com/streamhub/video-catalog-go/internal/db/repository"
	"github.com/streamhub/video-catalog-go/internal/metrics"
	"github.com/streamhub/video-catalog-go/internal/models"
	"github.com/streamhub/video-catalog-go/pkg/logger"
)

// EngagementService records impressions and views.
// Counters are keyed by video id only; the catalog is not consulted.
type EngagementService struct {
	stats   repository.EngagementRepository
	events  eventEmitter
	metrics *metrics.Metrics
}

// NewEngagementService creates a new EngagementService instance. publisher and m may be nil.
func NewEngagementService(stats repository.EngagementRepository, publisher EventPublisher, m *metrics.Metrics) *EngagementService {
	return &EngagementService{
		stats:   stats,
		events:  newEventEmitter(publisher, m),
		metrics: m,
	}
}

// RecordImpression adds one impression, creating the counters on first use.
func (s *EngagementService) RecordImpression(ctx context.Context, videoID uuid.UUID) error {
	stats, err := s.stats.IncrementImpressions(ctx, videoID)
	if err != nil {
		return storeError(err, "failed to record impression")
	}
	s.recorded(ctx, "impression", models.EventEngagementImpression, stats)
	return nil
}

// RecordView adds one view, creating the counters on first use.
func (s *EngagementService) RecordView(ctx context.Context, videoID uuid.UUID) error {
	stats, err := s.stats.IncrementViews(ctx, videoID)
	if err != nil {
		return storeError(err, "failed to record view")
	}
	s.recorded(ctx, "view", models.EventEngagementView, stats)
	return nil
}

// GetStats returns the counters of videoID.
func (s *EngagementService) GetStats(ctx context.Context, videoID uuid.UUID) (*dbmodels.EngagementStats, error) {
	stats, err := s.stats.GetStatsByVideoID(ctx, videoID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, notFound("engagement stats not found", err)
		}
		return nil, storeError(err, "failed to load engagement stats")
	}
	return stats, nil
}

func (s *EngagementService) recorded(ctx context.Context, kind string, eventType models.EventType, stats *dbmodels.EngagementStats) {
	logger.Log.Debug("Engagement recorded",
		zap.String("kind", kind),
		zap.String("videoId", stats.VideoID.String()),
		zap.Int64("impressions", stats.Impressions),
		zap.Int64("views", stats.Views),
	)
	s.metrics.IncEngagement(kind)
	s.events.emit(ctx, models.NewEngagementEvent(eventType, stats))
}
