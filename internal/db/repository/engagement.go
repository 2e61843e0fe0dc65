package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/streamhub/video-catalog-go/internal/db"
	"github.com/streamhub/video-catalog-go/internal/db/models"
)

// EngagementRepository defines operations for per-video engagement counters.
type EngagementRepository interface {
	// GetStatsByVideoID retrieves the counters of a video. It returns db.ErrNotFound
	// when nothing has been recorded for the video yet.
	GetStatsByVideoID(ctx context.Context, videoID uuid.UUID) (*models.EngagementStats, error)

	// IncrementImpressions adds one impression, creating the counters row on first use.
	IncrementImpressions(ctx context.Context, videoID uuid.UUID) (*models.EngagementStats, error)

	// IncrementViews adds one view, creating the counters row on first use.
	IncrementViews(ctx context.Context, videoID uuid.UUID) (*models.EngagementStats, error)
}

// The increments are single INSERT ... ON CONFLICT statements so concurrent
// first-time writers for one video converge on one row without lost updates.
const (
	incrementImpressionsQuery = `
		INSERT INTO engagement_stats (id, video_id, impressions, views)
		VALUES ($1, $2, 1, 0)
		ON CONFLICT (video_id) DO UPDATE
		SET impressions = engagement_stats.impressions + 1
		RETURNING id, video_id, impressions, views
	`

	incrementViewsQuery = `
		INSERT INTO engagement_stats (id, video_id, impressions, views)
		VALUES ($1, $2, 0, 1)
		ON CONFLICT (video_id) DO UPDATE
		SET views = engagement_stats.views + 1
		RETURNING id, video_id, impressions, views
	`
)

type engagementRepository struct {
	pool db.Querier
}

// NewEngagementRepository creates a new EngagementRepository.
func NewEngagementRepository(pool db.Querier) EngagementRepository {
	return &engagementRepository{pool: pool}
}

func (r *engagementRepository) GetStatsByVideoID(ctx context.Context, videoID uuid.UUID) (*models.EngagementStats, error) {
	query := `
		SELECT id, video_id, impressions, views
		FROM engagement_stats
		WHERE video_id = $1
	`

	stats := &models.EngagementStats{}
	err := r.pool.QueryRow(ctx, query, videoID).Scan(
		&stats.ID,
		&stats.VideoID,
		&stats.Impressions,
		&stats.Views,
	)
	if err != nil {
		return nil, db.WrapError(err, "get engagement stats")
	}

	return stats, nil
}

func (r *engagementRepository) IncrementImpressions(ctx context.Context, videoID uuid.UUID) (*models.EngagementStats, error) {
	return r.increment(ctx, incrementImpressionsQuery, videoID, "increment impressions")
}

func (r *engagementRepository) IncrementViews(ctx context.Context, videoID uuid.UUID) (*models.EngagementStats, error) {
	return r.increment(ctx, incrementViewsQuery, videoID, "increment views")
}

func (r *engagementRepository) increment(ctx context.Context, query string, videoID uuid.UUID, operation string) (*models.EngagementStats, error) {
	stats := models.NewEngagementStats(videoID)

	err := r.pool.QueryRow(ctx, query, stats.ID, videoID).Scan(
		&stats.ID,
		&stats.VideoID,
		&stats.Impressions,
		&stats.Views,
	)
	if err != nil {
		return nil, db.WrapError(err, operation)
	}

	return stats, nil
}
