// Package service provides the business logic of the video catalog and engagement counters.
package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/streamhub/video-catalog-go/internal/db"
	dbmodels "github.com/streamhub/video-catalog-go/internal/db/models"
	"github.com/streamhub/video-catalog-go/internal/db/repository"
	"github.com/streamhub/video-catalog-go/internal/metrics"
	"github.com/streamhub/video-catalog-go/internal/models"
	"github.com/streamhub/video-catalog-go/pkg/logger"
)

const (
	msgVideoNotFound = "video not found"
	msgVideoDelisted = "video is delisted"
)

// VideoService handles catalog operations.
type VideoService struct {
	videos  repository.VideoRepository
	stats   repository.EngagementRepository
	events  eventEmitter
	metrics *metrics.Metrics
}

// NewVideoService creates a new VideoService instance. publisher and m may be nil.
func NewVideoService(videos repository.VideoRepository, stats repository.EngagementRepository, publisher EventPublisher, m *metrics.Metrics) *VideoService {
	return &VideoService{
		videos:  videos,
		stats:   stats,
		events:  newEventEmitter(publisher, m),
		metrics: m,
	}
}

// Publish stores a new active video built from details.
func (s *VideoService) Publish(ctx context.Context, details dbmodels.VideoDetails) (*dbmodels.Video, error) {
	video := dbmodels.NewVideo(details)

	if err := s.videos.CreateVideo(ctx, video); err != nil {
		return nil, storeError(err, "failed to publish video")
	}

	logger.Log.Info("Video published",
		zap.String("videoId", video.ID.String()),
		zap.String("title", video.Title),
	)
	s.metrics.IncVideosPublished()
	s.events.emit(ctx, models.NewVideoEvent(models.EventVideoPublished, video))

	return video, nil
}

// GetVideo returns the video with id whether or not it is active.
func (s *VideoService) GetVideo(ctx context.Context, id uuid.UUID) (*dbmodels.Video, error) {
	video, err := s.videos.GetVideoByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "failed to load video")
	}
	return video, nil
}

// ListVideos returns every active video, newest first.
func (s *VideoService) ListVideos(ctx context.Context) ([]*dbmodels.Video, error) {
	videos, err := s.videos.ListActiveVideos(ctx)
	if err != nil {
		return nil, storeError(err, "failed to list videos")
	}
	return videos, nil
}

// SearchByDirector returns every video, active or not, whose director contains term.
func (s *VideoService) SearchByDirector(ctx context.Context, term string) ([]*dbmodels.Video, error) {
	videos, err := s.videos.SearchByDirector(ctx, term)
	if err != nil {
		return nil, storeError(err, "failed to search videos")
	}
	return videos, nil
}

// UpdateVideo overwrites the descriptive fields of an existing video.
func (s *VideoService) UpdateVideo(ctx context.Context, id uuid.UUID, details dbmodels.VideoDetails) (*dbmodels.Video, error) {
	video := &dbmodels.Video{ID: id}
	video.Update(details)

	if err := s.videos.UpdateVideo(ctx, video); err != nil {
		return nil, lookupError(err, "failed to update video")
	}

	logger.Log.Info("Video updated", zap.String("videoId", id.String()))
	s.events.emit(ctx, models.NewVideoEvent(models.EventVideoUpdated, video))

	return video, nil
}

// DelistVideo marks a video inactive. Unknown ids are ignored.
func (s *VideoService) DelistVideo(ctx context.Context, id uuid.UUID) error {
	video := &dbmodels.Video{ID: id}
	video.Delist()

	if err := s.videos.DelistVideo(ctx, video); err != nil {
		if db.IsNotFound(err) {
			logger.Log.Debug("Delist of unknown video ignored", zap.String("videoId", id.String()))
			return nil
		}
		return storeError(err, "failed to delist video")
	}

	logger.Log.Info("Video delisted", zap.String("videoId", id.String()))

	// Only the id is known here; consumers look the video up if they need it.
	event := models.NewVideoEvent(models.EventVideoDelisted, video)
	event.Video = nil
	s.events.emit(ctx, event)

	return nil
}

// PlayVideo returns the streaming placeholder for an active video.
func (s *VideoService) PlayVideo(ctx context.Context, id uuid.UUID) (string, error) {
	video, err := s.videos.GetVideoByID(ctx, id)
	if err != nil {
		return "", lookupError(err, "failed to load video")
	}
	if !video.IsActive {
		return "", invalidState(msgVideoDelisted)
	}
	return video.StreamingMessage(), nil
}

// GetVideoMetadata combines a video's title and running time with its view count.
// A video without counters reports zero views; no counters row is created.
func (s *VideoService) GetVideoMetadata(ctx context.Context, id uuid.UUID) (*models.VideoMetadata, error) {
	var (
		video *dbmodels.Video
		views int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		v, err := s.videos.GetVideoByID(gctx, id)
		if err != nil {
			return lookupError(err, "failed to load video")
		}
		video = v
		return nil
	})
	g.Go(func() error {
		stats, err := s.stats.GetStatsByVideoID(gctx, id)
		switch {
		case err == nil:
			views = stats.Views
		case db.IsNotFound(err):
			// no engagement recorded yet
		default:
			return storeError(err, "failed to load engagement stats")
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &models.VideoMetadata{
		Title:       video.Title,
		RunningTime: video.RunningTime,
		Views:       views,
	}, nil
}

func lookupError(err error, message string) *Error {
	if db.IsNotFound(err) {
		return notFound(msgVideoNotFound, err)
	}
	return storeError(err, message)
}
