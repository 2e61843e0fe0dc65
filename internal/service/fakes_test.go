package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/streamhub/video-catalog-go/internal/db"
	dbmodels "github.com/streamhub/video-catalog-go/internal/db/models"
	"github.com/streamhub/video-catalog-go/internal/models"
	"github.com/streamhub/video-catalog-go/pkg/logger"
)

func init() {
	_ = logger.Init(logger.Options{Level: "error"})
}

var errStore = errors.New("connection refused")

type fakeVideoRepo struct {
	mu     sync.Mutex
	videos map[uuid.UUID]*dbmodels.Video
	err    error
}

func newFakeVideoRepo(videos ...*dbmodels.Video) *fakeVideoRepo {
	r := &fakeVideoRepo{videos: make(map[uuid.UUID]*dbmodels.Video)}
	for _, v := range videos {
		r.videos[v.ID] = v
	}
	return r
}

func (r *fakeVideoRepo) CreateVideo(_ context.Context, video *dbmodels.Video) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	stored := *video
	r.videos[video.ID] = &stored
	return nil
}

func (r *fakeVideoRepo) GetVideoByID(_ context.Context, id uuid.UUID) (*dbmodels.Video, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	v, ok := r.videos[id]
	if !ok {
		return nil, fmt.Errorf("get video: %w", db.ErrNotFound)
	}
	stored := *v
	return &stored, nil
}

func (r *fakeVideoRepo) ListActiveVideos(context.Context) ([]*dbmodels.Video, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	out := []*dbmodels.Video{}
	for _, v := range r.videos {
		if v.IsActive {
			out = append(out, v)
		}
	}
	return out, nil
}

func (r *fakeVideoRepo) SearchByDirector(_ context.Context, term string) ([]*dbmodels.Video, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	out := []*dbmodels.Video{}
	for _, v := range r.videos {
		if strings.Contains(strings.ToLower(v.Director), strings.ToLower(term)) {
			out = append(out, v)
		}
	}
	return out, nil
}

func (r *fakeVideoRepo) UpdateVideo(_ context.Context, video *dbmodels.Video) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	stored, ok := r.videos[video.ID]
	if !ok {
		return fmt.Errorf("update video: %w", db.ErrNotFound)
	}
	stored.VideoDetails = video.VideoDetails
	stored.UpdatedAt = video.UpdatedAt
	*video = *stored
	return nil
}

func (r *fakeVideoRepo) DelistVideo(_ context.Context, video *dbmodels.Video) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	stored, ok := r.videos[video.ID]
	if !ok {
		return fmt.Errorf("delist video: %w", db.ErrNotFound)
	}
	stored.IsActive = false
	stored.UpdatedAt = video.UpdatedAt
	return nil
}

type fakeStatsRepo struct {
	mu    sync.Mutex
	stats map[uuid.UUID]*dbmodels.EngagementStats
	err   error
}

func newFakeStatsRepo() *fakeStatsRepo {
	return &fakeStatsRepo{stats: make(map[uuid.UUID]*dbmodels.EngagementStats)}
}

func (r *fakeStatsRepo) GetStatsByVideoID(_ context.Context, videoID uuid.UUID) (*dbmodels.EngagementStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	s, ok := r.stats[videoID]
	if !ok {
		return nil, fmt.Errorf("get engagement stats: %w", db.ErrNotFound)
	}
	copied := *s
	return &copied, nil
}

func (r *fakeStatsRepo) IncrementImpressions(_ context.Context, videoID uuid.UUID) (*dbmodels.EngagementStats, error) {
	return r.increment(videoID, func(s *dbmodels.EngagementStats) { s.Impressions++ })
}

func (r *fakeStatsRepo) IncrementViews(_ context.Context, videoID uuid.UUID) (*dbmodels.EngagementStats, error) {
	return r.increment(videoID, func(s *dbmodels.EngagementStats) { s.Views++ })
}

func (r *fakeStatsRepo) increment(videoID uuid.UUID, bump func(*dbmodels.EngagementStats)) (*dbmodels.EngagementStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	s, ok := r.stats[videoID]
	if !ok {
		s = dbmodels.NewEngagementStats(videoID)
		r.stats[videoID] = s
	}
	bump(s)
	copied := *s
	return &copied, nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []*models.CatalogEvent
	err    error
}

func (p *recordingPublisher) PublishEvent(_ context.Context, event *models.CatalogEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}

func (p *recordingPublisher) IsHealthy() bool { return p.err == nil }

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) types() []models.EventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]models.EventType, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}
