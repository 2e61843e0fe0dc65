// Package handler provides HTTP request handlers for the application.
package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	dbmodels "github.com/streamhub/video-catalog-go/internal/db/models"
	"github.com/streamhub/video-catalog-go/internal/models"
	"github.com/streamhub/video-catalog-go/internal/service"
	"github.com/streamhub/video-catalog-go/internal/validation"
	"github.com/streamhub/video-catalog-go/pkg/logger"
)

// VideoCatalog is the catalog behaviour the HTTP layer depends on.
type VideoCatalog interface {
	Publish(ctx context.Context, details dbmodels.VideoDetails) (*dbmodels.Video, error)
	GetVideo(ctx context.Context, id uuid.UUID) (*dbmodels.Video, error)
	ListVideos(ctx context.Context) ([]*dbmodels.Video, error)
	SearchByDirector(ctx context.Context, term string) ([]*dbmodels.Video, error)
	UpdateVideo(ctx context.Context, id uuid.UUID, details dbmodels.VideoDetails) (*dbmodels.Video, error)
	DelistVideo(ctx context.Context, id uuid.UUID) error
	PlayVideo(ctx context.Context, id uuid.UUID) (string, error)
	GetVideoMetadata(ctx context.Context, id uuid.UUID) (*models.VideoMetadata, error)
}

// VideoHandler handles the /videos routes.
type VideoHandler struct {
	videos VideoCatalog
}

// NewVideoHandler creates a new VideoHandler instance.
func NewVideoHandler(videos VideoCatalog) *VideoHandler {
	return &VideoHandler{videos: videos}
}

// Publish handles POST /videos.
func (h *VideoHandler) Publish(c *gin.Context) {
	details, ok := bindVideoDetails(c)
	if !ok {
		return
	}

	video, err := h.videos.Publish(c.Request.Context(), details)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, video)
}

// Get handles GET /videos/:id.
func (h *VideoHandler) Get(c *gin.Context) {
	id, ok := videoIDParam(c)
	if !ok {
		return
	}

	video, err := h.videos.GetVideo(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, video)
}

// List handles GET /videos.
func (h *VideoHandler) List(c *gin.Context) {
	videos, err := h.videos.ListVideos(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, nonNil(videos))
}

// Search handles GET /videos/search?director=.
func (h *VideoHandler) Search(c *gin.Context) {
	raw, present := c.GetQuery("director")
	if !present {
		handleError(c, service.InvalidArgument("director parameter is required", nil))
		return
	}

	term, err := validation.NormalizeSearchTerm(raw)
	if err != nil {
		handleError(c, service.InvalidArgument(err.Error(), err))
		return
	}

	videos, err := h.videos.SearchByDirector(c.Request.Context(), term)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, nonNil(videos))
}

// Update handles PUT /videos/:id.
func (h *VideoHandler) Update(c *gin.Context) {
	id, ok := videoIDParam(c)
	if !ok {
		return
	}

	details, ok := bindVideoDetails(c)
	if !ok {
		return
	}

	video, err := h.videos.UpdateVideo(c.Request.Context(), id, details)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, video)
}

// Delist handles DELETE /videos/:id. Unknown ids still yield 204.
func (h *VideoHandler) Delist(c *gin.Context) {
	id, ok := videoIDParam(c)
	if !ok {
		return
	}

	if err := h.videos.DelistVideo(c.Request.Context(), id); err != nil {
		handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Play handles GET /videos/:id/play.
func (h *VideoHandler) Play(c *gin.Context) {
	id, ok := videoIDParam(c)
	if !ok {
		return
	}

	message, err := h.videos.PlayVideo(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}

	c.String(http.StatusOK, message)
}

// Metadata handles GET /videos/:id/metadata.
func (h *VideoHandler) Metadata(c *gin.Context) {
	id, ok := videoIDParam(c)
	if !ok {
		return
	}

	metadata, err := h.videos.GetVideoMetadata(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, metadata)
}

func bindVideoDetails(c *gin.Context) (dbmodels.VideoDetails, bool) {
	var details dbmodels.VideoDetails
	if err := c.ShouldBindJSON(&details); err != nil {
		logger.Log.Warn("Invalid request payload",
			zap.Error(err),
			zap.String("path", c.Request.URL.Path),
		)
		handleError(c, service.InvalidArgument("Invalid request payload: "+err.Error(), err))
		return details, false
	}
	return details, true
}

func videoIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := validation.ParseVideoID(c.Param("id"))
	if err != nil {
		handleError(c, service.InvalidArgument(err.Error(), err))
		return uuid.Nil, false
	}
	return id, true
}

func nonNil(videos []*dbmodels.Video) []*dbmodels.Video {
	if videos == nil {
		return []*dbmodels.Video{}
	}
	return videos
}
