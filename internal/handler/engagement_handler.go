package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	dbmodels "github.com/streamhub/video-catalog-go/internal/db/models"
)

// EngagementCounters is the counter behaviour the HTTP layer depends on.
type EngagementCounters interface {
	RecordImpression(ctx context.Context, videoID uuid.UUID) error
	RecordView(ctx context.Context, videoID uuid.UUID) error
	GetStats(ctx context.Context, videoID uuid.UUID) (*dbmodels.EngagementStats, error)
}

// EngagementHandler handles the /engagement routes.
type EngagementHandler struct {
	counters EngagementCounters
}

// NewEngagementHandler creates a new EngagementHandler instance.
func NewEngagementHandler(counters EngagementCounters) *EngagementHandler {
	return &EngagementHandler{counters: counters}
}

// RecordImpression handles POST /engagement/:id/impression.
func (h *EngagementHandler) RecordImpression(c *gin.Context) {
	h.record(c, h.counters.RecordImpression)
}

// RecordView handles POST /engagement/:id/view.
func (h *EngagementHandler) RecordView(c *gin.Context) {
	h.record(c, h.counters.RecordView)
}

// GetStats handles GET /engagement/:id.
func (h *EngagementHandler) GetStats(c *gin.Context) {
	id, ok := videoIDParam(c)
	if !ok {
		return
	}

	stats, err := h.counters.GetStats(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (h *EngagementHandler) record(c *gin.Context, increment func(context.Context, uuid.UUID) error) {
	id, ok := videoIDParam(c)
	if !ok {
		return
	}

	if err := increment(c.Request.Context(), id); err != nil {
		handleError(c, err)
		return
	}

	c.Status(http.StatusOK)
}
