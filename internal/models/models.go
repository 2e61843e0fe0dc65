// Package models contains the DTOs and event payloads exchanged by the video catalog service.
package models

import (
	"time"

	"github.com/google/uuid"

	dbmodels "github.com/streamhub/video-catalog-go/internal/db/models"
)

// EventType is the kind of a domain event. It doubles as the AMQP routing key.
type EventType string

// EventType constants define the domain events emitted after successful mutations.
const (
	EventVideoPublished       EventType = "video.published"
	EventVideoUpdated         EventType = "video.updated"
	EventVideoDelisted        EventType = "video.delisted"
	EventEngagementImpression EventType = "engagement.impression"
	EventEngagementView       EventType = "engagement.view"
)

// CatalogEvent describes a completed catalog or engagement mutation.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type CatalogEvent struct {
	ID         uuid.UUID                 `json:"id"`
	Type       EventType                 `json:"type"`
	VideoID    uuid.UUID                 `json:"videoId"`
	OccurredAt time.Time                 `json:"occurredAt"`
	Video      *dbmodels.Video           `json:"video,omitempty"`
	Stats      *dbmodels.EngagementStats `json:"stats,omitempty"`
}

// NewVideoEvent builds an event carrying a snapshot of video.
func NewVideoEvent(eventType EventType, video *dbmodels.Video) *CatalogEvent {
	return &CatalogEvent{
		ID:         uuid.New(),
		Type:       eventType,
		VideoID:    video.ID,
		OccurredAt: time.Now().UTC(),
		Video:      video,
	}
}

// NewEngagementEvent builds an event carrying the counters after an increment.
func NewEngagementEvent(eventType EventType, stats *dbmodels.EngagementStats) *CatalogEvent {
	return &CatalogEvent{
		ID:         uuid.New(),
		Type:       eventType,
		VideoID:    stats.VideoID,
		OccurredAt: time.Now().UTC(),
		Stats:      stats,
	}
}

// VideoMetadata is the combined catalog and engagement view of a single video.
type VideoMetadata struct {
	Title       string `json:"title"`
	RunningTime int    `json:"runningTime"`
	Views       int64  `json:"views"`
}

// ErrorResponse represents an error response.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type ErrorResponse struct {
	ErrorID    uuid.UUID `json:"errorId"`
	StatusCode int       `json:"statusCode"`
	Message    string    `json:"message"`
	Timestamp  time.Time `json:"timestamp"`
}

// NewErrorResponse stamps a failure with a fresh error id and the current time.
func NewErrorResponse(status int, message string) ErrorResponse {
	return ErrorResponse{
		ErrorID:    uuid.New(),
		StatusCode: status,
		Message:    message,
		Timestamp:  time.Now().UTC(),
	}
}
