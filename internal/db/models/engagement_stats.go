package models

import "github.com/google/uuid"

// EngagementStats holds the impression and view counters of one video.
// VideoID is a plain reference: counters may exist for ids the catalog does not know.
type EngagementStats struct {
	ID          uuid.UUID `json:"id" db:"id"`
	VideoID     uuid.UUID `json:"videoId" db:"video_id"`
	Impressions int64     `json:"impressions" db:"impressions"`
	Views       int64     `json:"views" db:"views"`
}

// NewEngagementStats returns zeroed counters for videoID.
func NewEngagementStats(videoID uuid.UUID) *EngagementStats {
	return &EngagementStats{
		ID:      uuid.New(),
		VideoID: videoID,
	}
}
