package models

import (
	"time"

	"github.com/google/uuid"
)

// VideoDetails holds the descriptive, caller-editable fields of a video.
type VideoDetails struct {
	Title         string `json:"title"`
	Synopsis      string `json:"synopsis"`
	Director      string `json:"director"`
	Cast          string `json:"cast"`
	YearOfRelease int    `json:"yearOfRelease"`
	Genre         string `json:"genre"`
	RunningTime   int    `json:"runningTime"`
}

// Video is a catalog entry. Videos are never physically deleted; delisting clears IsActive.
type Video struct {
	ID uuid.UUID `json:"id" db:"id"`
	VideoDetails
	IsActive  bool      `json:"isActive" db:"is_active"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// NewVideo creates an active Video with a fresh ID.
func NewVideo(details VideoDetails) *Video {
	now := time.Now().UTC()
	return &Video{
		ID:           uuid.New(),
		VideoDetails: details,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// Update replaces the descriptive fields and bumps UpdatedAt.
// ID, IsActive and CreatedAt are left untouched.
func (v *Video) Update(details VideoDetails) {
	v.VideoDetails = details
	v.UpdatedAt = time.Now().UTC()
}

// Delist marks the video inactive.
func (v *Video) Delist() {
	v.IsActive = false
	v.UpdatedAt = time.Now().UTC()
}

// StreamingMessage is the placeholder payload returned by play.
func (v *Video) StreamingMessage() string {
	return "Streaming video content for: " + v.Title
}
