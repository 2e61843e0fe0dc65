package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/streamhub/video-catalog-go/internal/db"
	"github.com/streamhub/video-catalog-go/internal/db/models"
)

// VideoRepository defines operations for managing catalog videos.
type VideoRepository interface {
	// CreateVideo inserts a new video.
	CreateVideo(ctx context.Context, video *models.Video) error

	// GetVideoByID retrieves a single video by ID, active or not.
	GetVideoByID(ctx context.Context, id uuid.UUID) (*models.Video, error)

	// ListActiveVideos retrieves every video that has not been delisted.
	ListActiveVideos(ctx context.Context) ([]*models.Video, error)

	// SearchByDirector retrieves videos whose director contains term, ignoring case.
	SearchByDirector(ctx context.Context, term string) ([]*models.Video, error)

	// UpdateVideo overwrites the descriptive fields and updated_at of an existing video.
	// It refreshes video from the stored row and returns db.ErrNotFound if the id is unknown.
	UpdateVideo(ctx context.Context, video *models.Video) error

	// DelistVideo marks a video inactive. It returns db.ErrNotFound if the id is unknown.
	DelistVideo(ctx context.Context, video *models.Video) error
}

const videoColumns = `id, title, synopsis, director, video_cast, year_of_release, genre, running_time, is_active, created_at, updated_at`

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

type videoRepository struct {
	pool db.Querier
}

// NewVideoRepository creates a new VideoRepository.
func NewVideoRepository(pool db.Querier) VideoRepository {
	return &videoRepository{pool: pool}
}

func (r *videoRepository) CreateVideo(ctx context.Context, video *models.Video) error {
	query := `
		INSERT INTO videos (` + videoColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at, updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		video.ID,
		video.Title,
		video.Synopsis,
		video.Director,
		video.Cast,
		video.YearOfRelease,
		video.Genre,
		video.RunningTime,
		video.IsActive,
		video.CreatedAt,
		video.UpdatedAt,
	).Scan(&video.CreatedAt, &video.UpdatedAt)

	if err != nil {
		return db.WrapError(err, "create video")
	}

	return nil
}

func (r *videoRepository) GetVideoByID(ctx context.Context, id uuid.UUID) (*models.Video, error) {
	query := `SELECT ` + videoColumns + ` FROM videos WHERE id = $1`

	video, err := scanVideo(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, db.WrapError(err, "get video by id")
	}

	return video, nil
}

func (r *videoRepository) ListActiveVideos(ctx context.Context) ([]*models.Video, error) {
	query := `
		SELECT ` + videoColumns + `
		FROM videos
		WHERE is_active
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, db.WrapError(err, "list active videos")
	}
	defer rows.Close()

	return scanVideos(rows)
}

func (r *videoRepository) SearchByDirector(ctx context.Context, term string) ([]*models.Video, error) {
	query := `
		SELECT ` + videoColumns + `
		FROM videos
		WHERE director ILIKE '%' || $1 || '%'
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, likeEscaper.Replace(term))
	if err != nil {
		return nil, db.WrapError(err, "search videos by director")
	}
	defer rows.Close()

	return scanVideos(rows)
}

func (r *videoRepository) UpdateVideo(ctx context.Context, video *models.Video) error {
	query := `
		UPDATE videos
		SET title = $2,
		    synopsis = $3,
		    director = $4,
		    video_cast = $5,
		    year_of_release = $6,
		    genre = $7,
		    running_time = $8,
		    updated_at = $9
		WHERE id = $1
		RETURNING ` + videoColumns

	updated, err := scanVideo(r.pool.QueryRow(ctx, query,
		video.ID,
		video.Title,
		video.Synopsis,
		video.Director,
		video.Cast,
		video.YearOfRelease,
		video.Genre,
		video.RunningTime,
		video.UpdatedAt,
	))
	if err != nil {
		return db.WrapError(err, "update video")
	}

	*video = *updated
	return nil
}

func (r *videoRepository) DelistVideo(ctx context.Context, video *models.Video) error {
	query := `UPDATE videos SET is_active = $2, updated_at = $3 WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, video.ID, video.IsActive, video.UpdatedAt)
	if err != nil {
		return db.WrapError(err, "delist video")
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delist video: %w", db.ErrNotFound)
	}

	return nil
}

func scanVideo(row pgx.Row) (*models.Video, error) {
	video := &models.Video{}
	err := row.Scan(
		&video.ID,
		&video.Title,
		&video.Synopsis,
		&video.Director,
		&video.Cast,
		&video.YearOfRelease,
		&video.Genre,
		&video.RunningTime,
		&video.IsActive,
		&video.CreatedAt,
		&video.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return video, nil
}

// scanVideos drains rows; the result is never nil so it encodes as an empty JSON list.
func scanVideos(rows pgx.Rows) ([]*models.Video, error) {
	videos := []*models.Video{}

	for rows.Next() {
		video, err := scanVideo(rows)
		if err != nil {
			return nil, fmt.Errorf("scan video: %w", err)
		}
		videos = append(videos, video)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate videos: %w", err)
	}

	return videos, nil
}
