package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/streamhub/video-catalog-go/internal/db"
	"github.com/streamhub/video-catalog-go/internal/db/models"
)

var videoColumnNames = []string{
	"id", "title", "synopsis", "director", "video_cast", "year_of_release",
	"genre", "running_time", "is_active", "created_at", "updated_at",
}

func sampleVideo() *models.Video {
	return models.NewVideo(models.VideoDetails{
		Title:         "Inception",
		Synopsis:      "A thief who steals corporate secrets through dream-sharing.",
		Director:      "Christopher Nolan",
		Cast:          "Leonardo DiCaprio, Elliot Page",
		YearOfRelease: 2010,
		Genre:         "Sci-Fi",
		RunningTime:   148,
	})
}

func videoRow(videos ...*models.Video) *pgxmock.Rows {
	rows := pgxmock.NewRows(videoColumnNames)
	for _, v := range videos {
		rows.AddRow(v.ID, v.Title, v.Synopsis, v.Director, v.Cast, v.YearOfRelease,
			v.Genre, v.RunningTime, v.IsActive, v.CreatedAt, v.UpdatedAt)
	}
	return rows
}

func newMockPool(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func TestVideoRepository_CreateVideo(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(mock pgxmock.PgxPoolIface, v *models.Video)
		wantErr bool
	}{
		{
			name: "successful creation",
			setup: func(mock pgxmock.PgxPoolIface, v *models.Video) {
				mock.ExpectQuery("INSERT INTO videos").
					WithArgs(v.ID, v.Title, v.Synopsis, v.Director, v.Cast, v.YearOfRelease,
						v.Genre, v.RunningTime, true, v.CreatedAt, v.UpdatedAt).
					WillReturnRows(pgxmock.NewRows([]string{"created_at", "updated_at"}).
						AddRow(v.CreatedAt, v.UpdatedAt))
			},
		},
		{
			name: "database error",
			setup: func(mock pgxmock.PgxPoolIface, v *models.Video) {
				mock.ExpectQuery("INSERT INTO videos").
					WithArgs(v.ID, v.Title, v.Synopsis, v.Director, v.Cast, v.YearOfRelease,
						v.Genre, v.RunningTime, true, v.CreatedAt, v.UpdatedAt).
					WillReturnError(assert.AnError)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := newMockPool(t)
			video := sampleVideo()
			tt.setup(mock, video)

			repo := NewVideoRepository(mock)
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			err := repo.CreateVideo(ctx, video)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}

			assert.NoError(t, mock.ExpectationsWereMet(), "pgxmock expectations were not met")
		})
	}
}

func TestVideoRepository_GetVideoByID(t *testing.T) {
	video := sampleVideo()
	video.IsActive = false

	tests := []struct {
		name         string
		setup        func(mock pgxmock.PgxPoolIface)
		wantNotFound bool
		wantErr      bool
	}{
		{
			name: "returns inactive video too",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery("SELECT .+ FROM videos WHERE id = \\$1").
					WithArgs(video.ID).
					WillReturnRows(videoRow(video))
			},
		},
		{
			name: "not found",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery("SELECT .+ FROM videos WHERE id = \\$1").
					WithArgs(video.ID).
					WillReturnError(pgx.ErrNoRows)
			},
			wantErr:      true,
			wantNotFound: true,
		},
		{
			name: "database error",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery("SELECT .+ FROM videos WHERE id = \\$1").
					WithArgs(video.ID).
					WillReturnError(assert.AnError)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := newMockPool(t)
			tt.setup(mock)

			got, err := NewVideoRepository(mock).GetVideoByID(context.Background(), video.ID)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tt.wantNotFound, db.IsNotFound(err))
				assert.Nil(t, got)
			} else {
				require.NoError(t, err)
				assert.Equal(t, video, got)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestVideoRepository_ListActiveVideos(t *testing.T) {
	t.Run("returns rows in store order", func(t *testing.T) {
		mock := newMockPool(t)
		first, second := sampleVideo(), sampleVideo()
		mock.ExpectQuery("SELECT .+ FROM videos\\s+WHERE is_active").
			WillReturnRows(videoRow(first, second))

		got, err := NewVideoRepository(mock).ListActiveVideos(context.Background())

		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, first.ID, got[0].ID)
		assert.Equal(t, second.ID, got[1].ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty result is an empty slice", func(t *testing.T) {
		mock := newMockPool(t)
		mock.ExpectQuery("SELECT .+ FROM videos\\s+WHERE is_active").
			WillReturnRows(videoRow())

		got, err := NewVideoRepository(mock).ListActiveVideos(context.Background())

		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("query error", func(t *testing.T) {
		mock := newMockPool(t)
		mock.ExpectQuery("SELECT .+ FROM videos").WillReturnError(assert.AnError)

		_, err := NewVideoRepository(mock).ListActiveVideos(context.Background())

		assert.ErrorIs(t, err, assert.AnError)
	})
}

func TestVideoRepository_SearchByDirector(t *testing.T) {
	tests := []struct {
		name     string
		term     string
		wantArg  string
		returned int
	}{
		{"plain term", "nolan", "nolan", 1},
		{"percent is matched literally", "100%", `100\%`, 0},
		{"underscore is matched literally", "a_b", `a\_b`, 0},
		{"backslash is escaped first", `a\b`, `a\\b`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := newMockPool(t)
			videos := make([]*models.Video, 0, tt.returned)
			for i := 0; i < tt.returned; i++ {
				videos = append(videos, sampleVideo())
			}
			mock.ExpectQuery("WHERE director ILIKE").
				WithArgs(tt.wantArg).
				WillReturnRows(videoRow(videos...))

			got, err := NewVideoRepository(mock).SearchByDirector(context.Background(), tt.term)

			require.NoError(t, err)
			assert.Len(t, got, tt.returned)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestVideoRepository_UpdateVideo(t *testing.T) {
	t.Run("refreshes the video from the stored row", func(t *testing.T) {
		mock := newMockPool(t)
		stored := sampleVideo()
		stored.IsActive = false
		stored.CreatedAt = stored.CreatedAt.Add(-time.Hour)

		input := &models.Video{ID: stored.ID, VideoDetails: stored.VideoDetails, UpdatedAt: stored.UpdatedAt}

		mock.ExpectQuery("UPDATE videos").
			WithArgs(stored.ID, stored.Title, stored.Synopsis, stored.Director, stored.Cast,
				stored.YearOfRelease, stored.Genre, stored.RunningTime, stored.UpdatedAt).
			WillReturnRows(videoRow(stored))

		err := NewVideoRepository(mock).UpdateVideo(context.Background(), input)

		require.NoError(t, err)
		assert.Equal(t, stored, input)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown id", func(t *testing.T) {
		mock := newMockPool(t)
		video := sampleVideo()
		mock.ExpectQuery("UPDATE videos").WillReturnError(pgx.ErrNoRows)

		err := NewVideoRepository(mock).UpdateVideo(context.Background(), video)

		assert.True(t, db.IsNotFound(err))
	})
}

func TestVideoRepository_DelistVideo(t *testing.T) {
	tests := []struct {
		name         string
		rows         int64
		execErr      error
		wantNotFound bool
		wantErr      bool
	}{
		{name: "delists existing video", rows: 1},
		{name: "unknown id", rows: 0, wantErr: true, wantNotFound: true},
		{name: "database error", execErr: assert.AnError, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := newMockPool(t)
			video := sampleVideo()
			video.Delist()

			exp := mock.ExpectExec("UPDATE videos SET is_active").
				WithArgs(video.ID, false, video.UpdatedAt)
			if tt.execErr != nil {
				exp.WillReturnError(tt.execErr)
			} else {
				exp.WillReturnResult(pgxmock.NewResult("UPDATE", tt.rows))
			}

			err := NewVideoRepository(mock).DelistVideo(context.Background(), video)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tt.wantNotFound, db.IsNotFound(err))
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestLikeEscaper(t *testing.T) {
	assert.Equal(t, `50\% \_off\\`, likeEscaper.Replace(`50% _off\`))
	assert.Equal(t, "christopher", likeEscaper.Replace("christopher"))
	assert.NotEqual(t, uuid.Nil, sampleVideo().ID)
}
