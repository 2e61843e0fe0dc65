package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dbmodels "github.com/streamhub/video-catalog-go/internal/db/models"
	"github.com/streamhub/video-catalog-go/internal/handler"
	"github.com/streamhub/video-catalog-go/internal/metrics"
	"github.com/streamhub/video-catalog-go/internal/middleware"
	"github.com/streamhub/video-catalog-go/internal/models"
	"github.com/streamhub/video-catalog-go/pkg/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
	_ = logger.Init(logger.Options{Level: "error"})
}

// searchOnlyCatalog panics on any call other than the ones it overrides.
type searchOnlyCatalog struct {
	handler.VideoCatalog
	searched string
	gotID    uuid.UUID
}

func (c *searchOnlyCatalog) SearchByDirector(_ context.Context, term string) ([]*dbmodels.Video, error) {
	c.searched = term
	return nil, nil
}

func (c *searchOnlyCatalog) GetVideo(_ context.Context, id uuid.UUID) (*dbmodels.Video, error) {
	c.gotID = id
	return &dbmodels.Video{ID: id}, nil
}

type okPinger struct{}

func (okPinger) Ping(context.Context) error { return nil }

func newTestRouter(catalog handler.VideoCatalog, m *metrics.Metrics) *gin.Engine {
	return New(Options{
		Videos:      handler.NewVideoHandler(catalog),
		Engagement:  handler.NewEngagementHandler(nil),
		Health:      handler.NewHealthHandler(okPinger{}, nil),
		Metrics:     m,
		MetricsPath: "/metrics",
	})
}

func serve(r http.Handler, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func TestRouter_SearchIsNotAnID(t *testing.T) {
	catalog := &searchOnlyCatalog{}
	r := newTestRouter(catalog, nil)

	w := serve(r, http.MethodGet, "/videos/search?director=nolan")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "nolan", catalog.searched)
	assert.JSONEq(t, `[]`, w.Body.String())

	id := uuid.New()
	w = serve(r, http.MethodGet, "/videos/"+id.String())
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, id, catalog.gotID)
}

func TestRouter_Health(t *testing.T) {
	r := newTestRouter(&searchOnlyCatalog{}, nil)

	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/health/live").Code)
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/health/ready").Code)
}

func TestRouter_UnknownRouteAndMethod(t *testing.T) {
	r := newTestRouter(&searchOnlyCatalog{}, nil)

	w := serve(r, http.MethodGet, "/nowhere")
	require.Equal(t, http.StatusNotFound, w.Code)
	var body models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, http.StatusNotFound, body.StatusCode)

	w = serve(r, http.MethodPatch, "/videos/"+uuid.NewString())
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestRouter_RequestIDHeader(t *testing.T) {
	r := newTestRouter(&searchOnlyCatalog{}, nil)

	w := serve(r, http.MethodGet, "/health/live")

	assert.NotEmpty(t, w.Header().Get(middleware.HeaderRequestID))
}

func TestRouter_Metrics(t *testing.T) {
	t.Run("enabled", func(t *testing.T) {
		m := metrics.New()
		r := newTestRouter(&searchOnlyCatalog{}, m)

		serve(r, http.MethodGet, "/health/live")
		w := serve(r, http.MethodGet, "/metrics")

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `video_catalog_http_requests_total{method="GET",route="/health/live",status="200"} 1`)
	})

	t.Run("panics are counted as 500", func(t *testing.T) {
		m := metrics.New()
		r := newTestRouter(&searchOnlyCatalog{}, m)
		r.GET("/boom", func(*gin.Context) { panic("boom") })

		require.Equal(t, http.StatusInternalServerError, serve(r, http.MethodGet, "/boom").Code)
		w := serve(r, http.MethodGet, "/metrics")

		assert.Contains(t, w.Body.String(), `video_catalog_http_requests_total{method="GET",route="/boom",status="500"} 1`)
	})

	t.Run("disabled", func(t *testing.T) {
		r := newTestRouter(&searchOnlyCatalog{}, nil)

		assert.Equal(t, http.StatusNotFound, serve(r, http.MethodGet, "/metrics").Code)
	})
}
