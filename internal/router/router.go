// Package router assembles the gin engine.
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/streamhub/video-catalog-go/internal/handler"
	"github.com/streamhub/video-catalog-go/internal/metrics"
	"github.com/streamhub/video-catalog-go/internal/middleware"
	"github.com/streamhub/video-catalog-go/internal/models"
)

// Options lists the handlers and optional extras mounted by New.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type Options struct {
	Videos     *handler.VideoHandler
	Engagement *handler.EngagementHandler
	Health     *handler.HealthHandler

	// Metrics is nil when metrics are disabled.
	Metrics     *metrics.Metrics
	MetricsPath string
}

// New builds the engine with middleware and every route mounted.
func New(opts Options) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true

	// Recovery runs innermost so panics are logged and counted as 500s.
	r.Use(middleware.RequestID(), middleware.RequestLogger())
	if opts.Metrics != nil {
		r.Use(middleware.Metrics(opts.Metrics))
	}
	r.Use(middleware.Recovery())

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, models.NewErrorResponse(http.StatusNotFound, "route not found"))
	})
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, models.NewErrorResponse(http.StatusMethodNotAllowed, "method not allowed"))
	})

	videos := r.Group("/videos")
	{
		videos.POST("", opts.Videos.Publish)
		videos.GET("", opts.Videos.List)
		videos.GET("/search", opts.Videos.Search)
		videos.GET("/:id", opts.Videos.Get)
		videos.PUT("/:id", opts.Videos.Update)
		videos.DELETE("/:id", opts.Videos.Delist)
		videos.GET("/:id/play", opts.Videos.Play)
		videos.GET("/:id/metadata", opts.Videos.Metadata)
	}

	engagement := r.Group("/engagement")
	{
		engagement.GET("/:id", opts.Engagement.GetStats)
		engagement.POST("/:id/impression", opts.Engagement.RecordImpression)
		engagement.POST("/:id/view", opts.Engagement.RecordView)
	}

	health := r.Group("/health")
	{
		health.GET("/live", opts.Health.LivenessProbe)
		health.GET("/ready", opts.Health.ReadinessProbe)
	}

	if opts.Metrics != nil {
		path := opts.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		r.GET(path, gin.WrapH(opts.Metrics.Handler()))
	}

	return r
}
