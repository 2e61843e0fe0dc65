package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/streamhub/video-catalog-go/internal/models"
	"github.com/streamhub/video-catalog-go/internal/service"
	"github.com/streamhub/video-catalog-go/pkg/logger"
)

const internalErrorMessage = "An unexpected error occurred"

// statusByKind is the single mapping from service failures to HTTP statuses.
var statusByKind = map[service.Kind]int{
	service.KindInvalidArgument: http.StatusBadRequest,
	service.KindNotFound:        http.StatusNotFound,
	service.KindInvalidState:    http.StatusConflict,
	service.KindInternal:        http.StatusInternalServerError,
}

func statusFor(kind service.Kind) int {
	if status, ok := statusByKind[kind]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// handleError writes the error body for err. Internal causes are logged, never returned.
func handleError(c *gin.Context, err error) {
	kind := service.KindOf(err)
	status := statusFor(kind)

	if status == http.StatusInternalServerError {
		logger.Log.Error("Unexpected error",
			zap.Error(err),
			zap.String("path", c.Request.URL.Path),
		)
		c.JSON(status, models.NewErrorResponse(status, internalErrorMessage))
		return
	}

	message := err.Error()
	var svcErr *service.Error
	if errors.As(err, &svcErr) {
		message = svcErr.Message
	}

	logger.Log.Warn("Request failed",
		zap.Error(err),
		zap.String("kind", kind.String()),
		zap.String("path", c.Request.URL.Path),
	)
	c.JSON(status, models.NewErrorResponse(status, message))
}
