// Package controller exposes the catalog over REST.
package controller

import (
	"net/http"
	"strconv"

	errors "github.com/Laisky/errors/v2"
	glog "github.com/Laisky/go-utils/v6/log"
	"github.com/Laisky/zap"
	"github.com/gin-gonic/gin"

	"github.com/video-club/video-club-api/internal/web/catalog/model"
	"github.com/video-club/video-club-api/internal/web/catalog/service"
)

// Controller catalog http handlers
type Controller struct {
	logger glog.Logger
	svc    *service.Catalog
}

// New new catalog controller
func New(logger glog.Logger, svc *service.Catalog) *Controller {
	return &Controller{
		logger: logger,
		svc:    svc,
	}
}

// abortErr maps a service error to its http status. Unclassified errors
// are logged server-side and answered with an opaque 500.
func (c *Controller) abortErr(ctx *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, model.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, model.ErrAlreadyLinked):
		status = http.StatusConflict
	case errors.Is(err, model.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, model.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	}

	if status == http.StatusInternalServerError {
		c.logger.Error("request failed",
			zap.String("path", ctx.Request.URL.Path), zap.Error(err))
		ctx.AbortWithStatusJSON(status, gin.H{"error": "internal server error"})
		return
	}

	ctx.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}

// pageQuery reads the 1-based page and page-size query parameters,
// leaving range clamping to the service layer.
func pageQuery(ctx *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(ctx.Query("page"))
	limit, _ = strconv.Atoi(ctx.Query("limit"))
	return page, limit
}

// localeQuery reads the display language query parameter; the service
// layer falls back to the default locale for unsupported values.
func localeQuery(ctx *gin.Context) string {
	return ctx.Query("locale")
}
