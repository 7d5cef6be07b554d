package search

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type ControllerImpl struct {
	service Service
}

func NewControllerImpl(service Service) *ControllerImpl {
	return &ControllerImpl{service: service}
}

// Search handles GET /api/search-pixabay?q=&orientation=
func (c *ControllerImpl) Search(ctx *gin.Context) {
	req := NewRequest(ctx.Query("q"), ctx.DefaultQuery("orientation", string(OrientationAll)))

	result, err := c.service.Search(ctx.Request.Context(), req)
	if err != nil {
		status, message := errorResponse(err)
		ctx.JSON(status, gin.H{"error": message})
		return
	}
	ctx.JSON(http.StatusOK, result)
}

func (c *ControllerImpl) RegisterRoutes(router *gin.Engine) {
	router.GET("/api/search-pixabay", c.Search)
}

// errorResponse maps a search error to a status code and a stage message. Internal error
// text is never exposed.
func errorResponse(err error) (int, string) {
	switch {
	case errors.Is(err, ErrMissingQuery):
		return http.StatusBadRequest, "missing search parameter 'q'"
	case errors.Is(err, ErrNotConfigured):
		return http.StatusInternalServerError, "the media search service is not configured"
	case errors.Is(err, ErrUpstreamUnavailable):
		return http.StatusBadGateway, "could not reach the external media service"
	default:
		return http.StatusInternalServerError, "unexpected error while searching media"
	}
}
