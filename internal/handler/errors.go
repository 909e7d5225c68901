package handler

import (
	"errors"
	"log"

	"github.com/gin-gonic/gin"

	"github.com/maroof-insights/storefront-dashboard/internal/analysis"
	"github.com/maroof-insights/storefront-dashboard/pkg/response"
)

// respondError maps parameter errors to 400 and everything else to 500
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, analysis.ErrInvalidSortBy),
		errors.Is(err, analysis.ErrInvalidTopN),
		errors.Is(err, analysis.ErrInvalidRange):
		response.BadRequest(c, err.Error())
	default:
		log.Printf("[Handler] %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		_ = c.Error(err)
		response.InternalError(c, err.Error())
	}
}
