package handler

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/maroof-insights/storefront-dashboard/internal/chart"
	"github.com/maroof-insights/storefront-dashboard/internal/models"
	"github.com/maroof-insights/storefront-dashboard/internal/service"
	"github.com/maroof-insights/storefront-dashboard/pkg/response"
)

const (
	pngContentType  = "image/png"
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// ChartHandler handles HTTP requests for dashboard charts
type ChartHandler struct {
	chartService *service.ChartService
}

// NewChartHandler creates a new chart handler
func NewChartHandler(chartService *service.ChartService) *ChartHandler {
	return &ChartHandler{
		chartService: chartService,
	}
}

// GetBusinessMix handles GET /api/v1/charts/business-mix
func (h *ChartHandler) GetBusinessMix(c *gin.Context) {
	fig, ok := h.businessMix(c)
	if !ok {
		return
	}
	response.Success(c, fig)
}

// GetBusinessMixPNG handles GET /api/v1/charts/business-mix.png
func (h *ChartHandler) GetBusinessMixPNG(c *gin.Context) {
	if fig, ok := h.businessMix(c); ok {
		writePNG(c, fig)
	}
}

// GetBusinessMixXLSX handles GET /api/v1/charts/business-mix.xlsx
func (h *ChartHandler) GetBusinessMixXLSX(c *gin.Context) {
	var filter models.BusinessMixFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	var buf bytes.Buffer
	if err := h.chartService.WriteBusinessMixXLSX(c.Request.Context(), filter, &buf); err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="business-mix.xlsx"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

func (h *ChartHandler) businessMix(c *gin.Context) (chart.Figure, bool) {
	var filter models.BusinessMixFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return chart.Figure{}, false
	}

	fig, err := h.chartService.BusinessMix(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return chart.Figure{}, false
	}
	return fig, true
}

// GetTopRated handles GET /api/v1/charts/top-rated
func (h *ChartHandler) GetTopRated(c *gin.Context) {
	if fig, ok := h.topRated(c); ok {
		response.Success(c, fig)
	}
}

// GetTopRatedPNG handles GET /api/v1/charts/top-rated.png
func (h *ChartHandler) GetTopRatedPNG(c *gin.Context) {
	if fig, ok := h.topRated(c); ok {
		writePNG(c, fig)
	}
}

func (h *ChartHandler) topRated(c *gin.Context) (chart.Figure, bool) {
	var filter models.TopRatedFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return chart.Figure{}, false
	}

	fig, err := h.chartService.TopRated(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return chart.Figure{}, false
	}
	return fig, true
}

// GetMostReviewed handles GET /api/v1/charts/most-reviewed
func (h *ChartHandler) GetMostReviewed(c *gin.Context) {
	if fig, ok := h.mostReviewed(c); ok {
		response.Success(c, fig)
	}
}

// GetMostReviewedPNG handles GET /api/v1/charts/most-reviewed.png
func (h *ChartHandler) GetMostReviewedPNG(c *gin.Context) {
	if fig, ok := h.mostReviewed(c); ok {
		writePNG(c, fig)
	}
}

func (h *ChartHandler) mostReviewed(c *gin.Context) (chart.Figure, bool) {
	var filter models.MostReviewedFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return chart.Figure{}, false
	}

	fig, err := h.chartService.MostReviewed(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return chart.Figure{}, false
	}
	return fig, true
}

// GetHeatmap handles GET /api/v1/charts/heatmap
func (h *ChartHandler) GetHeatmap(c *gin.Context) {
	var filter models.HeatmapFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	fig, err := h.chartService.Heatmap(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, fig)
}

// writePNG answers 204 for figures that only carry a message
func writePNG(c *gin.Context, fig chart.Figure) {
	var buf bytes.Buffer
	err := chart.WritePNG(fig, &buf)
	switch {
	case errors.Is(err, chart.ErrNothingToRender):
		c.Status(http.StatusNoContent)
	case errors.Is(err, chart.ErrUnsupportedFigure):
		response.BadRequest(c, err.Error())
	case err != nil:
		respondError(c, err)
	default:
		c.Data(http.StatusOK, pngContentType, buf.Bytes())
	}
}
