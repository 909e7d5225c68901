package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/maroof-insights/storefront-dashboard/internal/models"
	"github.com/maroof-insights/storefront-dashboard/internal/service"
	"github.com/maroof-insights/storefront-dashboard/pkg/response"
)

// DatasetHandler handles HTTP requests for the loaded store table
type DatasetHandler struct {
	datasetService *service.DatasetService
	chartService   *service.ChartService
}

// NewDatasetHandler creates a new dataset handler
func NewDatasetHandler(datasetService *service.DatasetService, chartService *service.ChartService) *DatasetHandler {
	return &DatasetHandler{
		datasetService: datasetService,
		chartService:   chartService,
	}
}

// GetMetrics handles GET /api/v1/dataset/metrics
func (h *DatasetHandler) GetMetrics(c *gin.Context) {
	var filter models.MetricsFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	overview, err := h.chartService.Overview(c.Request.Context(), filter.HighRating)
	if err != nil {
		respondError(c, err)
		return
	}
	overview.Snapshot = h.datasetService.Snapshot()

	response.Success(c, overview)
}

// Refresh handles POST /api/v1/dataset/refresh
func (h *DatasetHandler) Refresh(c *gin.Context) {
	snap, err := h.datasetService.Refresh(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, snap)
}

// GetQuickRanges handles GET /api/v1/ranges/quick
func (h *DatasetHandler) GetQuickRanges(c *gin.Context) {
	ranges, err := h.chartService.QuickRanges(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, ranges)
}

// GetRangeAnalysis handles GET /api/v1/ranges/analysis
func (h *DatasetHandler) GetRangeAnalysis(c *gin.Context) {
	var filter models.ReviewRangeFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.chartService.AnalyzeRange(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, result)
}
