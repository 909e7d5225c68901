package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/maroof-insights/storefront-dashboard/internal/config"
	"github.com/maroof-insights/storefront-dashboard/internal/handler"
	"github.com/maroof-insights/storefront-dashboard/internal/middleware"
)

// Handlers groups the HTTP handlers mounted by the router
type Handlers struct {
	Chart   *handler.ChartHandler
	Dataset *handler.DatasetHandler
}

// SetupRouter 设置路由. The returned stop function ends the rate limiter's
// cleanup loop.
func SetupRouter(cfg *config.Config, h Handlers) (*gin.Engine, func()) {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.Logger())

	// CORS 中间件
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, "+middleware.RequestIDHeader)
		c.Writer.Header().Set("Access-Control-Expose-Headers", middleware.RequestIDHeader)

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Storefront dashboard API is running",
		})
	})

	limiter := middleware.NewRateLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window)

	// API 路由组
	api := r.Group("/api/v1")
	api.Use(middleware.RateLimit(limiter))
	{
		// 数据集
		dataset := api.Group("/dataset")
		{
			dataset.GET("/metrics", h.Dataset.GetMetrics)
			dataset.POST("/refresh", middleware.RequireToken(cfg.JWTSecret), h.Dataset.Refresh)
		}

		// 图表
		charts := api.Group("/charts")
		{
			charts.GET("/business-mix", h.Chart.GetBusinessMix)
			charts.GET("/business-mix.png", h.Chart.GetBusinessMixPNG)
			charts.GET("/business-mix.xlsx", h.Chart.GetBusinessMixXLSX)
			charts.GET("/top-rated", h.Chart.GetTopRated)
			charts.GET("/top-rated.png", h.Chart.GetTopRatedPNG)
			charts.GET("/most-reviewed", h.Chart.GetMostReviewed)
			charts.GET("/most-reviewed.png", h.Chart.GetMostReviewedPNG)
			charts.GET("/heatmap", h.Chart.GetHeatmap)
		}

		// 评论数区间
		ranges := api.Group("/ranges")
		{
			ranges.GET("/quick", h.Dataset.GetQuickRanges)
			ranges.GET("/analysis", h.Dataset.GetRangeAnalysis)
		}
	}

	return r, limiter.Stop
}
