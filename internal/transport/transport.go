package transport

import (
	"net/http"
	"time"

	"github.com/ds124wfegd/mineru-extract/internal/transport/middleware"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func InitRoutes(h *ActionHandler, gatherer prometheus.Gatherer, requestTimeout time.Duration) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.CORS())

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "mineru-extract",
		})
	})
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	api := router.Group("/api/v1")
	api.Use(middleware.Timeout(requestTimeout))
	{
		api.GET("/actions", h.ListActions)
		api.GET("/actions/:name", h.GetAction)
		api.POST("/actions/extract_content/run", h.RunExtractContent)
		api.POST("/extract", h.UploadDocument)
	}
	return router
}
