package handlers

import (
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/voice-job-matcher/internal/metrics"
)

type Router struct {
	Transcribe *TranscribeHandler
	Jobs       *JobHandler
	Status     *StatusHandler
	Metrics    *metrics.Metrics
}

// Engine wires routes, CORS and metrics onto a gin engine.
func (rt *Router) Engine() *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	if rt.Metrics != nil {
		r.Use(MetricsMiddleware(rt.Metrics))
	}

	// Open to every origin; the front-end may be served from anywhere.
	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowCredentials = true
	config.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{
		"Origin", "X-CSRF-Token", "X-Requested-With", "Accept", "Accept-Version",
		"Content-Length", "Content-MD5", "Content-Type", "Date", "X-Api-Version", "Authorization",
	}
	r.Use(cors.New(config))

	api := r.Group("/api")
	{
		api.GET("/health", rt.Status.HealthCheck)
		api.GET("/runs", rt.Status.ListRuns)

		api.POST("/transcribe", rt.Transcribe.Transcribe)
		api.POST("/job-search", rt.Jobs.SearchJobs)
	}

	// The recorder widget posts here without the /api prefix.
	r.POST("/transcribe", rt.Transcribe.Transcribe)

	if rt.Metrics != nil {
		r.GET("/metrics", gin.WrapH(rt.Metrics.Handler()))
	}
	return r
}

func MetricsMiddleware(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.HTTPRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.HTTPRequestDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}
