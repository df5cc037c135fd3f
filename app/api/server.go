package api

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewServer creates the preview HTTP server with all routes configured
func NewServer(handler *Handler, metrics *Metrics, gatherer prometheus.Gatherer) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		Formatter: func(param gin.LogFormatterParams) string {
			return fmt.Sprintf("%s - [%s] \"%s %s %s %d %s \"%s\" %s\"\n",
				param.ClientIP,
				param.TimeStamp.Format(time.RFC3339),
				param.Method,
				param.Path,
				param.Request.Proto,
				param.StatusCode,
				param.Latency,
				param.Request.UserAgent(),
				param.ErrorMessage,
			)
		},
		SkipPaths: []string{"/health", "/metrics"},
	}))

	r.Use(gin.Recovery())
	r.Use(metrics.Middleware())

	setupRoutes(r, handler, gatherer)

	return r
}

func setupRoutes(r *gin.Engine, handler *Handler, gatherer prometheus.Gatherer) {
	r.GET("/", handler.GetIndex)
	r.GET("/index.html", handler.GetIndex)
	r.GET("/"+strings.TrimLeft(handler.siteConfig.FeedPath, "/"), handler.GetFeed)

	r.GET("/health", handler.GetHealth)
	r.GET("/stats", handler.GetStats)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	r.GET("/favicon.ico", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
}
