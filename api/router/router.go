package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"the-daily/agent"
	"the-daily/api/handlers"
	"the-daily/api/middleware"
	"the-daily/config"
)

// New assembles the query-facing HTTP surface. engine may be nil when no
// pipeline run has published artifacts yet.
func New(cfg *config.AppConfig, engine *agent.Engine) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestTrace())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		if engine == nil {
			c.JSON(http.StatusOK, gin.H{"status": "ok", "index": "absent"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "index": "loaded"})
	})

	// v1 routes
	api := r.Group("/api/v1")
	{
		api.POST("/chat", handlers.ChatHandler(engine))
		api.GET("/digest", handlers.DigestHandler(cfg.DigestPath()))
		api.GET("/charts", handlers.ChartsHandler(cfg.ChartsPath()))
	}

	return r
}
