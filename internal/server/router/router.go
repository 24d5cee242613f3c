package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/coldstore/internal/config"
	"github.com/mamadbah2/coldstore/internal/server/handlers"
)

// New wires the Gin engine with required routes and middlewares.
func New(products *handlers.ProductHandler, clients *handlers.ClientHandler, sales *handlers.SaleHandler, dashboard *handlers.DashboardHandler, corsCfg config.CORSConfig, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))
	r.Use(cors.New(corsConfig(corsCfg)))

	api := r.Group("/api")

	api.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "frozen goods store API operational"})
	})

	api.POST("/products", products.Create)
	api.GET("/products", products.List)
	// Gin cannot mix a static "search" segment with the ":id" wildcard at the
	// same depth, so /products/search/{query} is routed through the wildcard
	// and dispatched in the handler.
	api.GET("/products/:id/:query", products.Search)
	api.GET("/products/:id", products.Get)
	api.PUT("/products/:id", products.Update)
	api.DELETE("/products/:id", products.Delete)

	api.POST("/clients", clients.Create)
	api.GET("/clients", clients.List)
	api.GET("/clients/:id", clients.Get)
	api.PUT("/clients/:id", clients.Update)
	api.DELETE("/clients/:id", clients.Delete)

	api.POST("/sales", sales.Create)
	api.GET("/sales", sales.List)
	api.GET("/sales/:id", sales.Get)

	api.GET("/dashboard/stats", dashboard.Stats)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func corsConfig(cfg config.CORSConfig) cors.Config {
	corsCfg := cors.DefaultConfig()
	corsCfg.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsCfg.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}

	allowAll := false
	for _, origin := range cfg.AllowedOrigins {
		if origin == "*" {
			allowAll = true
			break
		}
	}
	if allowAll {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
		corsCfg.AllowCredentials = true
	}

	return corsCfg
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
