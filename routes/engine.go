package routes

import (
	"net/http"

	"storefront-api/handlers"

	"github.com/gin-gonic/gin"
)

// NewEngine builds the complete HTTP surface: middleware, health checks,
// metrics and the API routes.
func NewEngine(h *handlers.Handler) (*gin.Engine, error) {
	if err := handlers.RegisterValidations(); err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(gin.Recovery())
	if gin.Mode() == gin.DebugMode {
		r.Use(gin.Logger())
	}
	if h.Metrics != nil {
		r.Use(h.Metrics.Middleware())
		r.GET("/metrics", gin.WrapH(h.Metrics.Handler()))
	}

	// CORS middleware for frontend integration
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		products, chefs := h.Catalog.Counts()
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"service":  "Storefront API",
			"version":  "1.0.0",
			"products": products,
			"chefs":    chefs,
			"sessions": h.Sessions.Len(),
		})
	})

	// Welcome
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message":  "Welcome to the Storefront API",
			"docs":     "/api/state-machine",
			"health":   "/health",
			"services": "/api/services",
		})
	})

	SetupRoutes(r, h)
	return r, nil
}
