package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ericli5683/food-recipes/internal/middleware"
)

// SetupAPI registers all routes under /api/v1. The rate limiter only guards
// the image-discovery endpoint and may be nil (tests, no Redis).
func SetupAPI(router *gin.Engine, recipeHandler *RecipeHandler, discoverHandler *DiscoverHandler, limiter *middleware.RateLimiter) {
	v1 := router.Group("/api/v1")

	v1.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	recipeHandler.RegisterRoutes(v1)

	var imageMiddleware []gin.HandlerFunc
	if limiter != nil {
		imageMiddleware = append(imageMiddleware, limiter.Middleware())
	}
	discoverHandler.RegisterRoutes(v1, imageMiddleware...)
}
