package router

import (
	"github.com/gin-gonic/gin"
	"github.com/pageza/recipes-api/backend/config"
	"github.com/pageza/recipes-api/backend/internal/api"
	"github.com/pageza/recipes-api/backend/internal/middleware"
)

// SetupRouter configures the application routes. limiter may be nil, in
// which case requests are not rate limited.
func SetupRouter(
	cfg *config.Config,
	recipeHandler *api.RecipeHandler,
	limiter *middleware.RateLimiter,
) *gin.Engine {
	router := gin.New()
	router.HandleMethodNotAllowed = true

	router.Use(
		middleware.RequestID(),
		middleware.Logger(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowedOrigins),
	)
	router.NoRoute(middleware.NotFound())
	router.NoMethod(middleware.MethodNotAllowed())

	// Liveness stays outside the rate limit
	router.GET("/", api.Health)

	resources := router.Group("")
	if limiter != nil {
		resources.Use(limiter.Middleware())
	}
	recipeHandler.RegisterRoutes(resources)

	return router
}
