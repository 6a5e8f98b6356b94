package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/pageza/recipes-api/backend/config"
	"github.com/pageza/recipes-api/backend/internal/api"
	"github.com/pageza/recipes-api/backend/internal/middleware"
	"github.com/pageza/recipes-api/backend/internal/router"
	"github.com/pageza/recipes-api/backend/internal/service"
	"github.com/pageza/recipes-api/backend/internal/types"
)

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	http   *http.Server
}

// New wires the recipe service, handlers and middleware into an HTTP server.
// redisClient may be nil to run without rate limiting.
func New(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	recipeService := service.NewRecipeService(db)
	recipeHandler := api.NewRecipeHandler(recipeService, types.NewShaper(loc))

	var limiter *middleware.RateLimiter
	if redisClient != nil {
		limiter = middleware.NewClientRateLimiter(redisClient, cfg.RateLimitPerMinute)
	}

	engine := router.SetupRouter(cfg, recipeHandler, limiter)

	return &Server{
		router: engine,
		http: &http.Server{
			Addr:              cfg.Addr(),
			Handler:           engine,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}, nil
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start blocks serving HTTP until the server is shut down
func (s *Server) Start() error {
	log.Printf("Listening on %s", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
