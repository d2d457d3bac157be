package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"library-backend/internal/infrastructure/database"
	"library-backend/internal/shared/middleware"
	"library-backend/internal/shared/response"
	"library-backend/pkg/container"
)

type routeRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

type healthChecker interface {
	HealthCheck(ctx context.Context) error
	Stats() (*database.PoolStats, error)
}

func SetupRouter(c *container.Container) *gin.Engine {
	return newRouter(c.DB, c.AuthorHandler, c.BookHandler, c.LibraryHandler)
}

func newRouter(db healthChecker, domains ...routeRegistrar) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
	)

	v1 := router.Group("/api/v1")
	v1.GET("/health", healthCheckHandler(db))
	for _, d := range domains {
		d.RegisterRoutes(v1)
	}

	return router
}

// healthCheckHandler - GET /api/v1/health
func healthCheckHandler(db healthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		if err := db.HealthCheck(ctx); err != nil {
			c.Error(err)
			response.ErrorResponse(c, http.StatusServiceUnavailable, "DB_UNAVAILABLE", "database is unavailable")
			return
		}

		stats, err := db.Stats()
		if err != nil {
			c.Error(err)
			response.ErrorResponse(c, http.StatusServiceUnavailable, "DB_UNAVAILABLE", "database is unavailable")
			return
		}

		response.Success(c, http.StatusOK, gin.H{
			"status": "ok",
			"database": gin.H{
				"total_connections":    stats.TotalConns,
				"idle_connections":     stats.IdleConns,
				"acquired_connections": stats.AcquiredConns,
				"max_connections":      stats.MaxConns,
				"utilization_pct":      stats.Utilization(),
			},
		})
	}
}
