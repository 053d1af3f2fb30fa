package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hireachef/backend/internal/api"
	"github.com/hireachef/backend/internal/database"
	"github.com/hireachef/backend/internal/middleware"
)

// New assembles the gin engine: global middleware, health endpoint and
// the versioned API.
func New(deps api.Dependencies) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(middleware.Recovery())
	router.Use(middleware.CORS())

	router.GET("/health", healthHandler(deps))

	api.SetupAPI(router, deps)

	return router
}

func healthHandler(deps api.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		status := gin.H{"status": "ok"}
		code := http.StatusOK

		if err := database.HealthCheck(ctx, deps.DB); err != nil {
			status["status"] = "degraded"
			status["database"] = err.Error()
			code = http.StatusServiceUnavailable
		} else {
			status["database"] = "ok"
		}

		if deps.Redis != nil {
			if err := deps.Redis.Ping(ctx).Err(); err != nil {
				status["redis"] = err.Error()
			} else {
				status["redis"] = "ok"
			}
		}

		c.JSON(code, status)
	}
}
