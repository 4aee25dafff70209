package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/artcadia/market-sync/internal/api/middleware"
)

// SetupRoutes registers the status routes on the router. The health
// endpoint stays open; everything under /v1 requires an API key when
// keys are configured.
func SetupRoutes(router *gin.Engine, handler *Handler, auth middleware.AuthConfig) {
	router.GET("/healthz", handler.Healthz)

	v1 := router.Group("/v1", middleware.Auth(auth))
	v1.GET("/streams", handler.Streams)
}
