package server

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/FACorreiaa/wanderai/internal/app/middleware"
	"github.com/FACorreiaa/wanderai/internal/pkg/config"
	"github.com/FACorreiaa/wanderai/internal/routes"
)

// SetupRouter configures and returns the Gin router with all middleware and routes
func SetupRouter(cfg *config.Config, handlers *routes.AppHandlers, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	r.Use(middleware.RecoveryWithZap(logger))
	r.Use(middleware.OTELGinMiddleware(cfg.Observability.ServiceName))
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.ObservabilityMiddleware())
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))
	r.Use(middleware.SecurityMiddleware())

	routes.Setup(r, handlers)

	return r
}
