package handlers

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"

	"github.com/SscSPs/splitledger/cmd/docs"
	portssvc "github.com/SscSPs/splitledger/internal/core/ports/services"
	"github.com/SscSPs/splitledger/internal/middleware"
	"github.com/SscSPs/splitledger/internal/platform/analytics"
	"github.com/SscSPs/splitledger/internal/platform/config"
	"github.com/SscSPs/splitledger/internal/platform/metrics"
)

// Platform carries the cross-cutting components the router wires in.
// Nil fields are skipped.
type Platform struct {
	Metrics   *metrics.Collector
	Limiter   *limiter.Limiter
	Analytics *analytics.Client
}

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	platform Platform,
) {
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORSAllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
			ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
			AllowCredentials: true,
		}))
	}
	if platform.Metrics != nil {
		r.Use(middleware.MetricsMiddleware(platform.Metrics))
		r.GET("/metrics", gin.WrapH(platform.Metrics.Handler()))
	}

	r.GET("/health", getHealth)

	setupAPIV1Routes(r, cfg, services, platform)

	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	platform Platform,
) {
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret, cfg.JWTIssuer))
	if platform.Limiter != nil {
		v1.Use(middleware.RateLimit(platform.Limiter))
	}
	if platform.Analytics != nil {
		v1.Use(middleware.PosthogMiddleware(platform.Analytics))
	}

	registerGroupRoutes(v1, services.Group)
	registerExpenseRoutes(v1, services.Expense, services.Settlement)
	registerSettlementRoutes(v1, services.Settlement, services.Expense, services.Group)
	registerDebtRoutes(v1, services.Debt, services.Balance, services.Group)
	registerAuditRoutes(v1, services.Audit)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
