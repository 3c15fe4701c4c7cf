package routes

import (
	"net/http"

	"delivery-tracker/internal/config"
	"delivery-tracker/internal/delivery/http/handler"
	domainCatalog "delivery-tracker/internal/domain/catalog"
	"delivery-tracker/internal/infrastructure/database/postgres"
	"delivery-tracker/internal/logger"
	"delivery-tracker/internal/middleware"
	"delivery-tracker/internal/usecase/catalog"
	"delivery-tracker/internal/usecase/delivery"
	"delivery-tracker/internal/usecase/report"
	"delivery-tracker/internal/usecase/user"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(cfg *config.Config, db *postgres.DB) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware in order: recovery, request ID, logging, security headers, CORS, request size limit, general rate limit
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.CORSMiddleware(&cfg.CORS))
	router.Use(middleware.RequestSizeLimitMiddleware(10 << 20))
	router.Use(middleware.RateLimitMiddleware(cfg.RateLimit.GeneralRPS, cfg.RateLimit.GeneralBurst))

	router.GET("/health", func(c *gin.Context) {
		if err := db.Health(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "unhealthy",
				"message": "Database connection failed",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "Service is running",
		})
	})

	userRepository := postgres.NewUserRepository(db)
	userService := user.NewService(userRepository, cfg)
	authHandler := handler.NewAuthHandler(userService)

	statusRepository := postgres.NewDeliveryStatusRepository(db)

	catalogHandlers := []*handler.CatalogHandler{
		handler.NewCatalogHandler(catalog.NewService(postgres.NewTransportModelRepository(db), domainCatalog.KindTransportModel), "/transport-models"),
		handler.NewCatalogHandler(catalog.NewService(postgres.NewPackagingTypeRepository(db), domainCatalog.KindPackagingType), "/packaging-types"),
		handler.NewCatalogHandler(catalog.NewService(postgres.NewServiceRepository(db), domainCatalog.KindService), "/services"),
		handler.NewCatalogHandler(catalog.NewService(statusRepository, domainCatalog.KindDeliveryStatus), "/delivery-statuses"),
		handler.NewCatalogHandler(catalog.NewService(postgres.NewCargoTypeRepository(db), domainCatalog.KindCargoType), "/cargo-types"),
	}

	deliveryRepository := postgres.NewDeliveryRepository(db)
	deliveryService := delivery.NewService(deliveryRepository, statusRepository)
	deliveryHandler := handler.NewDeliveryHandler(deliveryService)

	reportRepository := postgres.NewReportRepository(db)
	reportService := report.NewService(reportRepository)
	reportHandler := handler.NewReportHandler(reportService)

	v1 := router.Group("/api/v1")
	{
		authHandler.RegisterRoutes(v1)

		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(cfg))
		{
			for _, h := range catalogHandlers {
				h.RegisterRoutes(protected)
			}
			deliveryHandler.RegisterRoutes(protected)
			reportHandler.RegisterRoutes(protected)
		}
	}

	logger.Info("All routes initialized")
	return router
}
