package routes

import (
	"net/http"

	"assettrack/internal/api/handlers"
	"assettrack/internal/api/middleware"
	"assettrack/internal/config"
	"assettrack/internal/dao"
	"assettrack/internal/events"
	"assettrack/internal/metrics"
	"assettrack/internal/models"
	"assettrack/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// Deps are the long-lived resources the API is built from. Metrics, Publisher
// and Redis are optional.
type Deps struct {
	Config    *config.Config
	DB        *gorm.DB
	Logger    zerolog.Logger
	Metrics   *metrics.Metrics
	Publisher events.Publisher
	Redis     *redis.Client
}

func SetupRoutes(r *gin.Engine, deps Deps) {
	cfg := deps.Config

	// Initialize DAOs
	var daoOpts []dao.Option
	if deps.Metrics != nil {
		daoOpts = append(daoOpts, dao.WithObserver(deps.Metrics))
	}
	userDAO := dao.NewUserDAO(deps.DB, daoOpts...)
	assetDAO := dao.NewAssetDAO(deps.DB, daoOpts...)
	logDAO := dao.NewMaintenanceLogDAO(deps.DB, daoOpts...)

	// Initialize services
	authService := services.NewAuthService(cfg, userDAO, deps.Logger)
	userService := services.NewUserService(userDAO, authService)
	assetService := services.NewAssetService(assetDAO)
	maintenanceService := services.NewMaintenanceService(logDAO, assetDAO, userDAO, deps.Publisher, deps.Logger)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	healthHandler := handlers.NewHealthHandler(deps.DB, deps.Redis)
	userHandler := handlers.NewUserHandler(userService)
	assetHandler := handlers.NewAssetHandler(assetService)
	logHandler := handlers.NewMaintenanceLogHandler(maintenanceService)

	// Middleware
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.ErrorHandler(deps.Logger))
	r.Use(middleware.CORSMiddleware())
	if deps.Metrics != nil {
		r.Use(middleware.Metrics(deps.Metrics))
		r.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}

	// Public routes
	api := r.Group("/api")
	{
		api.GET("/health", healthHandler.GetHealth)

		// Auth routes (public)
		auth := api.Group("/auth")
		auth.Use(middleware.RateLimit(cfg.Security.RateLimit, deps.Redis, deps.Logger))
		{
			auth.POST("/login", authHandler.Login)
		}
	}

	// Protected routes
	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(authService))
	protected.Use(middleware.RateLimit(cfg.Security.RateLimit, deps.Redis, deps.Logger))
	{
		protected.GET("/auth/me", authHandler.GetMe)

		// User management routes
		users := protected.Group("/users")
		{
			users.GET("", userHandler.GetUsers)
			users.GET("/active", userHandler.GetActiveUsers)
			users.GET("/by-email", userHandler.GetUserByEmail)
			users.GET("/:id", userHandler.GetUser)
			users.POST("", middleware.RequireRole(models.RoleAdmin), userHandler.CreateUser)
			users.PUT("/:id", middleware.RequireRole(models.RoleAdmin), userHandler.UpdateUser)
			users.POST("/:id/password", userHandler.UpdatePassword)
		}

		// Asset routes
		assets := protected.Group("/assets")
		{
			assets.GET("", assetHandler.GetAssets)
			assets.GET("/inactive", assetHandler.GetInactiveAssets)
			assets.GET("/:id", assetHandler.GetAsset)
			assets.POST("", middleware.RequireRole(models.RoleManager, models.RoleAdmin), assetHandler.CreateAsset)
			assets.PUT("/:id", assetHandler.UpdateAsset)
			assets.PATCH("/:id/active", middleware.RequireRole(models.RoleManager, models.RoleAdmin), assetHandler.SetActive)
		}

		// Maintenance log routes
		logs := protected.Group("/logs")
		{
			logs.GET("", logHandler.GetLogs)
			logs.GET("/active-assets", logHandler.GetLogsOnActiveAssets)
			logs.GET("/:id", logHandler.GetLog)
			logs.POST("", logHandler.CreateLog)
			logs.PUT("/:id", logHandler.UpdateLog)
		}
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})
}
