package api

import (
	"time"

	"ranna-banna/internal/api/handlers/health"
	recipeHandler "ranna-banna/internal/api/handlers/recipe"
	"ranna-banna/internal/api/middleware"
	"ranna-banna/internal/infrastructure/config"
	"ranna-banna/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Dependencies the services the router exposes
type Dependencies struct {
	Recipes   recipeHandler.RecipeService
	Favorites recipeHandler.FavoriteStore
	Images    recipeHandler.ImageValidator
	Health    *health.Handler
}

// SetupRouter builds the gin engine with middleware and routes
func SetupRouter(cfg *config.Config, deps Dependencies) *gin.Engine {
	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(middleware.Recovery())
	router.Use(requestid.New())
	router.Use(middleware.Logger())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Request-ID", middleware.SessionHeader},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	router.Use(middleware.BodySizeLimit(cfg.Server.MaxBodyBytes))

	healthHandler := deps.Health
	if healthHandler == nil {
		healthHandler = health.NewHandler(cfg.App.Version, nil)
	}
	router.GET("/health", healthHandler.HealthCheck)
	router.GET("/ready", healthHandler.ReadinessCheck)
	router.GET("/live", healthHandler.LivenessCheck)

	api := router.Group("/api/v1")
	api.Use(middleware.Timeout(cfg.Server.RequestTimeout))
	if cfg.RateLimit.Enabled {
		api.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}

	h := recipeHandler.NewHandler(deps.Recipes, deps.Favorites, deps.Images, cfg.App.Debug)

	api.GET("/categories", h.HandleCategories)

	recipes := api.Group("/recipes")
	{
		recipes.Use(middleware.Deduplication(cfg.DedupWindow))
		recipes.POST("/search", h.HandleSearch)
		recipes.POST("/translate", h.HandleTranslate)
	}

	favorites := api.Group("/favorites")
	{
		favorites.GET("", h.HandleListFavorites)
		favorites.GET("/:id", h.HandleGetFavorite)
		favorites.POST("/toggle", h.HandleToggleFavorite)
		favorites.DELETE("/:id", h.HandleRemoveFavorite)
	}

	common.LogInfo("Router setup completed successfully",
		zap.Duration("request_timeout", cfg.Server.RequestTimeout),
		zap.Int64("max_body_size", cfg.Server.MaxBodyBytes),
		zap.Bool("rate_limit_enabled", cfg.RateLimit.Enabled),
	)

	return router
}
