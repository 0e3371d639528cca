package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ranna-banna/internal/api"
	"ranna-banna/internal/api/handlers/health"
	"ranna-banna/internal/core/ai/cache"
	"ranna-banna/internal/core/ai/gemini"
	"ranna-banna/internal/core/ai/openrouter"
	"ranna-banna/internal/core/ai/provider"
	"ranna-banna/internal/core/ai/service"
	"ranna-banna/internal/core/favorites"
	"ranna-banna/internal/core/image"
	"ranna-banna/internal/core/recipe"
	"ranna-banna/internal/infrastructure/config"
	"ranna-banna/internal/pkg/common"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		if errors.Is(err, config.ErrMissingCredential) {
			fmt.Fprintln(os.Stderr, "GEMINI_API_KEY environment variable is not set.")
		} else {
			fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		}
		os.Exit(1)
	}

	if err := common.InitLogger(cfg.LogLevel, cfg.LogDir); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer common.Sync()

	common.LogInfo("Configuration loaded",
		zap.String("gemini_api_key", config.MaskAPIKey(cfg.Gemini.APIKey)),
		zap.String("text_provider", cfg.AI.TextProvider),
		zap.String("text_model", cfg.Gemini.TextModel),
		zap.String("image_model", cfg.Gemini.ImageModel),
		zap.String("favorites_backend", cfg.Favorites.Backend),
	)

	ctx := context.Background()

	geminiClient, err := gemini.NewClient(ctx, cfg.Gemini.APIKey)
	if err != nil {
		common.LogFatal("Failed to initialize Gemini client", zap.Error(err))
	}

	var text provider.TextGenerator = geminiClient
	textModel := cfg.Gemini.TextModel
	if cfg.AI.TextProvider == config.TextProviderOpenRouter {
		text = openrouter.NewClient(&cfg.OpenRouter)
		textModel = cfg.OpenRouter.Model
	}

	cacheManager := cache.NewManager(cfg.Cache)
	var cacheStats func() map[string]interface{}
	if cacheManager != nil {
		defer cacheManager.Close()
		cacheStats = cacheManager.Stats
	}

	aiService := service.NewService(cfg, text, geminiClient, cacheManager)
	imageService := image.NewService(cfg.Image.MaxSizeBytes, cfg.Image.JPEGQuality)
	recipeService := recipe.NewService(aiService, aiService, imageService, recipe.NewTracker(), recipe.Options{
		TextModel:  textModel,
		ImageModel: cfg.Gemini.ImageModel,
	})

	healthHandler := health.NewHandler(cfg.App.Version, cacheStats)

	persistence, closePersistence, err := newPersistence(ctx, cfg, healthHandler)
	if err != nil {
		common.LogFatal("Failed to initialize favorites persistence", zap.Error(err))
	}
	defer closePersistence()

	store := favorites.NewStore(persistence)
	if err := store.Load(ctx); err != nil {
		common.LogFatal("Failed to load favorites", zap.Error(err))
	}
	common.LogInfo("Favorites loaded", zap.Int("count", store.Len()))

	router := api.SetupRouter(cfg, api.Dependencies{
		Recipes:   recipeService,
		Favorites: store,
		Images:    imageService,
		Health:    healthHandler,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		common.LogInfo("Starting application",
			zap.String("version", cfg.App.Version),
			zap.String("env", cfg.App.Env),
			zap.Bool("debug", cfg.App.Debug),
			zap.Int("port", cfg.Server.Port),
		)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			common.LogFatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	common.LogInfo("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		common.LogError("Server forced to shutdown", zap.Error(err))
	}

	common.LogInfo("Server exited")
}

// newPersistence builds the configured favorites backend and registers its readiness check
func newPersistence(ctx context.Context, cfg *config.Config, h *health.Handler) (favorites.Persistence, func(), error) {
	switch cfg.Favorites.Backend {
	case config.FavoritesBackendRedis:
		p, err := favorites.NewRedisPersistence(ctx, cfg.Redis, cfg.Favorites.Key)
		if err != nil {
			return nil, nil, err
		}
		h.AddCheck("redis", p.Ping)
		return p, func() { _ = p.Close() }, nil
	case config.FavoritesBackendMemory:
		common.LogWarn("Favorites are kept in memory and lost on restart")
		return favorites.NewMemoryPersistence(), func() {}, nil
	default:
		return favorites.NewFilePersistence(cfg.Favorites.FilePath), func() {}, nil
	}
}
