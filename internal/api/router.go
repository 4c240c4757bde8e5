package api

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	healthHandler "github.com/Caro-cyber/sistema-iareceita/internal/api/handlers/health"
	recipeHandler "github.com/Caro-cyber/sistema-iareceita/internal/api/handlers/recipe"
	"github.com/Caro-cyber/sistema-iareceita/internal/api/middleware"
	"github.com/Caro-cyber/sistema-iareceita/internal/core/ai/cache"
	"github.com/Caro-cyber/sistema-iareceita/internal/core/ai/gemini"
	aiService "github.com/Caro-cyber/sistema-iareceita/internal/core/ai/service"
	recipeService "github.com/Caro-cyber/sistema-iareceita/internal/core/recipe"
	"github.com/Caro-cyber/sistema-iareceita/internal/core/tts"
	"github.com/Caro-cyber/sistema-iareceita/internal/infrastructure/config"
	"github.com/Caro-cyber/sistema-iareceita/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// Generation round-trips dominate request time.
	timeoutDuration = 120 * time.Second
	// Ingredient lists and questions are small; 1MB is generous.
	maxBodySize = 1 << 20
)

// SetupRouter wires services, middleware and routes. The returned cleanup
// function releases the AI client and cache connections.
func SetupRouter(ctx context.Context, cfg *config.Config) (*gin.Engine, func(), error) {
	common.LogInfo("starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	cacheSvc, err := cache.NewService(&cfg.Cache)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize response cache: %w", err)
	}

	var generator aiService.TextGenerator
	if cfg.Gemini.APIKey == "" {
		common.LogWarn("GEMINI_API_KEY não está configurada; geração de receitas indisponível")
		generator = aiService.Unavailable{Reason: "Modelo Gemini não disponível."}
	} else {
		generator, err = gemini.NewClient(ctx, cfg)
		if err != nil {
			_ = cacheSvc.Close()
			return nil, nil, fmt.Errorf("failed to initialize gemini client: %w", err)
		}
	}

	aiSvc := aiService.NewService(generator, cacheSvc)

	store := recipeService.NewStore()
	recipeSvc := recipeService.NewService(aiSvc, store)

	ttsClient := tts.NewClient(cfg)
	if cfg.TTS.APIKey == "" {
		common.LogWarn("TTS_API_KEY não está configurada; geração de áudio indisponível")
	} else if cfg.App.Debug {
		// Voice inventory is useful when picking an alternative voice.
		if _, err := ttsClient.ListVoices(ctx, cfg.TTS.LanguageCode); err != nil {
			common.LogWarn("failed to list tts voices", zap.Error(err))
		}
	}
	audioSvc := tts.NewService(ttsClient, store, cfg.TTS.StaticDir)

	if err := os.MkdirAll(filepath.Join(cfg.TTS.StaticDir, "audio"), 0755); err != nil {
		_ = aiSvc.Close()
		_ = cacheSvc.Close()
		return nil, nil, fmt.Errorf("failed to create audio directory: %w", err)
	}

	router := gin.New()

	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(requestid.New())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	router.Use(middleware.BodySizeLimit(maxBodySize))

	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}
	if cfg.DedupWindow > 0 {
		router.Use(middleware.Deduplication(cfg.DedupWindow))
	}

	router.Use(func(c *gin.Context) {
		reqCtx, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
		defer cancel()
		c.Request = c.Request.WithContext(reqCtx)
		c.Next()
	})

	health := healthHandler.NewHandler(cfg, store)
	router.GET("/health", health.HealthCheck)
	router.GET("/ready", health.ReadinessCheck)
	router.GET("/live", health.LivenessCheck)

	RegisterRoutes(router, recipeSvc, audioSvc)

	router.Static("/static", cfg.TTS.StaticDir)

	cleanup := func() {
		if err := aiSvc.Close(); err != nil {
			common.LogWarn("failed to close ai service", zap.Error(err))
		}
		if err := cacheSvc.Close(); err != nil {
			common.LogWarn("failed to close response cache", zap.Error(err))
		}
	}

	common.LogInfo("router setup completed",
		zap.String("model", cfg.Gemini.Model),
		zap.Bool("cache_enabled", cfg.Cache.Enabled),
		zap.Bool("rate_limit_enabled", cfg.RateLimit.Enabled),
		zap.String("static_dir", cfg.TTS.StaticDir),
	)

	return router, cleanup, nil
}

// RegisterRoutes attaches the recipe endpoints to the engine. Split out so
// handler tests can mount the routes on a bare engine with stub services.
func RegisterRoutes(router *gin.Engine, recipeSvc *recipeService.Service, audioSvc *tts.Service) {
	recipes := recipeHandler.NewHandler(recipeSvc)
	audio := recipeHandler.NewAudioHandler(audioSvc)

	router.POST("/get_recipes", recipes.HandleGetRecipes)
	router.GET("/get_recipe_audio/:recipe_id", audio.HandleGetRecipeAudio)
	router.POST("/ask_question/:recipe_id", recipes.HandleAskQuestion)
}
