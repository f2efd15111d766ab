package api

import (
	"time"

	chatHandler "chefmate-server/internal/api/handlers/chat"
	"chefmate-server/internal/api/handlers/health"
	profileHandler "chefmate-server/internal/api/handlers/profile"
	recipeHandler "chefmate-server/internal/api/handlers/recipe"
	"chefmate-server/internal/api/middleware"
	"chefmate-server/internal/core/ai/cache"
	aiService "chefmate-server/internal/core/ai/service"
	chatService "chefmate-server/internal/core/chat"
	"chefmate-server/internal/core/conversation"
	profileService "chefmate-server/internal/core/profile"
	recipeService "chefmate-server/internal/core/recipe"
	"chefmate-server/internal/infrastructure/config"
	"chefmate-server/internal/infrastructure/store"
	"chefmate-server/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// 請求體大小限制 (1MB)，純 JSON 請求用不到更大的空間
	maxBodySize = 1 << 20
)

// SetupRouter 設置路由
func SetupRouter(cfg *config.Config, kv store.Store, cacheManager *cache.Manager) (*gin.Engine, error) {
	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	// 設置 gin 模式
	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// 註冊基礎中間件
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(requestid.New()) // 自動生成請求 ID

	// CORS 設置：參考部署對任意來源開放
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	// 請求體大小限制
	router.Use(middleware.BodySizeLimit(maxBodySize))

	// 限流（可由設定關閉）
	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}

	// 重複 POST 抑制
	router.Use(middleware.Deduplication(cfg))

	common.LogInfo("Initializing services",
		zap.Bool("cache_enabled", cfg.Cache.Enabled),
		zap.String("store_driver", cfg.Store.Driver),
		zap.String("model", cfg.OpenAI.Model),
	)

	// 初始化服務
	ai := aiService.NewService(cfg, cacheManager)
	recipeSvc := recipeService.NewService(cfg, ai)
	profileSvc := profileService.NewService(kv)
	historySvc := chatService.NewService(kv)
	orchestrator := conversation.NewOrchestrator(historySvc, recipeSvc)

	// 初始化處理程序
	healthH := health.NewHandler(cfg, cacheManager)
	profileH := profileHandler.NewHandler(profileSvc)
	chatH := chatHandler.NewHandler(historySvc, orchestrator)
	recipeH := recipeHandler.NewHandler(recipeSvc)

	// 健康檢查路由
	router.GET("/health", healthH.HealthCheck)
	router.GET("/ready", healthH.ReadinessCheck)
	router.GET("/live", healthH.LivenessCheck)

	// 個人檔案路由
	router.POST("/profile", profileH.HandleSaveProfile)
	router.GET("/profile/:userId", profileH.HandleGetProfile)

	// 食譜生成路由
	router.POST("/generate-recipe", recipeH.HandleGenerateRecipe)

	// 聊天路由
	router.POST("/chat", chatH.HandleSaveMessage)
	router.GET("/chat/:userId", chatH.HandleGetHistory)
	router.POST("/chat/ask", chatH.HandleAsk)

	common.LogInfo("Router setup completed successfully",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
		zap.Int64("max_body_size", maxBodySize),
	)

	return router, nil
}
