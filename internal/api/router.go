package api

import (
	"time"

	"sattvic-kitchen/internal/api/handlers/health"
	"sattvic-kitchen/internal/api/handlers/ingredient"
	plannerHandler "sattvic-kitchen/internal/api/handlers/planner"
	recipeHandler "sattvic-kitchen/internal/api/handlers/recipe"
	"sattvic-kitchen/internal/api/middleware"
	"sattvic-kitchen/internal/infrastructure/config"
	"sattvic-kitchen/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// 請求體大小限制 (1MB)
const defaultMaxBodySize = 1 << 20

// SetupRouter 設置路由
func SetupRouter(cfg *config.Config, svc *Services) *gin.Engine {
	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	// 設置 gin 模式
	if !cfg.App.Debug && gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}

	// 創建路由引擎
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.NoRoute(func(c *gin.Context) {
		common.WriteError(c, common.ErrNotFound, false)
	})
	router.NoMethod(func(c *gin.Context) {
		common.WriteError(c, common.ErrMethodNotAllowed, false)
	})

	// 註冊基礎中間件
	router.Use(middleware.Recovery())
	router.Use(requestid.New()) // 自動生成請求 ID
	router.Use(middleware.Logger())

	// CORS 設置
	router.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders: []string{"Content-Length", "X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}))

	// 請求體大小限制
	maxBody := cfg.Server.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = defaultMaxBodySize
	}
	router.Use(middleware.BodySizeLimit(maxBody))
	router.Use(middleware.Timeout(cfg.Server.RequestTimeout))

	// 健康檢查路由
	healthHandler := health.NewHandler(cfg, svc.Composer.SimilarityMode(), func() int { return svc.Catalog.Snapshot().Len() }, svc.CacheStats, svc.Upstream)
	router.GET("/health", healthHandler.HealthCheck)
	router.GET("/ready", healthHandler.ReadinessCheck)
	router.GET("/live", healthHandler.LivenessCheck)

	// API 路由組
	api := router.Group("/api/v1")
	if cfg.RateLimit.Enabled {
		api.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}
	api.Use(middleware.Deduplication(cfg.DedupWindow))
	{
		ingredientHandlerInstance := ingredient.NewHandler(svc.Catalog, svc.Composer, cfg.App.Debug)

		ingredientGroup := api.Group("/ingredients")
		{
			ingredientGroup.GET("", ingredientHandlerInstance.HandleSearch)
			ingredientGroup.GET("/forbidden", ingredientHandlerInstance.HandleForbidden)
			ingredientGroup.GET("/allowed", ingredientHandlerInstance.HandleAllowed)
			ingredientGroup.GET("/:id", ingredientHandlerInstance.HandleGet)
			ingredientGroup.GET("/:id/substitutes", ingredientHandlerInstance.HandleSubstitutes)
		}

		recipeHandlerInstance := recipeHandler.NewHandler(svc.Auditor, svc.Recipes, cfg.App.Debug)
		api.POST("/recipe/audit", recipeHandlerInstance.HandleAudit)

		recipeGroup := api.Group("/recipes")
		{
			recipeGroup.GET("", recipeHandlerInstance.HandleList)
			recipeGroup.GET("/sattvic", recipeHandlerInstance.HandleSattvic)
			recipeGroup.GET("/today", recipeHandlerInstance.HandleOfTheDay)
			recipeGroup.GET("/:id", recipeHandlerInstance.HandleGet)
			recipeGroup.GET("/:id/status", recipeHandlerInstance.HandleStatus)
		}

		plannerGroup := api.Group("/planner")
		{
			plannerGroup.POST("/pranic", plannerHandler.HandlePranicScore(cfg.App.Debug))
			plannerGroup.GET("/mood/:mood", plannerHandler.HandleMoodSpices)
		}

		api.GET("/upstream/health", healthHandler.UpstreamCheck)
	}

	common.LogInfo("Router setup completed successfully",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.Bool("rate_limit_enabled", cfg.RateLimit.Enabled),
		zap.Duration("dedup_window", cfg.DedupWindow),
		zap.Int64("max_body_size", maxBody),
	)

	return router
}
