package health

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"sattvic-kitchen/internal/core/flavor"
	"sattvic-kitchen/internal/core/upstream"
	"sattvic-kitchen/internal/infrastructure/config"
	"sattvic-kitchen/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// upstreamTimeout 外部服務檢查的上限
const upstreamTimeout = 15 * time.Second

// HealthResponse 健康檢查響應
type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Runtime   map[string]interface{} `json:"runtime"`
	Catalog   CatalogStatus          `json:"catalog"`
	Cache     map[string]interface{} `json:"cache,omitempty"`
}

// CatalogStatus 目錄狀態
type CatalogStatus struct {
	Ingredients    int                   `json:"ingredients"`
	RemoteEnabled  bool                  `json:"remote_enabled"`
	SimilarityMode flavor.SimilarityMode `json:"similarity_mode"`
}

// CatalogSizer 回傳目前的食材數
type CatalogSizer func() int

// StatsProvider 快取統計
type StatsProvider interface {
	GetStats() map[string]interface{}
}

// Handler 健康檢查處理程序
type Handler struct {
	cfg         *config.Config
	mode        flavor.SimilarityMode
	catalogSize CatalogSizer
	stats       StatsProvider
	checker     *upstream.Checker
}

// NewHandler 創建健康檢查處理程序，stats 與 checker 可為 nil；mode 為實際生效的相似度模式
func NewHandler(cfg *config.Config, mode flavor.SimilarityMode, catalogSize CatalogSizer, stats StatsProvider, checker *upstream.Checker) *Handler {
	return &Handler{
		cfg:         cfg,
		mode:        mode,
		catalogSize: catalogSize,
		stats:       stats,
		checker:     checker,
	}
}

// HealthCheck 健康檢查處理器
func (h *Handler) HealthCheck(c *gin.Context) {
	// 獲取運行時信息
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	response := HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   h.cfg.App.Version,
		Runtime: map[string]interface{}{
			"goroutines": runtime.NumGoroutine(),
			"memory": map[string]interface{}{
				"alloc":       m.Alloc,
				"total_alloc": m.TotalAlloc,
				"sys":         m.Sys,
				"num_gc":      m.NumGC,
			},
		},
		Catalog: CatalogStatus{
			RemoteEnabled:  h.cfg.FlavorDB.Enabled,
			SimilarityMode: h.mode,
		},
	}
	if h.catalogSize != nil {
		response.Catalog.Ingredients = h.catalogSize()
	}
	if h.stats != nil {
		response.Cache = h.stats.GetStats()
	}

	common.LogDebug("Health check request",
		zap.String("client_ip", c.ClientIP()),
		zap.String("path", c.Request.URL.Path),
	)

	c.JSON(http.StatusOK, response)
}

// ReadinessCheck 就緒檢查處理器，目錄為空時回傳 503
func (h *Handler) ReadinessCheck(c *gin.Context) {
	if h.catalogSize == nil || h.catalogSize() == 0 {
		common.WriteError(c, common.ErrServiceUnavailable, false)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
	})
}

// LivenessCheck 存活檢查處理器
func (h *Handler) LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "alive",
	})
}

// UpstreamCheck 並行檢查 FlavorDB 與 RecipeDB
func (h *Handler) UpstreamCheck(c *gin.Context) {
	if h.checker == nil {
		common.WriteError(c, common.ErrUpstreamUnavailable, false)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), upstreamTimeout)
	defer cancel()

	c.JSON(http.StatusOK, h.checker.CheckAll(ctx))
}
