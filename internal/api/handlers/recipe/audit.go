package recipe

import (
	"net/http"

	recipeService "sattvic-kitchen/internal/core/recipe"
	"sattvic-kitchen/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuditRequest 食譜檢查請求
type AuditRequest struct {
	Ingredients []string `json:"ingredients" binding:"required,min=1,dive,required"`
}

// Handler 食譜處理程序
type Handler struct {
	auditor *recipeService.Auditor
	recipes *recipeService.Service
	debug   bool
}

// NewHandler 創建新的食譜處理程序
func NewHandler(auditor *recipeService.Auditor, recipes *recipeService.Service, debug bool) *Handler {
	return &Handler{
		auditor: auditor,
		recipes: recipes,
		debug:   debug,
	}
}

// HandleAudit 標記食譜中的禁用食材並附上替代配方
func (h *Handler) HandleAudit(c *gin.Context) {
	requestID := common.RequestID(c)

	var req AuditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogWarn("請求格式無效",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		common.WriteError(c, common.BindError(err), h.debug)
		return
	}

	report := h.auditor.Audit(req.Ingredients)

	common.LogInfo("食譜檢查完成",
		zap.String("request_id", requestID),
		zap.String("status", string(report.SattvicStatus)),
		zap.Int("forbidden", report.ForbiddenCount),
	)

	c.JSON(http.StatusOK, report)
}
