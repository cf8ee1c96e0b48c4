package planner

import (
	"net/http"

	plannerService "sattvic-kitchen/internal/core/planner"
	"sattvic-kitchen/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PranicRequest 生命能量評分請求
type PranicRequest struct {
	Ingredients []string `json:"ingredients" binding:"required"`
}

// MoodResponse 情緒香料響應
type MoodResponse struct {
	Mood   string   `json:"mood"`
	Spices []string `json:"spices"`
}

// HandlePranicScore 計算生命能量評分
func HandlePranicScore(debug bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req PranicRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			common.LogWarn("請求格式無效",
				zap.Error(err),
				zap.String("request_id", common.RequestID(c)),
			)
			common.WriteError(c, common.BindError(err), debug)
			return
		}
		c.JSON(http.StatusOK, plannerService.PranicScore(req.Ingredients))
	}
}

// HandleMoodSpices 回傳平衡情緒的香料
func HandleMoodSpices(c *gin.Context) {
	mood := c.Param("mood")
	c.JSON(http.StatusOK, MoodResponse{
		Mood:   mood,
		Spices: plannerService.MoodSpices(mood),
	})
}
