package recipe

import (
	"net/http"

	recipeService "sattvic-kitchen/internal/core/recipe"
	"sattvic-kitchen/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ListResponse 食譜列表
type ListResponse struct {
	Count   int                    `json:"count"`
	Recipes []recipeService.Recipe `json:"recipes"`
}

func list(recipes []recipeService.Recipe) ListResponse {
	return ListResponse{Count: len(recipes), Recipes: recipes}
}

// HandleList 列出食譜，支援 q 標題搜尋與 tag 標籤篩選
func (h *Handler) HandleList(c *gin.Context) {
	ctx := c.Request.Context()
	query := c.Query("q")
	tag := c.Query("tag")

	var recipes []recipeService.Recipe
	if tag != "" {
		recipes = h.recipes.ByTag(ctx, tag)
	} else {
		recipes = h.recipes.Search(ctx, query)
	}

	common.LogInfo("食譜列表",
		zap.String("request_id", common.RequestID(c)),
		zap.String("query", query),
		zap.String("tag", tag),
		zap.Int("results", len(recipes)),
	)

	c.JSON(http.StatusOK, list(recipes))
}

// HandleSattvic 列出悅性食譜
func (h *Handler) HandleSattvic(c *gin.Context) {
	c.JSON(http.StatusOK, list(h.recipes.Sattvic(c.Request.Context())))
}

// HandleOfTheDay 每日推薦食譜
func (h *Handler) HandleOfTheDay(c *gin.Context) {
	r := h.recipes.OfTheDay(c.Request.Context())
	if r == nil {
		common.WriteError(c, common.ErrRecipeNotFound, h.debug)
		return
	}
	c.JSON(http.StatusOK, r)
}

// HandleGet 取得單一食譜
func (h *Handler) HandleGet(c *gin.Context) {
	id := c.Param("id")
	r := h.recipes.Get(c.Request.Context(), id)
	if r == nil {
		common.LogInfo("食譜不存在",
			zap.String("request_id", common.RequestID(c)),
			zap.String("recipe_id", id),
		)
		common.WriteError(c, common.ErrRecipeNotFound, h.debug)
		return
	}
	c.JSON(http.StatusOK, r)
}

// HandleStatus 食譜的悅性檢查摘要
func (h *Handler) HandleStatus(c *gin.Context) {
	id := c.Param("id")
	report := h.recipes.Status(c.Request.Context(), id)
	if report == nil {
		common.WriteError(c, common.ErrRecipeNotFound, h.debug)
		return
	}

	common.LogInfo("食譜狀態檢查",
		zap.String("request_id", common.RequestID(c)),
		zap.String("recipe_id", id),
		zap.String("status", string(report.Status)),
		zap.Int("forbidden", len(report.ForbiddenIngredients)),
	)

	c.JSON(http.StatusOK, report)
}
