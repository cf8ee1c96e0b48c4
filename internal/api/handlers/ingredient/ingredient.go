package ingredient

import (
	"net/http"

	"sattvic-kitchen/internal/core/catalog"
	"sattvic-kitchen/internal/core/flavor"
	"sattvic-kitchen/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ListResponse 食材清單響應
type ListResponse struct {
	Count       int                 `json:"count"`
	Ingredients []flavor.Ingredient `json:"ingredients"`
}

// Handler 食材處理程序
type Handler struct {
	catalog  *catalog.Service
	composer *flavor.Composer
	debug    bool
}

// NewHandler 創建新的食材處理程序
func NewHandler(catalog *catalog.Service, composer *flavor.Composer, debug bool) *Handler {
	return &Handler{
		catalog:  catalog,
		composer: composer,
		debug:    debug,
	}
}

func list(items []flavor.Ingredient) ListResponse {
	return ListResponse{Count: len(items), Ingredients: items}
}

// HandleSearch 依名稱或化合物搜尋食材
func (h *Handler) HandleSearch(c *gin.Context) {
	query := c.Query("q")
	results := h.catalog.Search(c.Request.Context(), query)

	common.LogInfo("食材搜尋",
		zap.String("request_id", common.RequestID(c)),
		zap.String("query", query),
		zap.Int("results", len(results)),
	)

	c.JSON(http.StatusOK, list(results))
}

// HandleForbidden 列出禁用食材
func (h *Handler) HandleForbidden(c *gin.Context) {
	c.JSON(http.StatusOK, list(h.catalog.Snapshot().FindForbidden()))
}

// HandleAllowed 列出允許食材
func (h *Handler) HandleAllowed(c *gin.Context) {
	c.JSON(http.StatusOK, list(h.catalog.Snapshot().FindAllowed()))
}

// HandleGet 取得單一食材
func (h *Handler) HandleGet(c *gin.Context) {
	id := c.Param("id")
	ing := h.catalog.Get(c.Request.Context(), id)
	if ing == nil {
		common.WriteError(c, common.ErrIngredientNotFound, h.debug)
		return
	}
	c.JSON(http.StatusOK, ing)
}

// HandleSubstitutes 組合禁用食材的替代配方
func (h *Handler) HandleSubstitutes(c *gin.Context) {
	requestID := common.RequestID(c)
	id := c.Param("id")

	// 遠端食材需先載入目錄
	h.catalog.Get(c.Request.Context(), id)

	res := h.composer.Resolve(id)
	switch res.Outcome {
	case flavor.OutcomeNotFound:
		common.WriteError(c, common.ErrIngredientNotFound, h.debug)
		return
	case flavor.OutcomeNoSubstitution:
		common.WriteError(c, common.ErrNoSubstitution, h.debug)
		return
	}

	if len(res.Dropped) > 0 {
		common.LogWarn("替代食材不存在於目錄，已略過",
			zap.String("request_id", requestID),
			zap.String("ingredient_id", id),
			zap.Strings("dropped", res.Dropped),
		)
	}

	common.LogInfo("替代配方組合完成",
		zap.String("request_id", requestID),
		zap.String("ingredient_id", id),
		zap.Int("substitutes", len(res.Blend.Substitutes)),
	)

	c.JSON(http.StatusOK, res.Blend)
}
