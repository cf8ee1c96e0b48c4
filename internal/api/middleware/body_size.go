package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"sattvic-kitchen/internal/pkg/common"
)

// BodySizeLimit 限制食材清單請求體大小；宣告長度超過上限時直接回傳 413，
// 未宣告長度的請求由 MaxBytesReader 截斷，交給 common.BindError 轉換
func BodySizeLimit(maxSize int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxSize {
			common.LogWarn("Ingredient payload exceeds limit",
				zap.String("request_id", common.RequestID(c)),
				zap.Int64("content_length", c.Request.ContentLength),
				zap.Int64("limit_bytes", maxSize),
				zap.String("path", c.Request.URL.Path),
			)
			common.WriteError(c, common.NewError(
				common.ErrCodeBodyTooLarge,
				fmt.Sprintf("食材清單超過 %d bytes 上限", maxSize),
				http.StatusRequestEntityTooLarge,
				nil,
			), false)
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxSize)
		c.Next()
	}
}
