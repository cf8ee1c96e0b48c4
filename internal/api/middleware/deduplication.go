package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"sattvic-kitchen/internal/pkg/common"
)

const defaultDedupWindow = time.Second

// requestCache 請求指紋與最後出現時間
type requestCache struct {
	sync.Mutex
	requests  map[string]time.Time
	lastPrune time.Time
}

// seen 回傳指紋是否在時間窗內出現過，並更新最後出現時間
func (rc *requestCache) seen(fingerprint string, now time.Time, window time.Duration) bool {
	rc.Lock()
	defer rc.Unlock()

	if last, ok := rc.requests[fingerprint]; ok && now.Sub(last) <= window {
		return true
	}
	rc.requests[fingerprint] = now
	return false
}

// prune 清除過舊的指紋，每個 maxAge 最多執行一次
func (rc *requestCache) prune(now time.Time, maxAge time.Duration) {
	rc.Lock()
	defer rc.Unlock()

	if now.Sub(rc.lastPrune) < maxAge {
		return
	}
	rc.lastPrune = now
	for k, t := range rc.requests {
		if now.Sub(t) > maxAge {
			delete(rc.requests, k)
		}
	}
}

// Deduplication 請求去重中間件，window 內相同路徑與內容的 POST 請求回傳 429
func Deduplication(window time.Duration) gin.HandlerFunc {
	if window <= 0 {
		window = defaultDedupWindow
	}
	cache := &requestCache{requests: make(map[string]time.Time)}

	return func(c *gin.Context) {
		// 只處理 POST 請求
		if c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		// 計算請求體哈希
		bodyHash := ""
		if c.Request.Body != nil {
			body, err := io.ReadAll(c.Request.Body)
			if err != nil {
				common.LogWarn("Failed to read ingredient payload",
					zap.String("request_id", common.RequestID(c)),
					zap.Error(err),
				)
				common.WriteError(c, common.BindError(err), false)
				return
			}
			hash := sha256.Sum256(body)
			bodyHash = hex.EncodeToString(hash[:])

			// 恢復請求體
			c.Request.Body = io.NopCloser(bytes.NewReader(body))
		}

		// 生成請求指紋
		fingerprint := c.Request.Method + ":" + c.Request.URL.Path
		if bodyHash != "" {
			fingerprint += ":" + bodyHash
		}

		now := time.Now()
		cache.prune(now, 10*window)
		if cache.seen(fingerprint, now, window) {
			common.WriteError(c, common.ErrTooManyRequests, false)
			return
		}

		c.Next()
	}
}
