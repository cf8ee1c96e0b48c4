package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"sattvic-kitchen/internal/infrastructure/config"
	"sattvic-kitchen/internal/pkg/common"

	"go.uber.org/zap"
)

// Store 字串快取介面。未命中時回傳 common.ErrCacheMiss。
type Store interface {
	Get(ctx context.Context, namespace, key string) (string, error)
	Set(ctx context.Context, namespace, key, value string) error
	Close() error
}

// NewStore 依設定建立快取後端；停用時回傳 nil
func NewStore(cfg *config.CacheConfig) (Store, error) {
	if !cfg.Enabled {
		common.LogInfo("Cache disabled")
		return nil, nil
	}
	switch cfg.Backend {
	case config.CacheBackendRedis:
		store, err := NewRedisStore(cfg)
		if err != nil {
			return nil, err
		}
		return store, nil
	case config.CacheBackendMemory, "":
		return NewManager(cfg), nil
	}
	return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
}

// IsMiss 判斷是否為快取未命中
func IsMiss(err error) bool {
	var ce *common.CustomError
	return errors.As(err, &ce) && ce.Code == common.ErrCacheMiss.Code
}

// GetJSON 讀取並解析 JSON 快取；store 為 nil、未命中或內容損壞時回傳 false
func GetJSON(ctx context.Context, store Store, namespace, key string, v interface{}) bool {
	if store == nil {
		return false
	}
	raw, err := store.Get(ctx, namespace, key)
	if err != nil {
		if !IsMiss(err) {
			common.LogWarn("讀取快取失敗", zap.String("類型", namespace), zap.Error(err))
		}
		return false
	}
	if err := common.ParseJSON(raw, v); err != nil {
		common.LogWarn("快取內容無法解析", zap.String("類型", namespace), zap.Error(err))
		return false
	}
	return true
}

// SetJSON 以 JSON 寫入快取，失敗只記錄警告
func SetJSON(ctx context.Context, store Store, namespace, key string, v interface{}) {
	if store == nil {
		return
	}
	raw, err := common.ToJSON(v)
	if err != nil {
		common.LogWarn("快取內容無法序列化", zap.String("類型", namespace), zap.Error(err))
		return
	}
	if err := store.Set(ctx, namespace, key, raw); err != nil {
		common.LogWarn("寫入快取失敗", zap.String("類型", namespace), zap.Error(err))
	}
}

// generateKey 生成緩存鍵
func generateKey(namespace, key string) string {
	return fmt.Sprintf("sattvic:%s:%s", namespace, hashString(key))
}

// hashString 計算字符串的 SHA-256 哈希值
func hashString(s string) string {
	hash := sha256.Sum256([]byte(s))
	return hex.EncodeToString(hash[:])
}
