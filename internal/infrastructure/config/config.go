package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 應用配置
type Config struct {
	App         AppConfig       `mapstructure:"app"`
	Server      ServerConfig    `mapstructure:"server"`
	FlavorDB    FlavorDBConfig  `mapstructure:"flavordb"`
	RecipeDB    RecipeDBConfig  `mapstructure:"recipedb"`
	Catalog     CatalogConfig   `mapstructure:"catalog"`
	Cache       CacheConfig     `mapstructure:"cache"`
	RateLimit   RateLimitConfig `mapstructure:"rate_limit"`
	DedupWindow time.Duration   `mapstructure:"dedup_window"`
	LogLevel    string          `mapstructure:"log_level"`
}

// AppConfig 應用程式設定
type AppConfig struct {
	Env     string `mapstructure:"env"`
	Debug   bool   `mapstructure:"debug"`
	Version string `mapstructure:"version"`
	Name    string `mapstructure:"name"`
}

// ServerConfig 服務器配置
type ServerConfig struct {
	Port           int           `mapstructure:"port"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	IdleTimeout    time.Duration `mapstructure:"idle_timeout"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	MaxBodyBytes   int64         `mapstructure:"max_body_bytes"`
}

// FlavorDBConfig FlavorDB 外部資料庫設定
type FlavorDBConfig struct {
	Enabled          bool          `mapstructure:"enabled"`
	BaseURL          string        `mapstructure:"base_url"`
	APIKey           string        `mapstructure:"api_key"`
	Timeout          time.Duration `mapstructure:"timeout"`
	Retries          int           `mapstructure:"retries"`
	RetryWait        time.Duration `mapstructure:"retry_wait"`
	MaxRemoteResults int           `mapstructure:"max_remote_results"`
	MaxRemembered    int           `mapstructure:"max_remembered"`
}

// RecipeDBConfig RecipeDB 外部資料庫設定
type RecipeDBConfig struct {
	Enabled   bool          `mapstructure:"enabled"`
	BaseURL   string        `mapstructure:"base_url"`
	APIKey    string        `mapstructure:"api_key"`
	Timeout   time.Duration `mapstructure:"timeout"`
	Retries   int           `mapstructure:"retries"`
	RetryWait time.Duration `mapstructure:"retry_wait"`
	PageSize  int           `mapstructure:"page_size"`
}

// CatalogConfig 食材目錄與替代配方設定
type CatalogConfig struct {
	FixturePath    string          `mapstructure:"fixture_path"`
	SimilarityMode string          `mapstructure:"similarity_mode"`
	RatioRules     []RatioRuleSpec `mapstructure:"ratio_rules"`
}

// RatioRuleSpec 額外的替代比例規則，優先於內建規則
type RatioRuleSpec struct {
	Match  string  `mapstructure:"match"`
	Ratio  float64 `mapstructure:"ratio"`
	Reason string  `mapstructure:"reason"`
}

// CacheConfig 緩存配置
type CacheConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	Backend         string        `mapstructure:"backend"`
	RedisAddr       string        `mapstructure:"redis_addr"`
	RedisPassword   string        `mapstructure:"redis_password"`
	RedisDB         int           `mapstructure:"redis_db"`
	MaxSize         int           `mapstructure:"max_size"`
	TTL             time.Duration `mapstructure:"ttl"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
}

// RateLimitConfig 速率限制配置
type RateLimitConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Requests int           `mapstructure:"requests"`
	Window   time.Duration `mapstructure:"window"`
}

// 緩存後端
const (
	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"
)

// LoadConfig 載入設定
func LoadConfig() (*Config, error) {
	// 加載 .env 文件，不存在時只使用環境變數
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: .env file not found, using environment only")
	}
	return Load(viper.New())
}

// Load 以指定的 viper 實例解析設定
func Load(v *viper.Viper) (*Config, error) {
	setDefaults(v)

	// 設定環境變數前綴
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 綁定環境變量
	_ = v.BindEnv("flavordb.api_key", "FLAVORDB_API_KEY")
	_ = v.BindEnv("flavordb.base_url", "FLAVORDB_BASE_URL")
	_ = v.BindEnv("flavordb.enabled", "FLAVORDB_ENABLED")
	_ = v.BindEnv("recipedb.api_key", "RECIPEDB_API_KEY")
	_ = v.BindEnv("recipedb.base_url", "RECIPEDB_BASE_URL")
	_ = v.BindEnv("recipedb.enabled", "RECIPEDB_ENABLED")
	_ = v.BindEnv("catalog.fixture_path", "CATALOG_FIXTURE_PATH")
	_ = v.BindEnv("catalog.similarity_mode", "SIMILARITY_MODE")
	_ = v.BindEnv("cache.enabled", "CACHE_ENABLED")
	_ = v.BindEnv("cache.backend", "CACHE_BACKEND")
	_ = v.BindEnv("cache.redis_addr", "REDIS_ADDR")
	_ = v.BindEnv("cache.redis_password", "REDIS_PASSWORD")
	_ = v.BindEnv("rate_limit.enabled", "RATE_LIMIT_ENABLED")
	_ = v.BindEnv("rate_limit.requests", "RATE_LIMIT_REQUESTS")
	_ = v.BindEnv("rate_limit.window", "RATE_LIMIT_WINDOW")
	_ = v.BindEnv("dedup_window", "DEDUP_WINDOW")
	_ = v.BindEnv("log_level", "LOG_LEVEL")
	_ = v.BindEnv("server.port", "PORT")

	// 設定檔（可選）
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// 添加調試日誌（logger 尚未初始化，改用 fmt.Println）
	fmt.Println("Loading configuration", "flavordb_base_url:", v.GetString("flavordb.base_url"), "flavordb_key:", MaskAPIKey(v.GetString("flavordb.api_key")))

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// MaskAPIKey 遮罩 API Key，只顯示前後各 4 個字符
func MaskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

// setDefaults 設定預設值
func setDefaults(v *viper.Viper) {
	// 應用程式設定
	v.SetDefault("app.env", "development")
	v.SetDefault("app.debug", true)
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("app.name", "sattvic-kitchen")

	// 伺服器設定
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.idle_timeout", "120s")
	v.SetDefault("server.request_timeout", "30s")
	v.SetDefault("server.max_body_bytes", 1<<20) // 1MB

	// FlavorDB 設定
	v.SetDefault("flavordb.enabled", true)
	v.SetDefault("flavordb.base_url", "https://api.foodoscope.com/flavordb")
	v.SetDefault("flavordb.timeout", "10s")
	v.SetDefault("flavordb.retries", 1)
	v.SetDefault("flavordb.retry_wait", "500ms")
	v.SetDefault("flavordb.max_remote_results", 5)
	v.SetDefault("flavordb.max_remembered", 200)

	// RecipeDB 設定
	v.SetDefault("recipedb.base_url", "https://api.foodoscope.com/recipe2-api")
	v.SetDefault("recipedb.enabled", true)
	v.SetDefault("recipedb.timeout", "10s")
	v.SetDefault("recipedb.retries", 1)
	v.SetDefault("recipedb.retry_wait", "500ms")
	v.SetDefault("recipedb.page_size", 100)

	// 目錄設定
	v.SetDefault("catalog.similarity_mode", "fixed")

	// 快取設定
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.backend", CacheBackendMemory)
	v.SetDefault("cache.redis_addr", "localhost:6379")
	v.SetDefault("cache.redis_db", 0)
	v.SetDefault("cache.max_size", 1000)
	v.SetDefault("cache.ttl", "1h")
	v.SetDefault("cache.cleanup_interval", "10m")

	// 限流設定
	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.requests", 100)
	v.SetDefault("rate_limit.window", "1m")

	v.SetDefault("dedup_window", "1s")
	v.SetDefault("log_level", "info")
}

// validateConfig 驗證設定
func validateConfig(config *Config) error {
	if config.Server.Port <= 0 {
		return fmt.Errorf("server port is required")
	}

	if config.FlavorDB.Enabled {
		if config.FlavorDB.BaseURL == "" {
			return fmt.Errorf("flavordb base url is required when enabled")
		}
		if config.FlavorDB.Retries < 0 {
			return fmt.Errorf("invalid flavordb retries")
		}
		if config.FlavorDB.MaxRemoteResults < 0 {
			return fmt.Errorf("invalid flavordb max remote results")
		}
		if config.FlavorDB.MaxRemembered < 0 {
			return fmt.Errorf("invalid flavordb max remembered")
		}
	}

	if config.RecipeDB.Enabled {
		if config.RecipeDB.BaseURL == "" {
			return fmt.Errorf("recipedb base url is required when enabled")
		}
		if config.RecipeDB.Retries < 0 {
			return fmt.Errorf("invalid recipedb retries")
		}
		if config.RecipeDB.PageSize <= 0 {
			return fmt.Errorf("invalid recipedb page size")
		}
	}

	switch config.Catalog.SimilarityMode {
	case "", "fixed", "computed":
	default:
		return fmt.Errorf("invalid similarity mode %q", config.Catalog.SimilarityMode)
	}

	for i, r := range config.Catalog.RatioRules {
		if r.Match == "" || r.Ratio <= 0 || r.Ratio > 1 {
			return fmt.Errorf("invalid ratio rule #%d", i)
		}
	}

	if config.Cache.Enabled {
		switch config.Cache.Backend {
		case CacheBackendMemory:
			if config.Cache.MaxSize <= 0 {
				return fmt.Errorf("invalid cache max size")
			}
			if config.Cache.CleanupInterval <= 0 {
				return fmt.Errorf("invalid cache cleanup interval")
			}
		case CacheBackendRedis:
			if config.Cache.RedisAddr == "" {
				return fmt.Errorf("redis address is required for redis cache")
			}
		default:
			return fmt.Errorf("unknown cache backend %q", config.Cache.Backend)
		}
		if config.Cache.TTL <= 0 {
			return fmt.Errorf("invalid cache ttl")
		}
	}

	if config.RateLimit.Enabled {
		if config.RateLimit.Requests <= 0 || config.RateLimit.Window <= 0 {
			return fmt.Errorf("invalid rate limit")
		}
	}

	return nil
}
