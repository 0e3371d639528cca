package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ErrMissingCredential is returned when the AI credential is absent. Startup must abort.
var ErrMissingCredential = errors.New("GEMINI_API_KEY environment variable is not set")

const (
	TextProviderGemini     = "gemini"
	TextProviderOpenRouter = "openrouter"

	FavoritesBackendFile   = "file"
	FavoritesBackendRedis  = "redis"
	FavoritesBackendMemory = "memory"
)

// Config application configuration
type Config struct {
	App         AppConfig        `mapstructure:"app"`
	Server      ServerConfig     `mapstructure:"server"`
	Gemini      GeminiConfig     `mapstructure:"gemini"`
	OpenRouter  OpenRouterConfig `mapstructure:"openrouter"`
	AI          AIConfig         `mapstructure:"ai"`
	Cache       CacheConfig      `mapstructure:"cache"`
	RateLimit   RateLimitConfig  `mapstructure:"rate_limit"`
	Image       ImageConfig      `mapstructure:"image"`
	Favorites   FavoritesConfig  `mapstructure:"favorites"`
	Redis       RedisConfig      `mapstructure:"redis"`
	DedupWindow time.Duration    `mapstructure:"dedup_window"`
	LogLevel    string           `mapstructure:"log_level"`
	LogDir      string           `mapstructure:"log_dir"`
}

// AppConfig application settings
type AppConfig struct {
	Env     string `mapstructure:"env"`
	Debug   bool   `mapstructure:"debug"`
	Version string `mapstructure:"version"`
	Name    string `mapstructure:"name"`
}

// ServerConfig HTTP server settings
type ServerConfig struct {
	Port           int           `mapstructure:"port"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	IdleTimeout    time.Duration `mapstructure:"idle_timeout"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	MaxBodyBytes   int64         `mapstructure:"max_body_bytes"`
}

// GeminiConfig Gemini API settings
type GeminiConfig struct {
	APIKey     string `mapstructure:"api_key"`
	TextModel  string `mapstructure:"text_model"`
	ImageModel string `mapstructure:"image_model"`
}

// OpenRouterConfig OpenRouter settings, used only when ai.text_provider is openrouter
type OpenRouterConfig struct {
	APIKey    string `mapstructure:"api_key"`
	BaseURL   string `mapstructure:"base_url"`
	Model     string `mapstructure:"model"`
	MaxTokens int    `mapstructure:"max_tokens"`
}

// AIConfig generation pipeline settings
type AIConfig struct {
	TextProvider string        `mapstructure:"text_provider"`
	TextTimeout  time.Duration `mapstructure:"text_timeout"`
	ImageTimeout time.Duration `mapstructure:"image_timeout"`
}

// CacheConfig structured response cache
type CacheConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	MaxSize         int           `mapstructure:"max_size"`
	TTL             time.Duration `mapstructure:"ttl"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
}

// RateLimitConfig token bucket settings
type RateLimitConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Requests int           `mapstructure:"requests"`
	Window   time.Duration `mapstructure:"window"`
}

// ImageConfig generated image limits
type ImageConfig struct {
	MaxSizeBytes int64 `mapstructure:"max_size_bytes"`
	JPEGQuality  int   `mapstructure:"jpeg_quality"`
}

// FavoritesConfig bookmark persistence
type FavoritesConfig struct {
	Backend  string `mapstructure:"backend"`
	FilePath string `mapstructure:"file_path"`
	Key      string `mapstructure:"key"`
}

// RedisConfig redis connection for the redis favorites backend
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// LoadConfig loads .env (if present), environment variables and defaults
func LoadConfig() (*Config, error) {
	// a missing .env is fine, the environment may already carry everything
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	bindings := map[string]string{
		"gemini.api_key":      "GEMINI_API_KEY",
		"gemini.text_model":   "GEMINI_TEXT_MODEL",
		"gemini.image_model":  "GEMINI_IMAGE_MODEL",
		"openrouter.api_key":  "OPENROUTER_API_KEY",
		"openrouter.model":    "OPENROUTER_MODEL",
		"ai.text_provider":    "AI_TEXT_PROVIDER",
		"cache.enabled":       "CACHE_ENABLED",
		"rate_limit.enabled":  "RATE_LIMIT_ENABLED",
		"rate_limit.requests": "RATE_LIMIT_REQUESTS",
		"rate_limit.window":   "RATE_LIMIT_WINDOW",
		"favorites.backend":   "FAVORITES_BACKEND",
		"favorites.file_path": "FAVORITES_FILE",
		"redis.addr":          "REDIS_ADDR",
		"redis.password":      "REDIS_PASSWORD",
		"dedup_window":        "DEDUP_WINDOW",
		"log_level":           "LOG_LEVEL",
		"server.port":         "PORT",
	}
	for key, env := range bindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// MaskAPIKey keeps the first and last four characters
func MaskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.env", "development")
	v.SetDefault("app.debug", false)
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("app.name", "ranna-banna")

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "150s")
	v.SetDefault("server.idle_timeout", "120s")
	v.SetDefault("server.request_timeout", "120s")
	v.SetDefault("server.max_body_bytes", 2<<20)

	v.SetDefault("gemini.api_key", "")
	v.SetDefault("gemini.text_model", "gemini-2.5-flash")
	v.SetDefault("gemini.image_model", "imagen-3.0-generate-002")

	v.SetDefault("openrouter.api_key", "")
	v.SetDefault("openrouter.base_url", "https://openrouter.ai/api/v1")
	v.SetDefault("openrouter.model", "google/gemini-2.5-flash")
	v.SetDefault("openrouter.max_tokens", 16000)

	v.SetDefault("ai.text_provider", TextProviderGemini)
	v.SetDefault("ai.text_timeout", "90s")
	v.SetDefault("ai.image_timeout", "60s")

	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.max_size", 500)
	v.SetDefault("cache.ttl", "6h")
	v.SetDefault("cache.cleanup_interval", "10m")

	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.requests", 60)
	v.SetDefault("rate_limit.window", "1m")

	v.SetDefault("image.max_size_bytes", 10*1024*1024)
	v.SetDefault("image.jpeg_quality", 85)

	v.SetDefault("favorites.backend", FavoritesBackendFile)
	v.SetDefault("favorites.file_path", "data/favorites.json")
	v.SetDefault("favorites.key", "ranna-banna-favorites")

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("dedup_window", "1s")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_dir", "logs")
}

func validateConfig(config *Config) error {
	if strings.TrimSpace(config.Gemini.APIKey) == "" {
		return ErrMissingCredential
	}

	if config.Server.Port <= 0 {
		return fmt.Errorf("server port is required")
	}

	switch config.AI.TextProvider {
	case TextProviderGemini:
	case TextProviderOpenRouter:
		if strings.TrimSpace(config.OpenRouter.APIKey) == "" {
			return fmt.Errorf("OPENROUTER_API_KEY is required when ai.text_provider is %s", TextProviderOpenRouter)
		}
	default:
		return fmt.Errorf("unknown ai.text_provider %q", config.AI.TextProvider)
	}

	if config.AI.TextTimeout <= 0 || config.AI.ImageTimeout <= 0 {
		return fmt.Errorf("ai timeouts must be positive")
	}

	if config.Cache.Enabled {
		if config.Cache.MaxSize <= 0 {
			return fmt.Errorf("invalid cache max size")
		}
		if config.Cache.TTL <= 0 {
			return fmt.Errorf("invalid cache ttl")
		}
		if config.Cache.CleanupInterval <= 0 {
			return fmt.Errorf("invalid cache cleanup interval")
		}
	}

	if config.RateLimit.Enabled && (config.RateLimit.Requests <= 0 || config.RateLimit.Window <= 0) {
		return fmt.Errorf("invalid rate limit settings")
	}

	switch config.Favorites.Backend {
	case FavoritesBackendFile:
		if config.Favorites.FilePath == "" {
			return fmt.Errorf("favorites file path is required")
		}
	case FavoritesBackendRedis:
		if config.Redis.Addr == "" {
			return fmt.Errorf("redis addr is required for the redis favorites backend")
		}
	case FavoritesBackendMemory:
	default:
		return fmt.Errorf("unknown favorites backend %q", config.Favorites.Backend)
	}
	if config.Favorites.Key == "" {
		return fmt.Errorf("favorites key is required")
	}

	return nil
}
