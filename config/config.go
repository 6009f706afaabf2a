package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr      string `mapstructure:"REDIS_ADDR"`
	RedisPassword  string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB   int    `mapstructure:"REDIS_CACHE_DB"`
	RedisSessionDB int    `mapstructure:"REDIS_SESSION_DB"`

	// Gemini API key for the reply phrasing and passenger-count fallback.
	GeminiAPIKey string `mapstructure:"GEMINI_API_KEY"`

	// Partner flight API.
	SkyAuthURL      string `mapstructure:"SKY_AUTH_URL"`
	SkySearchURL    string `mapstructure:"SKY_SEARCH_URL"`
	SkyProvidersURL string `mapstructure:"SKY_PROVIDERS_URL"`
	SkyUsername     string `mapstructure:"SKY_USERNAME"`
	SkyPassword     string `mapstructure:"SKY_PASSWORD"`

	// Search orchestration tuning.
	SearchMaxConcurrency int `mapstructure:"SEARCH_MAX_CONCURRENCY"`
	ProviderTimeoutSecs  int `mapstructure:"PROVIDER_TIMEOUT_SECS"`
	DiscoveryTTLMins     int `mapstructure:"DISCOVERY_TTL_MINS"`
	SessionTTLMins       int `mapstructure:"SESSION_TTL_MINS"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_SESSION_DB", 1)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("GEMINI_API_KEY", "")
	viper.SetDefault("SKY_AUTH_URL", "https://bookmesky.com/partner/api/auth/token")
	viper.SetDefault("SKY_SEARCH_URL", "https://bookmesky.com/air/api/search")
	viper.SetDefault("SKY_PROVIDERS_URL", "https://api.bookmesky.com/air/api/content-providers")
	viper.SetDefault("SEARCH_MAX_CONCURRENCY", 5)
	viper.SetDefault("PROVIDER_TIMEOUT_SECS", 30)
	viper.SetDefault("DISCOVERY_TTL_MINS", 30)
	viper.SetDefault("SESSION_TTL_MINS", 30)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// ProviderTimeout returns the per-provider search timeout.
func ProviderTimeout() time.Duration {
	return time.Duration(AppConfig.ProviderTimeoutSecs) * time.Second
}

// DiscoveryTTL returns how long a cached provider list stays valid.
func DiscoveryTTL() time.Duration {
	return time.Duration(AppConfig.DiscoveryTTLMins) * time.Minute
}

// SessionTTL returns the idle lifetime of a conversation session.
func SessionTTL() time.Duration {
	return time.Duration(AppConfig.SessionTTLMins) * time.Minute
}
