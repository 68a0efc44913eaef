// Package config defines configuration parsing and helpers.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds all application configuration parsed from environment variables.
type Config struct {
	AppEnv            string  `env:"APP_ENV" envDefault:"dev"`
	Port              int     `env:"PORT" envDefault:"8080"`
	OpenRouterAPIKey  string  `env:"OPENROUTER_API_KEY"`
	OpenRouterBaseURL string  `env:"OPENROUTER_BASE_URL" envDefault:"https://openrouter.ai/api/v1"`
	ChatModel         string  `env:"CHAT_MODEL" envDefault:"deepseek/deepseek-r1-0528-qwen3-8b:free"`
	ChatMaxTokens     int     `env:"CHAT_MAX_TOKENS" envDefault:"1000"`
	ChatTemperature   float64 `env:"CHAT_TEMPERATURE" envDefault:"0.3"`
	// OracleTimeout bounds each individual oracle attempt.
	OracleTimeout time.Duration `env:"ORACLE_TIMEOUT" envDefault:"10s"`
	// OracleMaxAttempts is the total attempt budget, first try included.
	OracleMaxAttempts int           `env:"ORACLE_MAX_ATTEMPTS" envDefault:"3"`
	OracleRetryDelay  time.Duration `env:"ORACLE_RETRY_DELAY" envDefault:"1s"`
	// DatasetPath points at the reference career dataset (JSON array).
	DatasetPath           string        `env:"DATASET_PATH" envDefault:"data/job_dataset.json"`
	CORSAllowOrigins      string        `env:"CORS_ALLOW_ORIGINS" envDefault:"*"`
	RateLimitPerMin       int           `env:"RATE_LIMIT_PER_MIN" envDefault:"30"`
	ServerShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"30s"`
	HTTPReadTimeout       time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"15s"`
	HTTPWriteTimeout      time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"60s"`
	HTTPIdleTimeout       time.Duration `env:"HTTP_IDLE_TIMEOUT" envDefault:"60s"`
	// RequestTimeout bounds a whole request including the oracle retry loop,
	// so it must exceed OracleMaxAttempts * OracleTimeout.
	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT" envDefault:"45s"`
	OTLPEndpoint    string        `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:""`
	OTELServiceName string        `env:"OTEL_SERVICE_NAME" envDefault:"skillsync"`
}

// Load parses environment variables into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("op=config.Load: %w", err)
	}
	return cfg, nil
}

// IsDev reports whether the app is running in development mode.
func (c Config) IsDev() bool { return strings.ToLower(c.AppEnv) == "dev" }

// IsProd reports whether the app is running in production mode.
func (c Config) IsProd() bool { return strings.ToLower(c.AppEnv) == "prod" }

// IsTest reports whether the app is running in test mode.
func (c Config) IsTest() bool { return strings.ToLower(c.AppEnv) == "test" }
