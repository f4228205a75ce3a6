package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string        `env:"PORT,      default=8080"`
	Env       string        `env:"ENV,       default=development"`
	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"TOKEN_TTL, default=24h"`
	LogLevel  string        `env:"LOG_LEVEL, default=info"`

	Mongo   MongoConfig
	Redis   RedisConfig
	Advisor AdvisorConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=intelligence_platform"`
}

type RedisConfig struct {
	Addr      string        `env:"REDIS_ADDR, default=localhost:6379"`
	DB        int           `env:"REDIS_DB,   default=0"`
	AdviceTTL time.Duration `env:"ADVICE_CACHE_TTL, default=1h"`
}

// AdvisorConfig holds the chat-completion provider settings. The API key is
// deliberately environment-only; it must never appear in source or logs.
type AdvisorConfig struct {
	APIKey  string        `env:"OPENAI_API_KEY"`
	BaseURL string        `env:"OPENAI_BASE_URL, default=https://api.openai.com/v1"`
	Model   string        `env:"OPENAI_MODEL,    default=gpt-3.5-turbo"`
	Timeout time.Duration `env:"OPENAI_TIMEOUT,  default=30s"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}

// IsDevelopment reports whether the service runs in a development environment.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}
