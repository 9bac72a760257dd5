// Package config loads the daemon configuration from the environment and
// validates it. Every variable is prefixed with WHALEWATCH_. Missing required
// values are fatal at startup, before any polling begins.
package config

import (
	"time"

	"github.com/fmarchini/whalewatch/internal/pkg/validator"

	"github.com/kelseyhightower/envconfig"
)

// Config is the full configuration surface.
type Config struct {
	// Chain node RPC.
	NodeEndpoint    string        `envconfig:"NODE_ENDPOINT" validate:"required,url"`
	NodeRPCUser     string        `envconfig:"NODE_RPC_USER"`
	NodeRPCPassword string        `envconfig:"NODE_RPC_PASSWORD"`
	RPCTimeout      time.Duration `envconfig:"RPC_TIMEOUT" default:"10s"`

	// Alert threshold. FallbackThresholdSats applies whenever the price
	// feed is unavailable.
	FiatCurrency          string  `envconfig:"FIAT_CURRENCY" default:"usd"`
	FiatThreshold         float64 `envconfig:"FIAT_THRESHOLD" default:"500000" validate:"gt=0"`
	FallbackThresholdSats uint64  `envconfig:"FALLBACK_THRESHOLD_SATS" default:"1000000000" validate:"gt=0"`

	// Price feed.
	PriceFeedBaseURL string        `envconfig:"PRICE_FEED_BASE_URL" default:"https://api.coingecko.com"`
	PriceTTL         time.Duration `envconfig:"PRICE_TTL" default:"5m"`

	// Polling cadence and catch-up bound.
	PollInterval     time.Duration `envconfig:"POLL_INTERVAL" default:"8s"`
	CatchUpBatchSize uint64        `envconfig:"CATCHUP_BATCH_SIZE" default:"50" validate:"gt=0"`

	// Notification channel.
	TelegramBaseURL  string `envconfig:"TELEGRAM_BASE_URL" default:"https://api.telegram.org"`
	TelegramBotToken string `envconfig:"TELEGRAM_BOT_TOKEN" validate:"required"`
	TelegramChatID   string `envconfig:"TELEGRAM_CHAT_ID" validate:"required"`

	// Progress pointer persistence.
	CheckpointBackend string `envconfig:"CHECKPOINT_BACKEND" default:"file" validate:"oneof=file redis"`
	CheckpointFile    string `envconfig:"CHECKPOINT_FILE" default:"whalewatch.checkpoint"`
	RedisAddr         string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisUsername     string `envconfig:"REDIS_USERNAME"`
	RedisPassword     string `envconfig:"REDIS_PASSWORD"`
	RedisDB           int    `envconfig:"REDIS_DB" default:"0"`

	// Observability.
	LogLevel         string `envconfig:"LOG_LEVEL" default:"info"`
	TelemetryEnabled bool   `envconfig:"TELEMETRY_ENABLED" default:"false"`
}

// Load reads the configuration from the environment and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("whalewatch", &cfg); err != nil {
		return Config{}, err
	}

	if err := validator.Validate(cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}
