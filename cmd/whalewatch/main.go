package main

import (
	"context"
	"log"
	"time"

	"github.com/fmarchini/whalewatch/internal/chainsync"
	"github.com/fmarchini/whalewatch/internal/config"
	"github.com/fmarchini/whalewatch/internal/handlers/cli"
	"github.com/fmarchini/whalewatch/internal/infra/blockchain/bitcoind"
	"github.com/fmarchini/whalewatch/internal/infra/notifier/telegram"
	"github.com/fmarchini/whalewatch/internal/infra/pricefeed/coingecko"
	filestorage "github.com/fmarchini/whalewatch/internal/infra/storage/file"
	redisstorage "github.com/fmarchini/whalewatch/internal/infra/storage/redis"
	"github.com/fmarchini/whalewatch/internal/pkg/logger"
	"github.com/fmarchini/whalewatch/internal/pkg/resilience/retry"
	"github.com/fmarchini/whalewatch/internal/pkg/telemetry"
	transporthttp "github.com/fmarchini/whalewatch/internal/pkg/transport/http"
	"github.com/fmarchini/whalewatch/internal/pkg/transport/jsonrpc"
	"github.com/fmarchini/whalewatch/internal/pricefeed"
	"github.com/fmarchini/whalewatch/internal/whalealert"
)

const serviceName = "whalewatch"

func newCheckpointStorage(ctx context.Context, cfg config.Config) (chainsync.CheckpointStorage, error) {
	if cfg.CheckpointBackend == "redis" {
		return redisstorage.NewClient(ctx, cfg.RedisAddr, cfg.RedisUsername, cfg.RedisPassword, cfg.RedisDB)
	}

	return filestorage.NewStore(cfg.CheckpointFile), nil
}

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	if cfg.TelemetryEnabled {
		shutdown, err := telemetry.Init(ctx, serviceName)
		if err != nil {
			log.Fatalf("failed to initialize telemetry: %v", err)
		}
		defer shutdown(ctx)
	}

	if err := logger.Init(cfg.LogLevel); err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	nodeHTTP := transporthttp.NewClient(transporthttp.WithTimeout(cfg.RPCTimeout))
	nodeConn := jsonrpc.NewClient(nodeHTTP.StandardClient(), cfg.NodeEndpoint,
		jsonrpc.WithBasicAuth(cfg.NodeRPCUser, cfg.NodeRPCPassword))
	node := bitcoind.NewClient(nodeConn)

	feedHTTP := transporthttp.NewClient()
	rates := pricefeed.New(
		coingecko.NewClient(feedHTTP.StandardClient(), cfg.PriceFeedBaseURL, cfg.FiatCurrency),
		pricefeed.WithTTL(cfg.PriceTTL),
	)

	notifierHTTP := transporthttp.NewClient()
	notifier := telegram.NewClient(notifierHTTP.StandardClient(), cfg.TelegramBaseURL,
		cfg.TelegramBotToken, cfg.TelegramChatID)

	checkpoints, err := newCheckpointStorage(ctx, cfg)
	if err != nil {
		logger.Fatal(ctx, "failed to initialize checkpoint storage", "error", err)
	}

	scanner := whalealert.New(node, rates, notifier, cfg.FiatThreshold, cfg.FallbackThresholdSats)

	sync := chainsync.New(node, checkpoints, scanner,
		chainsync.WithPollInterval(cfg.PollInterval),
		chainsync.WithBatchSize(cfg.CatchUpBatchSize),
		chainsync.WithRetry(retry.New(
			retry.WithAttempts(3),
			retry.WithDelay(500*time.Millisecond),
		)),
	)

	services := cli.Services{
		Sync:                  sync,
		Chain:                 node,
		Rates:                 rates,
		FiatThreshold:         cfg.FiatThreshold,
		FallbackThresholdSats: cfg.FallbackThresholdSats,
	}

	if err := cli.Run(ctx, services); err != nil {
		logger.Fatal(ctx, "whalewatch terminated", "error", err)
	}
}
