package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/artcadia/market-sync/internal/adapter"
	"github.com/artcadia/market-sync/internal/config"
	"github.com/artcadia/market-sync/internal/ingest"
	"github.com/artcadia/market-sync/internal/logger"
	"github.com/artcadia/market-sync/internal/messaging"
	"github.com/artcadia/market-sync/internal/providers/coingecko"
	"github.com/artcadia/market-sync/internal/providers/immutablex"
	"github.com/artcadia/market-sync/internal/providers/jetstream"
	"github.com/artcadia/market-sync/internal/store"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadIngestConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Cancel the run on SIGINT/SIGTERM; the sweep stops between pages
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:     cfg.Debug,
		SentryDSN: cfg.SentryDSN,
		Tags: map[string]string{
			"service": "ingestd",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting market sync")

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err))
	}

	// Configure connection pool
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Connected to database",
		zap.Int("max_open_conns", cfg.Database.MaxOpenConns),
		zap.Int("max_idle_conns", cfg.Database.MaxIdleConns),
	)

	// Initialize store
	dataStore := store.NewPGStore(db)

	// Initialize provider clients
	marketClient := immutablex.NewClient(
		adapter.NewHTTPClient(cfg.Market.HTTPTimeout),
		cfg.Market.APIURL,
		cfg.Market.APIKey,
	)
	coinClient := coingecko.NewClient(
		adapter.NewHTTPClient(cfg.Coins.HTTPTimeout),
		cfg.Coins.APIURL,
		cfg.Coins.APIKey,
	)

	// Connect to NATS when publication is enabled
	var publisher messaging.Publisher
	if cfg.PublishEvents {
		publisher, err = jetstream.NewPublisher(ctx, jetstream.Config{
			URL:            cfg.NATS.URL,
			StreamName:     cfg.NATS.StreamName,
			MaxReconnects:  cfg.NATS.MaxReconnects,
			ReconnectWait:  cfg.NATS.ReconnectWait,
			ConnectionName: cfg.NATS.ConnectionName,
		})
		if err != nil {
			logger.FatalCtx(ctx, "Failed to connect to NATS", zap.Error(err), zap.String("url", cfg.NATS.URL))
		}
		defer publisher.Close()
		logger.InfoCtx(ctx, "Connected to NATS", zap.String("stream", cfg.NATS.StreamName))
	}

	enabledKinds, err := cfg.EnabledKinds()
	if err != nil {
		logger.FatalCtx(ctx, "Invalid stream configuration", zap.Error(err))
	}

	// Run one sweep over every enabled stream
	orchestrator := ingest.NewOrchestrator(ingest.Config{
		Collections:    cfg.Collections,
		Coins:          cfg.CoinIDs,
		EnabledKinds:   enabledKinds,
		CoinChunkSize:  cfg.Coins.ChunkSize,
		CoinChunkDelay: cfg.Coins.ChunkDelay,
		Enricher: ingest.EnricherConfig{
			SettlementWorkers: cfg.Enricher.SettlementWorkers,
			BuyerWorkers:      cfg.Enricher.BuyerWorkers,
		},
	}, dataStore, marketClient, coinClient, publisher, adapter.NewClock())

	summary := orchestrator.Run(ctx)

	if ctx.Err() != nil {
		logger.Warn("Sweep run interrupted", zap.String("run_id", summary.RunID))
		return
	}
	logger.InfoCtx(ctx, "Market sync finished", zap.String("run_id", summary.RunID))
}
