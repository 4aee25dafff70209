package ingest

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/artcadia/market-sync/internal/adapter"
	"github.com/artcadia/market-sync/internal/domain"
	"github.com/artcadia/market-sync/internal/logger"
	"github.com/artcadia/market-sync/internal/messaging"
	"github.com/artcadia/market-sync/internal/providers/coingecko"
	"github.com/artcadia/market-sync/internal/providers/immutablex"
	"github.com/artcadia/market-sync/internal/store"
)

const (
	// DEFAULT_COIN_CHUNK_SIZE is how many coins are fetched per chunk
	// before the throttle pause kicks in
	DEFAULT_COIN_CHUNK_SIZE = 5

	// DEFAULT_COIN_CHUNK_DELAY is the pause between coin chunks, sized to
	// stay under the free tier's per-minute request cap
	DEFAULT_COIN_CHUNK_DELAY = 65 * time.Second
)

// Config holds the orchestrator configuration
type Config struct {
	// Collections are the normalized collection contract addresses to sweep
	Collections []string
	// Coins are the provider coin ids whose daily prices are tracked
	Coins []string
	// EnabledKinds toggles streams per record kind; nil enables all kinds
	EnabledKinds map[domain.RecordKind]bool
	// CoinChunkSize and CoinChunkDelay shape the coin-price throttle
	CoinChunkSize  int
	CoinChunkDelay time.Duration
	// Enricher holds worker pool sizes for the order enrichment passes
	Enricher EnricherConfig
}

// StreamSummary reports the outcome of one stream sweep
type StreamSummary struct {
	Stream      string
	Pages       int
	Records     int
	Persisted   int64
	FailedPages int
	// Watermark is the stream's high-water mark after the sweep, derived
	// from the database rather than carried over from the sweep itself
	Watermark *time.Time
}

// RunSummary reports the outcome of one full sweep run
type RunSummary struct {
	RunID    string
	Streams  []StreamSummary
	Duration time.Duration
}

// Orchestrator runs one sweep over every enabled stream, sequentially so
// a single run never exceeds the providers' rate limits. A failed stream
// is logged and skipped; later streams still run.
type Orchestrator struct {
	config    Config
	store     store.Store
	market    immutablex.Client
	coins     coingecko.Client
	publisher messaging.Publisher
	clock     adapter.Clock
	throttle  Policy

	mints       Sink[immutablex.Mint]
	transfers   Sink[immutablex.Transfer]
	orders      Sink[immutablex.Order]
	deposits    Sink[immutablex.Deposit]
	withdrawals Sink[immutablex.Withdrawal]
	coinPrices  Sink[coingecko.DailyPrice]

	enricher *OrderEnricher
}

// NewOrchestrator creates an orchestrator with defaulted throttle
// settings. publisher may be nil to disable event publication.
func NewOrchestrator(
	config Config,
	st store.Store,
	market immutablex.Client,
	coins coingecko.Client,
	publisher messaging.Publisher,
	clock adapter.Clock,
) *Orchestrator {
	if config.CoinChunkSize <= 0 {
		config.CoinChunkSize = DEFAULT_COIN_CHUNK_SIZE
	}
	if config.CoinChunkDelay <= 0 {
		config.CoinChunkDelay = DEFAULT_COIN_CHUNK_DELAY
	}

	return &Orchestrator{
		config:      config,
		store:       st,
		market:      market,
		coins:       coins,
		publisher:   publisher,
		clock:       clock,
		throttle:    ChunkPolicy{Delay: config.CoinChunkDelay},
		mints:       NewMintSink(st),
		transfers:   NewTransferSink(st),
		orders:      NewOrderSink(st),
		deposits:    NewDepositSink(st),
		withdrawals: NewWithdrawalSink(st),
		coinPrices:  NewCoinPriceSink(st),
		enricher:    NewOrderEnricher(config.Enricher, st, market),
	}
}

// Run executes one sweep over every enabled stream
func (o *Orchestrator) Run(ctx context.Context) *RunSummary {
	runID := uuid.NewString()
	start := o.clock.Now()

	logger.InfoCtx(ctx, "Starting sweep run",
		zap.String("run_id", runID),
		zap.Int("collections", len(o.config.Collections)),
		zap.Int("coins", len(o.config.Coins)),
	)

	summary := &RunSummary{RunID: runID}

	for _, collection := range o.config.Collections {
		if ctx.Err() != nil {
			break
		}

		if o.enabled(domain.KindMint) {
			summary.Streams = append(summary.Streams, o.sweepMints(ctx, collection))
		}
		if o.enabled(domain.KindTransfer) {
			summary.Streams = append(summary.Streams, o.sweepTransfers(ctx, collection))
		}
		if o.enabled(domain.KindOrder) {
			summary.Streams = append(summary.Streams, o.sweepOrders(ctx, collection))
			o.enrichOrders(ctx, collection)
		}
		if o.enabled(domain.KindDeposit) {
			summary.Streams = append(summary.Streams, o.sweepDeposits(ctx, collection))
		}
		if o.enabled(domain.KindWithdrawal) {
			summary.Streams = append(summary.Streams, o.sweepWithdrawals(ctx, collection))
		}
	}

	if ctx.Err() == nil && o.enabled(domain.KindCoinPrice) {
		summary.Streams = append(summary.Streams, o.sweepCoinPrices(ctx)...)
	}

	summary.Duration = o.clock.Since(start)

	var records int
	var persisted int64
	for _, s := range summary.Streams {
		records += s.Records
		persisted += s.Persisted
	}
	logger.InfoCtx(ctx, "Sweep run completed",
		zap.String("run_id", runID),
		zap.Int("streams", len(summary.Streams)),
		zap.Int("records", records),
		zap.Int64("persisted", persisted),
		zap.Duration("duration", summary.Duration),
	)

	return summary
}

// enabled reports whether streams of this kind should run
func (o *Orchestrator) enabled(kind domain.RecordKind) bool {
	if o.config.EnabledKinds == nil {
		return true
	}
	return o.config.EnabledKinds[kind]
}

// sweepStream sweeps one marketplace stream from its watermark forward.
// The lower bound is the stream's persisted watermark, so restarts resume
// where the database actually is; a fresh stream starts from the epoch.
func sweepStream[T any](
	ctx context.Context,
	o *Orchestrator,
	key domain.StreamKey,
	sink Sink[T],
	fetch func(ctx context.Context, minTimestamp time.Time, cursor string) (*domain.Page[T], error),
	eventAt func(record T) time.Time,
) StreamSummary {
	floor := watermarkFloor(ctx, sink, key)

	logger.InfoCtx(ctx, "Sweeping stream",
		zap.String("stream", key.String()),
		zap.Time("floor", floor),
	)

	var persisted int64
	result := SweepPages(ctx, key.String(),
		func(ctx context.Context, cursor string) (*domain.Page[T], error) {
			return fetch(ctx, floor, cursor)
		},
		func(ctx context.Context, page *domain.Page[T]) error {
			n, err := sink.Persist(ctx, key.Scope, page.Records)
			if err != nil {
				return err
			}
			persisted += n

			var maxEvent *time.Time
			for _, record := range page.Records {
				if at := eventAt(record); maxEvent == nil || at.After(*maxEvent) {
					maxEvent = &at
				}
			}
			o.publish(ctx, key, len(page.Records), maxEvent)
			return nil
		},
	)

	watermark, err := sink.Watermark(ctx, key.Scope)
	if err != nil {
		logger.ErrorCtx(ctx, err, zap.String("stream", key.String()))
	}

	summary := StreamSummary{
		Stream:      key.String(),
		Pages:       result.Pages,
		Records:     result.Records,
		Persisted:   persisted,
		FailedPages: result.FailedPages,
		Watermark:   watermark,
	}

	logger.InfoCtx(ctx, "Stream sweep completed",
		zap.String("stream", key.String()),
		zap.Int("pages", summary.Pages),
		zap.Int("records", summary.Records),
		zap.Int64("persisted", summary.Persisted),
		zap.Int("failed_pages", summary.FailedPages),
		zap.Timep("watermark", summary.Watermark),
	)

	return summary
}

// watermarkFloor returns the sweep's lower bound: the stream watermark
// when one exists, otherwise the backfill epoch. A watermark read failure
// falls back to the epoch, trading a redundant backfill for a missed
// window.
func watermarkFloor[T any](ctx context.Context, sink Sink[T], key domain.StreamKey) time.Time {
	watermark, err := sink.Watermark(ctx, key.Scope)
	if err != nil {
		logger.ErrorCtx(ctx, err, zap.String("stream", key.String()))
		return domain.WatermarkEpoch
	}
	if watermark == nil {
		return domain.WatermarkEpoch
	}
	return *watermark
}

func (o *Orchestrator) sweepMints(ctx context.Context, collection string) StreamSummary {
	return sweepStream(ctx, o, domain.StreamKey{Kind: domain.KindMint, Scope: collection}, o.mints,
		func(ctx context.Context, minTimestamp time.Time, cursor string) (*domain.Page[immutablex.Mint], error) {
			return o.market.ListMints(ctx, collection, minTimestamp, cursor)
		},
		func(record immutablex.Mint) time.Time { return record.Timestamp },
	)
}

func (o *Orchestrator) sweepTransfers(ctx context.Context, collection string) StreamSummary {
	return sweepStream(ctx, o, domain.StreamKey{Kind: domain.KindTransfer, Scope: collection}, o.transfers,
		func(ctx context.Context, minTimestamp time.Time, cursor string) (*domain.Page[immutablex.Transfer], error) {
			return o.market.ListTransfers(ctx, collection, minTimestamp, cursor)
		},
		func(record immutablex.Transfer) time.Time { return record.Timestamp },
	)
}

func (o *Orchestrator) sweepOrders(ctx context.Context, collection string) StreamSummary {
	return sweepStream(ctx, o, domain.StreamKey{Kind: domain.KindOrder, Scope: collection}, o.orders,
		func(ctx context.Context, minTimestamp time.Time, cursor string) (*domain.Page[immutablex.Order], error) {
			return o.market.ListOrders(ctx, collection, minTimestamp, cursor)
		},
		func(record immutablex.Order) time.Time { return record.UpdatedTimestamp },
	)
}

func (o *Orchestrator) sweepDeposits(ctx context.Context, collection string) StreamSummary {
	return sweepStream(ctx, o, domain.StreamKey{Kind: domain.KindDeposit, Scope: collection}, o.deposits,
		func(ctx context.Context, minTimestamp time.Time, cursor string) (*domain.Page[immutablex.Deposit], error) {
			return o.market.ListDeposits(ctx, collection, minTimestamp, cursor)
		},
		func(record immutablex.Deposit) time.Time { return record.Timestamp },
	)
}

func (o *Orchestrator) sweepWithdrawals(ctx context.Context, collection string) StreamSummary {
	return sweepStream(ctx, o, domain.StreamKey{Kind: domain.KindWithdrawal, Scope: collection}, o.withdrawals,
		func(ctx context.Context, minTimestamp time.Time, cursor string) (*domain.Page[immutablex.Withdrawal], error) {
			return o.market.ListWithdrawals(ctx, collection, minTimestamp, cursor)
		},
		func(record immutablex.Withdrawal) time.Time { return record.Timestamp },
	)
}

// enrichOrders runs both enrichment passes for a collection. Enrichment
// failures never fail the run; unresolved rows are retried next run.
func (o *Orchestrator) enrichOrders(ctx context.Context, collection string) {
	if _, err := o.enricher.EnrichSettlements(ctx, collection); err != nil {
		logger.ErrorCtx(ctx, err, zap.String("token_address", collection))
	}
	if _, err := o.enricher.EnrichBuyers(ctx, collection); err != nil {
		logger.ErrorCtx(ctx, err, zap.String("token_address", collection))
	}
}

// sweepCoinPrices fetches daily prices for every tracked coin, chunked
// through the throttle policy
func (o *Orchestrator) sweepCoinPrices(ctx context.Context) []StreamSummary {
	summaries := make([]StreamSummary, 0, len(o.config.Coins))

	InChunks(ctx, o.config.Coins, o.config.CoinChunkSize, o.throttle, o.clock,
		func(ctx context.Context, chunk []string) {
			for _, coinID := range chunk {
				summaries = append(summaries, o.sweepCoin(ctx, coinID))
			}
		},
	)

	return summaries
}

// sweepCoin fetches and persists the daily price range for one coin
func (o *Orchestrator) sweepCoin(ctx context.Context, coinID string) StreamSummary {
	key := domain.StreamKey{Kind: domain.KindCoinPrice, Scope: coinID}
	floor := watermarkFloor(ctx, o.coinPrices, key)

	logger.InfoCtx(ctx, "Sweeping coin prices",
		zap.String("stream", key.String()),
		zap.Time("floor", floor),
	)

	summary := StreamSummary{Stream: key.String()}

	prices, err := o.coins.MarketChartRange(ctx, coinID, floor, o.clock.Now())
	if err != nil {
		logger.ErrorCtx(ctx, err, zap.String("stream", key.String()))
		return summary
	}
	if len(prices) == 0 {
		return summary
	}

	summary.Pages = 1
	summary.Records = len(prices)

	persisted, err := o.coinPrices.Persist(ctx, coinID, prices)
	if err != nil {
		logger.ErrorCtx(ctx, err, zap.String("stream", key.String()))
		summary.FailedPages = 1
		return summary
	}
	summary.Persisted = persisted

	maxDay := prices[len(prices)-1].Day
	o.publish(ctx, key, len(prices), &maxDay)

	watermark, err := o.coinPrices.Watermark(ctx, coinID)
	if err != nil {
		logger.ErrorCtx(ctx, err, zap.String("stream", key.String()))
	}
	summary.Watermark = watermark

	return summary
}

// publish sends a market event for a persisted page. Publication is best
// effort; a broker failure never fails the sweep.
func (o *Orchestrator) publish(ctx context.Context, key domain.StreamKey, records int, maxEvent *time.Time) {
	if o.publisher == nil || records == 0 {
		return
	}

	event := &domain.MarketEvent{
		EventID:   ulid.MustNewDefault(o.clock.Now()).String(),
		Kind:      key.Kind,
		Scope:     key.Scope,
		Records:   records,
		MaxEvent:  maxEvent,
		Published: o.clock.Now(),
	}

	if err := o.publisher.PublishEvent(ctx, event); err != nil {
		logger.WarnCtx(ctx, "Failed to publish market event",
			zap.String("stream", key.String()),
			zap.Error(err),
		)
	}
}
