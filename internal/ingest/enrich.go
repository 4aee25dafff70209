package ingest

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/alitto/pond/v2"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/artcadia/market-sync/internal/domain"
	"github.com/artcadia/market-sync/internal/logger"
	"github.com/artcadia/market-sync/internal/providers/immutablex"
	"github.com/artcadia/market-sync/internal/store"
)

const (
	// DEFAULT_SETTLEMENT_WORKERS is the worker pool size for settlement
	// lookups, which are one cheap call per order
	DEFAULT_SETTLEMENT_WORKERS = 45

	// DEFAULT_BUYER_WORKERS is the worker pool size for buyer resolution,
	// which paginates the trade listing per token and is kept small to
	// stay under the provider's rate limits
	DEFAULT_BUYER_WORKERS = 3
)

// EnricherConfig holds worker pool sizes for the enrichment passes
type EnricherConfig struct {
	SettlementWorkers int
	BuyerWorkers      int
}

// EnrichResult summarizes one enrichment pass
type EnrichResult struct {
	// Candidates is the number of rows selected for enrichment
	Candidates int
	// Resolved is the number of rows whose missing fields were written
	Resolved int
	// Failed is the number of rows that could not be resolved this pass
	Failed int
}

// OrderEnricher fills in the order fields the listing endpoint does not
// return. Settlement currency and price come from the single-order
// endpoint directly; the buyer wallet is only reachable transitively, by
// listing the token's trades and dereferencing the counterparty order.
// Rows that fail are logged and left unresolved for the next run.
type OrderEnricher struct {
	config EnricherConfig
	store  store.Store
	market immutablex.Client
}

// NewOrderEnricher creates an order enricher with defaulted pool sizes
func NewOrderEnricher(config EnricherConfig, st store.Store, market immutablex.Client) *OrderEnricher {
	if config.SettlementWorkers <= 0 {
		config.SettlementWorkers = DEFAULT_SETTLEMENT_WORKERS
	}
	if config.BuyerWorkers <= 0 {
		config.BuyerWorkers = DEFAULT_BUYER_WORKERS
	}

	return &OrderEnricher{
		config: config,
		store:  st,
		market: market,
	}
}

// EnrichSettlements resolves the settlement currency and unit price of
// every filled order still missing them, fanning the single-order lookups
// out over a bounded worker pool.
func (e *OrderEnricher) EnrichSettlements(ctx context.Context, tokenAddress string) (EnrichResult, error) {
	orders, err := e.store.OrdersMissingSettlement(ctx, tokenAddress)
	if err != nil {
		return EnrichResult{}, fmt.Errorf("failed to load orders missing settlement: %w", err)
	}

	result := EnrichResult{Candidates: len(orders)}
	if len(orders) == 0 {
		return result, nil
	}

	logger.InfoCtx(ctx, "Enriching order settlements",
		zap.String("token_address", tokenAddress),
		zap.Int("candidates", len(orders)),
		zap.Int("workers", e.config.SettlementWorkers),
	)

	var resolved, failed atomic.Int32

	pool := pond.NewPool(e.config.SettlementWorkers, pond.WithContext(ctx))
	for _, order := range orders {
		pool.Submit(func() {
			full, err := e.market.GetOrder(ctx, order.OrderID)
			if err != nil {
				logger.ErrorCtx(ctx, err, zap.Uint64("order_id", order.OrderID))
				failed.Add(1)
				return
			}

			currency, price, err := settlementOf(full)
			if err != nil {
				logger.WarnCtx(ctx, "Order has no usable settlement detail",
					zap.Uint64("order_id", order.OrderID),
					zap.Error(err),
				)
				failed.Add(1)
				return
			}

			if err := e.store.UpdateOrderSettlement(ctx, order.OrderID, currency, price); err != nil {
				logger.ErrorCtx(ctx, err, zap.Uint64("order_id", order.OrderID))
				failed.Add(1)
				return
			}
			resolved.Add(1)
		})
	}
	pool.StopAndWait()

	result.Resolved = int(resolved.Load())
	result.Failed = int(failed.Load())

	logger.InfoCtx(ctx, "Settlement enrichment completed",
		zap.String("token_address", tokenAddress),
		zap.Int("candidates", result.Candidates),
		zap.Int("resolved", result.Resolved),
		zap.Int("failed", result.Failed),
	)

	return result, nil
}

// EnrichBuyers resolves the buyer wallet and settling transaction id of
// every filled order still missing them. The provider exposes no direct
// order-to-buyer link, so resolution walks the trade listing per token:
// a trade matching one of our sell orders names the counterparty buy
// order, and that order's maker is the buyer.
func (e *OrderEnricher) EnrichBuyers(ctx context.Context, tokenAddress string) (EnrichResult, error) {
	tokenIDs, err := e.store.TokenIDsMissingBuyer(ctx, tokenAddress)
	if err != nil {
		return EnrichResult{}, fmt.Errorf("failed to load token ids missing buyer: %w", err)
	}

	if len(tokenIDs) == 0 {
		return EnrichResult{}, nil
	}

	logger.InfoCtx(ctx, "Enriching order buyers",
		zap.String("token_address", tokenAddress),
		zap.Int("tokens", len(tokenIDs)),
		zap.Int("workers", e.config.BuyerWorkers),
	)

	var candidates, resolved, failed atomic.Int32

	pool := pond.NewPool(e.config.BuyerWorkers, pond.WithContext(ctx))
	for _, tokenID := range tokenIDs {
		pool.Submit(func() {
			e.resolveTokenBuyers(ctx, tokenAddress, tokenID, &candidates, &resolved, &failed)
		})
	}
	pool.StopAndWait()

	result := EnrichResult{
		Candidates: int(candidates.Load()),
		Resolved:   int(resolved.Load()),
		Failed:     int(failed.Load()),
	}

	logger.InfoCtx(ctx, "Buyer enrichment completed",
		zap.String("token_address", tokenAddress),
		zap.Int("candidates", result.Candidates),
		zap.Int("resolved", result.Resolved),
		zap.Int("failed", result.Failed),
	)

	return result, nil
}

// resolveTokenBuyers resolves the pending buyers of a single token by
// sweeping its trade listing
func (e *OrderEnricher) resolveTokenBuyers(ctx context.Context, tokenAddress, tokenID string, candidates, resolved, failed *atomic.Int32) {
	orders, err := e.store.FilledOrdersMissingBuyer(ctx, tokenAddress, tokenID)
	if err != nil {
		logger.ErrorCtx(ctx, err,
			zap.String("token_address", tokenAddress),
			zap.String("token_id", tokenID),
		)
		return
	}
	if len(orders) == 0 {
		return
	}
	candidates.Add(int32(len(orders)))

	pending := make(map[uint64]struct{}, len(orders))
	for _, order := range orders {
		pending[order.OrderID] = struct{}{}
	}

	stream := fmt.Sprintf("trades:%s/%s", tokenAddress, tokenID)

	fetch := func(ctx context.Context, cursor string) (*domain.Page[immutablex.Trade], error) {
		// All pending orders resolved, no need to keep paginating
		if len(pending) == 0 {
			return &domain.Page[immutablex.Trade]{}, nil
		}
		return e.market.ListTrades(ctx, tokenAddress, tokenID, cursor)
	}

	handle := func(ctx context.Context, page *domain.Page[immutablex.Trade]) error {
		for _, trade := range page.Records {
			if _, ok := pending[trade.PartyA.OrderID]; !ok {
				continue
			}

			buyOrder, err := e.market.GetOrder(ctx, trade.PartyB.OrderID)
			if err != nil {
				logger.ErrorCtx(ctx, err,
					zap.Uint64("order_id", trade.PartyA.OrderID),
					zap.Uint64("buy_order_id", trade.PartyB.OrderID),
				)
				failed.Add(1)
				continue
			}

			buyer, err := domain.NormalizeAddress(buyOrder.User)
			if err != nil {
				logger.WarnCtx(ctx, "Buy order has no valid maker address",
					zap.Uint64("buy_order_id", trade.PartyB.OrderID),
					zap.Error(err),
				)
				failed.Add(1)
				continue
			}

			if err := e.store.UpdateOrderBuyer(ctx, trade.PartyA.OrderID, buyer, trade.TransactionID); err != nil {
				logger.ErrorCtx(ctx, err, zap.Uint64("order_id", trade.PartyA.OrderID))
				failed.Add(1)
				continue
			}

			delete(pending, trade.PartyA.OrderID)
			resolved.Add(1)
		}
		return nil
	}

	SweepPages(ctx, stream, fetch, handle)

	if len(pending) > 0 {
		logger.WarnCtx(ctx, "Some orders remain without a buyer after trade sweep",
			zap.String("token_address", tokenAddress),
			zap.String("token_id", tokenID),
			zap.Int("unresolved", len(pending)),
		)
	}
}

// settlementOf derives the settlement currency and unit price from a full
// order document. The buy side carries the raw integer quantity and its
// decimals; the unit price is the quantity shifted down by decimals.
func settlementOf(order *immutablex.Order) (string, decimal.Decimal, error) {
	buy := order.Buy

	currency := buy.Data.Symbol
	if currency == "" {
		if buy.Type != "ETH" {
			return "", decimal.Zero, fmt.Errorf("order %d: missing settlement symbol", order.OrderID)
		}
		currency = "ETH"
	}

	quantity, err := decimal.NewFromString(buy.Data.Quantity)
	if err != nil {
		return "", decimal.Zero, fmt.Errorf("order %d: invalid settlement quantity: %w", order.OrderID, err)
	}

	return currency, quantity.Shift(int32(-buy.Data.Decimals)), nil
}
