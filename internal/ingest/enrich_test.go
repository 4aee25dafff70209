package ingest_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artcadia/market-sync/internal/domain"
	"github.com/artcadia/market-sync/internal/ingest"
	"github.com/artcadia/market-sync/internal/mocks"
	"github.com/artcadia/market-sync/internal/providers/immutablex"
	"github.com/artcadia/market-sync/internal/store/schema"
)

type enricherMocks struct {
	ctrl     *gomock.Controller
	store    *mocks.MockStore
	market   *mocks.MockMarketClient
	enricher *ingest.OrderEnricher
}

func setupEnricher(t *testing.T) *enricherMocks {
	initTestLogger(t)
	ctrl := gomock.NewController(t)

	em := &enricherMocks{
		ctrl:   ctrl,
		store:  mocks.NewMockStore(ctrl),
		market: mocks.NewMockMarketClient(ctrl),
	}
	em.enricher = ingest.NewOrderEnricher(ingest.EnricherConfig{
		SettlementWorkers: 2,
		BuyerWorkers:      1,
	}, em.store, em.market)

	return em
}

func TestOrderEnricher_EnrichSettlements(t *testing.T) {
	em := setupEnricher(t)
	defer em.ctrl.Finish()

	em.store.EXPECT().
		OrdersMissingSettlement(gomock.Any(), testCollection).
		Return([]schema.Order{{OrderID: 10}, {OrderID: 11}}, nil)

	// Order 10 settled in 1.5 ETH: raw buy quantity shifted by decimals
	em.market.EXPECT().
		GetOrder(gomock.Any(), uint64(10)).
		Return(&immutablex.Order{
			OrderID: 10,
			Buy: immutablex.Token{
				Type: "ETH",
				Data: immutablex.TokenData{
					Quantity: "1500000000000000000",
					Decimals: 18,
				},
			},
		}, nil)
	em.store.EXPECT().
		UpdateOrderSettlement(gomock.Any(), uint64(10), "ETH", gomock.Any()).
		DoAndReturn(func(ctx context.Context, orderID uint64, currency string, price decimal.Decimal) error {
			assert.True(t, price.Equal(decimal.RequireFromString("1.5")), "price %s", price)
			return nil
		})

	// Order 11 lookup fails; it stays unresolved for the next run
	em.market.EXPECT().
		GetOrder(gomock.Any(), uint64(11)).
		Return(nil, errors.New("provider unavailable"))

	result, err := em.enricher.EnrichSettlements(context.Background(), testCollection)
	require.NoError(t, err)
	assert.Equal(t, ingest.EnrichResult{Candidates: 2, Resolved: 1, Failed: 1}, result)
}

func TestOrderEnricher_EnrichSettlements_ERC20Symbol(t *testing.T) {
	em := setupEnricher(t)
	defer em.ctrl.Finish()

	em.store.EXPECT().
		OrdersMissingSettlement(gomock.Any(), testCollection).
		Return([]schema.Order{{OrderID: 20}}, nil)

	em.market.EXPECT().
		GetOrder(gomock.Any(), uint64(20)).
		Return(&immutablex.Order{
			OrderID: 20,
			Buy: immutablex.Token{
				Type: "ERC20",
				Data: immutablex.TokenData{
					Quantity: "2500000",
					Decimals: 6,
					Symbol:   "USDC",
				},
			},
		}, nil)
	em.store.EXPECT().
		UpdateOrderSettlement(gomock.Any(), uint64(20), "USDC", gomock.Any()).
		DoAndReturn(func(ctx context.Context, orderID uint64, currency string, price decimal.Decimal) error {
			assert.True(t, price.Equal(decimal.RequireFromString("2.5")), "price %s", price)
			return nil
		})

	result, err := em.enricher.EnrichSettlements(context.Background(), testCollection)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Resolved)
}

func TestOrderEnricher_EnrichSettlements_BoundedConcurrency(t *testing.T) {
	em := setupEnricher(t)
	defer em.ctrl.Finish()

	candidates := make([]schema.Order, 6)
	for i := range candidates {
		candidates[i] = schema.Order{OrderID: uint64(30 + i)}
	}
	em.store.EXPECT().
		OrdersMissingSettlement(gomock.Any(), testCollection).
		Return(candidates, nil)

	var inFlight, peak atomic.Int32
	em.market.EXPECT().
		GetOrder(gomock.Any(), gomock.Any()).
		Times(len(candidates)).
		DoAndReturn(func(ctx context.Context, orderID uint64) (*immutablex.Order, error) {
			current := inFlight.Add(1)
			for {
				seen := peak.Load()
				if current <= seen || peak.CompareAndSwap(seen, current) {
					break
				}
			}
			// Hold the worker so queued lookups would pile up if the pool leaked
			time.Sleep(20 * time.Millisecond)
			inFlight.Add(-1)
			return nil, errors.New("provider unavailable")
		})

	result, err := em.enricher.EnrichSettlements(context.Background(), testCollection)
	require.NoError(t, err)
	assert.Equal(t, len(candidates), result.Failed)
	assert.LessOrEqual(t, peak.Load(), int32(2),
		"in-flight lookups must never exceed the configured pool size")
}

func TestOrderEnricher_EnrichSettlements_NoCandidates(t *testing.T) {
	em := setupEnricher(t)
	defer em.ctrl.Finish()

	em.store.EXPECT().
		OrdersMissingSettlement(gomock.Any(), testCollection).
		Return(nil, nil)

	result, err := em.enricher.EnrichSettlements(context.Background(), testCollection)
	require.NoError(t, err)
	assert.Equal(t, ingest.EnrichResult{}, result)
}

func TestOrderEnricher_EnrichSettlements_StoreError(t *testing.T) {
	em := setupEnricher(t)
	defer em.ctrl.Finish()

	em.store.EXPECT().
		OrdersMissingSettlement(gomock.Any(), testCollection).
		Return(nil, errors.New("connection refused"))

	_, err := em.enricher.EnrichSettlements(context.Background(), testCollection)
	assert.Error(t, err)
}

func TestOrderEnricher_EnrichBuyers(t *testing.T) {
	em := setupEnricher(t)
	defer em.ctrl.Finish()

	em.store.EXPECT().
		TokenIDsMissingBuyer(gomock.Any(), testCollection).
		Return([]string{"7"}, nil)
	em.store.EXPECT().
		FilledOrdersMissingBuyer(gomock.Any(), testCollection, "7").
		Return([]schema.Order{{OrderID: 10, TokenID: "7"}}, nil)

	// The trade listing names our sell order as party A; the buyer is
	// only reachable through the party B order's maker
	em.market.EXPECT().
		ListTrades(gomock.Any(), testCollection, "7", "").
		Return(&domain.Page[immutablex.Trade]{
			Records: []immutablex.Trade{
				{
					TransactionID: 700,
					PartyA:        immutablex.TradeSide{OrderID: 99},
					PartyB:        immutablex.TradeSide{OrderID: 50},
				},
				{
					TransactionID: 777,
					PartyA:        immutablex.TradeSide{OrderID: 10},
					PartyB:        immutablex.TradeSide{OrderID: 55},
				},
			},
		}, nil)

	em.market.EXPECT().
		GetOrder(gomock.Any(), uint64(55)).
		Return(&immutablex.Order{
			OrderID: 55,
			User:    "0x8ba1f109551bd432803012645ac136ddd64dba72",
		}, nil)

	em.store.EXPECT().
		UpdateOrderBuyer(gomock.Any(), uint64(10), testWallet, uint64(777)).
		Return(nil)

	result, err := em.enricher.EnrichBuyers(context.Background(), testCollection)
	require.NoError(t, err)
	assert.Equal(t, ingest.EnrichResult{Candidates: 1, Resolved: 1, Failed: 0}, result)
}

func TestOrderEnricher_EnrichBuyers_NoTokens(t *testing.T) {
	em := setupEnricher(t)
	defer em.ctrl.Finish()

	em.store.EXPECT().
		TokenIDsMissingBuyer(gomock.Any(), testCollection).
		Return(nil, nil)

	result, err := em.enricher.EnrichBuyers(context.Background(), testCollection)
	require.NoError(t, err)
	assert.Equal(t, ingest.EnrichResult{}, result)
}

func TestOrderEnricher_EnrichBuyers_BuyOrderLookupFails(t *testing.T) {
	em := setupEnricher(t)
	defer em.ctrl.Finish()

	em.store.EXPECT().
		TokenIDsMissingBuyer(gomock.Any(), testCollection).
		Return([]string{"7"}, nil)
	em.store.EXPECT().
		FilledOrdersMissingBuyer(gomock.Any(), testCollection, "7").
		Return([]schema.Order{{OrderID: 10, TokenID: "7"}}, nil)

	em.market.EXPECT().
		ListTrades(gomock.Any(), testCollection, "7", "").
		Return(&domain.Page[immutablex.Trade]{
			Records: []immutablex.Trade{
				{
					TransactionID: 777,
					PartyA:        immutablex.TradeSide{OrderID: 10},
					PartyB:        immutablex.TradeSide{OrderID: 55},
				},
			},
		}, nil)
	em.market.EXPECT().
		GetOrder(gomock.Any(), uint64(55)).
		Return(nil, errors.New("provider unavailable"))

	result, err := em.enricher.EnrichBuyers(context.Background(), testCollection)
	require.NoError(t, err)
	assert.Equal(t, ingest.EnrichResult{Candidates: 1, Resolved: 0, Failed: 1}, result)
}
