package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/artcadia/market-sync/internal/domain"
	"github.com/artcadia/market-sync/internal/store/schema"
)

const (
	testCollection      = "0x67E3ad1902A55074AAdD84d9b335105B2D52b813"
	otherCollection     = "0xAcc46a2a555Dc7b4cC1b3E0547aC0e8b7FBf0A5B"
	testSellerWallet    = "0x8ba1f109551bD432803012645Ac136ddd64DBA72"
	testBuyerWallet     = "0xd3CdA913deB6f67967B99D67aCDFa1712C293601"
	testRecipientWallet = "0x52908400098527886E0F7030069857D2E4169EE7"
)

// initializeTestDatabase migrates the marketplace tables into the test database
func initializeTestDatabase(db *gorm.DB) error {
	err := db.AutoMigrate(
		&schema.Mint{},
		&schema.Transfer{},
		&schema.Order{},
		&schema.Deposit{},
		&schema.Withdrawal{},
		&schema.CoinPrice{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	return nil
}

// =============================================================================
// Test Data Builders
// =============================================================================

func buildTestMint(transactionID uint64, eventAt time.Time) schema.Mint {
	return schema.Mint{
		TransactionID: transactionID,
		TokenAddress:  testCollection,
		TokenID:       fmt.Sprintf("%d", transactionID),
		Wallet:        testRecipientWallet,
		Quantity:      decimal.NewFromInt(1),
		Status:        "success",
		EventAt:       eventAt,
		Raw:           datatypes.JSON(fmt.Sprintf(`{"transaction_id":%d}`, transactionID)),
	}
}

func buildTestTransfer(transactionID uint64, eventAt time.Time) schema.Transfer {
	return schema.Transfer{
		TransactionID: transactionID,
		TokenAddress:  testCollection,
		TokenID:       fmt.Sprintf("%d", transactionID),
		WalletFrom:    testSellerWallet,
		WalletTo:      testRecipientWallet,
		Quantity:      decimal.NewFromInt(1),
		Status:        "success",
		EventAt:       eventAt,
		Raw:           datatypes.JSON(fmt.Sprintf(`{"transaction_id":%d}`, transactionID)),
	}
}

func buildTestDeposit(transactionID uint64, eventAt time.Time) schema.Deposit {
	return schema.Deposit{
		TransactionID: transactionID,
		TokenAddress:  testCollection,
		TokenID:       fmt.Sprintf("%d", transactionID),
		Wallet:        testRecipientWallet,
		Quantity:      decimal.NewFromInt(1),
		Status:        "success",
		EventAt:       eventAt,
		Raw:           datatypes.JSON(fmt.Sprintf(`{"transaction_id":%d}`, transactionID)),
	}
}

func buildTestWithdrawal(transactionID uint64, eventAt time.Time) schema.Withdrawal {
	return schema.Withdrawal{
		TransactionID: transactionID,
		TokenAddress:  testCollection,
		TokenID:       fmt.Sprintf("%d", transactionID),
		Wallet:        testRecipientWallet,
		Quantity:      decimal.NewFromInt(1),
		Status:        "success",
		EventAt:       eventAt,
		Raw:           datatypes.JSON(fmt.Sprintf(`{"transaction_id":%d}`, transactionID)),
	}
}

func buildTestOrder(orderID uint64, status schema.OrderStatus, tokenID string, updatedOn time.Time) schema.Order {
	sold := decimal.NewFromInt(0)
	if status == schema.OrderStatusFilled {
		sold = decimal.NewFromInt(1)
	}

	return schema.Order{
		OrderID:      orderID,
		Status:       status,
		WalletFrom:   testSellerWallet,
		TokenAddress: testCollection,
		TokenID:      tokenID,
		AmountSold:   &sold,
		EventAt:      updatedOn.Add(-time.Hour),
		UpdatedOn:    updatedOn,
		Raw:          datatypes.JSON(fmt.Sprintf(`{"order_id":%d}`, orderID)),
	}
}

func buildTestCoinPrice(coinID string, day time.Time, price string) schema.CoinPrice {
	return schema.CoinPrice{
		CoinID:   coinID,
		Day:      day,
		PriceUSD: decimal.RequireFromString(price),
	}
}

// RunStoreTests runs the full store test suite against a Store built by initDB
func RunStoreTests(t *testing.T, initDB func(t *testing.T) Store) {
	t.Run("UpsertMints", func(t *testing.T) { testUpsertMints(t, initDB(t)) })
	t.Run("UpsertImmutableKinds", func(t *testing.T) { testUpsertImmutableKinds(t, initDB(t)) })
	t.Run("UpsertOrders", func(t *testing.T) { testUpsertOrders(t, initDB(t)) })
	t.Run("UpsertCoinPrices", func(t *testing.T) { testUpsertCoinPrices(t, initDB(t)) })
	t.Run("Watermark", func(t *testing.T) { testWatermark(t, initDB(t)) })
	t.Run("StreamCount", func(t *testing.T) { testStreamCount(t, initDB(t)) })
	t.Run("Enrichment", func(t *testing.T) { testEnrichment(t, initDB(t)) })
}

// =============================================================================
// Test: UpsertMints
// =============================================================================

func testUpsertMints(t *testing.T, store Store) {
	ctx := context.Background()
	eventAt := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	page := []schema.Mint{
		buildTestMint(100, eventAt),
		buildTestMint(101, eventAt.Add(time.Minute)),
	}

	t.Run("inserts a fresh page", func(t *testing.T) {
		rows, err := store.UpsertMints(ctx, page)
		require.NoError(t, err)
		assert.Equal(t, int64(2), rows)
	})

	t.Run("re-ingesting the same page affects no rows", func(t *testing.T) {
		replay := []schema.Mint{
			buildTestMint(100, eventAt),
			buildTestMint(101, eventAt.Add(time.Minute)),
		}
		rows, err := store.UpsertMints(ctx, replay)
		require.NoError(t, err)
		assert.Equal(t, int64(0), rows)

		count, err := store.StreamCount(ctx, domain.StreamKey{Kind: domain.KindMint, Scope: testCollection})
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
	})

	t.Run("overlapping page inserts only the new rows", func(t *testing.T) {
		overlap := []schema.Mint{
			buildTestMint(101, eventAt.Add(time.Minute)),
			buildTestMint(102, eventAt.Add(2*time.Minute)),
		}
		rows, err := store.UpsertMints(ctx, overlap)
		require.NoError(t, err)
		assert.Equal(t, int64(1), rows)
	})

	t.Run("empty page is a no-op", func(t *testing.T) {
		rows, err := store.UpsertMints(ctx, nil)
		require.NoError(t, err)
		assert.Equal(t, int64(0), rows)
	})
}

// =============================================================================
// Test: UpsertTransfers / UpsertDeposits / UpsertWithdrawals
// =============================================================================

func testUpsertImmutableKinds(t *testing.T, store Store) {
	ctx := context.Background()
	eventAt := time.Date(2024, 3, 2, 8, 30, 0, 0, time.UTC)

	t.Run("transfers are insert-or-ignore by transaction id", func(t *testing.T) {
		rows, err := store.UpsertTransfers(ctx, []schema.Transfer{buildTestTransfer(200, eventAt)})
		require.NoError(t, err)
		assert.Equal(t, int64(1), rows)

		rows, err = store.UpsertTransfers(ctx, []schema.Transfer{buildTestTransfer(200, eventAt)})
		require.NoError(t, err)
		assert.Equal(t, int64(0), rows)
	})

	t.Run("deposits are insert-or-ignore by transaction id", func(t *testing.T) {
		rows, err := store.UpsertDeposits(ctx, []schema.Deposit{buildTestDeposit(300, eventAt)})
		require.NoError(t, err)
		assert.Equal(t, int64(1), rows)

		rows, err = store.UpsertDeposits(ctx, []schema.Deposit{buildTestDeposit(300, eventAt)})
		require.NoError(t, err)
		assert.Equal(t, int64(0), rows)
	})

	t.Run("withdrawals are insert-or-ignore by transaction id", func(t *testing.T) {
		rows, err := store.UpsertWithdrawals(ctx, []schema.Withdrawal{buildTestWithdrawal(400, eventAt)})
		require.NoError(t, err)
		assert.Equal(t, int64(1), rows)

		rows, err = store.UpsertWithdrawals(ctx, []schema.Withdrawal{buildTestWithdrawal(400, eventAt)})
		require.NoError(t, err)
		assert.Equal(t, int64(0), rows)
	})
}

// =============================================================================
// Test: UpsertOrders
// =============================================================================

func testUpsertOrders(t *testing.T, store Store) {
	ctx := context.Background()
	createdOn := time.Date(2024, 3, 3, 10, 0, 0, 0, time.UTC)

	order := buildTestOrder(500, schema.OrderStatusActive, "7", createdOn)
	rows, err := store.UpsertOrders(ctx, []schema.Order{order})
	require.NoError(t, err)
	require.Equal(t, int64(1), rows)

	// Enrichment results live on the row before the next sweep replays it
	require.NoError(t, store.UpdateOrderSettlement(ctx, 500, "ETH", decimal.RequireFromString("1.5")))
	require.NoError(t, store.UpdateOrderBuyer(ctx, 500, testBuyerWallet, 9001))

	t.Run("collision updates the provider-mutable fields", func(t *testing.T) {
		settledOn := createdOn.Add(2 * time.Hour)
		update := buildTestOrder(500, schema.OrderStatusFilled, "7", settledOn)
		// A colliding row never resets the maker; prove the update path ignores it
		update.WalletFrom = testRecipientWallet

		_, err := store.UpsertOrders(ctx, []schema.Order{update})
		require.NoError(t, err)

		orders, err := store.FilledOrdersMissingBuyer(ctx, testCollection, "7")
		require.NoError(t, err)
		assert.Empty(t, orders, "enriched order must not reappear as a buyer candidate")

		key := domain.StreamKey{Kind: domain.KindOrder, Scope: testCollection}
		watermark, err := store.Watermark(ctx, key)
		require.NoError(t, err)
		require.NotNil(t, watermark)
		assert.True(t, settledOn.Equal(*watermark), "watermark must follow the updated provider timestamp")

		count, err := store.StreamCount(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count, "collision must not create a second row")
	})

	t.Run("collision preserves identity and enrichment fields", func(t *testing.T) {
		var persisted schema.Order
		pg, ok := store.(*pgStore)
		require.True(t, ok)
		require.NoError(t, pg.db.Where("order_id = ?", uint64(500)).First(&persisted).Error)

		assert.Equal(t, schema.OrderStatusFilled, persisted.Status)
		assert.Equal(t, testSellerWallet, persisted.WalletFrom)
		require.NotNil(t, persisted.Currency)
		assert.Equal(t, "ETH", *persisted.Currency)
		require.NotNil(t, persisted.Price)
		assert.True(t, persisted.Price.Equal(decimal.RequireFromString("1.5")))
		require.NotNil(t, persisted.WalletTo)
		assert.Equal(t, testBuyerWallet, *persisted.WalletTo)
		require.NotNil(t, persisted.TransactionID)
		assert.Equal(t, uint64(9001), *persisted.TransactionID)
	})
}

// =============================================================================
// Test: UpsertCoinPrices
// =============================================================================

func testUpsertCoinPrices(t *testing.T, store Store) {
	ctx := context.Background()
	day := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)

	rows, err := store.UpsertCoinPrices(ctx, []schema.CoinPrice{buildTestCoinPrice("ethereum", day, "3400.12")})
	require.NoError(t, err)
	require.Equal(t, int64(1), rows)

	t.Run("same day is overwritten with corrected numbers", func(t *testing.T) {
		_, err := store.UpsertCoinPrices(ctx, []schema.CoinPrice{buildTestCoinPrice("ethereum", day, "3391.07")})
		require.NoError(t, err)

		key := domain.StreamKey{Kind: domain.KindCoinPrice, Scope: "ethereum"}
		count, err := store.StreamCount(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)

		var persisted schema.CoinPrice
		pg, ok := store.(*pgStore)
		require.True(t, ok)
		require.NoError(t, pg.db.Where("coin_id = ? AND day = ?", "ethereum", day).First(&persisted).Error)
		assert.True(t, persisted.PriceUSD.Equal(decimal.RequireFromString("3391.07")))
	})

	t.Run("coins are watermarked independently", func(t *testing.T) {
		_, err := store.UpsertCoinPrices(ctx, []schema.CoinPrice{buildTestCoinPrice("usd-coin", day.AddDate(0, 0, 3), "1.0")})
		require.NoError(t, err)

		watermark, err := store.Watermark(ctx, domain.StreamKey{Kind: domain.KindCoinPrice, Scope: "ethereum"})
		require.NoError(t, err)
		require.NotNil(t, watermark)
		assert.True(t, day.Equal(*watermark))
	})
}

// =============================================================================
// Test: Watermark
// =============================================================================

func testWatermark(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("fresh stream has no watermark", func(t *testing.T) {
		for _, kind := range []domain.RecordKind{
			domain.KindMint,
			domain.KindTransfer,
			domain.KindOrder,
			domain.KindDeposit,
			domain.KindWithdrawal,
		} {
			watermark, err := store.Watermark(ctx, domain.StreamKey{Kind: kind, Scope: testCollection})
			require.NoError(t, err)
			assert.Nil(t, watermark, "kind %s", kind)
		}

		watermark, err := store.Watermark(ctx, domain.StreamKey{Kind: domain.KindCoinPrice, Scope: "ethereum"})
		require.NoError(t, err)
		assert.Nil(t, watermark)
	})

	t.Run("watermark is the maximum event timestamp in scope", func(t *testing.T) {
		older := time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC)
		newer := older.Add(6 * time.Hour)

		_, err := store.UpsertMints(ctx, []schema.Mint{
			buildTestMint(600, newer),
			buildTestMint(601, older),
		})
		require.NoError(t, err)

		// A newer row in another collection must not move this scope's watermark
		foreign := buildTestMint(602, newer.Add(24*time.Hour))
		foreign.TokenAddress = otherCollection
		_, err = store.UpsertMints(ctx, []schema.Mint{foreign})
		require.NoError(t, err)

		watermark, err := store.Watermark(ctx, domain.StreamKey{Kind: domain.KindMint, Scope: testCollection})
		require.NoError(t, err)
		require.NotNil(t, watermark)
		assert.True(t, newer.Equal(*watermark))
	})

	t.Run("unknown kind is rejected", func(t *testing.T) {
		_, err := store.Watermark(ctx, domain.StreamKey{Kind: "listing", Scope: testCollection})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrUnknownKind)
	})
}

// =============================================================================
// Test: StreamCount
// =============================================================================

func testStreamCount(t *testing.T, store Store) {
	ctx := context.Background()
	eventAt := time.Date(2024, 3, 6, 15, 0, 0, 0, time.UTC)

	_, err := store.UpsertTransfers(ctx, []schema.Transfer{
		buildTestTransfer(700, eventAt),
		buildTestTransfer(701, eventAt.Add(time.Minute)),
	})
	require.NoError(t, err)

	foreign := buildTestTransfer(702, eventAt)
	foreign.TokenAddress = otherCollection
	_, err = store.UpsertTransfers(ctx, []schema.Transfer{foreign})
	require.NoError(t, err)

	count, err := store.StreamCount(ctx, domain.StreamKey{Kind: domain.KindTransfer, Scope: testCollection})
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	count, err = store.StreamCount(ctx, domain.StreamKey{Kind: domain.KindTransfer, Scope: otherCollection})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	_, err = store.StreamCount(ctx, domain.StreamKey{Kind: "listing", Scope: testCollection})
	assert.ErrorIs(t, err, domain.ErrUnknownKind)
}

// =============================================================================
// Test: Enrichment queries
// =============================================================================

func testEnrichment(t *testing.T, store Store) {
	ctx := context.Background()
	updatedOn := time.Date(2024, 3, 7, 11, 0, 0, 0, time.UTC)

	// Two filled orders on token 7, one filled on token 9, one still active
	_, err := store.UpsertOrders(ctx, []schema.Order{
		buildTestOrder(800, schema.OrderStatusFilled, "7", updatedOn),
		buildTestOrder(801, schema.OrderStatusFilled, "7", updatedOn.Add(time.Minute)),
		buildTestOrder(802, schema.OrderStatusFilled, "9", updatedOn.Add(2*time.Minute)),
		buildTestOrder(803, schema.OrderStatusActive, "9", updatedOn.Add(3*time.Minute)),
	})
	require.NoError(t, err)

	t.Run("settlement candidates are filled orders without currency or price", func(t *testing.T) {
		orders, err := store.OrdersMissingSettlement(ctx, testCollection)
		require.NoError(t, err)
		require.Len(t, orders, 3)
		assert.Equal(t, uint64(800), orders[0].OrderID)
		assert.Equal(t, uint64(801), orders[1].OrderID)
		assert.Equal(t, uint64(802), orders[2].OrderID)
	})

	t.Run("settlement resolution converges", func(t *testing.T) {
		require.NoError(t, store.UpdateOrderSettlement(ctx, 800, "ETH", decimal.RequireFromString("0.25")))
		require.NoError(t, store.UpdateOrderSettlement(ctx, 801, "USDC", decimal.RequireFromString("850")))
		require.NoError(t, store.UpdateOrderSettlement(ctx, 802, "ETH", decimal.RequireFromString("0.4")))

		orders, err := store.OrdersMissingSettlement(ctx, testCollection)
		require.NoError(t, err)
		assert.Empty(t, orders)
	})

	t.Run("buyer candidates group by token id", func(t *testing.T) {
		tokenIDs, err := store.TokenIDsMissingBuyer(ctx, testCollection)
		require.NoError(t, err)
		assert.Equal(t, []string{"7", "9"}, tokenIDs)

		orders, err := store.FilledOrdersMissingBuyer(ctx, testCollection, "7")
		require.NoError(t, err)
		assert.Len(t, orders, 2)
	})

	t.Run("buyer resolution converges per order", func(t *testing.T) {
		require.NoError(t, store.UpdateOrderBuyer(ctx, 800, testBuyerWallet, 9100))
		require.NoError(t, store.UpdateOrderBuyer(ctx, 801, testBuyerWallet, 9101))

		tokenIDs, err := store.TokenIDsMissingBuyer(ctx, testCollection)
		require.NoError(t, err)
		assert.Equal(t, []string{"9"}, tokenIDs)

		require.NoError(t, store.UpdateOrderBuyer(ctx, 802, testBuyerWallet, 9102))

		tokenIDs, err = store.TokenIDsMissingBuyer(ctx, testCollection)
		require.NoError(t, err)
		assert.Empty(t, tokenIDs)
	})
}
