package ingest_test

import (
	"context"
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

const (
	testCollection = "0x67E3ad1902A55074AAdD84d9b335105B2D52b813"
	testWallet     = "0x8ba1f109551bD432803012645Ac136ddd64DBA72"
)

func TestMintSink_Persist(t *testing.T) {
	initTestLogger(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	st := mocks.NewMockStore(ctrl)
	sink := ingest.NewMintSink(st)

	eventAt := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	records := []immutablex.Mint{
		{
			TransactionID: 100,
			Token: immutablex.Token{
				Type: "ERC721",
				Data: immutablex.TokenData{
					TokenID: "7",
					// Lowercased on the wire; the row must be checksummed
					TokenAddress: "0x67e3ad1902a55074aadd84d9b335105b2d52b813",
				},
			},
			User:      testWallet,
			Status:    "success",
			Timestamp: eventAt,
		},
		{
			// Malformed address, must be skipped without failing the page
			TransactionID: 101,
			Token: immutablex.Token{
				Data: immutablex.TokenData{TokenAddress: "not-an-address"},
			},
			User:      testWallet,
			Status:    "success",
			Timestamp: eventAt,
		},
	}

	st.EXPECT().
		UpsertMints(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, rows []schema.Mint) (int64, error) {
			require.Len(t, rows, 1)
			assert.Equal(t, uint64(100), rows[0].TransactionID)
			assert.Equal(t, testCollection, rows[0].TokenAddress)
			assert.Equal(t, "7", rows[0].TokenID)
			assert.Equal(t, testWallet, rows[0].Wallet)
			// Empty quantity on an NFT event means a single token
			assert.True(t, rows[0].Quantity.Equal(decimal.NewFromInt(1)))
			assert.Equal(t, eventAt, rows[0].EventAt)
			assert.NotEmpty(t, rows[0].Raw)
			return 1, nil
		})

	persisted, err := sink.Persist(context.Background(), testCollection, records)
	require.NoError(t, err)
	assert.Equal(t, int64(1), persisted)
}

func TestMintSink_PersistAllMalformed(t *testing.T) {
	initTestLogger(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	st := mocks.NewMockStore(ctrl)
	sink := ingest.NewMintSink(st)

	// No upsert expectation: nothing usable to write
	persisted, err := sink.Persist(context.Background(), testCollection, []immutablex.Mint{
		{TransactionID: 1, User: "bogus"},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(0), persisted)
}

func TestOrderSink_Persist(t *testing.T) {
	initTestLogger(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	st := mocks.NewMockStore(ctrl)
	sink := ingest.NewOrderSink(st)

	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	updated := created.Add(2 * time.Hour)
	amountSold := "1"

	records := []immutablex.Order{
		{
			OrderID: 42,
			Status:  "filled",
			User:    testWallet,
			Sell: immutablex.Token{
				Type: "ERC721",
				Data: immutablex.TokenData{
					TokenID:      "9",
					TokenAddress: testCollection,
				},
			},
			AmountSold:       &amountSold,
			Timestamp:        created,
			UpdatedTimestamp: updated,
		},
	}

	st.EXPECT().
		UpsertOrders(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, rows []schema.Order) (int64, error) {
			require.Len(t, rows, 1)
			row := rows[0]
			assert.Equal(t, uint64(42), row.OrderID)
			assert.Equal(t, schema.OrderStatusFilled, row.Status)
			assert.Equal(t, testWallet, row.WalletFrom)
			assert.Equal(t, "9", row.TokenID)
			require.NotNil(t, row.AmountSold)
			assert.True(t, row.AmountSold.Equal(decimal.NewFromInt(1)))
			assert.Equal(t, updated, row.UpdatedOn)
			// Enrichment-owned fields must start unresolved
			assert.Nil(t, row.WalletTo)
			assert.Nil(t, row.Price)
			assert.Nil(t, row.Currency)
			assert.Nil(t, row.TransactionID)
			return 1, nil
		})

	persisted, err := sink.Persist(context.Background(), testCollection, records)
	require.NoError(t, err)
	assert.Equal(t, int64(1), persisted)
}

func TestTransferSink_Persist(t *testing.T) {
	initTestLogger(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	st := mocks.NewMockStore(ctrl)
	sink := ingest.NewTransferSink(st)

	records := []immutablex.Transfer{
		{
			TransactionID: 200,
			Token: immutablex.Token{
				Data: immutablex.TokenData{
					TokenID:      "3",
					TokenAddress: testCollection,
					Quantity:     "2",
				},
			},
			User:      testWallet,
			Receiver:  testCollection,
			Status:    "success",
			Timestamp: time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC),
		},
	}

	st.EXPECT().
		UpsertTransfers(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, rows []schema.Transfer) (int64, error) {
			require.Len(t, rows, 1)
			assert.Equal(t, testWallet, rows[0].WalletFrom)
			assert.Equal(t, testCollection, rows[0].WalletTo)
			assert.True(t, rows[0].Quantity.Equal(decimal.NewFromInt(2)))
			return 1, nil
		})

	persisted, err := sink.Persist(context.Background(), testCollection, records)
	require.NoError(t, err)
	assert.Equal(t, int64(1), persisted)
}

func TestSink_Watermark(t *testing.T) {
	initTestLogger(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	st := mocks.NewMockStore(ctrl)
	sink := ingest.NewOrderSink(st)

	watermark := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	st.EXPECT().
		Watermark(gomock.Any(), domain.StreamKey{Kind: domain.KindOrder, Scope: testCollection}).
		Return(&watermark, nil)

	got, err := sink.Watermark(context.Background(), testCollection)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, watermark, *got)
}
