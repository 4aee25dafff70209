package store

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/artcadia/market-sync/internal/domain"
	"github.com/artcadia/market-sync/internal/store/schema"
)

// Store defines the interface for database operations
//
//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore
type Store interface {
	// UpsertMints inserts a page of mints, ignoring rows whose transaction id already exists
	UpsertMints(ctx context.Context, mints []schema.Mint) (int64, error)
	// UpsertTransfers inserts a page of transfers, ignoring rows whose transaction id already exists
	UpsertTransfers(ctx context.Context, transfers []schema.Transfer) (int64, error)
	// UpsertOrders inserts a page of orders, updating mutable fields on order id collision
	UpsertOrders(ctx context.Context, orders []schema.Order) (int64, error)
	// UpsertDeposits inserts a page of deposits, ignoring rows whose transaction id already exists
	UpsertDeposits(ctx context.Context, deposits []schema.Deposit) (int64, error)
	// UpsertWithdrawals inserts a page of withdrawals, ignoring rows whose transaction id already exists
	UpsertWithdrawals(ctx context.Context, withdrawals []schema.Withdrawal) (int64, error)
	// UpsertCoinPrices inserts daily price snapshots, updating all numeric fields on (coin, day) collision
	UpsertCoinPrices(ctx context.Context, prices []schema.CoinPrice) (int64, error)

	// Watermark returns the maximum persisted provider timestamp for the
	// stream, or nil if the stream has never been populated
	Watermark(ctx context.Context, key domain.StreamKey) (*time.Time, error)
	// StreamCount returns the number of persisted rows for the stream
	StreamCount(ctx context.Context, key domain.StreamKey) (int64, error)

	// OrdersMissingSettlement returns filled orders whose settlement currency or price is still unresolved
	OrdersMissingSettlement(ctx context.Context, tokenAddress string) ([]schema.Order, error)
	// TokenIDsMissingBuyer returns the distinct token ids that have filled orders without a resolved buyer
	TokenIDsMissingBuyer(ctx context.Context, tokenAddress string) ([]string, error)
	// FilledOrdersMissingBuyer returns the filled orders for one token that still lack a buyer wallet
	FilledOrdersMissingBuyer(ctx context.Context, tokenAddress, tokenID string) ([]schema.Order, error)
	// UpdateOrderSettlement writes the resolved settlement currency and price for an order
	UpdateOrderSettlement(ctx context.Context, orderID uint64, currency string, price decimal.Decimal) error
	// UpdateOrderBuyer writes the resolved buyer wallet and settling transaction id for an order
	UpdateOrderBuyer(ctx context.Context, orderID uint64, walletTo string, transactionID uint64) error
}
