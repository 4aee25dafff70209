package store

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/artcadia/market-sync/internal/domain"
	"github.com/artcadia/market-sync/internal/store/schema"
)

type pgStore struct {
	db *gorm.DB
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// ConfigureConnectionPool configures the connection pool settings for a
// GORM database connection. Zero values fall back to defaults:
//   - MaxOpenConns: 20
//   - MaxIdleConns: 5
//   - ConnMaxLifetime: 5 minutes
//   - ConnMaxIdleTime: 10 minutes
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	if maxOpenConns == 0 {
		maxOpenConns = 20
	}
	if maxIdleConns == 0 {
		maxIdleConns = 5
	}
	if connMaxLifetime == 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 10 * time.Minute
	}
	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// calculateSafeBatchSize computes the batch size for bulk inserts that
// stays under PostgreSQL's 65535-parameter limit for the extended
// protocol. Each record consumes one parameter per inserted field, and a
// total headroom covers ON CONFLICT parameters and GORM bookkeeping.
func calculateSafeBatchSize(totalRecords int, fieldsPerRecord int) int {
	const maxParams = 65535
	const totalHeadroom = 1000

	availableParams := maxParams - totalHeadroom
	safeBatchSize := max(availableParams/fieldsPerRecord, 1)

	if safeBatchSize > totalRecords {
		return totalRecords
	}

	return safeBatchSize
}

// UpsertMints inserts a page of mints, ignoring rows whose transaction id already exists
func (s *pgStore) UpsertMints(ctx context.Context, mints []schema.Mint) (int64, error) {
	if len(mints) == 0 {
		return 0, nil
	}

	tx := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "transaction_id"}},
		DoNothing: true,
	}).CreateInBatches(&mints, calculateSafeBatchSize(len(mints), 10))
	if tx.Error != nil {
		return 0, fmt.Errorf("failed to upsert mints: %w", tx.Error)
	}

	return tx.RowsAffected, nil
}

// UpsertTransfers inserts a page of transfers, ignoring rows whose transaction id already exists
func (s *pgStore) UpsertTransfers(ctx context.Context, transfers []schema.Transfer) (int64, error) {
	if len(transfers) == 0 {
		return 0, nil
	}

	tx := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "transaction_id"}},
		DoNothing: true,
	}).CreateInBatches(&transfers, calculateSafeBatchSize(len(transfers), 11))
	if tx.Error != nil {
		return 0, fmt.Errorf("failed to upsert transfers: %w", tx.Error)
	}

	return tx.RowsAffected, nil
}

// UpsertOrders inserts a page of orders. On order id collision only the
// fields the provider keeps mutating are overwritten; immutable identity
// fields and enrichment results are left untouched.
func (s *pgStore) UpsertOrders(ctx context.Context, orders []schema.Order) (int64, error) {
	if len(orders) == 0 {
		return 0, nil
	}

	tx := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "order_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"status", "amount_sold", "updated_on", "updated_at"}),
	}).CreateInBatches(&orders, calculateSafeBatchSize(len(orders), 15))
	if tx.Error != nil {
		return 0, fmt.Errorf("failed to upsert orders: %w", tx.Error)
	}

	return tx.RowsAffected, nil
}

// UpsertDeposits inserts a page of deposits, ignoring rows whose transaction id already exists
func (s *pgStore) UpsertDeposits(ctx context.Context, deposits []schema.Deposit) (int64, error) {
	if len(deposits) == 0 {
		return 0, nil
	}

	tx := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "transaction_id"}},
		DoNothing: true,
	}).CreateInBatches(&deposits, calculateSafeBatchSize(len(deposits), 10))
	if tx.Error != nil {
		return 0, fmt.Errorf("failed to upsert deposits: %w", tx.Error)
	}

	return tx.RowsAffected, nil
}

// UpsertWithdrawals inserts a page of withdrawals, ignoring rows whose transaction id already exists
func (s *pgStore) UpsertWithdrawals(ctx context.Context, withdrawals []schema.Withdrawal) (int64, error) {
	if len(withdrawals) == 0 {
		return 0, nil
	}

	tx := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "transaction_id"}},
		DoNothing: true,
	}).CreateInBatches(&withdrawals, calculateSafeBatchSize(len(withdrawals), 10))
	if tx.Error != nil {
		return 0, fmt.Errorf("failed to upsert withdrawals: %w", tx.Error)
	}

	return tx.RowsAffected, nil
}

// UpsertCoinPrices inserts daily price snapshots. The provider corrects
// historical numbers, so all numeric fields are overwritten on collision.
func (s *pgStore) UpsertCoinPrices(ctx context.Context, prices []schema.CoinPrice) (int64, error) {
	if len(prices) == 0 {
		return 0, nil
	}

	tx := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "coin_id"}, {Name: "day"}},
		DoUpdates: clause.AssignmentColumns([]string{"price_usd", "market_cap_usd", "volume_usd", "updated_at"}),
	}).CreateInBatches(&prices, calculateSafeBatchSize(len(prices), 7))
	if tx.Error != nil {
		return 0, fmt.Errorf("failed to upsert coin prices: %w", tx.Error)
	}

	return tx.RowsAffected, nil
}

// Watermark returns the maximum persisted provider timestamp for the
// stream, or nil if the stream has never been populated. It is computed
// from the sink on every call and never cached: a partially completed
// sweep re-derives a watermark no later than before, which keeps resume
// points crash-consistent.
func (s *pgStore) Watermark(ctx context.Context, key domain.StreamKey) (*time.Time, error) {
	var query *gorm.DB

	switch key.Kind {
	case domain.KindMint:
		query = s.db.WithContext(ctx).Model(&schema.Mint{}).
			Select("max(event_at)").Where("token_address = ?", key.Scope)
	case domain.KindTransfer:
		query = s.db.WithContext(ctx).Model(&schema.Transfer{}).
			Select("max(event_at)").Where("token_address = ?", key.Scope)
	case domain.KindOrder:
		query = s.db.WithContext(ctx).Model(&schema.Order{}).
			Select("max(updated_on)").Where("token_address = ?", key.Scope)
	case domain.KindDeposit:
		query = s.db.WithContext(ctx).Model(&schema.Deposit{}).
			Select("max(event_at)").Where("token_address = ?", key.Scope)
	case domain.KindWithdrawal:
		query = s.db.WithContext(ctx).Model(&schema.Withdrawal{}).
			Select("max(event_at)").Where("token_address = ?", key.Scope)
	case domain.KindCoinPrice:
		query = s.db.WithContext(ctx).Model(&schema.CoinPrice{}).
			Select("max(day)").Where("coin_id = ?", key.Scope)
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownKind, key.Kind)
	}

	var watermark *time.Time
	if err := query.Scan(&watermark).Error; err != nil {
		return nil, fmt.Errorf("failed to get watermark for %s: %w", key, err)
	}

	return watermark, nil
}

// StreamCount returns the number of persisted rows for the stream
func (s *pgStore) StreamCount(ctx context.Context, key domain.StreamKey) (int64, error) {
	var query *gorm.DB

	switch key.Kind {
	case domain.KindMint:
		query = s.db.WithContext(ctx).Model(&schema.Mint{}).Where("token_address = ?", key.Scope)
	case domain.KindTransfer:
		query = s.db.WithContext(ctx).Model(&schema.Transfer{}).Where("token_address = ?", key.Scope)
	case domain.KindOrder:
		query = s.db.WithContext(ctx).Model(&schema.Order{}).Where("token_address = ?", key.Scope)
	case domain.KindDeposit:
		query = s.db.WithContext(ctx).Model(&schema.Deposit{}).Where("token_address = ?", key.Scope)
	case domain.KindWithdrawal:
		query = s.db.WithContext(ctx).Model(&schema.Withdrawal{}).Where("token_address = ?", key.Scope)
	case domain.KindCoinPrice:
		query = s.db.WithContext(ctx).Model(&schema.CoinPrice{}).Where("coin_id = ?", key.Scope)
	default:
		return 0, fmt.Errorf("%w: %q", domain.ErrUnknownKind, key.Kind)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count stream %s: %w", key, err)
	}

	return count, nil
}

// OrdersMissingSettlement returns filled orders whose settlement currency
// or price is still unresolved. The query is idempotent: a resolved order
// never reappears, which makes repeated enrichment passes self-healing.
func (s *pgStore) OrdersMissingSettlement(ctx context.Context, tokenAddress string) ([]schema.Order, error) {
	var orders []schema.Order
	err := s.db.WithContext(ctx).
		Where("token_address = ? AND status = ? AND (currency IS NULL OR price IS NULL)",
			tokenAddress, schema.OrderStatusFilled).
		Order("order_id").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get orders missing settlement: %w", err)
	}

	return orders, nil
}

// TokenIDsMissingBuyer returns the distinct token ids that have filled
// orders without a resolved buyer wallet
func (s *pgStore) TokenIDsMissingBuyer(ctx context.Context, tokenAddress string) ([]string, error) {
	var tokenIDs []string
	err := s.db.WithContext(ctx).
		Model(&schema.Order{}).
		Distinct("token_id").
		Where("token_address = ? AND status = ? AND wallet_to IS NULL",
			tokenAddress, schema.OrderStatusFilled).
		Order("token_id").
		Pluck("token_id", &tokenIDs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get token ids missing buyer: %w", err)
	}

	return tokenIDs, nil
}

// FilledOrdersMissingBuyer returns the filled orders for one token that
// still lack a buyer wallet
func (s *pgStore) FilledOrdersMissingBuyer(ctx context.Context, tokenAddress, tokenID string) ([]schema.Order, error) {
	var orders []schema.Order
	err := s.db.WithContext(ctx).
		Where("token_address = ? AND token_id = ? AND status = ? AND wallet_to IS NULL",
			tokenAddress, tokenID, schema.OrderStatusFilled).
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get filled orders missing buyer: %w", err)
	}

	return orders, nil
}

// UpdateOrderSettlement writes the resolved settlement currency and price for an order
func (s *pgStore) UpdateOrderSettlement(ctx context.Context, orderID uint64, currency string, price decimal.Decimal) error {
	err := s.db.WithContext(ctx).
		Model(&schema.Order{}).
		Where("order_id = ?", orderID).
		Updates(map[string]interface{}{
			"currency": currency,
			"price":    price,
		}).Error
	if err != nil {
		return fmt.Errorf("failed to update order settlement: %w", err)
	}

	return nil
}

// UpdateOrderBuyer writes the resolved buyer wallet and settling transaction id for an order
func (s *pgStore) UpdateOrderBuyer(ctx context.Context, orderID uint64, walletTo string, transactionID uint64) error {
	err := s.db.WithContext(ctx).
		Model(&schema.Order{}).
		Where("order_id = ?", orderID).
		Updates(map[string]interface{}{
			"wallet_to":      walletTo,
			"transaction_id": transactionID,
		}).Error
	if err != nil {
		return fmt.Errorf("failed to update order buyer: %w", err)
	}

	return nil
}
