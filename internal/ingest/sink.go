package ingest

import (
	"context"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/artcadia/market-sync/internal/domain"
	"github.com/artcadia/market-sync/internal/logger"
	"github.com/artcadia/market-sync/internal/providers/coingecko"
	"github.com/artcadia/market-sync/internal/providers/immutablex"
	"github.com/artcadia/market-sync/internal/store"
	"github.com/artcadia/market-sync/internal/store/schema"
)

// Sink persists pages of one record kind and reports the stream's
// watermark. Each kind has exactly one sink; the closed set of kinds is
// mirrored by the constructors below. A malformed record is logged and
// skipped so one bad row never blocks a page.
type Sink[T any] interface {
	// Persist upserts one page of records for the given scope and returns
	// the number of rows actually written
	Persist(ctx context.Context, scope string, records []T) (int64, error)
	// Watermark returns the maximum persisted provider timestamp for the
	// scope, or nil if nothing has been persisted yet
	Watermark(ctx context.Context, scope string) (*time.Time, error)
}

type mintSink struct{ store store.Store }

// NewMintSink creates the sink for mint events
func NewMintSink(st store.Store) Sink[immutablex.Mint] {
	return &mintSink{store: st}
}

func (s *mintSink) Persist(ctx context.Context, scope string, records []immutablex.Mint) (int64, error) {
	rows := make([]schema.Mint, 0, len(records))
	for _, record := range records {
		row, err := mintRow(record)
		if err != nil {
			logger.WarnCtx(ctx, "Skipping malformed mint",
				zap.Uint64("transaction_id", record.TransactionID),
				zap.Error(err),
			)
			continue
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return s.store.UpsertMints(ctx, rows)
}

func (s *mintSink) Watermark(ctx context.Context, scope string) (*time.Time, error) {
	return s.store.Watermark(ctx, domain.StreamKey{Kind: domain.KindMint, Scope: scope})
}

type transferSink struct{ store store.Store }

// NewTransferSink creates the sink for transfer events
func NewTransferSink(st store.Store) Sink[immutablex.Transfer] {
	return &transferSink{store: st}
}

func (s *transferSink) Persist(ctx context.Context, scope string, records []immutablex.Transfer) (int64, error) {
	rows := make([]schema.Transfer, 0, len(records))
	for _, record := range records {
		row, err := transferRow(record)
		if err != nil {
			logger.WarnCtx(ctx, "Skipping malformed transfer",
				zap.Uint64("transaction_id", record.TransactionID),
				zap.Error(err),
			)
			continue
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return s.store.UpsertTransfers(ctx, rows)
}

func (s *transferSink) Watermark(ctx context.Context, scope string) (*time.Time, error) {
	return s.store.Watermark(ctx, domain.StreamKey{Kind: domain.KindTransfer, Scope: scope})
}

type orderSink struct{ store store.Store }

// NewOrderSink creates the sink for sell orders
func NewOrderSink(st store.Store) Sink[immutablex.Order] {
	return &orderSink{store: st}
}

func (s *orderSink) Persist(ctx context.Context, scope string, records []immutablex.Order) (int64, error) {
	rows := make([]schema.Order, 0, len(records))
	for _, record := range records {
		row, err := orderRow(record)
		if err != nil {
			logger.WarnCtx(ctx, "Skipping malformed order",
				zap.Uint64("order_id", record.OrderID),
				zap.Error(err),
			)
			continue
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return s.store.UpsertOrders(ctx, rows)
}

func (s *orderSink) Watermark(ctx context.Context, scope string) (*time.Time, error) {
	return s.store.Watermark(ctx, domain.StreamKey{Kind: domain.KindOrder, Scope: scope})
}

type depositSink struct{ store store.Store }

// NewDepositSink creates the sink for deposit events
func NewDepositSink(st store.Store) Sink[immutablex.Deposit] {
	return &depositSink{store: st}
}

func (s *depositSink) Persist(ctx context.Context, scope string, records []immutablex.Deposit) (int64, error) {
	rows := make([]schema.Deposit, 0, len(records))
	for _, record := range records {
		row, err := depositRow(record)
		if err != nil {
			logger.WarnCtx(ctx, "Skipping malformed deposit",
				zap.Uint64("transaction_id", record.TransactionID),
				zap.Error(err),
			)
			continue
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return s.store.UpsertDeposits(ctx, rows)
}

func (s *depositSink) Watermark(ctx context.Context, scope string) (*time.Time, error) {
	return s.store.Watermark(ctx, domain.StreamKey{Kind: domain.KindDeposit, Scope: scope})
}

type withdrawalSink struct{ store store.Store }

// NewWithdrawalSink creates the sink for withdrawal events
func NewWithdrawalSink(st store.Store) Sink[immutablex.Withdrawal] {
	return &withdrawalSink{store: st}
}

func (s *withdrawalSink) Persist(ctx context.Context, scope string, records []immutablex.Withdrawal) (int64, error) {
	rows := make([]schema.Withdrawal, 0, len(records))
	for _, record := range records {
		row, err := withdrawalRow(record)
		if err != nil {
			logger.WarnCtx(ctx, "Skipping malformed withdrawal",
				zap.Uint64("transaction_id", record.TransactionID),
				zap.Error(err),
			)
			continue
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return s.store.UpsertWithdrawals(ctx, rows)
}

func (s *withdrawalSink) Watermark(ctx context.Context, scope string) (*time.Time, error) {
	return s.store.Watermark(ctx, domain.StreamKey{Kind: domain.KindWithdrawal, Scope: scope})
}

type coinPriceSink struct{ store store.Store }

// NewCoinPriceSink creates the sink for daily coin prices. Scope is the
// provider coin id.
func NewCoinPriceSink(st store.Store) Sink[coingecko.DailyPrice] {
	return &coinPriceSink{store: st}
}

func (s *coinPriceSink) Persist(ctx context.Context, scope string, records []coingecko.DailyPrice) (int64, error) {
	rows := make([]schema.CoinPrice, 0, len(records))
	for _, record := range records {
		rows = append(rows, schema.CoinPrice{
			CoinID:       scope,
			Day:          record.Day,
			PriceUSD:     record.PriceUSD,
			MarketCapUSD: record.MarketCapUSD,
			VolumeUSD:    record.VolumeUSD,
		})
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return s.store.UpsertCoinPrices(ctx, rows)
}

func (s *coinPriceSink) Watermark(ctx context.Context, scope string) (*time.Time, error) {
	return s.store.Watermark(ctx, domain.StreamKey{Kind: domain.KindCoinPrice, Scope: scope})
}

// mintRow converts a provider mint into its table row
func mintRow(record immutablex.Mint) (schema.Mint, error) {
	wallet, err := domain.NormalizeAddress(record.User)
	if err != nil {
		return schema.Mint{}, err
	}
	tokenAddress, err := domain.NormalizeAddress(record.Token.Data.TokenAddress)
	if err != nil {
		return schema.Mint{}, err
	}
	quantity, err := parseQuantity(record.Token.Data.Quantity)
	if err != nil {
		return schema.Mint{}, err
	}
	raw, err := json.Marshal(record)
	if err != nil {
		return schema.Mint{}, err
	}

	return schema.Mint{
		TransactionID: record.TransactionID,
		TokenAddress:  tokenAddress,
		TokenID:       record.Token.Data.TokenID,
		Wallet:        wallet,
		Quantity:      quantity,
		Status:        record.Status,
		EventAt:       record.Timestamp.UTC(),
		Raw:           datatypes.JSON(raw),
	}, nil
}

// transferRow converts a provider transfer into its table row
func transferRow(record immutablex.Transfer) (schema.Transfer, error) {
	walletFrom, err := domain.NormalizeAddress(record.User)
	if err != nil {
		return schema.Transfer{}, err
	}
	walletTo, err := domain.NormalizeAddress(record.Receiver)
	if err != nil {
		return schema.Transfer{}, err
	}
	tokenAddress, err := domain.NormalizeAddress(record.Token.Data.TokenAddress)
	if err != nil {
		return schema.Transfer{}, err
	}
	quantity, err := parseQuantity(record.Token.Data.Quantity)
	if err != nil {
		return schema.Transfer{}, err
	}
	raw, err := json.Marshal(record)
	if err != nil {
		return schema.Transfer{}, err
	}

	return schema.Transfer{
		TransactionID: record.TransactionID,
		TokenAddress:  tokenAddress,
		TokenID:       record.Token.Data.TokenID,
		WalletFrom:    walletFrom,
		WalletTo:      walletTo,
		Quantity:      quantity,
		Status:        record.Status,
		EventAt:       record.Timestamp.UTC(),
		Raw:           datatypes.JSON(raw),
	}, nil
}

// orderRow converts a provider order into its table row. Settlement
// currency, price, buyer wallet and transaction id stay nil here; they
// are filled in by enrichment.
func orderRow(record immutablex.Order) (schema.Order, error) {
	walletFrom, err := domain.NormalizeAddress(record.User)
	if err != nil {
		return schema.Order{}, err
	}
	tokenAddress, err := domain.NormalizeAddress(record.Sell.Data.TokenAddress)
	if err != nil {
		return schema.Order{}, err
	}

	var amountSold *decimal.Decimal
	if record.AmountSold != nil && *record.AmountSold != "" {
		parsed, err := decimal.NewFromString(*record.AmountSold)
		if err != nil {
			return schema.Order{}, err
		}
		amountSold = &parsed
	}

	raw, err := json.Marshal(record)
	if err != nil {
		return schema.Order{}, err
	}

	return schema.Order{
		OrderID:      record.OrderID,
		Status:       schema.OrderStatus(record.Status),
		WalletFrom:   walletFrom,
		TokenAddress: tokenAddress,
		TokenID:      record.Sell.Data.TokenID,
		AmountSold:   amountSold,
		EventAt:      record.Timestamp.UTC(),
		UpdatedOn:    record.UpdatedTimestamp.UTC(),
		Raw:          datatypes.JSON(raw),
	}, nil
}

// depositRow converts a provider deposit into its table row
func depositRow(record immutablex.Deposit) (schema.Deposit, error) {
	wallet, err := domain.NormalizeAddress(record.User)
	if err != nil {
		return schema.Deposit{}, err
	}
	tokenAddress, err := domain.NormalizeAddress(record.Token.Data.TokenAddress)
	if err != nil {
		return schema.Deposit{}, err
	}
	quantity, err := parseQuantity(record.Token.Data.Quantity)
	if err != nil {
		return schema.Deposit{}, err
	}
	raw, err := json.Marshal(record)
	if err != nil {
		return schema.Deposit{}, err
	}

	return schema.Deposit{
		TransactionID: record.TransactionID,
		TokenAddress:  tokenAddress,
		TokenID:       record.Token.Data.TokenID,
		Wallet:        wallet,
		Quantity:      quantity,
		Status:        record.Status,
		EventAt:       record.Timestamp.UTC(),
		Raw:           datatypes.JSON(raw),
	}, nil
}

// withdrawalRow converts a provider withdrawal into its table row
func withdrawalRow(record immutablex.Withdrawal) (schema.Withdrawal, error) {
	wallet, err := domain.NormalizeAddress(record.User)
	if err != nil {
		return schema.Withdrawal{}, err
	}
	tokenAddress, err := domain.NormalizeAddress(record.Token.Data.TokenAddress)
	if err != nil {
		return schema.Withdrawal{}, err
	}
	quantity, err := parseQuantity(record.Token.Data.Quantity)
	if err != nil {
		return schema.Withdrawal{}, err
	}
	raw, err := json.Marshal(record)
	if err != nil {
		return schema.Withdrawal{}, err
	}

	return schema.Withdrawal{
		TransactionID: record.TransactionID,
		TokenAddress:  tokenAddress,
		TokenID:       record.Token.Data.TokenID,
		Wallet:        wallet,
		Quantity:      quantity,
		Status:        record.Status,
		EventAt:       record.Timestamp.UTC(),
		Raw:           datatypes.JSON(raw),
	}, nil
}

// parseQuantity parses a provider quantity string. NFT events may omit
// the quantity entirely, which means a single token.
func parseQuantity(quantity string) (decimal.Decimal, error) {
	if quantity == "" {
		return decimal.NewFromInt(1), nil
	}
	return decimal.NewFromString(quantity)
}
