package schema

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// OrderStatus represents the lifecycle status of a trade order
type OrderStatus string

const (
	// OrderStatusActive indicates an open order
	OrderStatusActive OrderStatus = "active"
	// OrderStatusFilled indicates a settled order
	OrderStatusFilled OrderStatus = "filled"
	// OrderStatusCancelled indicates a cancelled order
	OrderStatusCancelled OrderStatus = "cancelled"
	// OrderStatusExpired indicates an order past its expiration
	OrderStatusExpired OrderStatus = "expired"
	// OrderStatusInactive indicates an order the maker can no longer fill
	OrderStatusInactive OrderStatus = "inactive"
)

// Order represents the orders table - one marketplace sell order. Unlike
// event rows, orders are mutated by the provider after creation: status,
// amount sold and the provider update timestamp move as the order settles,
// so re-ingestion updates those fields in place. Settlement currency,
// price, buyer wallet and transaction id are unavailable in the listing
// call and are filled in by enrichment passes.
type Order struct {
	// ID is the internal database primary key
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// OrderID is the provider-side order id (natural key)
	OrderID uint64 `gorm:"column:order_id;not null;uniqueIndex:idx_orders_order_id"`
	// Status is the provider-reported order status
	Status OrderStatus `gorm:"column:status;not null;type:text;index:idx_orders_status"`
	// WalletFrom is the maker (seller) address
	WalletFrom string `gorm:"column:wallet_from;not null;type:text"`
	// WalletTo is the buyer address, resolved by enrichment (nil until resolved)
	WalletTo *string `gorm:"column:wallet_to;type:text"`
	// TokenAddress is the collection contract address of the asset sold
	TokenAddress string `gorm:"column:token_address;not null;type:text;index:idx_orders_token_address"`
	// TokenID is the token number of the asset sold
	TokenID string `gorm:"column:token_id;not null;type:text"`
	// AmountSold is how much of the order quantity has settled
	AmountSold *decimal.Decimal `gorm:"column:amount_sold;type:numeric(78,0)"`
	// Price is the settlement price in Currency units, resolved by enrichment
	Price *decimal.Decimal `gorm:"column:price;type:numeric(38,18)"`
	// Currency is the settlement currency symbol, resolved by enrichment
	Currency *string `gorm:"column:currency;type:text"`
	// TransactionID is the settling trade's transaction id, resolved by enrichment
	TransactionID *uint64 `gorm:"column:transaction_id;type:bigint"`
	// EventAt is the provider timestamp of order creation
	EventAt time.Time `gorm:"column:event_at;not null;type:timestamptz"`
	// UpdatedOn is the provider timestamp of the last order change; drives the watermark
	UpdatedOn time.Time `gorm:"column:updated_on;not null;type:timestamptz;index:idx_orders_updated_on"`
	// Raw contains the raw provider payload for debugging
	Raw datatypes.JSON `gorm:"column:raw;type:jsonb"`
	// CreatedAt is the timestamp when this record was ingested
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is the timestamp when this record was last touched
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the Order model
func (Order) TableName() string {
	return "orders"
}
