package schema

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Transfer represents the transfers table - one token ownership transfer
// observed on the marketplace. Immutable once observed.
type Transfer struct {
	// ID is the internal database primary key
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// TransactionID is the provider-side transaction id (natural key)
	TransactionID uint64 `gorm:"column:transaction_id;not null;uniqueIndex:idx_transfers_transaction_id"`
	// TokenAddress is the collection contract address
	TokenAddress string `gorm:"column:token_address;not null;type:text;index:idx_transfers_token_address"`
	// TokenID is the token number within the collection
	TokenID string `gorm:"column:token_id;not null;type:text"`
	// WalletFrom is the sender address
	WalletFrom string `gorm:"column:wallet_from;not null;type:text"`
	// WalletTo is the recipient address
	WalletTo string `gorm:"column:wallet_to;not null;type:text"`
	// Quantity is the number of tokens transferred
	Quantity decimal.Decimal `gorm:"column:quantity;not null;type:numeric(78,0)"`
	// Status is the provider-reported status
	Status string `gorm:"column:status;not null;type:text"`
	// EventAt is the provider timestamp of the transfer
	EventAt time.Time `gorm:"column:event_at;not null;type:timestamptz;index:idx_transfers_event_at"`
	// Raw contains the raw provider payload for debugging
	Raw datatypes.JSON `gorm:"column:raw;type:jsonb"`
	// CreatedAt is the timestamp when this record was ingested
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is the timestamp when this record was last touched
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the Transfer model
func (Transfer) TableName() string {
	return "transfers"
}
