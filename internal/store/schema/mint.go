package schema

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Mint represents the mints table - one token creation event observed on
// the marketplace. Mints are immutable once observed: re-ingestion is an
// insert-or-ignore keyed by transaction id.
type Mint struct {
	// ID is the internal database primary key
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// TransactionID is the provider-side transaction id (natural key)
	TransactionID uint64 `gorm:"column:transaction_id;not null;uniqueIndex:idx_mints_transaction_id"`
	// TokenAddress is the collection contract address
	TokenAddress string `gorm:"column:token_address;not null;type:text;index:idx_mints_token_address"`
	// TokenID is the token number within the collection
	TokenID string `gorm:"column:token_id;not null;type:text"`
	// Wallet is the recipient of the minted token
	Wallet string `gorm:"column:wallet;not null;type:text"`
	// Quantity is the number of tokens minted
	Quantity decimal.Decimal `gorm:"column:quantity;not null;type:numeric(78,0)"`
	// Status is the provider-reported status (e.g. success)
	Status string `gorm:"column:status;not null;type:text"`
	// EventAt is the provider timestamp of the mint
	EventAt time.Time `gorm:"column:event_at;not null;type:timestamptz;index:idx_mints_event_at"`
	// Raw contains the raw provider payload for debugging
	Raw datatypes.JSON `gorm:"column:raw;type:jsonb"`
	// CreatedAt is the timestamp when this record was ingested
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is the timestamp when this record was last touched
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the Mint model
func (Mint) TableName() string {
	return "mints"
}
