package schema

import (
	"time"

	"github.com/shopspring/decimal"
)

// CoinPrice represents the coin_prices table - one daily spot-price
// snapshot for a coin. The provider may correct historical numbers, so
// re-ingestion upserts all numeric fields.
type CoinPrice struct {
	// ID is the internal database primary key
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// CoinID is the provider coin identifier (e.g. "ethereum")
	CoinID string `gorm:"column:coin_id;not null;type:text;uniqueIndex:idx_coin_prices_coin_day"`
	// Day is the UTC date of the snapshot
	Day time.Time `gorm:"column:day;not null;type:date;uniqueIndex:idx_coin_prices_coin_day"`
	// PriceUSD is the spot price in USD
	PriceUSD decimal.Decimal `gorm:"column:price_usd;not null;type:numeric(38,18)"`
	// MarketCapUSD is the market capitalization in USD
	MarketCapUSD *decimal.Decimal `gorm:"column:market_cap_usd;type:numeric(38,2)"`
	// VolumeUSD is the 24h trading volume in USD
	VolumeUSD *decimal.Decimal `gorm:"column:volume_usd;type:numeric(38,2)"`
	// CreatedAt is the timestamp when this record was ingested
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is the timestamp when this record was last touched
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the CoinPrice model
func (CoinPrice) TableName() string {
	return "coin_prices"
}
