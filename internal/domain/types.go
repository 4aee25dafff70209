package domain

import (
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// RecordKind identifies the type of market record being ingested.
// The set is closed: adding a kind requires touching every switch over it.
type RecordKind string

const (
	KindMint       RecordKind = "mint"
	KindTransfer   RecordKind = "transfer"
	KindOrder      RecordKind = "order"
	KindDeposit    RecordKind = "deposit"
	KindWithdrawal RecordKind = "withdrawal"
	KindCoinPrice  RecordKind = "coin_price"
)

// Kinds lists every record kind in a stable order
var Kinds = []RecordKind{
	KindMint,
	KindTransfer,
	KindOrder,
	KindDeposit,
	KindWithdrawal,
	KindCoinPrice,
}

// IsValidKind checks if a record kind is part of the closed set
func IsValidKind(kind RecordKind) bool {
	switch kind {
	case KindMint, KindTransfer, KindOrder, KindDeposit, KindWithdrawal, KindCoinPrice:
		return true
	}
	return false
}

// StreamKey identifies one independently resumable ingestion stream.
// Scope is a collection contract address for marketplace kinds and a
// coin id for coin-price streams.
type StreamKey struct {
	Kind  RecordKind
	Scope string
}

// String returns the canonical "kind:scope" form used in logs and subjects
func (k StreamKey) String() string {
	return fmt.Sprintf("%s:%s", k.Kind, k.Scope)
}

// Valid reports whether the key has a known kind and a non-empty scope
func (k StreamKey) Valid() bool {
	return IsValidKind(k.Kind) && k.Scope != ""
}

// Page is one provider response unit: an ordered list of records plus
// the opaque cursor to echo back for the next page. An empty cursor
// signals end-of-stream.
type Page[T any] struct {
	Records []T
	Cursor  string
}

// WatermarkEpoch is the sentinel lower bound injected into the first sweep
// of a stream that has no persisted records yet, guaranteeing a full
// backfill on first run.
var WatermarkEpoch = time.Date(2021, time.January, 1, 0, 0, 0, 0, time.UTC)

// NormalizeAddress returns the EIP-55 checksummed form of an Ethereum
// wallet or contract address.
func NormalizeAddress(addr string) (string, error) {
	if !common.IsHexAddress(addr) {
		return "", fmt.Errorf("%w: %q", ErrInvalidAddress, addr)
	}
	return common.HexToAddress(addr).Hex(), nil
}

// MarketEvent is the normalized notification published to NATS after a
// page of records has been persisted.
type MarketEvent struct {
	EventID   string     `json:"event_id"` // ULID, time-sortable
	Kind      RecordKind `json:"kind"`
	Scope     string     `json:"scope"`
	Records   int        `json:"records"`
	MaxEvent  *time.Time `json:"max_event,omitempty"` // newest record timestamp in the page
	Published time.Time  `json:"published"`
}
