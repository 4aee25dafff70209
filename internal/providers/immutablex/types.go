package immutablex

import "time"

// TokenData carries the type-specific fields of a Token
type TokenData struct {
	TokenID      string `json:"token_id,omitempty"`
	TokenAddress string `json:"token_address,omitempty"`
	Quantity     string `json:"quantity,omitempty"`
	Decimals     int    `json:"decimals,omitempty"`
	Symbol       string `json:"symbol,omitempty"`
}

// Token describes an asset on one side of an event or order.
// Type is "ERC721" for NFTs and "ETH"/"ERC20" for settlement currencies.
type Token struct {
	Type string    `json:"type"`
	Data TokenData `json:"data"`
}

// Mint represents one mint event from the marketplace API
type Mint struct {
	TransactionID uint64    `json:"transaction_id"`
	Token         Token     `json:"token"`
	User          string    `json:"user"`
	Status        string    `json:"status"`
	Timestamp     time.Time `json:"timestamp"`
}

// Transfer represents one transfer event from the marketplace API
type Transfer struct {
	TransactionID uint64    `json:"transaction_id"`
	Token         Token     `json:"token"`
	User          string    `json:"user"`
	Receiver      string    `json:"receiver"`
	Status        string    `json:"status"`
	Timestamp     time.Time `json:"timestamp"`
}

// Deposit represents one L2 deposit event from the marketplace API
type Deposit struct {
	TransactionID uint64    `json:"transaction_id"`
	Token         Token     `json:"token"`
	User          string    `json:"user"`
	Status        string    `json:"status"`
	Timestamp     time.Time `json:"timestamp"`
}

// Withdrawal represents one L2 withdrawal event from the marketplace API
type Withdrawal struct {
	TransactionID uint64    `json:"transaction_id"`
	Token         Token     `json:"token"`
	User          string    `json:"user"`
	Status        string    `json:"status"`
	Timestamp     time.Time `json:"timestamp"`
}

// Order represents one sell order from the marketplace API. The listing
// endpoint returns Buy with quantity but without settlement detail; the
// single-order endpoint fills in decimals and symbol.
type Order struct {
	OrderID          uint64    `json:"order_id"`
	Status           string    `json:"status"`
	User             string    `json:"user"`
	Sell             Token     `json:"sell"`
	Buy              Token     `json:"buy"`
	AmountSold       *string   `json:"amount_sold"`
	Timestamp        time.Time `json:"timestamp"`
	UpdatedTimestamp time.Time `json:"updated_timestamp"`
}

// TradeSide is one party of a settled trade, identified by its order id
type TradeSide struct {
	OrderID uint64 `json:"order_id"`
	Sold    string `json:"sold,omitempty"`
}

// Trade represents one settled trade from the marketplace API. A trade
// joins a sell order (party A) with a buy order (party B); the buyer
// wallet is only reachable through the party B order.
type Trade struct {
	TransactionID uint64    `json:"transaction_id"`
	Status        string    `json:"status"`
	PartyA        TradeSide `json:"a"`
	PartyB        TradeSide `json:"b"`
	Timestamp     time.Time `json:"timestamp"`
}

// listResponse is the generic envelope of every paginated listing
type listResponse[T any] struct {
	Result    []T    `json:"result"`
	Cursor    string `json:"cursor"`
	Remaining int    `json:"remaining"`
}
