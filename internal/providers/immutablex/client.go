package immutablex

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/artcadia/market-sync/internal/adapter"
	"github.com/artcadia/market-sync/internal/domain"
)

const PROVIDER_NAME = "immutablex"

const (
	// DefaultAPIURL is the production marketplace API endpoint
	DefaultAPIURL = "https://api.x.immutable.com"

	// PAGE_SIZE is the page size requested from every listing endpoint
	PAGE_SIZE = 200
)

// Client defines the interface for marketplace API operations to enable mocking
//
//go:generate mockgen -source=client.go -destination=../../mocks/immutablex_client.go -package=mocks -mock_names=Client=MockMarketClient
type Client interface {
	// ListMints fetches one page of mints for a collection, newest-first bounded below by minTimestamp
	ListMints(ctx context.Context, tokenAddress string, minTimestamp time.Time, cursor string) (*domain.Page[Mint], error)
	// ListTransfers fetches one page of transfers for a collection
	ListTransfers(ctx context.Context, tokenAddress string, minTimestamp time.Time, cursor string) (*domain.Page[Transfer], error)
	// ListOrders fetches one page of sell orders for a collection, bounded below by updatedMinTimestamp
	ListOrders(ctx context.Context, tokenAddress string, updatedMinTimestamp time.Time, cursor string) (*domain.Page[Order], error)
	// ListDeposits fetches one page of deposits for a collection
	ListDeposits(ctx context.Context, tokenAddress string, minTimestamp time.Time, cursor string) (*domain.Page[Deposit], error)
	// ListWithdrawals fetches one page of withdrawals for a collection
	ListWithdrawals(ctx context.Context, tokenAddress string, minTimestamp time.Time, cursor string) (*domain.Page[Withdrawal], error)
	// ListTrades fetches one page of settled trades for a single token
	ListTrades(ctx context.Context, tokenAddress, tokenID string, cursor string) (*domain.Page[Trade], error)
	// GetOrder fetches the full order document, including settlement detail
	GetOrder(ctx context.Context, orderID uint64) (*Order, error)
}

// MarketClient implements the marketplace API client
type MarketClient struct {
	httpClient adapter.HTTPClient
	apiURL     string
	apiKey     string
}

// NewClient creates a new marketplace API client. apiKey may be empty for
// the public endpoints.
func NewClient(httpClient adapter.HTTPClient, apiURL string, apiKey string) Client {
	return &MarketClient{
		httpClient: httpClient,
		apiURL:     apiURL,
		apiKey:     apiKey,
	}
}

// headers returns the request headers, attaching the API key when configured
func (c *MarketClient) headers() map[string]string {
	if c.apiKey == "" {
		return nil
	}
	return map[string]string{"x-api-key": c.apiKey}
}

// listURL builds a listing URL with page size, cursor and extra parameters
func (c *MarketClient) listURL(path string, params url.Values, cursor string) string {
	params.Set("page_size", strconv.Itoa(PAGE_SIZE))
	params.Set("order_by", "updated_at")
	params.Set("direction", "asc")
	if cursor != "" {
		params.Set("cursor", cursor)
	}
	return fmt.Sprintf("%s%s?%s", c.apiURL, path, params.Encode())
}

func list[T any](ctx context.Context, c *MarketClient, path string, params url.Values, cursor string) (*domain.Page[T], error) {
	var response listResponse[T]
	if err := c.httpClient.GetWithHeaders(ctx, c.listURL(path, params, cursor), c.headers(), &response); err != nil {
		return nil, fmt.Errorf("failed to call marketplace API %s: %w", path, err)
	}

	return &domain.Page[T]{
		Records: response.Result,
		Cursor:  response.Cursor,
	}, nil
}

// ListMints fetches one page of mints for a collection
func (c *MarketClient) ListMints(ctx context.Context, tokenAddress string, minTimestamp time.Time, cursor string) (*domain.Page[Mint], error) {
	params := url.Values{}
	params.Set("token_address", tokenAddress)
	params.Set("min_timestamp", minTimestamp.UTC().Format(time.RFC3339))
	return list[Mint](ctx, c, "/v1/mints", params, cursor)
}

// ListTransfers fetches one page of transfers for a collection
func (c *MarketClient) ListTransfers(ctx context.Context, tokenAddress string, minTimestamp time.Time, cursor string) (*domain.Page[Transfer], error) {
	params := url.Values{}
	params.Set("token_address", tokenAddress)
	params.Set("min_timestamp", minTimestamp.UTC().Format(time.RFC3339))
	return list[Transfer](ctx, c, "/v1/transfers", params, cursor)
}

// ListOrders fetches one page of sell orders for a collection. Orders use
// the provider's update timestamp as the lower bound because settled
// orders mutate after creation.
func (c *MarketClient) ListOrders(ctx context.Context, tokenAddress string, updatedMinTimestamp time.Time, cursor string) (*domain.Page[Order], error) {
	params := url.Values{}
	params.Set("sell_token_address", tokenAddress)
	params.Set("updated_min_timestamp", updatedMinTimestamp.UTC().Format(time.RFC3339))
	params.Set("include_fees", "true")
	return list[Order](ctx, c, "/v1/orders", params, cursor)
}

// ListDeposits fetches one page of deposits for a collection
func (c *MarketClient) ListDeposits(ctx context.Context, tokenAddress string, minTimestamp time.Time, cursor string) (*domain.Page[Deposit], error) {
	params := url.Values{}
	params.Set("token_address", tokenAddress)
	params.Set("min_timestamp", minTimestamp.UTC().Format(time.RFC3339))
	return list[Deposit](ctx, c, "/v1/deposits", params, cursor)
}

// ListWithdrawals fetches one page of withdrawals for a collection
func (c *MarketClient) ListWithdrawals(ctx context.Context, tokenAddress string, minTimestamp time.Time, cursor string) (*domain.Page[Withdrawal], error) {
	params := url.Values{}
	params.Set("token_address", tokenAddress)
	params.Set("min_timestamp", minTimestamp.UTC().Format(time.RFC3339))
	return list[Withdrawal](ctx, c, "/v1/withdrawals", params, cursor)
}

// ListTrades fetches one page of settled trades for a single token
func (c *MarketClient) ListTrades(ctx context.Context, tokenAddress, tokenID string, cursor string) (*domain.Page[Trade], error) {
	params := url.Values{}
	params.Set("party_a_token_address", tokenAddress)
	params.Set("party_a_token_id", tokenID)
	return list[Trade](ctx, c, "/v1/trades", params, cursor)
}

// GetOrder fetches the full order document, including settlement detail
func (c *MarketClient) GetOrder(ctx context.Context, orderID uint64) (*Order, error) {
	url := fmt.Sprintf("%s/v1/orders/%d?include_fees=true", c.apiURL, orderID)

	var order Order
	if err := c.httpClient.GetWithHeaders(ctx, url, c.headers(), &order); err != nil {
		return nil, fmt.Errorf("failed to get order %d: %w", orderID, err)
	}

	return &order, nil
}
