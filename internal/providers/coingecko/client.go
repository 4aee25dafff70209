package coingecko

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/artcadia/market-sync/internal/adapter"
)

const PROVIDER_NAME = "coingecko"

// DefaultAPIURL is the public coin-data API endpoint
const DefaultAPIURL = "https://api.coingecko.com/api/v3"

// DailyPrice is one daily spot-price snapshot for a coin
type DailyPrice struct {
	Day          time.Time
	PriceUSD     decimal.Decimal
	MarketCapUSD *decimal.Decimal
	VolumeUSD    *decimal.Decimal
}

// marketChartResponse mirrors the market_chart/range payload: parallel
// lists of [unix-millis, value] pairs
type marketChartResponse struct {
	Prices       [][]float64 `json:"prices"`
	MarketCaps   [][]float64 `json:"market_caps"`
	TotalVolumes [][]float64 `json:"total_volumes"`
}

// Client defines the interface for coin-data API operations to enable mocking
//
//go:generate mockgen -source=client.go -destination=../../mocks/coingecko_client.go -package=mocks -mock_names=Client=MockCoinClient
type Client interface {
	// MarketChartRange fetches daily price snapshots for a coin between
	// from and to, collapsed to one snapshot per UTC day
	MarketChartRange(ctx context.Context, coinID string, from, to time.Time) ([]DailyPrice, error)
}

// CoinClient implements the coin-data API client
type CoinClient struct {
	httpClient adapter.HTTPClient
	apiURL     string
	apiKey     string
}

// NewClient creates a new coin-data API client. apiKey may be empty for
// the free tier.
func NewClient(httpClient adapter.HTTPClient, apiURL string, apiKey string) Client {
	return &CoinClient{
		httpClient: httpClient,
		apiURL:     apiURL,
		apiKey:     apiKey,
	}
}

// MarketChartRange fetches daily price snapshots for a coin between from
// and to. The provider returns intraday granularity for short ranges, so
// points are collapsed to the last value per UTC day.
func (c *CoinClient) MarketChartRange(ctx context.Context, coinID string, from, to time.Time) ([]DailyPrice, error) {
	params := url.Values{}
	params.Set("vs_currency", "usd")
	params.Set("from", fmt.Sprintf("%d", from.Unix()))
	params.Set("to", fmt.Sprintf("%d", to.Unix()))

	reqURL := fmt.Sprintf("%s/coins/%s/market_chart/range?%s", c.apiURL, url.PathEscape(coinID), params.Encode())

	var headers map[string]string
	if c.apiKey != "" {
		headers = map[string]string{"x-cg-demo-api-key": c.apiKey}
	}

	var response marketChartResponse
	if err := c.httpClient.GetWithHeaders(ctx, reqURL, headers, &response); err != nil {
		return nil, fmt.Errorf("failed to call coin API for %s: %w", coinID, err)
	}

	byDay := make(map[time.Time]*DailyPrice)
	for _, point := range response.Prices {
		if len(point) != 2 {
			continue
		}
		day := dayOf(point[0])
		byDay[day] = &DailyPrice{
			Day:      day,
			PriceUSD: decimal.NewFromFloat(point[1]),
		}
	}
	for _, point := range response.MarketCaps {
		if len(point) != 2 {
			continue
		}
		if snapshot, ok := byDay[dayOf(point[0])]; ok {
			cap := decimal.NewFromFloat(point[1])
			snapshot.MarketCapUSD = &cap
		}
	}
	for _, point := range response.TotalVolumes {
		if len(point) != 2 {
			continue
		}
		if snapshot, ok := byDay[dayOf(point[0])]; ok {
			volume := decimal.NewFromFloat(point[1])
			snapshot.VolumeUSD = &volume
		}
	}

	prices := make([]DailyPrice, 0, len(byDay))
	for _, snapshot := range byDay {
		prices = append(prices, *snapshot)
	}
	sort.Slice(prices, func(i, j int) bool {
		return prices[i].Day.Before(prices[j].Day)
	})

	return prices, nil
}

// dayOf truncates a unix-millis timestamp to its UTC date
func dayOf(unixMillis float64) time.Time {
	t := time.UnixMilli(int64(unixMillis)).UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
