package coingecko_test

import (
	"context"
	"net/url"
	"strconv"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artcadia/market-sync/internal/mocks"
	"github.com/artcadia/market-sync/internal/providers/coingecko"
)

const testAPIURL = "https://coins.test/api/v3"

func unixMillis(t time.Time) float64 {
	return float64(t.UnixMilli())
}

func TestMarketChartRange(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	httpClient := mocks.NewMockHTTPClient(ctrl)
	client := coingecko.NewClient(httpClient, testAPIURL, "")

	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC)

	dayOneNoon := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	dayOneEvening := time.Date(2024, 3, 1, 23, 30, 0, 0, time.UTC)
	dayTwo := time.Date(2024, 3, 2, 6, 0, 0, 0, time.UTC)

	httpClient.EXPECT().
		GetWithHeaders(gomock.Any(), gomock.Any(), gomock.Nil(), gomock.Any()).
		DoAndReturn(func(_ context.Context, rawURL string, _ map[string]string, result interface{}) error {
			parsed, err := url.Parse(rawURL)
			require.NoError(t, err)
			assert.Equal(t, "/api/v3/coins/ethereum/market_chart/range", parsed.Path)

			query := parsed.Query()
			assert.Equal(t, "usd", query.Get("vs_currency"))
			assert.Equal(t, strconv.FormatInt(from.Unix(), 10), query.Get("from"))
			assert.Equal(t, strconv.FormatInt(to.Unix(), 10), query.Get("to"))

			response := result.(*coingecko.MarketChartResponse)
			response.Prices = [][]float64{
				{unixMillis(dayOneNoon), 3400.10},
				{unixMillis(dayOneEvening), 3391.07},
				{unixMillis(dayTwo), 3425.50},
			}
			response.MarketCaps = [][]float64{
				{unixMillis(dayOneEvening), 407000000000},
			}
			response.TotalVolumes = [][]float64{
				{unixMillis(dayTwo), 18000000000},
			}
			return nil
		})

	prices, err := client.MarketChartRange(context.Background(), "ethereum", from, to)
	require.NoError(t, err)
	require.Len(t, prices, 2, "intraday points must collapse to one snapshot per day")

	// Day one keeps the last intraday price and picks up the market cap
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), prices[0].Day)
	assert.True(t, prices[0].PriceUSD.Equal(decimal.NewFromFloat(3391.07)))
	require.NotNil(t, prices[0].MarketCapUSD)
	assert.Nil(t, prices[0].VolumeUSD)

	// Day two carries the volume and no market cap
	assert.Equal(t, time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC), prices[1].Day)
	assert.True(t, prices[1].PriceUSD.Equal(decimal.NewFromFloat(3425.50)))
	assert.Nil(t, prices[1].MarketCapUSD)
	require.NotNil(t, prices[1].VolumeUSD)
}

func TestMarketChartRange_APIKeyHeader(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	httpClient := mocks.NewMockHTTPClient(ctrl)
	client := coingecko.NewClient(httpClient, testAPIURL, "demo-key")

	httpClient.EXPECT().
		GetWithHeaders(gomock.Any(), gomock.Any(), map[string]string{"x-cg-demo-api-key": "demo-key"}, gomock.Any()).
		Return(nil)

	_, err := client.MarketChartRange(context.Background(), "ethereum", time.Now().Add(-time.Hour), time.Now())
	require.NoError(t, err)
}

func TestMarketChartRange_MalformedPointsSkipped(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	httpClient := mocks.NewMockHTTPClient(ctrl)
	client := coingecko.NewClient(httpClient, testAPIURL, "")

	day := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	httpClient.EXPECT().
		GetWithHeaders(gomock.Any(), gomock.Any(), gomock.Nil(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, _ map[string]string, result interface{}) error {
			response := result.(*coingecko.MarketChartResponse)
			response.Prices = [][]float64{
				{unixMillis(day)},
				{unixMillis(day), 3400.10},
			}
			return nil
		})

	prices, err := client.MarketChartRange(context.Background(), "ethereum", day.Add(-time.Hour), day.Add(time.Hour))
	require.NoError(t, err)
	require.Len(t, prices, 1)
}

func TestMarketChartRange_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	httpClient := mocks.NewMockHTTPClient(ctrl)
	client := coingecko.NewClient(httpClient, testAPIURL, "")

	httpClient.EXPECT().
		GetWithHeaders(gomock.Any(), gomock.Any(), gomock.Nil(), gomock.Any()).
		Return(assert.AnError)

	_, err := client.MarketChartRange(context.Background(), "ethereum", time.Now().Add(-time.Hour), time.Now())
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}
