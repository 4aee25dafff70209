package coingecko

// MarketChartResponse exposes the unexported response type to the external
// test package.
type MarketChartResponse = marketChartResponse
