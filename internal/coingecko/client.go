// Package coingecko implements a client for the CoinGecko price API.
// It fetches spot prices and historical price series for the tracked coin.
package coingecko

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/edgard/tezbot/internal/apperr"
	"github.com/edgard/tezbot/internal/config"
)

const (
	simplePricePath = "/api/v3/simple/price"
	marketChartPath = "/api/v3/coins/%s/market_chart"
)

// PricePoint is one sample of a price series: a Unix-millisecond timestamp
// and the price in the quote currency at that instant.
type PricePoint struct {
	TimestampMs int64
	Price       float64
}

// Client talks to the CoinGecko API. A single attempt is made per call;
// the injected timeout bounds each request.
type Client struct {
	baseURL    string
	coin       string
	httpClient *http.Client
	log        *slog.Logger
}

// New creates a CoinGecko client for the configured coin.
func New(cfg config.CoinGeckoConfig, timeout time.Duration, log *slog.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		coin:       cfg.Coin,
		httpClient: &http.Client{Timeout: timeout},
		log:        log.With("component", "coingecko"),
	}
}

// Price returns the current price of the tracked coin expressed in the given
// quote currency. An unsupported currency code yields an API format error
// because CoinGecko omits the key rather than failing the request.
func (c *Client) Price(ctx context.Context, currency string) (decimal.Decimal, error) {
	currency = strings.ToLower(currency)

	q := url.Values{}
	q.Set("ids", c.coin)
	q.Set("vs_currencies", currency)

	var body map[string]map[string]decimal.Decimal
	if err := c.getJSON(ctx, simplePricePath+"?"+q.Encode(), &body); err != nil {
		return decimal.Decimal{}, err
	}

	quotes, ok := body[c.coin]
	if !ok {
		return decimal.Decimal{}, apperr.NewAPIFormatError(fmt.Sprintf("price response missing coin %q", c.coin), nil)
	}
	price, ok := quotes[currency]
	if !ok {
		return decimal.Decimal{}, apperr.NewAPIFormatError(fmt.Sprintf("price response missing currency %q", currency), nil)
	}

	c.log.DebugContext(ctx, "Fetched price", "currency", currency, "price", price)
	return price, nil
}

// MarketChart returns the trailing price series of the tracked coin in USD,
// one point per sample, ascending by timestamp as returned by the API.
func (c *Client) MarketChart(ctx context.Context, days int) ([]PricePoint, error) {
	q := url.Values{}
	q.Set("vs_currency", "usd")
	q.Set("days", fmt.Sprintf("%d", days))

	var body struct {
		Prices [][2]float64 `json:"prices"`
	}
	path := fmt.Sprintf(marketChartPath, c.coin)
	if err := c.getJSON(ctx, path+"?"+q.Encode(), &body); err != nil {
		return nil, err
	}

	if len(body.Prices) == 0 {
		return nil, apperr.NewAPIFormatError("market chart response has no prices", nil)
	}

	series := make([]PricePoint, len(body.Prices))
	for i, p := range body.Prices {
		series[i] = PricePoint{TimestampMs: int64(p[0]), Price: p[1]}
	}

	c.log.DebugContext(ctx, "Fetched market chart", "days", days, "points", len(series))
	return series, nil
}

// getJSON performs a single GET request and decodes the JSON body into out.
func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("coingecko: create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apperr.NewNetworkError("coingecko request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return apperr.NewAPIFormatError(fmt.Sprintf("coingecko returned status %d", resp.StatusCode), nil)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperr.NewAPIFormatError("coingecko returned invalid JSON", err)
	}

	return nil
}
