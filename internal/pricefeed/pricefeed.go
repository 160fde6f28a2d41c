// Package pricefeed provides a client for the external coin quote feed.
// The feed serves spot prices for a set of coin codes against one quote asset.
package pricefeed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Client fetches coin prices from the quote feed API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new quote feed client for the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// SimplePrices fetches current spot prices for the given coin codes, quoted in
// the given asset (e.g. "usd"). Codes are matched case-insensitively. Coins
// the feed does not know are absent from the result; that is not an error.
//
// The feed responds with a JSON object keyed by coin code:
//
//	{"btc": {"usd": 64250.12}, "eth": {"usd": 3120.55}}
func (c *Client) SimplePrices(ctx context.Context, codes []string, quote string) (map[string]decimal.Decimal, error) {
	if len(codes) == 0 {
		return map[string]decimal.Decimal{}, nil
	}

	lowered := make([]string, len(codes))
	for i, code := range codes {
		lowered[i] = strings.ToLower(code)
	}

	endpoint := fmt.Sprintf("%s/simple/price?ids=%s&vs_currencies=%s",
		c.baseURL,
		url.QueryEscape(strings.Join(lowered, ",")),
		url.QueryEscape(strings.ToLower(quote)),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build price feed request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch prices: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("price feed returned status %d: %s", resp.StatusCode, string(body))
	}

	// Decode into json.Number so quote values survive as exact decimals.
	var payload map[string]map[string]json.Number
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode price feed response: %w", err)
	}

	quote = strings.ToLower(quote)
	prices := make(map[string]decimal.Decimal, len(payload))
	for code, quotes := range payload {
		raw, ok := quotes[quote]
		if !ok {
			continue
		}
		price, err := decimal.NewFromString(raw.String())
		if err != nil {
			return nil, fmt.Errorf("price feed returned malformed price %q for %s: %w", raw.String(), code, err)
		}
		prices[strings.ToLower(code)] = price
	}

	return prices, nil
}
