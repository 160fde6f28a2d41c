package pricefeed_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alexandrekoury/painel-backend/internal/pricefeed"
)

// TestClient_SimplePrices tests the quote feed client against a stub server.
func TestClient_SimplePrices(t *testing.T) {
	ctx := context.Background()

	t.Run("parses quotes and lowercases codes", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/simple/price" {
				t.Errorf("Unexpected path %s", r.URL.Path)
			}
			if got := r.URL.Query().Get("ids"); got != "btc,eth" {
				t.Errorf("ids = %q, want btc,eth", got)
			}
			if got := r.URL.Query().Get("vs_currencies"); got != "usd" {
				t.Errorf("vs_currencies = %q, want usd", got)
			}
			w.Header().Set("Content-Type", "application/json")
			//nolint:errcheck // stub server
			w.Write([]byte(`{"btc": {"usd": 64250.12}, "eth": {"usd": 3120.55}}`))
		}))
		defer server.Close()

		client := pricefeed.NewClient(server.URL)
		prices, err := client.SimplePrices(ctx, []string{"BTC", "ETH"}, "USD")
		if err != nil {
			t.Fatalf("SimplePrices() returned unexpected error: %v", err)
		}

		if len(prices) != 2 {
			t.Fatalf("Expected 2 prices, got %d", len(prices))
		}
		// json.Number decoding must preserve the exact decimal text.
		if got, want := prices["btc"].String(), "64250.12"; got != want {
			t.Errorf("btc price = %s, want %s", got, want)
		}
		if got, want := prices["eth"].String(), "3120.55"; got != want {
			t.Errorf("eth price = %s, want %s", got, want)
		}
	})

	t.Run("unknown coins are absent, not errors", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			//nolint:errcheck // stub server
			w.Write([]byte(`{"btc": {"usd": 100}}`))
		}))
		defer server.Close()

		client := pricefeed.NewClient(server.URL)
		prices, err := client.SimplePrices(ctx, []string{"BTC", "OBSCURECOIN"}, "usd")
		if err != nil {
			t.Fatalf("SimplePrices() returned unexpected error: %v", err)
		}

		if len(prices) != 1 {
			t.Errorf("Expected 1 price, got %d", len(prices))
		}
		if _, ok := prices["obscurecoin"]; ok {
			t.Error("Expected no entry for uncovered coin")
		}
	})

	t.Run("empty code list skips the request", func(t *testing.T) {
		client := pricefeed.NewClient("http://feed.invalid")
		prices, err := client.SimplePrices(ctx, nil, "usd")
		if err != nil {
			t.Fatalf("SimplePrices() returned unexpected error: %v", err)
		}
		if len(prices) != 0 {
			t.Errorf("Expected no prices, got %d", len(prices))
		}
	})

	t.Run("non-200 status is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "rate limited", http.StatusTooManyRequests)
		}))
		defer server.Close()

		client := pricefeed.NewClient(server.URL)
		if _, err := client.SimplePrices(ctx, []string{"btc"}, "usd"); err == nil {
			t.Error("Expected error for non-200 response")
		}
	})
}
