package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/username/alphatrade/backend/src/config"
	"github.com/username/alphatrade/backend/src/models"
)

func newTestMarketService(t *testing.T, upstream http.HandlerFunc, apiKey string) MarketService {
	t.Helper()
	server := httptest.NewServer(upstream)
	t.Cleanup(server.Close)

	cfg := &config.AppConfig{
		FinnhubAPIKey:     apiKey,
		MarketDataBaseURL: server.URL,
		UpstreamTimeout:   2 * time.Second,
	}
	return NewMarketService(cfg, cache.New(time.Minute, time.Minute))
}

func TestGetCandles_MockModeUsesSymbolSeed(t *testing.T) {
	svc := newTestMarketService(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("mock mode must not call the upstream")
	}, "key")

	candles := svc.GetCandles(context.Background(), "AAPL", models.TimeRangeMonth, false)
	require.Len(t, candles, 30)
	assert.Equal(t, SeedPrice("AAPL"), candles[0].Open)

	assert.Len(t, svc.GetCandles(context.Background(), "AAPL", models.TimeRangeDay, false), 24)
	assert.Len(t, svc.GetCandles(context.Background(), "AAPL", models.TimeRangeYear, false), 250)
}

func TestGetCandles_LiveSuccess(t *testing.T) {
	svc := newTestMarketService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/stock/candle", r.URL.Path)
		assert.Equal(t, "AAPL", r.URL.Query().Get("symbol"))
		assert.Equal(t, "D", r.URL.Query().Get("resolution"))
		w.Write([]byte(`{"s":"ok","t":[1700000000,1700086400],"o":[10,11],"h":[12,13],"l":[9,10],"c":[11,12],"v":[1000,2000]}`))
	}, "key")

	candles := svc.GetCandles(context.Background(), "AAPL", models.TimeRangeMonth, true)
	require.Len(t, candles, 2)
	assert.Equal(t, int64(1700000000), candles[0].Time)
	assert.Equal(t, 10.0, candles[0].Open)
	assert.Equal(t, 13.0, candles[1].High)
	assert.Equal(t, int64(2000), candles[1].Volume)
	assert.NotEmpty(t, candles[0].Date)
}

func TestGetCandles_LiveFailureFallsBack(t *testing.T) {
	cases := map[string]http.HandlerFunc{
		"http error": func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		},
		"no data status": func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"s":"no_data"}`))
		},
		"mismatched arrays": func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"s":"ok","t":[1,2],"o":[10],"h":[12,13],"l":[9,10],"c":[11,12],"v":[1,2]}`))
		},
		"garbage body": func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`not json`))
		},
	}

	for name, upstream := range cases {
		t.Run(name, func(t *testing.T) {
			svc := newTestMarketService(t, upstream, "key")

			// Fallback shape is independent of the requested range.
			candles := svc.GetCandles(context.Background(), "AAPL", models.TimeRangeYear, true)
			require.Len(t, candles, 30)
			assert.Equal(t, 150.0, candles[0].Open)
		})
	}
}

func TestGetCandles_NoAPIKeyForcesMockPath(t *testing.T) {
	svc := newTestMarketService(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("must not call the upstream without a key")
	}, "")

	candles := svc.GetCandles(context.Background(), "TSLA", models.TimeRangeMonth, true)
	require.Len(t, candles, 30)
	assert.Equal(t, SeedPrice("TSLA"), candles[0].Open)
}

func TestGetQuote_LiveSuccessAndCaching(t *testing.T) {
	calls := 0
	svc := newTestMarketService(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, "/quote", r.URL.Path)
		w.Write([]byte(`{"c":187.32}`))
	}, "key")

	assert.Equal(t, 187.32, svc.GetQuote(context.Background(), "AAPL", true))
	assert.Equal(t, 187.32, svc.GetQuote(context.Background(), "AAPL", true))
	assert.Equal(t, 1, calls, "second quote must come from cache")
}

func TestGetQuote_LiveFailureReturnsDefault(t *testing.T) {
	svc := newTestMarketService(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	}, "key")

	assert.Equal(t, DefaultQuotePrice, svc.GetQuote(context.Background(), "AAPL", true))
}

func TestGetQuote_ZeroPriceTreatedAsFailure(t *testing.T) {
	svc := newTestMarketService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"c":0}`))
	}, "key")

	assert.Equal(t, DefaultQuotePrice, svc.GetQuote(context.Background(), "AAPL", true))
}

func TestGetQuote_MockModeIsSeeded(t *testing.T) {
	svc := newTestMarketService(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("mock mode must not call the upstream")
	}, "key")

	q := svc.GetQuote(context.Background(), "MSFT", false)
	assert.GreaterOrEqual(t, q, 100.0)
	assert.LessOrEqual(t, q, 100.0+400+5)
}
