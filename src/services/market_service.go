// backend/src/services/market_service.go
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/username/alphatrade/backend/src/config"
	"github.com/username/alphatrade/backend/src/logger"
	"github.com/username/alphatrade/backend/src/models"
	"golang.org/x/time/rate"
)

// Cache settings shared with main when constructing the go-cache instance.
const (
	DefaultCacheExpiration = 15 * time.Minute
	CacheCleanupInterval   = 30 * time.Minute
)

const (
	// DefaultQuotePrice is the fixed price returned when a live quote fetch
	// fails. A live-mode quote must never fail the caller.
	DefaultQuotePrice = 150.00
	// Fallback candle series shape when the live source fails, independent
	// of the requested range.
	fallbackCandleCount = 30
	fallbackStartPrice  = 150.00

	quoteCacheTTL  = 1 * time.Minute
	candleCacheTTL = 5 * time.Minute
)

// Candle counts per range in mock mode.
var mockCandleCounts = map[models.TimeRange]int{
	models.TimeRangeDay:   24,
	models.TimeRangeMonth: 30,
	models.TimeRangeYear:  250,
}

// --- API Response Structs ---

type finnhubQuoteResponse struct {
	Current float64 `json:"c"`
}

type finnhubCandleResponse struct {
	Status     string    `json:"s"` // "ok" or "no_data"
	Timestamps []int64   `json:"t"`
	Open       []float64 `json:"o"`
	High       []float64 `json:"h"`
	Low        []float64 `json:"l"`
	Close      []float64 `json:"c"`
	Volume     []int64   `json:"v"`
}

// --- Service Implementation ---

type marketServiceImpl struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	cache      *cache.Cache
	limiter    *rate.Limiter
}

// NewMarketService creates a MarketService backed by a Finnhub-compatible
// upstream. When no API key is configured every request takes the mock path.
func NewMarketService(cfg *config.AppConfig, marketCache *cache.Cache) MarketService {
	return &marketServiceImpl{
		httpClient: &http.Client{Timeout: cfg.UpstreamTimeout},
		baseURL:    cfg.MarketDataBaseURL,
		apiKey:     cfg.FinnhubAPIKey,
		cache:      marketCache,
		// Finnhub's free tier allows 60 calls/minute.
		limiter: rate.NewLimiter(rate.Every(time.Second), 30),
	}
}

func (s *marketServiceImpl) GetQuote(ctx context.Context, symbol string, liveEnabled bool) float64 {
	if !liveEnabled || s.apiKey == "" {
		return SeedQuote(symbol)
	}

	cacheKey := fmt.Sprintf("quote:%s", symbol)
	if cached, found := s.cache.Get(cacheKey); found {
		return cached.(float64)
	}

	price, err := s.fetchQuote(ctx, symbol)
	if err != nil {
		logger.FromContext(ctx).Warn("Live quote fetch failed, using default price",
			"symbol", symbol, "error", err)
		return DefaultQuotePrice
	}
	s.cache.Set(cacheKey, price, quoteCacheTTL)
	return price
}

func (s *marketServiceImpl) GetCandles(ctx context.Context, symbol string, rng models.TimeRange, liveEnabled bool) []models.CandleData {
	if !liveEnabled || s.apiKey == "" {
		count, ok := mockCandleCounts[rng]
		if !ok {
			count = fallbackCandleCount
		}
		return GenerateCandles(count, SeedPrice(symbol))
	}

	cacheKey := fmt.Sprintf("candles:%s:%s", symbol, rng)
	if cached, found := s.cache.Get(cacheKey); found {
		return cached.([]models.CandleData)
	}

	candles, err := s.fetchCandles(ctx, symbol, rng)
	if err != nil {
		logger.FromContext(ctx).Warn("Live candle fetch failed, falling back to synthesized series",
			"symbol", symbol, "range", rng, "error", err)
		return GenerateCandles(fallbackCandleCount, fallbackStartPrice)
	}
	s.cache.Set(cacheKey, candles, candleCacheTTL)
	return candles
}

func (s *marketServiceImpl) fetchQuote(ctx context.Context, symbol string) (float64, error) {
	quoteURL := fmt.Sprintf("%s/quote?symbol=%s&token=%s", s.baseURL, url.QueryEscape(symbol), s.apiKey)

	var data finnhubQuoteResponse
	if err := s.getJSON(ctx, quoteURL, &data); err != nil {
		return 0, err
	}
	if data.Current == 0 {
		return 0, fmt.Errorf("no price data for symbol %s", symbol)
	}
	return data.Current, nil
}

// resolutionFor maps a chart range to the upstream resolution and span.
func resolutionFor(rng models.TimeRange, end time.Time) (resolution string, start time.Time) {
	switch rng {
	case models.TimeRangeDay:
		return "60", end.Add(-24 * time.Hour) // hourly over 1 day
	case models.TimeRangeYear:
		return "W", end.AddDate(-1, 0, 0) // weekly over 1 year
	default:
		return "D", end.AddDate(0, 0, -30) // daily over 1 month
	}
}

func (s *marketServiceImpl) fetchCandles(ctx context.Context, symbol string, rng models.TimeRange) ([]models.CandleData, error) {
	end := time.Now()
	resolution, start := resolutionFor(rng, end)

	candleURL := fmt.Sprintf("%s/stock/candle?symbol=%s&resolution=%s&from=%d&to=%d&token=%s",
		s.baseURL, url.QueryEscape(symbol), resolution, start.Unix(), end.Unix(), s.apiKey)

	var data finnhubCandleResponse
	if err := s.getJSON(ctx, candleURL, &data); err != nil {
		return nil, err
	}
	if data.Status != "ok" {
		return nil, fmt.Errorf("upstream returned status %q", data.Status)
	}
	n := len(data.Timestamps)
	if n == 0 || len(data.Open) != n || len(data.High) != n || len(data.Low) != n || len(data.Close) != n || len(data.Volume) != n {
		return nil, fmt.Errorf("malformed candle payload for symbol %s", symbol)
	}

	candles := make([]models.CandleData, 0, n)
	for i, ts := range data.Timestamps {
		candles = append(candles, models.CandleData{
			Time:   ts,
			Open:   data.Open[i],
			High:   data.High[i],
			Low:    data.Low[i],
			Close:  data.Close[i],
			Volume: data.Volume[i],
			Date:   time.Unix(ts, 0).UTC().Format("2006-01-02"),
		})
	}
	return candles, nil
}

// getJSON performs one rate-limited upstream GET and decodes the JSON body.
func (s *marketServiceImpl) getJSON(ctx context.Context, rawURL string, out any) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("waiting for rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("calling market data API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("market data API returned non-OK status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding market data response: %w", err)
	}
	return nil
}
