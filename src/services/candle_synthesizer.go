package services

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/username/alphatrade/backend/src/models"
)

const (
	// Relative volatility of one synthesized bar.
	candleVolatility = 0.02

	volumeFloor = 500_000
	volumeSpan  = 1_000_000

	seedBasePrice  = 150.0
	seedPriceSpan  = 50
	quoteBasePrice = 100.0
	quoteBaseSpan  = 400
	quoteJitter    = 5.0
)

// GenerateCandles synthesizes an OHLCV series of the given length as a bounded
// random walk starting at startPrice. Bars are spaced one calendar day apart,
// end at "now" and are ordered by time ascending. All prices carry two
// decimals. Only the starting price is deterministic; the walk itself is not.
func GenerateCandles(count int, startPrice float64) []models.CandleData {
	candles := make([]models.CandleData, 0, count)
	price := startPrice
	now := time.Now()

	for i := count; i > 0; i-- {
		barTime := now.Add(-time.Duration(i) * 24 * time.Hour)
		volatility := price * candleVolatility
		change := (rand.Float64() - 0.5) * volatility

		open := price
		close := price + change
		high := math.Max(open, close) + rand.Float64()*volatility*0.5
		low := math.Min(open, close) - rand.Float64()*volatility*0.5
		volume := rand.Int64N(volumeSpan) + volumeFloor

		candles = append(candles, models.CandleData{
			Time:   barTime.Unix(),
			Open:   round2(open),
			High:   round2(high),
			Low:    round2(low),
			Close:  round2(close),
			Volume: volume,
			Date:   barTime.UTC().Format("2006-01-02"),
		})
		price = close
	}
	return candles
}

// SeedPrice derives the chart starting price for a symbol. It is a pure
// function of the symbol string so repeated mock requests for the same symbol
// produce visually stable series.
func SeedPrice(symbol string) float64 {
	return seedBasePrice + float64(symbolSeed(symbol)%seedPriceSpan)
}

// SeedQuote derives a mock quote for a symbol: a deterministic base plus a
// small random jitter, rounded to two decimals.
func SeedQuote(symbol string) float64 {
	base := quoteBasePrice + float64(symbolSeed(symbol)%quoteBaseSpan)
	return round2(base + rand.Float64()*quoteJitter)
}

func symbolSeed(symbol string) int {
	seed := 0
	for _, c := range []byte(symbol) {
		seed += int(c)
	}
	return seed
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
