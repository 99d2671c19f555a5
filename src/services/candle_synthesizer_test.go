package services

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateCandles_SeriesShape(t *testing.T) {
	candles := GenerateCandles(250, 150)
	require.Len(t, candles, 250)

	for i, c := range candles {
		assert.LessOrEqual(t, c.Low, math.Min(c.Open, c.Close), "bar %d: low above body", i)
		assert.GreaterOrEqual(t, c.High, math.Max(c.Open, c.Close), "bar %d: high below body", i)
		assert.LessOrEqual(t, c.Low, c.High, "bar %d", i)
		assert.GreaterOrEqual(t, c.Volume, int64(500_000), "bar %d", i)
		assert.Less(t, c.Volume, int64(1_500_000), "bar %d", i)
		assert.NotEmpty(t, c.Date, "bar %d", i)

		if i > 0 {
			assert.Greater(t, c.Time, candles[i-1].Time, "times must be strictly increasing")
		}
	}
}

func TestGenerateCandles_PricesCarryTwoDecimals(t *testing.T) {
	for _, c := range GenerateCandles(50, 123.45) {
		for _, v := range []float64{c.Open, c.High, c.Low, c.Close} {
			assert.InDelta(t, v, math.Round(v*100)/100, 1e-9)
		}
	}
}

func TestGenerateCandles_WalkIsBounded(t *testing.T) {
	// Each close moves at most 1% from its open, so the first open equals the
	// requested start price and drift stays moderate over a short series.
	candles := GenerateCandles(30, 200)
	require.NotEmpty(t, candles)
	assert.Equal(t, 200.0, candles[0].Open)

	for i, c := range candles {
		assert.LessOrEqual(t, math.Abs(c.Close-c.Open), c.Open*0.01+0.01, "bar %d moved more than half its volatility", i)
	}
}

func TestSeedPrice_IsDeterministicPerSymbol(t *testing.T) {
	assert.Equal(t, SeedPrice("AAPL"), SeedPrice("AAPL"))
	assert.GreaterOrEqual(t, SeedPrice("AAPL"), 150.0)
	assert.Less(t, SeedPrice("AAPL"), 200.0)

	// Different symbols generally seed differently.
	assert.NotEqual(t, SeedPrice("AAPL"), SeedPrice("TSLA"))
}

func TestSeedQuote_StaysNearDeterministicBase(t *testing.T) {
	base := 0.0
	for _, c := range []byte("MSFT") {
		base += float64(c)
	}
	base = 100 + math.Mod(base, 400)

	for range 20 {
		q := SeedQuote("MSFT")
		assert.GreaterOrEqual(t, q, base)
		assert.LessOrEqual(t, q, base+5)
	}
}
