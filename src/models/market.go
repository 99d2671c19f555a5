package models

import "fmt"

// TimeRange selects the span and resolution of a candle series.
type TimeRange string

const (
	TimeRangeDay   TimeRange = "1D"
	TimeRangeMonth TimeRange = "1M"
	TimeRangeYear  TimeRange = "1Y"
)

// ParseTimeRange parses a string into a TimeRange.
func ParseTimeRange(s string) (TimeRange, error) {
	switch TimeRange(s) {
	case TimeRangeDay, TimeRangeMonth, TimeRangeYear:
		return TimeRange(s), nil
	default:
		return "", fmt.Errorf("unknown time range: %q", s)
	}
}

// CandleData is one OHLCV bar. Bars are never mutated after creation and
// series are ordered by Time ascending.
type CandleData struct {
	Time   int64   `json:"time"` // epoch seconds
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume int64   `json:"volume"`
	Date   string  `json:"dateStr"` // display label derived from Time, YYYY-MM-DD
}
