package models

// TradeSide is the direction of an executed trade.
type TradeSide string

const (
	TradeSideBuy  TradeSide = "BUY"
	TradeSideSell TradeSide = "SELL"
)

// Transaction is an immutable record of one executed trade. It is created
// exactly once at execution time and prepended to the transaction history,
// so the history is always most-recent-first.
type Transaction struct {
	ID       string    `json:"id"`
	Date     string    `json:"date"` // calendar date of execution, YYYY-MM-DD
	Symbol   string    `json:"symbol"`
	Side     TradeSide `json:"type"`
	Price    float64   `json:"price"`    // per-unit execution price
	Quantity float64   `json:"quantity"` // always > 0
	Total    float64   `json:"total"`    // price * quantity
}
