// backend/src/services/interfaces.go
package services

import (
	"context"
	"errors"

	"github.com/username/alphatrade/backend/src/models"
)

// Mode names the two data universes the application can run against. Each
// mode owns its own persisted snapshot; switching never migrates state.
const (
	ModeMock = "MOCK"
	ModeReal = "REAL"
)

// Trade validation errors. Both leave the stored portfolio untouched.
var (
	// ErrNoPosition is returned when selling a symbol that is not held.
	ErrNoPosition = errors.New("no position held for symbol")
	// ErrInsufficientPosition is returned when a sell exceeds the held
	// quantity. There are no partial fills.
	ErrInsufficientPosition = errors.New("insufficient position for sale")
)

// TradeResult is the portfolio snapshot after a successful trade.
type TradeResult struct {
	Assets       []models.Asset       `json:"newAssets"`
	Transactions []models.Transaction `json:"newTransactions"`
}

// PortfolioStore is the durable backing for portfolio state. Implementations
// hold no business logic; MOCK and REAL rows live in separate namespaces.
type PortfolioStore interface {
	// LoadAssets returns the stored asset set for a mode, or the documented
	// seed data when no state has been written yet.
	LoadAssets(mode string) ([]models.Asset, error)
	// LoadTransactions returns the stored history for a mode, newest first,
	// or the documented seed history when no state has been written yet.
	LoadTransactions(mode string) ([]models.Transaction, error)
	// SaveSnapshot replaces both the asset set and the transaction history
	// for a mode as a single atomic unit.
	SaveSnapshot(mode string, assets []models.Asset, transactions []models.Transaction) error
}

// PortfolioService owns the authoritative asset set and transaction history.
type PortfolioService interface {
	GetAssets(liveEnabled bool) ([]models.Asset, error)
	GetTransactions(liveEnabled bool) ([]models.Transaction, error)
	// ExecuteTrade applies one trade with quantity > 0 (caller-enforced),
	// persists the result and returns the updated snapshot.
	ExecuteTrade(liveEnabled bool, trade models.Transaction) (*TradeResult, error)
	// AddManualAsset appends a user-declared holding and persists it.
	AddManualAsset(liveEnabled bool, asset models.Asset) ([]models.Asset, error)
}

// MarketService resolves quotes and candle series, transparently falling back
// to synthesized data when the live source is disabled or fails. Both methods
// are total: they never return an error to the caller.
type MarketService interface {
	GetQuote(ctx context.Context, symbol string, liveEnabled bool) float64
	GetCandles(ctx context.Context, symbol string, rng models.TimeRange, liveEnabled bool) []models.CandleData
}

// AnalysisService produces a natural-language read on a symbol. Failures
// degrade to a canned result; the portfolio core never depends on the output.
type AnalysisService interface {
	Analyze(ctx context.Context, symbol string, price float64, liveEnabled bool) models.AnalysisResult
}
