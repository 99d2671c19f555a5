// backend/src/services/portfolio_service.go
package services

import (
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/username/alphatrade/backend/src/logger"
	"github.com/username/alphatrade/backend/src/models"
)

type portfolioServiceImpl struct {
	store PortfolioStore
	// Serializes load-mutate-save. The ledger is a single-writer design;
	// concurrent trade execution must queue here.
	mu sync.Mutex
}

// NewPortfolioService creates the PortfolioService on top of a store.
func NewPortfolioService(store PortfolioStore) PortfolioService {
	return &portfolioServiceImpl{store: store}
}

func modeFor(liveEnabled bool) string {
	if liveEnabled {
		return ModeReal
	}
	return ModeMock
}

func (s *portfolioServiceImpl) GetAssets(liveEnabled bool) ([]models.Asset, error) {
	return s.store.LoadAssets(modeFor(liveEnabled))
}

func (s *portfolioServiceImpl) GetTransactions(liveEnabled bool) ([]models.Transaction, error) {
	return s.store.LoadTransactions(modeFor(liveEnabled))
}

func (s *portfolioServiceImpl) ExecuteTrade(liveEnabled bool, trade models.Transaction) (*TradeResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	mode := modeFor(liveEnabled)
	assets, err := s.store.LoadAssets(mode)
	if err != nil {
		return nil, fmt.Errorf("loading assets: %w", err)
	}
	transactions, err := s.store.LoadTransactions(mode)
	if err != nil {
		return nil, fmt.Errorf("loading transactions: %w", err)
	}

	// All mutation happens on this working copy; nothing is committed until
	// the whole operation has succeeded.
	newAssets := make([]models.Asset, len(assets))
	copy(newAssets, assets)

	switch trade.Side {
	case models.TradeSideBuy:
		newAssets = applyBuy(newAssets, trade)
	case models.TradeSideSell:
		newAssets, err = applySell(newAssets, trade)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown trade side: %q", trade.Side)
	}

	// Positions sold down to exactly zero are dropped; the cash asset is
	// never removed regardless of its balance.
	kept := newAssets[:0]
	for _, a := range newAssets {
		if a.Quantity > 0 || a.IsCash() {
			kept = append(kept, a)
		}
	}
	newAssets = kept

	newTransactions := make([]models.Transaction, 0, len(transactions)+1)
	newTransactions = append(newTransactions, trade)
	newTransactions = append(newTransactions, transactions...)

	// Durability is part of the trade's success contract.
	if err := s.store.SaveSnapshot(mode, newAssets, newTransactions); err != nil {
		return nil, fmt.Errorf("persisting trade: %w", err)
	}

	logger.L.Info("Trade executed",
		"mode", mode, "symbol", trade.Symbol, "side", trade.Side,
		"quantity", trade.Quantity, "price", trade.Price)

	return &TradeResult{Assets: newAssets, Transactions: newTransactions}, nil
}

// applyBuy merges a buy into the asset set: weighted-average cost on an
// existing position, a fresh STOCK asset otherwise, and cash settlement
// against the USD asset. Cash may go negative; there is deliberately no
// insufficient-funds check.
func applyBuy(assets []models.Asset, trade models.Transaction) []models.Asset {
	idx := findBySymbol(assets, trade.Symbol)
	if idx >= 0 {
		asset := assets[idx]
		totalCost := asset.Quantity*asset.AvgCost + trade.Quantity*trade.Price
		totalQty := asset.Quantity + trade.Quantity
		asset.Quantity = totalQty
		asset.AvgCost = round2(totalCost / totalQty)
		assets[idx] = asset
	} else {
		assets = append(assets, models.Asset{
			ID:           uuid.New().String(),
			Symbol:       trade.Symbol,
			Name:         trade.Symbol,
			Quantity:     trade.Quantity,
			AvgCost:      trade.Price,
			CurrentPrice: trade.Price,
			Type:         models.AssetTypeStock,
		})
	}

	if cashIdx := findBySymbol(assets, models.CashSymbol); cashIdx >= 0 {
		assets[cashIdx].Quantity -= trade.Total
	}
	return assets
}

// applySell debits an existing position. Average cost is left unchanged:
// selling never affects the remaining position's cost basis.
func applySell(assets []models.Asset, trade models.Transaction) ([]models.Asset, error) {
	idx := findBySymbol(assets, trade.Symbol)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoPosition, trade.Symbol)
	}
	if assets[idx].Quantity < trade.Quantity {
		return nil, fmt.Errorf("%w: have %g, want %g %s",
			ErrInsufficientPosition, assets[idx].Quantity, trade.Quantity, trade.Symbol)
	}

	assets[idx].Quantity -= trade.Quantity
	if cashIdx := findBySymbol(assets, models.CashSymbol); cashIdx >= 0 {
		assets[cashIdx].Quantity += trade.Total
	}
	return assets, nil
}

func (s *portfolioServiceImpl) AddManualAsset(liveEnabled bool, asset models.Asset) ([]models.Asset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	mode := modeFor(liveEnabled)
	assets, err := s.store.LoadAssets(mode)
	if err != nil {
		return nil, fmt.Errorf("loading assets: %w", err)
	}
	transactions, err := s.store.LoadTransactions(mode)
	if err != nil {
		return nil, fmt.Errorf("loading transactions: %w", err)
	}

	if asset.ID == "" {
		asset.ID = uuid.New().String()
	}
	asset.Symbol = strings.ToUpper(asset.Symbol)
	if asset.Type == "" {
		asset.Type = models.AssetTypeStock
	}
	if asset.CurrentPrice == 0 {
		asset.CurrentPrice = asset.AvgCost
	}

	newAssets := make([]models.Asset, len(assets), len(assets)+1)
	copy(newAssets, assets)
	newAssets = append(newAssets, asset)

	if err := s.store.SaveSnapshot(mode, newAssets, transactions); err != nil {
		return nil, fmt.Errorf("persisting asset: %w", err)
	}
	return newAssets, nil
}

func findBySymbol(assets []models.Asset, symbol string) int {
	for i, a := range assets {
		if a.Symbol == symbol {
			return i
		}
	}
	return -1
}
