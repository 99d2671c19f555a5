// backend/src/handlers/portfolio_handler.go
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/username/alphatrade/backend/src/config"
	"github.com/username/alphatrade/backend/src/logger"
	"github.com/username/alphatrade/backend/src/models"
	"github.com/username/alphatrade/backend/src/services"
)

type PortfolioHandler struct {
	portfolioService services.PortfolioService
	cfg              *config.AppConfig
}

func NewPortfolioHandler(portfolioService services.PortfolioService, cfg *config.AppConfig) *PortfolioHandler {
	return &PortfolioHandler{
		portfolioService: portfolioService,
		cfg:              cfg,
	}
}

func (h *PortfolioHandler) HandleGetAssets(w http.ResponseWriter, r *http.Request) {
	assets, err := h.portfolioService.GetAssets(liveEnabled(r, h.cfg))
	if err != nil {
		sendJSONError(w, fmt.Sprintf("Error retrieving assets: %v", err), http.StatusInternalServerError)
		return
	}
	sendJSON(w, assets)
}

func (h *PortfolioHandler) HandleGetTransactions(w http.ResponseWriter, r *http.Request) {
	transactions, err := h.portfolioService.GetTransactions(liveEnabled(r, h.cfg))
	if err != nil {
		sendJSONError(w, fmt.Sprintf("Error retrieving transactions: %v", err), http.StatusInternalServerError)
		return
	}
	sendJSON(w, transactions)
}

type tradeRequest struct {
	Symbol   string  `json:"symbol"`
	Side     string  `json:"type"`
	Price    float64 `json:"price"`
	Quantity float64 `json:"quantity"`
}

func (h *PortfolioHandler) HandleExecuteTrade(w http.ResponseWriter, r *http.Request) {
	var req tradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	req.Symbol = strings.ToUpper(strings.TrimSpace(req.Symbol))
	if req.Symbol == "" {
		sendJSONError(w, "symbol is required", http.StatusBadRequest)
		return
	}
	side := models.TradeSide(strings.ToUpper(req.Side))
	if side != models.TradeSideBuy && side != models.TradeSideSell {
		sendJSONError(w, "type must be BUY or SELL", http.StatusBadRequest)
		return
	}
	if req.Price <= 0 {
		sendJSONError(w, "price must be positive", http.StatusBadRequest)
		return
	}
	if req.Quantity <= 0 {
		sendJSONError(w, "quantity must be positive", http.StatusBadRequest)
		return
	}

	trade := models.Transaction{
		ID:       uuid.New().String(),
		Date:     time.Now().Format("2006-01-02"),
		Symbol:   req.Symbol,
		Side:     side,
		Price:    req.Price,
		Quantity: req.Quantity,
		Total:    req.Price * req.Quantity,
	}

	result, err := h.portfolioService.ExecuteTrade(liveEnabled(r, h.cfg), trade)
	if err != nil {
		if errors.Is(err, services.ErrNoPosition) || errors.Is(err, services.ErrInsufficientPosition) {
			sendJSONError(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		logger.FromContext(r.Context()).Error("Trade execution failed", "symbol", trade.Symbol, "error", err)
		sendJSONError(w, "trade could not be executed", http.StatusInternalServerError)
		return
	}
	sendJSON(w, result)
}

type manualAssetRequest struct {
	Symbol   string  `json:"symbol"`
	Quantity float64 `json:"quantity"`
	AvgCost  float64 `json:"avgCost"`
}

func (h *PortfolioHandler) HandleAddManualAsset(w http.ResponseWriter, r *http.Request) {
	var req manualAssetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Symbol) == "" || req.Quantity <= 0 {
		sendJSONError(w, "symbol and a positive quantity are required", http.StatusBadRequest)
		return
	}

	asset := models.Asset{
		Symbol:       req.Symbol,
		Name:         "Custom asset",
		Quantity:     req.Quantity,
		AvgCost:      req.AvgCost,
		CurrentPrice: req.AvgCost,
		Type:         models.AssetTypeStock,
	}

	assets, err := h.portfolioService.AddManualAsset(liveEnabled(r, h.cfg), asset)
	if err != nil {
		sendJSONError(w, fmt.Sprintf("Error adding asset: %v", err), http.StatusInternalServerError)
		return
	}
	sendJSON(w, assets)
}
