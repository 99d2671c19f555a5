// backend/src/handlers/market_handler.go
package handlers

import (
	"net/http"
	"strings"

	"github.com/username/alphatrade/backend/src/config"
	"github.com/username/alphatrade/backend/src/models"
	"github.com/username/alphatrade/backend/src/services"
)

type MarketHandler struct {
	marketService services.MarketService
	cfg           *config.AppConfig
}

func NewMarketHandler(marketService services.MarketService, cfg *config.AppConfig) *MarketHandler {
	return &MarketHandler{
		marketService: marketService,
		cfg:           cfg,
	}
}

func symbolParam(r *http.Request) (string, bool) {
	symbol := strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("symbol")))
	return symbol, symbol != ""
}

func (h *MarketHandler) HandleGetCandles(w http.ResponseWriter, r *http.Request) {
	symbol, ok := symbolParam(r)
	if !ok {
		sendJSONError(w, "symbol is required", http.StatusBadRequest)
		return
	}

	rng := models.TimeRangeDay
	if raw := r.URL.Query().Get("range"); raw != "" {
		parsed, err := models.ParseTimeRange(raw)
		if err != nil {
			sendJSONError(w, err.Error(), http.StatusBadRequest)
			return
		}
		rng = parsed
	}

	candles := h.marketService.GetCandles(r.Context(), symbol, rng, liveEnabled(r, h.cfg))
	sendJSON(w, candles)
}

func (h *MarketHandler) HandleGetQuote(w http.ResponseWriter, r *http.Request) {
	symbol, ok := symbolParam(r)
	if !ok {
		sendJSONError(w, "symbol is required", http.StatusBadRequest)
		return
	}

	price := h.marketService.GetQuote(r.Context(), symbol, liveEnabled(r, h.cfg))
	sendJSON(w, map[string]any{"symbol": symbol, "price": price})
}
