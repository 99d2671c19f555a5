// backend/src/handlers/analysis_handler.go
package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/username/alphatrade/backend/src/config"
	"github.com/username/alphatrade/backend/src/services"
)

type AnalysisHandler struct {
	analysisService services.AnalysisService
	cfg             *config.AppConfig
}

func NewAnalysisHandler(analysisService services.AnalysisService, cfg *config.AppConfig) *AnalysisHandler {
	return &AnalysisHandler{
		analysisService: analysisService,
		cfg:             cfg,
	}
}

type analysisRequest struct {
	Symbol string  `json:"symbol"`
	Price  float64 `json:"price"`
}

func (h *AnalysisHandler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	req.Symbol = strings.ToUpper(strings.TrimSpace(req.Symbol))
	if req.Symbol == "" {
		sendJSONError(w, "symbol is required", http.StatusBadRequest)
		return
	}

	result := h.analysisService.Analyze(r.Context(), req.Symbol, req.Price, liveEnabled(r, h.cfg))
	sendJSON(w, result)
}
