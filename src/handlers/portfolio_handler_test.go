package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/username/alphatrade/backend/src/config"
	"github.com/username/alphatrade/backend/src/models"
	"github.com/username/alphatrade/backend/src/services"
)

type stubPortfolioService struct {
	lastTrade   *models.Transaction
	lastLive    bool
	tradeErr    error
	tradeResult *services.TradeResult
}

func (s *stubPortfolioService) GetAssets(liveEnabled bool) ([]models.Asset, error) {
	s.lastLive = liveEnabled
	return []models.Asset{}, nil
}

func (s *stubPortfolioService) GetTransactions(liveEnabled bool) ([]models.Transaction, error) {
	return []models.Transaction{}, nil
}

func (s *stubPortfolioService) ExecuteTrade(liveEnabled bool, trade models.Transaction) (*services.TradeResult, error) {
	s.lastLive = liveEnabled
	s.lastTrade = &trade
	if s.tradeErr != nil {
		return nil, s.tradeErr
	}
	if s.tradeResult != nil {
		return s.tradeResult, nil
	}
	return &services.TradeResult{
		Assets:       []models.Asset{},
		Transactions: []models.Transaction{trade},
	}, nil
}

func (s *stubPortfolioService) AddManualAsset(liveEnabled bool, asset models.Asset) ([]models.Asset, error) {
	return []models.Asset{asset}, nil
}

func newTradeRequest(body string) *http.Request {
	return httptest.NewRequest(http.MethodPost, "/api/portfolio/trade", strings.NewReader(body))
}

func TestHandleExecuteTrade_BuildsTransaction(t *testing.T) {
	stub := &stubPortfolioService{}
	h := NewPortfolioHandler(stub, &config.AppConfig{})

	rec := httptest.NewRecorder()
	h.HandleExecuteTrade(rec, newTradeRequest(`{"symbol":"aapl","type":"buy","price":150.5,"quantity":2}`))

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, stub.lastTrade)
	assert.Equal(t, "AAPL", stub.lastTrade.Symbol)
	assert.Equal(t, models.TradeSideBuy, stub.lastTrade.Side)
	assert.Equal(t, 301.0, stub.lastTrade.Total)
	assert.NotEmpty(t, stub.lastTrade.ID)
	assert.NotEmpty(t, stub.lastTrade.Date)
	assert.False(t, stub.lastLive, "no API keys configured means MOCK default")
}

func TestHandleExecuteTrade_Validation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing symbol", `{"type":"BUY","price":10,"quantity":1}`},
		{"bad side", `{"symbol":"AAPL","type":"HOLD","price":10,"quantity":1}`},
		{"zero price", `{"symbol":"AAPL","type":"BUY","price":0,"quantity":1}`},
		{"negative quantity", `{"symbol":"AAPL","type":"SELL","price":10,"quantity":-1}`},
		{"garbage body", `{`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &stubPortfolioService{}
			h := NewPortfolioHandler(stub, &config.AppConfig{})

			rec := httptest.NewRecorder()
			h.HandleExecuteTrade(rec, newTradeRequest(tt.body))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Nil(t, stub.lastTrade, "invalid requests must not reach the service")
		})
	}
}

func TestHandleExecuteTrade_ValidationErrorsMapTo422(t *testing.T) {
	for _, tradeErr := range []error{services.ErrNoPosition, services.ErrInsufficientPosition} {
		stub := &stubPortfolioService{tradeErr: tradeErr}
		h := NewPortfolioHandler(stub, &config.AppConfig{})

		rec := httptest.NewRecorder()
		h.HandleExecuteTrade(rec, newTradeRequest(`{"symbol":"AAPL","type":"SELL","price":10,"quantity":1}`))

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

		var resp map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Contains(t, resp["error"], tradeErr.Error())
	}
}

func TestHandleExecuteTrade_ModeParamEnablesLive(t *testing.T) {
	stub := &stubPortfolioService{}
	h := NewPortfolioHandler(stub, &config.AppConfig{})

	req := httptest.NewRequest(http.MethodPost, "/api/portfolio/trade?mode=real",
		strings.NewReader(`{"symbol":"AAPL","type":"BUY","price":10,"quantity":1}`))
	rec := httptest.NewRecorder()
	h.HandleExecuteTrade(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, stub.lastLive)
}

func TestHandleAddManualAsset(t *testing.T) {
	stub := &stubPortfolioService{}
	h := NewPortfolioHandler(stub, &config.AppConfig{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/portfolio/assets",
		strings.NewReader(`{"symbol":"BTC","quantity":0.5,"avgCost":40000}`))
	h.HandleAddManualAsset(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var assets []models.Asset
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &assets))
	require.Len(t, assets, 1)
	assert.Equal(t, 40000.0, assets[0].CurrentPrice)
}

func TestHandleAddManualAsset_RejectsNonPositiveQuantity(t *testing.T) {
	stub := &stubPortfolioService{}
	h := NewPortfolioHandler(stub, &config.AppConfig{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/portfolio/assets",
		strings.NewReader(`{"symbol":"BTC","quantity":0,"avgCost":40000}`))
	h.HandleAddManualAsset(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
