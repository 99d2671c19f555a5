package main

import (
	"encoding/json"
	stdlog "log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/patrickmn/go-cache"
	"github.com/username/alphatrade/backend/src/config"
	"github.com/username/alphatrade/backend/src/database"
	"github.com/username/alphatrade/backend/src/handlers"
	"github.com/username/alphatrade/backend/src/logger"
	"github.com/username/alphatrade/backend/src/services"
	"github.com/username/alphatrade/backend/src/storage"
	"golang.org/x/time/rate"
)

var limiter = rate.NewLimiter(rate.Every(100*time.Millisecond), 30)

func rateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !limiter.Allow() {
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
			logger.L.Warn("Rate limit exceeded", "path", r.URL.Path)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func enableCORS(frontendBaseURL string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin == frontendBaseURL {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, Content-Length, Accept-Encoding")
			} else if origin == "" {
				w.Header().Set("Access-Control-Allow-Origin", "*")
			}

			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func main() {
	cfg := config.LoadConfig()
	logger.InitLogger(cfg.LogLevel)

	logger.L.Info("AlphaTrade backend server starting...", "defaultMode", cfg.DefaultMode())

	logger.L.Info("Initializing database...", "path", cfg.DatabasePath)
	db := database.InitDB(cfg.DatabasePath)
	database.RunMigrations(db, cfg.DatabasePath)

	marketCache := cache.New(services.DefaultCacheExpiration, services.CacheCleanupInterval)

	store := storage.NewSQLiteStore(db)
	marketService := services.NewMarketService(cfg, marketCache)
	portfolioService := services.NewPortfolioService(store)
	analysisService := services.NewAnalysisService(cfg)

	marketHandler := handlers.NewMarketHandler(marketService, cfg)
	portfolioHandler := handlers.NewPortfolioHandler(portfolioService, cfg)
	analysisHandler := handlers.NewAnalysisHandler(analysisService, cfg)

	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(handlers.ContextualLoggerMiddleware)
	r.Use(enableCORS(cfg.FrontendBaseURL))
	r.Use(rateLimitMiddleware)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "AlphaTrade Backend is running"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/market/candles", marketHandler.HandleGetCandles)
		r.Get("/market/quote", marketHandler.HandleGetQuote)

		r.Get("/portfolio/assets", portfolioHandler.HandleGetAssets)
		r.Post("/portfolio/assets", portfolioHandler.HandleAddManualAsset)
		r.Get("/portfolio/transactions", portfolioHandler.HandleGetTransactions)
		r.Post("/portfolio/trade", portfolioHandler.HandleExecuteTrade)

		r.Post("/analysis", analysisHandler.HandleAnalyze)
	})

	serverAddr := ":" + cfg.Port
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.L.Info("Server starting", "address", serverAddr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		stdlog.Fatalf("Failed to start server: %v", err)
	}
}
