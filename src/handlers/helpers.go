package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/username/alphatrade/backend/src/config"
	"github.com/username/alphatrade/backend/src/logger"
)

func sendJSONError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	logger.L.Warn("Sending JSON error to client", "message", message, "statusCode", statusCode)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

func sendJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(payload)
}

// liveEnabled resolves the mode of one request. The mode query parameter is
// MOCK or REAL; when absent the config default applies. The flag is threaded
// explicitly into every service call, never held as global state.
func liveEnabled(r *http.Request, cfg *config.AppConfig) bool {
	mode := strings.ToUpper(r.URL.Query().Get("mode"))
	if mode == "" {
		mode = cfg.DefaultMode()
	}
	return mode == "REAL"
}
