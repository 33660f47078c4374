package server

import (
	"encoding/json"
	"log"
	"net/http"

	"StockPulse/internal/apperr"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[ERROR] encode response: %v", err)
	}
}

func writeData(w http.ResponseWriter, data any, cached bool) {
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    data,
		"cached":  cached,
	})
}

func writeErr(w http.ResponseWriter, err error) {
	body := map[string]any{
		"success": false,
		"error":   err.Error(),
		"code":    apperr.CodeOf(err),
	}
	if details := apperr.DetailsOf(err); len(details) > 0 {
		body["details"] = details
	}
	writeJSON(w, apperr.StatusOf(err), body)
}

func writeRateLimited(w http.ResponseWriter) {
	w.Header().Set("Retry-After", "60")
	writeJSON(w, http.StatusTooManyRequests, map[string]any{
		"success": false,
		"error":   "Rate limit exceeded",
		"code":    apperr.CodeRateLimit,
	})
}
