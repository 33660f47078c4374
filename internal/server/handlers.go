package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"StockPulse/internal/apperr"
	"StockPulse/internal/archive"
	"StockPulse/internal/model"
	"StockPulse/internal/scanner"
	"StockPulse/internal/ticker"
)

// tickerListTTL caches discovery results longer than signals; the
// trending and screener lists move slowly.
const tickerListTTL = 30 * time.Minute

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	validation := ticker.Validate(r.PathValue("ticker"))
	if !validation.Valid {
		writeErr(w, apperr.Validation("invalid ticker symbol", validation.Errors...))
		return
	}
	symbol := validation.Sanitized

	cacheKey := "stock:" + symbol
	if sig, ok := s.signals.Get(cacheKey); ok {
		writeData(w, sig, true)
		return
	}

	sig, err := s.analyzer.Analyze(r.Context(), symbol)
	if err != nil {
		writeErr(w, err)
		return
	}

	s.signals.Set(cacheKey, sig, s.cacheTTL)
	// Archiving is best effort for ad-hoc requests.
	if err := s.archive.SaveSignal(sig, ""); err != nil {
		log.Printf("[WARN] archive signal for %s: %v", symbol, err)
	}

	writeData(w, sig, false)
}

type tickersRequest struct {
	Tickers []string `json:"tickers"`
}

// validateAll sanitizes every requested ticker or reports all failures
// at once.
func validateAll(raw []string) ([]string, *apperr.Error) {
	sanitized := make([]string, 0, len(raw))
	var details []string
	for _, t := range raw {
		v := ticker.Validate(t)
		if !v.Valid {
			details = append(details, fmt.Sprintf("%s: %s", t, strings.Join(v.Errors, "; ")))
			continue
		}
		sanitized = append(sanitized, v.Sanitized)
	}
	if len(details) > 0 {
		return nil, apperr.Validation("invalid ticker symbols found", details...)
	}
	return sanitized, nil
}

type batchRow struct {
	Ticker         string               `json:"ticker"`
	Recommendation model.Recommendation `json:"recommendation,omitempty"`
	Confidence     float64              `json:"confidence,omitempty"`
	Price          float64              `json:"price,omitempty"`
	PotentialGain  float64              `json:"potential_gain,omitempty"`
	Error          string               `json:"error,omitempty"`
}

func (s *Server) handleBatch(w http.ResponseWriter, r *http.Request) {
	var req tickersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.Tickers) == 0 {
		writeErr(w, apperr.Validation("please provide an array of tickers"))
		return
	}
	if len(req.Tickers) > 10 {
		writeErr(w, apperr.Validation("maximum 10 tickers per request"))
		return
	}

	symbols, verr := validateAll(req.Tickers)
	if verr != nil {
		writeErr(w, verr)
		return
	}

	outcomes := s.scanner.Scan(r.Context(), symbols)
	rows := make([]batchRow, len(outcomes))
	for i, o := range outcomes {
		if o.Err != nil || o.Signal == nil {
			rows[i] = batchRow{Ticker: o.Ticker, Error: "analysis failed"}
			continue
		}
		rows[i] = batchRow{
			Ticker:         o.Signal.Ticker,
			Recommendation: o.Signal.Recommendation,
			Confidence:     o.Signal.Confidence,
			Price:          o.Signal.Price,
			PotentialGain:  o.Signal.PotentialGain,
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    rows,
	})
}

func (s *Server) handleScannerGet(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 20)
	if limit > 50 {
		limit = 50
	}
	strategy := s.strategy
	if q := r.URL.Query().Get("strategy"); q != "" {
		strategy = ticker.Strategy(q)
	}

	cacheKey := fmt.Sprintf("tickers:%s:%d", strategy, limit)
	symbols, ok := s.tickers.Get(cacheKey)
	if !ok {
		d := &ticker.Discoverer{Source: s.discoverer.Source, Limit: limit}
		symbols = d.Discover(r.Context(), strategy)
		s.tickers.Set(cacheKey, symbols, tickerListTTL)
	}

	rows := scanner.Rank(s.scanner.Scan(r.Context(), symbols))
	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"data":     rows,
		"total":    len(rows),
		"strategy": strategy,
	})
}

func (s *Server) handleScannerPost(w http.ResponseWriter, r *http.Request) {
	var req tickersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.Tickers) == 0 {
		writeErr(w, apperr.Validation("please provide an array of tickers"))
		return
	}
	if len(req.Tickers) > 50 {
		writeErr(w, apperr.Validation("maximum 50 tickers per request"))
		return
	}

	symbols, verr := validateAll(req.Tickers)
	if verr != nil {
		writeErr(w, verr)
		return
	}

	rows := scanner.Rank(s.scanner.Scan(r.Context(), symbols))
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    rows,
		"total":   len(rows),
	})
}

type storedSignalRow struct {
	archive.StoredSignal
	Age string `json:"age"`
}

func (s *Server) handleSignals(w http.ResponseWriter, r *http.Request) {
	validation := ticker.Validate(r.PathValue("ticker"))
	if !validation.Valid {
		writeErr(w, apperr.Validation("invalid ticker symbol", validation.Errors...))
		return
	}

	limit := queryInt(r, "limit", 20)
	stored, err := s.archive.RecentSignals(validation.Sanitized, limit)
	if err != nil {
		writeErr(w, apperr.Analysis("failed to load stored signals", err))
		return
	}

	rows := make([]storedSignalRow, len(stored))
	for i, sig := range stored {
		rows[i] = storedSignalRow{StoredSignal: sig, Age: humanize.Time(sig.CreatedAt)}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    rows,
		"total":   len(rows),
	})
}

func queryInt(r *http.Request, key string, def int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
