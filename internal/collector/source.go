package collector

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"
	"time"

	"StockPulse/internal/apperr"
	"StockPulse/internal/model"
)

// Source defines the interface for fetching market data.
type Source interface {
	Historical(ctx context.Context, symbol string, from, to time.Time) ([]model.Bar, error)
	Quote(ctx context.Context, symbol string) (*model.Quote, error)
	Trending(ctx context.Context, limit int) ([]string, error)
	Gainers(ctx context.Context, limit int) ([]string, error)
	Losers(ctx context.Context, limit int) ([]string, error)
	Name() string
}

const (
	defaultListLimit = 50
	maxListLimit     = 100
)

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return defaultListLimit
	}
	if limit > maxListLimit {
		return maxListLimit
	}
	return limit
}

var symbolPattern = regexp.MustCompile(`^[A-Z0-9.-]+$`)

// sanitizeSymbols cleans a raw discovery list: uppercase, drop index and
// futures notation, dedupe, cap at limit.
func sanitizeSymbols(raw []string, listName string, limit int) ([]string, error) {
	seen := make(map[string]struct{}, len(raw))
	out := make([]string, 0, len(raw))
	for _, s := range raw {
		sym := strings.ToUpper(strings.TrimSpace(s))
		if sym == "" || strings.ContainsAny(sym, "^=:") || !symbolPattern.MatchString(sym) {
			continue
		}
		if _, ok := seen[sym]; ok {
			continue
		}
		seen[sym] = struct{}{}
		out = append(out, sym)
		if len(out) == limit {
			break
		}
	}
	if len(out) == 0 {
		return nil, apperr.DataSource(fmt.Sprintf("no valid tickers returned for %s", listName), nil)
	}
	return out, nil
}

// validateBars drops bars with non-finite close or volume, requires a
// non-empty result, and sorts ascending by date.
func validateBars(symbol string, bars []model.Bar) ([]model.Bar, error) {
	if len(bars) == 0 {
		return nil, apperr.DataSource(fmt.Sprintf("no historical data available for %s", symbol), nil)
	}
	filtered := bars[:0]
	for _, b := range bars {
		if !isFinite(b.Close) || !isFinite(b.Volume) || b.Time.IsZero() {
			continue
		}
		filtered = append(filtered, b)
	}
	if len(filtered) == 0 {
		return nil, apperr.DataSource(fmt.Sprintf("historical data for %s is missing price or volume information", symbol), nil)
	}
	sort.Slice(filtered, func(i, j int) bool { return filtered[i].Time.Before(filtered[j].Time) })
	return filtered, nil
}

// validateQuote requires a finite price and volume.
func validateQuote(symbol string, q *model.Quote) (*model.Quote, error) {
	if q == nil {
		return nil, apperr.DataSource(fmt.Sprintf("quote data for %s is unavailable", symbol), nil)
	}
	if !isFinite(q.Price) {
		return nil, apperr.DataSource(fmt.Sprintf("quote missing price data for %s", symbol), nil)
	}
	if !isFinite(q.Volume) {
		return nil, apperr.DataSource(fmt.Sprintf("quote missing volume data for %s", symbol), nil)
	}
	return q, nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
