package ticker

import (
	"context"
	"log"
)

// ListSource supplies dynamic ticker lists from the market-data provider.
type ListSource interface {
	Trending(ctx context.Context, limit int) ([]string, error)
	Gainers(ctx context.Context, limit int) ([]string, error)
	Losers(ctx context.Context, limit int) ([]string, error)
}

// Strategy selects how candidate tickers are discovered.
type Strategy string

const (
	StrategyMostActive Strategy = "most_active"
	StrategyGainers    Strategy = "gainers"
	StrategyLosers     Strategy = "losers"
	StrategyMixed      Strategy = "mixed"
	StrategyStatic     Strategy = "static"
)

// Discoverer fetches candidate tickers by strategy, falling back to the
// curated static list when the upstream source fails.
type Discoverer struct {
	Source ListSource
	Limit  int
}

// NewDiscoverer creates a Discoverer.
func NewDiscoverer(source ListSource, limit int) *Discoverer {
	if limit <= 0 {
		limit = 20
	}
	return &Discoverer{Source: source, Limit: limit}
}

// Discover returns up to the configured limit of symbols for the given
// strategy. Any upstream failure degrades to the static list.
func (d *Discoverer) Discover(ctx context.Context, strategy Strategy) []string {
	if d.Source == nil {
		return Static(d.Limit)
	}

	var symbols []string
	var err error
	switch strategy {
	case StrategyMostActive:
		symbols, err = d.Source.Trending(ctx, d.Limit)
	case StrategyGainers:
		symbols, err = d.Source.Gainers(ctx, d.Limit)
	case StrategyLosers:
		symbols, err = d.Source.Losers(ctx, d.Limit)
	case StrategyMixed:
		symbols, err = d.mixed(ctx)
	default:
		return Static(d.Limit)
	}
	if err != nil || len(symbols) == 0 {
		log.Printf("[WARN] ticker discovery (%s) failed, falling back to static list: %v", strategy, err)
		return Static(d.Limit)
	}
	return dedupe(symbols, d.Limit)
}

// mixed combines trending and gainers, deduplicated, trending first.
func (d *Discoverer) mixed(ctx context.Context) ([]string, error) {
	trending, err := d.Source.Trending(ctx, d.Limit)
	if err != nil {
		return nil, err
	}
	gainers, err := d.Source.Gainers(ctx, d.Limit)
	if err != nil {
		return nil, err
	}
	return append(trending, gainers...), nil
}

func dedupe(symbols []string, limit int) []string {
	seen := make(map[string]struct{}, len(symbols))
	out := make([]string, 0, len(symbols))
	for _, s := range symbols {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
		if len(out) == limit {
			break
		}
	}
	return out
}
