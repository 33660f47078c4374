// Package scanner runs the analyzer over a batch of tickers and ranks
// the outcomes. One bad ticker never fails the batch.
package scanner

import (
	"context"
	"log"
	"sort"
	"sync"

	"StockPulse/internal/analyzer"
	"StockPulse/internal/model"
)

// defaultConcurrency bounds parallel upstream fetches so a large scan
// does not hammer the data source.
const defaultConcurrency = 4

// Outcome is the settled result for one ticker: either a signal or the
// error that prevented one.
type Outcome struct {
	Ticker string
	Signal *model.Signal
	Err    error
}

// Row is the compact ranked view of a successful outcome.
type Row struct {
	Ticker          string               `json:"ticker"`
	Recommendation  model.Recommendation `json:"recommendation"`
	Confidence      float64              `json:"confidence"`
	Price           float64              `json:"price"`
	PotentialGain   float64              `json:"potential_gain"`
	RiskRewardRatio float64              `json:"risk_reward_ratio"`
}

// Scanner fans analysis out over a bounded worker pool.
type Scanner struct {
	analyzer    *analyzer.Analyzer
	concurrency int
}

// New creates a Scanner. concurrency <= 0 picks the default.
func New(a *analyzer.Analyzer, concurrency int) *Scanner {
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	return &Scanner{analyzer: a, concurrency: concurrency}
}

// Scan analyzes every ticker and returns one outcome per input, in input
// order. Failures are recorded in the outcome, not returned.
func (s *Scanner) Scan(ctx context.Context, tickers []string) []Outcome {
	outcomes := make([]Outcome, len(tickers))
	sem := make(chan struct{}, s.concurrency)
	var wg sync.WaitGroup

	for i, t := range tickers {
		wg.Add(1)
		go func(i int, ticker string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			sig, err := s.analyzer.Analyze(ctx, ticker)
			if err != nil {
				log.Printf("[WARN] scan of %s failed: %v", ticker, err)
			}
			outcomes[i] = Outcome{Ticker: ticker, Signal: sig, Err: err}
		}(i, t)
	}
	wg.Wait()

	return outcomes
}

// Rank drops the failed outcomes and returns compact rows sorted by
// potential gain, best first.
func Rank(outcomes []Outcome) []Row {
	rows := make([]Row, 0, len(outcomes))
	for _, o := range outcomes {
		if o.Err != nil || o.Signal == nil {
			continue
		}
		rows = append(rows, Row{
			Ticker:          o.Signal.Ticker,
			Recommendation:  o.Signal.Recommendation,
			Confidence:      o.Signal.Confidence,
			Price:           o.Signal.Price,
			PotentialGain:   o.Signal.PotentialGain,
			RiskRewardRatio: o.Signal.RiskRewardRatio,
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].PotentialGain > rows[j].PotentialGain
	})
	return rows
}
