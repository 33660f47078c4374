// Package scheduler runs the periodic market scan: discover candidate
// tickers, analyze them, and archive the resulting signals.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"StockPulse/internal/archive"
	"StockPulse/internal/model"
	"StockPulse/internal/scanner"
	"StockPulse/internal/ticker"
)

// Scheduler manages the cron-driven scan task.
type Scheduler struct {
	Cron       *cron.Cron
	Discoverer *ticker.Discoverer
	Scanner    *scanner.Scanner
	Archive    archive.Archive
	Strategy   ticker.Strategy
	Ctx        context.Context
}

// New creates a Scheduler. The cron spec uses six fields (with seconds),
// matching robfig's WithSeconds parser.
func New(ctx context.Context, d *ticker.Discoverer, s *scanner.Scanner, a archive.Archive, strategy ticker.Strategy) *Scheduler {
	return &Scheduler{
		Cron:       cron.New(cron.WithSeconds()),
		Discoverer: d,
		Scanner:    s,
		Archive:    a,
		Strategy:   strategy,
		Ctx:        ctx,
	}
}

// Register adds the scan task under the given cron spec.
func (s *Scheduler) Register(scanCron string) error {
	if _, err := s.Cron.AddFunc(scanCron, s.scanTask); err != nil {
		return fmt.Errorf("register scan task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunNow executes the scan task immediately (manual trigger / RUN_ON_START).
func (s *Scheduler) RunNow() {
	s.scanTask()
}

func (s *Scheduler) scanTask() {
	runID := uuid.NewString()
	started := time.Now()
	log.Printf("[INFO] scan run %s started (strategy=%s)", runID, s.Strategy)

	symbols := s.Discoverer.Discover(s.Ctx, s.Strategy)
	if len(symbols) == 0 {
		log.Printf("[WARN] scan run %s: no tickers to analyze", runID)
		return
	}

	outcomes := s.Scanner.Scan(s.Ctx, symbols)

	succeeded, failed := 0, 0
	for _, o := range outcomes {
		if o.Err != nil || o.Signal == nil {
			failed++
			continue
		}
		succeeded++
		if err := s.Archive.SaveSignal(o.Signal, runID); err != nil {
			log.Printf("[ERROR] archive signal for %s: %v", o.Ticker, err)
		}
	}

	status := archive.StatusFor(succeeded, failed)
	if err := s.Archive.RecordRun(&archive.RunSummary{
		ID:         runID,
		Strategy:   string(s.Strategy),
		Tickers:    len(symbols),
		Succeeded:  succeeded,
		Failed:     failed,
		Status:     status,
		StartedAt:  started,
		FinishedAt: time.Now(),
	}); err != nil {
		log.Printf("[ERROR] record run %s: %v", runID, err)
	}

	log.Printf("[INFO] scan run %s finished (%s): %d ok, %d failed in %s",
		runID, status, succeeded, failed, time.Since(started).Round(time.Millisecond))

	if top, err := s.Archive.LatestByRecommendation(string(model.StrongBuy), 5); err == nil && len(top) > 0 {
		names := make([]string, len(top))
		for i, t := range top {
			names[i] = t.Ticker
		}
		log.Printf("[INFO] current strong buys: %s", strings.Join(names, ", "))
	}
}
