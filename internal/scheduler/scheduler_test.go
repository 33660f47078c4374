package scheduler

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"StockPulse/internal/analyzer"
	"StockPulse/internal/archive"
	"StockPulse/internal/collector"
	"StockPulse/internal/config"
	"StockPulse/internal/model"
	"StockPulse/internal/scanner"
	"StockPulse/internal/ticker"
)

// memArchive records calls for assertions.
type memArchive struct {
	signals []*model.Signal
	runIDs  []string
	runs    []*archive.RunSummary
}

func (m *memArchive) SaveSignal(sig *model.Signal, runID string) error {
	m.signals = append(m.signals, sig)
	m.runIDs = append(m.runIDs, runID)
	return nil
}

func (m *memArchive) RecentSignals(string, int) ([]archive.StoredSignal, error) { return nil, nil }

func (m *memArchive) LatestByRecommendation(string, int) ([]archive.StoredSignal, error) {
	return nil, nil
}

func (m *memArchive) RecordRun(run *archive.RunSummary) error {
	m.runs = append(m.runs, run)
	return nil
}

func (m *memArchive) Close() error { return nil }

func TestRunNow_ScansAndArchives(t *testing.T) {
	cfg := config.DefaultAnalysis()
	cfg.MaxRetryAttempts = 1
	cfg.RetryDelayMillis = 1
	cfg.MaxRetryDelayMs = 1

	a := analyzer.New(cfg, &collector.MockSource{})
	sc := scanner.New(a, 2)
	arc := &memArchive{}
	d := ticker.NewDiscoverer(nil, 3) // nil source forces the static list

	s := New(context.Background(), d, sc, arc, ticker.StrategyStatic)
	s.RunNow()

	if len(arc.signals) != 3 {
		t.Fatalf("expected 3 archived signals, got %d", len(arc.signals))
	}
	if len(arc.runs) != 1 {
		t.Fatalf("expected 1 run record, got %d", len(arc.runs))
	}

	run := arc.runs[0]
	if run.Tickers != 3 || run.Succeeded != 3 || run.Failed != 0 {
		t.Errorf("unexpected run counters: %+v", run)
	}
	if run.Status != archive.RunSuccess {
		t.Errorf("expected status %q, got %q", archive.RunSuccess, run.Status)
	}
	if run.Strategy != "static" {
		t.Errorf("expected strategy static, got %q", run.Strategy)
	}
	if _, err := uuid.Parse(run.ID); err != nil {
		t.Errorf("run id must be a uuid, got %q", run.ID)
	}
	for _, id := range arc.runIDs {
		if id != run.ID {
			t.Error("every signal must carry the run id")
		}
	}
	if !run.FinishedAt.After(run.StartedAt) && !run.FinishedAt.Equal(run.StartedAt) {
		t.Error("finish time must not precede start time")
	}
}

func TestRegister_BadCron(t *testing.T) {
	s := New(context.Background(), ticker.NewDiscoverer(nil, 3), nil, &memArchive{}, ticker.StrategyStatic)
	if err := s.Register("not a cron spec"); err == nil {
		t.Error("expected an error for an invalid cron spec")
	}
	if err := s.Register("0 0 * * * *"); err != nil {
		t.Errorf("valid six-field spec rejected: %v", err)
	}
}
