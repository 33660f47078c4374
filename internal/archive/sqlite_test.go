package archive

import (
	"path/filepath"
	"testing"
	"time"

	"StockPulse/internal/model"
)

func openTestArchive(t *testing.T) *SQLiteArchive {
	t.Helper()
	a, err := NewSQLiteArchive(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}
	t.Cleanup(func() { a.Close() })
	return a
}

func sampleSignal(ticker string) *model.Signal {
	return &model.Signal{
		Ticker:         ticker,
		Recommendation: model.Buy,
		Confidence:     72.5,
		Price:          100,
		TargetPrice:    104,
		StopLoss:       97,
		PotentialGain:  4,
		Risk:           3,
	}
}

func TestSaveAndQuerySignals(t *testing.T) {
	a := openTestArchive(t)

	if err := a.SaveSignal(sampleSignal("AAPL"), "run-1"); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := a.SaveSignal(sampleSignal("AAPL"), ""); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := a.SaveSignal(sampleSignal("MSFT"), "run-1"); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := a.RecentSignals("AAPL", 10)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 AAPL signals, got %d", len(got))
	}
	if got[0].Ticker != "AAPL" || got[0].Recommendation != "BUY" {
		t.Errorf("unexpected row: %+v", got[0])
	}
	if got[0].Confidence != 72.5 || got[0].TargetPrice != 104 {
		t.Errorf("numeric fields did not round-trip: %+v", got[0])
	}
}

func TestRecentSignals_Limit(t *testing.T) {
	a := openTestArchive(t)
	for i := 0; i < 5; i++ {
		if err := a.SaveSignal(sampleSignal("NVDA"), ""); err != nil {
			t.Fatalf("save: %v", err)
		}
	}
	got, err := a.RecentSignals("NVDA", 3)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(got) != 3 {
		t.Errorf("expected 3 rows, got %d", len(got))
	}
}

func TestRecentSignals_UnknownTicker(t *testing.T) {
	a := openTestArchive(t)
	got, err := a.RecentSignals("NOPE", 10)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no rows, got %d", len(got))
	}
}

func TestRecordRun(t *testing.T) {
	a := openTestArchive(t)
	run := &RunSummary{
		ID:         "9f2c1a9e-0000-4000-8000-000000000001",
		Strategy:   "most_active",
		Tickers:    20,
		Succeeded:  18,
		Failed:     2,
		Status:     StatusFor(18, 2),
		StartedAt:  time.Now().Add(-time.Minute),
		FinishedAt: time.Now(),
	}
	if err := a.RecordRun(run); err != nil {
		t.Fatalf("record run: %v", err)
	}
	// Same primary key must be rejected.
	if err := a.RecordRun(run); err == nil {
		t.Error("duplicate run id should fail")
	}
}

func TestStatusFor(t *testing.T) {
	cases := []struct {
		succeeded, failed int
		want              string
	}{
		{5, 0, RunSuccess},
		{0, 0, RunSuccess},
		{3, 2, RunPartial},
		{0, 4, RunFailed},
	}
	for _, c := range cases {
		if got := StatusFor(c.succeeded, c.failed); got != c.want {
			t.Errorf("StatusFor(%d, %d) = %q, want %q", c.succeeded, c.failed, got, c.want)
		}
	}
}

func TestLatestByRecommendation(t *testing.T) {
	a := openTestArchive(t)

	strong := sampleSignal("NVDA")
	strong.Recommendation = model.StrongBuy
	if err := a.SaveSignal(strong, "run-1"); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := a.SaveSignal(sampleSignal("AAPL"), "run-1"); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := a.SaveSignal(sampleSignal("MSFT"), "run-1"); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := a.LatestByRecommendation(string(model.StrongBuy), 10)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(got) != 1 || got[0].Ticker != "NVDA" {
		t.Fatalf("expected only the NVDA strong buy, got %+v", got)
	}

	buys, err := a.LatestByRecommendation(string(model.Buy), 1)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(buys) != 1 {
		t.Errorf("limit not applied, got %d rows", len(buys))
	}
}
