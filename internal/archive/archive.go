// Package archive persists produced signals and scan runs so past
// recommendations can be queried later.
package archive

import (
	"time"

	"StockPulse/internal/model"
)

// StoredSignal is the compact form of a signal kept in the archive.
// Reasons and chart series are deliberately not stored.
type StoredSignal struct {
	Ticker         string    `json:"ticker"`
	Recommendation string    `json:"recommendation"`
	Confidence     float64   `json:"confidence"`
	Price          float64   `json:"price"`
	TargetPrice    float64   `json:"target_price"`
	StopLoss       float64   `json:"stop_loss"`
	PotentialGain  float64   `json:"potential_gain"`
	Risk           float64   `json:"risk"`
	RunID          string    `json:"run_id,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// Run statuses.
const (
	RunSuccess = "success"
	RunPartial = "partial"
	RunFailed  = "failed"
)

// RunSummary records one scheduled scan over a batch of tickers.
type RunSummary struct {
	ID         string
	Strategy   string
	Tickers    int
	Succeeded  int
	Failed     int
	Status     string
	StartedAt  time.Time
	FinishedAt time.Time
}

// StatusFor derives the run status from its counters.
func StatusFor(succeeded, failed int) string {
	switch {
	case failed == 0:
		return RunSuccess
	case succeeded == 0:
		return RunFailed
	default:
		return RunPartial
	}
}

// Archive persists signals and scan runs.
type Archive interface {
	SaveSignal(sig *model.Signal, runID string) error
	RecentSignals(ticker string, limit int) ([]StoredSignal, error)
	LatestByRecommendation(recommendation string, limit int) ([]StoredSignal, error)
	RecordRun(run *RunSummary) error
	Close() error
}
