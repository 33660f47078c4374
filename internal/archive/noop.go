package archive

import "StockPulse/internal/model"

// NoopArchive is a no-op implementation used when SQLite is not configured.
type NoopArchive struct{}

func NewNoopArchive() *NoopArchive { return &NoopArchive{} }

func (n *NoopArchive) SaveSignal(_ *model.Signal, _ string) error { return nil }
func (n *NoopArchive) RecentSignals(_ string, _ int) ([]StoredSignal, error) {
	return nil, nil
}
func (n *NoopArchive) LatestByRecommendation(_ string, _ int) ([]StoredSignal, error) {
	return nil, nil
}
func (n *NoopArchive) RecordRun(_ *RunSummary) error { return nil }
func (n *NoopArchive) Close() error                  { return nil }
