package collector

import (
	"context"
	"time"

	"StockPulse/internal/model"
)

// MockSource returns controllable fixed data for development and testing.
type MockSource struct {
	Bars      []model.Bar
	QuoteData *model.Quote
	Symbols   []string
	Err       error
}

func (m *MockSource) Name() string { return "mock" }

func (m *MockSource) Historical(_ context.Context, symbol string, _, _ time.Time) ([]model.Bar, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Bars != nil {
		return m.Bars, nil
	}
	return GenerateBars(100, 260), nil
}

func (m *MockSource) Quote(_ context.Context, symbol string) (*model.Quote, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.QuoteData != nil {
		return m.QuoteData, nil
	}
	return &model.Quote{Symbol: symbol, Price: 100, Volume: 1000000}, nil
}

func (m *MockSource) Trending(_ context.Context, limit int) ([]string, error) {
	return m.list(limit)
}

func (m *MockSource) Gainers(_ context.Context, limit int) ([]string, error) {
	return m.list(limit)
}

func (m *MockSource) Losers(_ context.Context, limit int) ([]string, error) {
	return m.list(limit)
}

func (m *MockSource) list(limit int) ([]string, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if limit > 0 && limit < len(m.Symbols) {
		return m.Symbols[:limit], nil
	}
	return m.Symbols, nil
}

// GenerateBars builds a gently drifting synthetic daily series ending today.
func GenerateBars(basePrice float64, count int) []model.Bar {
	bars := make([]model.Bar, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		bars[i] = model.Bar{
			Time:     time.Now().AddDate(0, 0, -(count - i)),
			Open:     p * 0.999,
			High:     p * 1.005,
			Low:      p * 0.995,
			Close:    p,
			Volume:   1000000,
			AdjClose: p,
		}
	}
	return bars
}
