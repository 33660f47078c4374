package analyzer

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"StockPulse/internal/apperr"
	"StockPulse/internal/collector"
	"StockPulse/internal/config"
	"StockPulse/internal/model"
)

func fastConfig() config.Analysis {
	cfg := config.DefaultAnalysis()
	cfg.MaxRetryAttempts = 1
	cfg.RetryDelayMillis = 1
	cfg.MaxRetryDelayMs = 1
	return cfg
}

// linearBars builds count daily bars rising linearly from start to end.
func linearBars(start, end float64, count int) []model.Bar {
	bars := make([]model.Bar, count)
	step := (end - start) / float64(count-1)
	for i := 0; i < count; i++ {
		c := start + float64(i)*step
		bars[i] = model.Bar{
			Time:   time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, i),
			Open:   c,
			High:   c * 1.01,
			Low:    c * 0.99,
			Close:  c,
			Volume: 1000000,
		}
	}
	return bars
}

func TestAnalyze_EndToEnd(t *testing.T) {
	source := &collector.MockSource{
		Bars:      linearBars(100, 200, 260),
		QuoteData: &model.Quote{Symbol: "AAPL", Price: 200, Volume: 1000000},
	}
	a := New(fastConfig(), source)

	s, err := a.Analyze(context.Background(), "aapl")
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	if s.Ticker != "AAPL" {
		t.Errorf("ticker should be uppercased, got %q", s.Ticker)
	}
	if s.Price != 200 {
		t.Errorf("expected price 200, got %v", s.Price)
	}
	if s.Metrics.RSI != 100 {
		t.Errorf("a strictly rising series must have RSI 100, got %v", s.Metrics.RSI)
	}
	if s.Metrics.SMA50 <= s.Metrics.SMA200 {
		t.Error("rising series must put the short MA above the long MA")
	}
	if s.Confidence < 0 || s.Confidence > 100 {
		t.Errorf("confidence out of range: %v", s.Confidence)
	}
	switch s.Recommendation {
	case model.StrongBuy, model.Buy, model.Hold, model.Sell, model.StrongSell:
	default:
		t.Errorf("unexpected recommendation %q", s.Recommendation)
	}
	if len(s.Reasons) == 0 {
		t.Error("expected at least one reason")
	}
	if s.SignalSummary.Total != 7 {
		t.Errorf("signal summary total must be 7, got %d", s.SignalSummary.Total)
	}
	if _, err := time.Parse(time.RFC3339, s.Timestamp); err != nil {
		t.Errorf("timestamp not RFC3339: %q", s.Timestamp)
	}

	// Targets and stop must sit on the correct side of the price.
	switch s.Recommendation {
	case model.StrongBuy, model.Buy, model.Hold:
		if !(s.StopLoss < s.Price && s.Price < s.TargetPrice) {
			t.Errorf("targets must bracket price: stop %v price %v target %v",
				s.StopLoss, s.Price, s.TargetPrice)
		}
	case model.Sell, model.StrongSell:
		if !(s.TargetPrice < s.Price && s.Price < s.StopLoss) {
			t.Errorf("sell targets must bracket price: target %v price %v stop %v",
				s.TargetPrice, s.Price, s.StopLoss)
		}
	}

	// PotentialGain is derived from target and price.
	wantGain := (s.TargetPrice - s.Price) / s.Price * 100
	if diff := s.PotentialGain - wantGain; diff > 0.02 || diff < -0.02 {
		t.Errorf("potential gain %v inconsistent with target %v", s.PotentialGain, s.TargetPrice)
	}
}

func TestAnalyze_ChartArraysSameLength(t *testing.T) {
	source := &collector.MockSource{
		Bars:      linearBars(100, 200, 260),
		QuoteData: &model.Quote{Symbol: "MSFT", Price: 200, Volume: 1000000},
	}
	a := New(fastConfig(), source)

	s, err := a.Analyze(context.Background(), "MSFT")
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	c := s.ChartData
	// 260 bars, window starts at index 199 where SMA200 begins.
	wantLen := 61
	if len(c.Dates) != wantLen {
		t.Fatalf("expected %d chart points, got %d", wantLen, len(c.Dates))
	}
	lengths := map[string]int{
		"prices":         len(c.Prices),
		"volumes":        len(c.Volumes),
		"sma_50":         len(c.SMA50Values),
		"sma_200":        len(c.SMA200Values),
		"ema_20":         len(c.EMA20Values),
		"rsi":            len(c.RSIValues),
		"macd":           len(c.MACDValues),
		"macd_signal":    len(c.MACDSignalValues),
		"macd_histogram": len(c.MACDHistogramValues),
		"bb_upper":       len(c.BBUpper),
		"bb_middle":      len(c.BBMiddle),
		"bb_lower":       len(c.BBLower),
		"volume_sma":     len(c.VolumeSMA),
	}
	for name, l := range lengths {
		if l != wantLen {
			t.Errorf("%s has length %d, want %d", name, l, wantLen)
		}
	}

	// Every indicator starts well before the window here, so no nulls.
	for i, v := range c.SMA200Values {
		if v == nil {
			t.Fatalf("sma_200 must have no nulls, found one at %d", i)
		}
	}
}

func TestBuildChart_NullPadsLateIndicators(t *testing.T) {
	cfg := fastConfig()
	cfg.ShortMovingAverage = 10
	cfg.LongMovingAverage = 30
	a := New(cfg, nil)

	bars := linearBars(100, 120, 100)
	closes := model.Closes(bars)
	volumes := model.Volumes(bars)
	dates := make([]string, len(bars))
	for i, b := range bars {
		dates[i] = b.Time.UTC().Format(time.RFC3339)
	}

	c, err := a.buildChart(closes, volumes, dates)
	if err != nil {
		t.Fatalf("buildChart failed: %v", err)
	}

	// Window starts at index 29; the MACD signal line first exists at
	// index 26+9-2 = 33, so its first 4 cells must be null.
	if len(c.MACDSignalValues) != 71 {
		t.Fatalf("expected 71 points, got %d", len(c.MACDSignalValues))
	}
	for i := 0; i < 4; i++ {
		if c.MACDSignalValues[i] != nil {
			t.Errorf("macd_signal[%d] should be null", i)
		}
	}
	if c.MACDSignalValues[4] == nil {
		t.Error("macd_signal[4] should have a value")
	}
	if c.MACDHistogramValues[3] != nil || c.MACDHistogramValues[4] == nil {
		t.Error("macd_histogram must pad exactly like the signal line")
	}
}

func TestAnalyze_InsufficientData(t *testing.T) {
	source := &collector.MockSource{
		Bars:      linearBars(100, 110, 40),
		QuoteData: &model.Quote{Symbol: "X", Price: 110, Volume: 1000},
	}
	a := New(fastConfig(), source)

	_, err := a.Analyze(context.Background(), "X")
	if err == nil {
		t.Fatal("expected an error for 40 bars")
	}
	if !strings.Contains(err.Error(), "need at least 50") {
		t.Errorf("error should name the minimum, got: %v", err)
	}
	if apperr.CodeOf(err) != apperr.CodeAnalysis {
		t.Errorf("expected ANALYSIS_ERROR, got %s", apperr.CodeOf(err))
	}
}

func TestAnalyze_ShortHistoryFailsChart(t *testing.T) {
	// 60 bars clears the analysis minimum but not the chart window.
	source := &collector.MockSource{
		Bars:      linearBars(100, 110, 60),
		QuoteData: &model.Quote{Symbol: "X", Price: 110, Volume: 1000},
	}
	a := New(fastConfig(), source)

	_, err := a.Analyze(context.Background(), "X")
	if err == nil {
		t.Fatal("expected a chart error for 60 bars")
	}
	if apperr.CodeOf(err) != apperr.CodeChart {
		t.Errorf("expected CHART_ERROR, got %s", apperr.CodeOf(err))
	}
}

func TestAnalyze_FetchErrorWrapped(t *testing.T) {
	source := &collector.MockSource{Err: errors.New("upstream down")}
	a := New(fastConfig(), source)

	_, err := a.Analyze(context.Background(), "AAPL")
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(err.Error(), "analysis failed for AAPL") {
		t.Errorf("error should carry the ticker, got: %v", err)
	}
	if !errors.Is(err, source.Err) {
		t.Error("original cause must stay in the chain")
	}
}
