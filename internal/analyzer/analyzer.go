// Package analyzer turns raw market data into a scored trading signal
// with targets, confidence, and chart series.
package analyzer

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"StockPulse/internal/apperr"
	"StockPulse/internal/calculator"
	"StockPulse/internal/collector"
	"StockPulse/internal/config"
	"StockPulse/internal/model"
	"StockPulse/internal/retry"
	"StockPulse/internal/strategy"
)

// Analyzer computes a full technical-analysis signal for one ticker at a
// time. It is safe for concurrent use as long as the config is not
// mutated mid-flight.
type Analyzer struct {
	cfg    config.Analysis
	source collector.Source
}

// New creates an Analyzer over the given data source.
func New(cfg config.Analysis, source collector.Source) *Analyzer {
	return &Analyzer{cfg: cfg, source: source}
}

// Config returns a copy of the current analysis parameters.
func (a *Analyzer) Config() config.Analysis { return a.cfg }

func (a *Analyzer) retryPolicy() retry.Policy {
	return retry.Policy{
		MaxAttempts: a.cfg.MaxRetryAttempts,
		BaseDelay:   time.Duration(a.cfg.RetryDelayMillis) * time.Millisecond,
		MaxDelay:    time.Duration(a.cfg.MaxRetryDelayMs) * time.Millisecond,
	}
}

// Analyze fetches history and a quote for the ticker, computes all
// indicators, and produces the final signal.
func (a *Analyzer) Analyze(ctx context.Context, ticker string) (*model.Signal, error) {
	signal, err := a.analyze(ctx, ticker)
	if err != nil {
		return nil, fmt.Errorf("analysis failed for %s: %w", ticker, err)
	}
	return signal, nil
}

func (a *Analyzer) analyze(ctx context.Context, ticker string) (*model.Signal, error) {
	// Yahoo only returns trading days, so request ~1.5x the calendar span
	// to end up with enough bars for the long moving average plus a
	// display margin.
	daysToRequest := int(math.Ceil(float64(a.cfg.LongMovingAverage+50) * 1.5))
	to := time.Now()
	from := to.AddDate(0, 0, -daysToRequest)

	policy := a.retryPolicy()

	bars, err := retry.Do(ctx, policy, func(ctx context.Context) ([]model.Bar, error) {
		return a.source.Historical(ctx, ticker, from, to)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch historical data after retries: %w", err)
	}

	if len(bars) < a.cfg.ShortMovingAverage {
		return nil, apperr.Analysis(fmt.Sprintf(
			"insufficient data for %s: need at least %d data points, got %d",
			ticker, a.cfg.ShortMovingAverage, len(bars)), nil)
	}

	quote, err := retry.Do(ctx, policy, func(ctx context.Context) (*model.Quote, error) {
		return a.source.Quote(ctx, ticker)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch quote data after retries: %w", err)
	}

	closes := model.Closes(bars)
	highs := model.Highs(bars)
	lows := model.Lows(bars)
	volumes := model.Volumes(bars)
	dates := make([]string, len(bars))
	for i, b := range bars {
		dates[i] = b.Time.UTC().Format(time.RFC3339)
	}

	metrics := a.computeMetrics(closes, highs, lows, volumes, quote)

	chart, err := a.buildChart(closes, volumes, dates)
	if err != nil {
		return nil, err
	}

	result := strategy.Score(metrics, a.cfg)
	recommendation := strategy.Recommend(result.Score)

	confidence := strategy.Confidence(result.BullishCount, result.BearishCount, result.Score)
	if math.IsNaN(confidence) {
		confidence = math.Min(math.Abs(result.Score), 100)
	}

	currentPrice := closes[len(closes)-1]
	target, stopLoss := strategy.Targets(currentPrice, metrics.ATR, recommendation)

	return &model.Signal{
		Ticker:          strings.ToUpper(ticker),
		Recommendation:  recommendation,
		Confidence:      round1(confidence),
		Price:           round2(currentPrice),
		TargetPrice:     round2(target),
		StopLoss:        round2(stopLoss),
		PotentialGain:   round2((target - currentPrice) / currentPrice * 100),
		Risk:            round2((currentPrice - stopLoss) / currentPrice * 100),
		RiskRewardRatio: round2((target - currentPrice) / (currentPrice - stopLoss)),
		Reasons:         model.FormatReasons(result.Reasons),
		Metrics:         metrics,
		ChartData:       chart,
		Timestamp:       time.Now().UTC().Format(time.RFC3339),
		SignalSummary: model.SignalSummary{
			Bullish: result.BullishCount,
			Bearish: result.BearishCount,
			Total:   7,
		},
	}, nil
}

func (a *Analyzer) computeMetrics(closes, highs, lows, volumes []float64, quote *model.Quote) *model.Metrics {
	sma50 := calculator.SMA(closes, a.cfg.ShortMovingAverage)
	sma200 := calculator.SMA(closes, a.cfg.LongMovingAverage)
	ema20 := calculator.EMA(closes, 20)

	currentPrice := closes[len(closes)-1]

	macdLine, macdSignal, macdHistogram, hasMACD := calculator.MACD(
		closes, a.cfg.MACDFast, a.cfg.MACDSlow, a.cfg.MACDSignal)

	upper, _, lower := calculator.BollingerBands(closes, a.cfg.BollingerPeriod, a.cfg.BollingerStdDev)
	bbPosition := 0.5
	if upper != lower {
		bbPosition = (currentPrice - lower) / (upper - lower)
	}

	volumeSMA := calculator.SMA(volumes, a.cfg.VolumePeriod)
	volumeRatio := 0.0
	if len(volumeSMA) > 0 && volumeSMA[len(volumeSMA)-1] != 0 {
		volumeRatio = volumes[len(volumes)-1] / volumeSMA[len(volumeSMA)-1]
	}

	basePrice := closes[len(closes)-a.cfg.ShortMovingAverage]

	m := &model.Metrics{
		CurrentPrice:   currentPrice,
		SMA50:          last(sma50),
		SMA200:         last(sma200),
		EMA20:          last(ema20),
		RSI:            calculator.RSI(closes, a.cfg.RSIPeriod),
		MACD:           macdLine,
		MACDSignal:     macdSignal,
		MACDHistogram:  macdHistogram,
		HasMACD:        hasMACD,
		BBPosition:     bbPosition,
		VolumeRatio:    volumeRatio,
		ATR:            calculator.ATR(highs, lows, closes, a.cfg.ATRPeriod),
		TrendStrength:  calculator.TrendStrength(closes[len(closes)-a.cfg.ShortMovingAverage:]),
		PriceChange50d: (currentPrice - basePrice) / basePrice * 100,
	}

	m.PERatio = quote.TrailingPE
	m.ForwardPE = quote.ForwardPE
	m.PegRatio = quote.PegRatio
	if quote.ProfitMargins != nil {
		pm := *quote.ProfitMargins * 100
		m.ProfitMargin = &pm
	}
	m.DebtToEquity = quote.DebtToEquity

	return m
}

func last(series []float64) float64 {
	if len(series) == 0 {
		return 0
	}
	return series[len(series)-1]
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }
