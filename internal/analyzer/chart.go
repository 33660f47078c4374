package analyzer

import (
	"fmt"

	"StockPulse/internal/apperr"
	"StockPulse/internal/calculator"
	"StockPulse/internal/model"
)

// chartWindow is the display window in trading days, roughly one year.
const chartWindow = 250

// buildChart computes every indicator series and aligns them to a common
// display window. The window starts where the long moving average first
// has a value, or later when the history exceeds the window size. Each
// indicator naturally starts at a different offset in the full history:
// a series starting before the window is trimmed, one starting after it
// is left-padded with nulls. Every returned array has the same length.
func (a *Analyzer) buildChart(closes, volumes []float64, dates []string) (*model.ChartData, error) {
	n := len(closes)
	chartStart := a.cfg.LongMovingAverage - 1
	if s := n - chartWindow; s > chartStart {
		chartStart = s
	}
	if n <= chartStart {
		return nil, apperr.Chart(fmt.Sprintf(
			"insufficient historical data for chart generation: have %d points, need more than %d",
			n, chartStart))
	}

	sma50 := calculator.SMA(closes, a.cfg.ShortMovingAverage)
	sma200 := calculator.SMA(closes, a.cfg.LongMovingAverage)
	ema20 := calculator.EMA(closes, 20)
	rsi := calculator.RSISeries(closes, a.cfg.RSIPeriod)
	macdLine, macdSignal, macdHistogram := calculator.MACDSeries(
		closes, a.cfg.MACDFast, a.cfg.MACDSlow, a.cfg.MACDSignal)
	bbUpper, bbMiddle, bbLower := calculator.BollingerSeries(
		closes, a.cfg.BollingerPeriod, a.cfg.BollingerStdDev)
	volumeSMA := calculator.SMA(volumes, a.cfg.VolumePeriod)

	// First index in the full history at which each series has a value.
	smaShortStart := a.cfg.ShortMovingAverage - 1
	smaLongStart := a.cfg.LongMovingAverage - 1
	emaStart := 19
	rsiStart := a.cfg.RSIPeriod
	macdStart := a.cfg.MACDSlow - 1
	macdSignalStart := a.cfg.MACDSlow + a.cfg.MACDSignal - 2
	bbStart := a.cfg.BollingerPeriod - 1
	volumeStart := a.cfg.VolumePeriod - 1

	return &model.ChartData{
		Dates:               dates[chartStart:],
		Prices:              closes[chartStart:],
		Volumes:             volumes[chartStart:],
		SMA50Values:         align(sma50, smaShortStart, chartStart),
		SMA200Values:        align(sma200, smaLongStart, chartStart),
		EMA20Values:         align(ema20, emaStart, chartStart),
		RSIValues:           align(rsi, rsiStart, chartStart),
		MACDValues:          align(macdLine, macdStart, chartStart),
		MACDSignalValues:    align(macdSignal, macdSignalStart, chartStart),
		MACDHistogramValues: align(macdHistogram, macdSignalStart, chartStart),
		BBUpper:             align(bbUpper, bbStart, chartStart),
		BBMiddle:            align(bbMiddle, bbStart, chartStart),
		BBLower:             align(bbLower, bbStart, chartStart),
		VolumeSMA:           align(volumeSMA, volumeStart, chartStart),
	}, nil
}

// align shifts a series whose first value sits at startIndex of the full
// history onto the window beginning at chartStart.
func align(series []float64, startIndex, chartStart int) []*float64 {
	if startIndex < chartStart {
		skip := chartStart - startIndex
		if skip > len(series) {
			skip = len(series)
		}
		series = series[skip:]
		startIndex = chartStart
	}

	pad := startIndex - chartStart
	out := make([]*float64, 0, pad+len(series))
	for i := 0; i < pad; i++ {
		out = append(out, nil)
	}
	for i := range series {
		v := series[i]
		out = append(out, &v)
	}
	return out
}
