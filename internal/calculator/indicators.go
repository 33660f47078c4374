package calculator

import "math"

// SMA computes the simple moving average series with a window sliding by
// one. Result length is len(data)-period+1, empty when the period exceeds
// the data.
func SMA(data []float64, period int) []float64 {
	if period <= 0 || period > len(data) {
		return nil
	}
	result := make([]float64, 0, len(data)-period+1)
	for i := period - 1; i < len(data); i++ {
		sum := 0.0
		for _, v := range data[i-period+1 : i+1] {
			sum += v
		}
		result = append(result, sum/float64(period))
	}
	return result
}

// EMA computes the exponential moving average series. The first value is
// the SMA of the first period elements; each subsequent value blends the
// price with the previous EMA using k = 2/(period+1). Result length is
// len(data)-period+1.
func EMA(data []float64, period int) []float64 {
	if period <= 0 || period > len(data) {
		return nil
	}
	k := 2.0 / float64(period+1)
	result := make([]float64, 0, len(data)-period+1)

	seed := 0.0
	for _, v := range data[:period] {
		seed += v
	}
	seed /= float64(period)
	result = append(result, seed)

	prev := seed
	for _, v := range data[period:] {
		prev = v*k + prev*(1-k)
		result = append(result, prev)
	}
	return result
}

// RSI computes the latest Wilder-smoothed relative strength index.
// Returns 50 when there are fewer than period+1 prices, and 100 when the
// series never declined (avoids the division by a zero average loss).
func RSI(prices []float64, period int) float64 {
	if period <= 0 || len(prices) < period+1 {
		return 50
	}

	var avgGain, avgLoss float64
	for i := 1; i <= period; i++ {
		change := prices[i] - prices[i-1]
		if change > 0 {
			avgGain += change
		} else {
			avgLoss -= change
		}
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)

	for i := period + 1; i < len(prices); i++ {
		change := prices[i] - prices[i-1]
		gain, loss := 0.0, 0.0
		if change > 0 {
			gain = change
		} else {
			loss = -change
		}
		avgGain = (avgGain*float64(period-1) + gain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)
	}

	if avgLoss == 0 {
		return 100
	}
	rs := avgGain / avgLoss
	return 100 - 100/(1+rs)
}

// RSISeries computes the RSI at every index from `period` onward in a
// single pass, carrying the running average gain and loss forward. The
// value at offset i equals RSI(prices[:period+1+i], period); result length
// is len(prices)-period.
func RSISeries(prices []float64, period int) []float64 {
	if period <= 0 || len(prices) < period+1 {
		return nil
	}

	var avgGain, avgLoss float64
	for i := 1; i <= period; i++ {
		change := prices[i] - prices[i-1]
		if change > 0 {
			avgGain += change
		} else {
			avgLoss -= change
		}
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)

	result := make([]float64, 0, len(prices)-period)
	result = append(result, rsiFromAverages(avgGain, avgLoss))

	for i := period + 1; i < len(prices); i++ {
		change := prices[i] - prices[i-1]
		gain, loss := 0.0, 0.0
		if change > 0 {
			gain = change
		} else {
			loss = -change
		}
		avgGain = (avgGain*float64(period-1) + gain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)
		result = append(result, rsiFromAverages(avgGain, avgLoss))
	}
	return result
}

func rsiFromAverages(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		return 100
	}
	rs := avgGain / avgLoss
	return 100 - 100/(1+rs)
}

// MACD returns the latest MACD line, signal line, and histogram. ok is
// false when the history is too short to derive a signal line; callers
// fall back to a simpler momentum measure then.
func MACD(prices []float64, fast, slow, signal int) (macdLine, signalLine, histogram float64, ok bool) {
	line, signalSeries, _ := MACDSeries(prices, fast, slow, signal)
	if len(signalSeries) == 0 {
		return 0, 0, 0, false
	}
	macdLine = line[len(line)-1]
	signalLine = signalSeries[len(signalSeries)-1]
	return macdLine, signalLine, macdLine - signalLine, true
}

// MACDSeries computes the full MACD line, signal line, and histogram
// series. The fast and slow EMAs are aligned on the slow series' shorter
// length; the histogram is aligned on the signal line.
func MACDSeries(prices []float64, fast, slow, signal int) (line, signalSeries, histogram []float64) {
	emaFast := EMA(prices, fast)
	emaSlow := EMA(prices, slow)
	if len(emaSlow) == 0 || len(emaFast) < len(emaSlow) {
		return nil, nil, nil
	}

	offset := len(emaFast) - len(emaSlow)
	line = make([]float64, len(emaSlow))
	for i := range emaSlow {
		line[i] = emaFast[offset+i] - emaSlow[i]
	}

	signalSeries = EMA(line, signal)
	signalOffset := len(line) - len(signalSeries)
	histogram = make([]float64, len(signalSeries))
	for i := range signalSeries {
		histogram[i] = line[i+signalOffset] - signalSeries[i]
	}
	return line, signalSeries, histogram
}

// BollingerBands returns the latest band values: the SMA of the last
// period prices plus/minus stddev standard deviations (population
// variance). A history shorter than the period yields an all-zero band.
func BollingerBands(prices []float64, period int, stddev float64) (upper, middle, lower float64) {
	if period <= 0 || len(prices) < period {
		return 0, 0, 0
	}
	window := prices[len(prices)-period:]

	middle = 0
	for _, p := range window {
		middle += p
	}
	middle /= float64(period)

	variance := 0.0
	for _, p := range window {
		variance += (p - middle) * (p - middle)
	}
	variance /= float64(period)
	std := math.Sqrt(variance)

	return middle + stddev*std, middle, middle - stddev*std
}

// BollingerSeries computes the upper, middle, and lower band at every
// index from period-1 onward.
func BollingerSeries(prices []float64, period int, stddev float64) (upper, middle, lower []float64) {
	if period <= 0 || len(prices) < period {
		return nil, nil, nil
	}
	n := len(prices) - period + 1
	upper = make([]float64, n)
	middle = make([]float64, n)
	lower = make([]float64, n)
	for i := 0; i < n; i++ {
		u, m, l := BollingerBands(prices[:i+period], period, stddev)
		upper[i] = u
		middle[i] = m
		lower[i] = l
	}
	return upper, middle, lower
}

// ATR computes the latest average true range: the SMA over the last
// period true ranges, where the true range for day i covers the gap to
// the previous close. Returns 0 when there is not enough data.
func ATR(highs, lows, closes []float64, period int) float64 {
	if len(highs) < 2 || len(highs) != len(lows) || len(highs) != len(closes) {
		return 0
	}
	trueRanges := make([]float64, 0, len(highs)-1)
	for i := 1; i < len(highs); i++ {
		tr := highs[i] - lows[i]
		if hc := math.Abs(highs[i] - closes[i-1]); hc > tr {
			tr = hc
		}
		if lc := math.Abs(lows[i] - closes[i-1]); lc > tr {
			tr = lc
		}
		trueRanges = append(trueRanges, tr)
	}
	atrValues := SMA(trueRanges, period)
	if len(atrValues) == 0 {
		return 0
	}
	return atrValues[len(atrValues)-1]
}

// TrendStrength fits an ordinary least-squares line through the prices
// and returns the slope normalized by the last price, times 100. Positive
// means uptrend; magnitude shrinks as the price level grows.
func TrendStrength(prices []float64) float64 {
	n := len(prices)
	if n < 2 || prices[n-1] == 0 {
		return 0
	}

	var sumX, sumY, sumXY, sumX2 float64
	for i, p := range prices {
		x := float64(i)
		sumX += x
		sumY += p
		sumXY += x * p
		sumX2 += x * x
	}

	fn := float64(n)
	denom := fn*sumX2 - sumX*sumX
	if denom == 0 {
		return 0
	}
	slope := (fn*sumXY - sumX*sumY) / denom

	return slope / prices[n-1] * 100
}
