package model

import "time"

// Bar represents a single daily candlestick bar.
type Bar struct {
	Time     time.Time
	Open     float64
	High     float64
	Low      float64
	Close    float64
	Volume   float64
	AdjClose float64
}

// Quote holds the current-moment snapshot for a ticker, independent of
// history. Fundamentals come from a secondary endpoint and may be absent.
type Quote struct {
	Symbol        string
	Price         float64
	Volume        float64
	TrailingPE    *float64
	ForwardPE     *float64
	PegRatio      *float64
	ProfitMargins *float64
	DebtToEquity  *float64
}

// Closes extracts the close column from a series of bars.
func Closes(bars []Bar) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		out[i] = b.Close
	}
	return out
}

// Highs extracts the high column from a series of bars.
func Highs(bars []Bar) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		out[i] = b.High
	}
	return out
}

// Lows extracts the low column from a series of bars.
func Lows(bars []Bar) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		out[i] = b.Low
	}
	return out
}

// Volumes extracts the volume column from a series of bars.
func Volumes(bars []Bar) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		out[i] = b.Volume
	}
	return out
}
