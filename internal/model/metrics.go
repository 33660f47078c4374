package model

// Metrics holds the latest value of every computed indicator for one
// analysis. Created once per analysis call and read-only afterwards.
type Metrics struct {
	CurrentPrice  float64 `json:"current_price"`
	SMA50         float64 `json:"sma_50"`
	SMA200        float64 `json:"sma_200"`
	EMA20         float64 `json:"ema_20"`
	RSI           float64 `json:"rsi"`
	MACD          float64 `json:"macd"`
	MACDSignal    float64 `json:"macd_signal"`
	MACDHistogram float64 `json:"macd_histogram"`
	// BBPosition is the price's fractional position between the lower and
	// upper Bollinger band. Values outside [0,1] mean the price is outside
	// the bands.
	BBPosition    float64 `json:"bb_position"`
	VolumeRatio   float64 `json:"volume_ratio"`
	ATR           float64 `json:"atr"`
	TrendStrength float64 `json:"trend_strength"`
	// HasMACD is false when the history was too short to derive a MACD
	// signal line; scoring falls back to raw price momentum then.
	HasMACD bool `json:"-"`

	// Optional fundamentals, nil when the quote endpoint had none.
	PERatio      *float64 `json:"pe_ratio,omitempty"`
	ForwardPE    *float64 `json:"forward_pe,omitempty"`
	PegRatio     *float64 `json:"peg_ratio,omitempty"`
	ProfitMargin *float64 `json:"profit_margin,omitempty"`
	DebtToEquity *float64 `json:"debt_to_equity,omitempty"`

	PriceChange50d float64 `json:"price_change_50d"`
}
