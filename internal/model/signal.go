package model

// Recommendation is the five-level trading recommendation.
type Recommendation string

const (
	StrongBuy  Recommendation = "STRONG BUY"
	Buy        Recommendation = "BUY"
	Hold       Recommendation = "HOLD"
	Sell       Recommendation = "SELL"
	StrongSell Recommendation = "STRONG SELL"
)

// ReasonKind classifies a scoring reason.
type ReasonKind int

const (
	ReasonBullish ReasonKind = iota
	ReasonBearish
	ReasonNeutral
	ReasonWarning
	ReasonVeto
)

// Reason is a single annotated line produced by the scoring engine.
// The glyph prefix is applied only when formatting for output.
type Reason struct {
	Kind ReasonKind
	Text string
}

// String renders the reason with its conventional glyph prefix.
func (r Reason) String() string {
	switch r.Kind {
	case ReasonBullish:
		return "✓ " + r.Text
	case ReasonBearish:
		return "✗ " + r.Text
	case ReasonNeutral:
		return "○ " + r.Text
	case ReasonWarning:
		return "⚠ " + r.Text
	case ReasonVeto:
		return "🛑 VETO: " + r.Text
	default:
		return r.Text
	}
}

// ScoreResult is the scoring engine's output, discarded once the final
// signal has been produced.
type ScoreResult struct {
	Score        float64
	Reasons      []Reason
	BullishCount int
	BearishCount int
}

// FormatReasons renders the tagged reasons to their string form.
func FormatReasons(reasons []Reason) []string {
	out := make([]string, len(reasons))
	for i, r := range reasons {
		out[i] = r.String()
	}
	return out
}

// SignalSummary counts how many of the seven key indicators leaned each way.
type SignalSummary struct {
	Bullish int `json:"bullish"`
	Bearish int `json:"bearish"`
	Total   int `json:"total"`
}

// Signal is the final analysis output for one ticker.
type Signal struct {
	Ticker          string         `json:"ticker"`
	Recommendation  Recommendation `json:"recommendation"`
	Confidence      float64        `json:"confidence"`
	Price           float64        `json:"price"`
	TargetPrice     float64        `json:"target_price"`
	StopLoss        float64        `json:"stop_loss"`
	PotentialGain   float64        `json:"potential_gain"`
	Risk            float64        `json:"risk"`
	RiskRewardRatio float64        `json:"risk_reward_ratio"`
	Reasons         []string       `json:"reasons"`
	Metrics         *Metrics       `json:"metrics"`
	ChartData       *ChartData     `json:"chartData"`
	Timestamp       string         `json:"timestamp"`
	SignalSummary   SignalSummary  `json:"signal_summary"`
}

// ChartData carries aligned per-indicator series for the display window.
// Indicator arrays use pointers so a late-starting series can left-pad
// with nulls; every array has the same length.
type ChartData struct {
	Dates              []string   `json:"dates"`
	Prices             []float64  `json:"prices"`
	Volumes            []float64  `json:"volumes"`
	SMA50Values        []*float64 `json:"sma_50_values"`
	SMA200Values       []*float64 `json:"sma_200_values"`
	EMA20Values        []*float64 `json:"ema_20_values"`
	RSIValues          []*float64 `json:"rsi_values"`
	MACDValues         []*float64 `json:"macd_values"`
	MACDSignalValues   []*float64 `json:"macd_signal_values"`
	MACDHistogramValues []*float64 `json:"macd_histogram_values"`
	BBUpper            []*float64 `json:"bb_upper"`
	BBMiddle           []*float64 `json:"bb_middle"`
	BBLower            []*float64 `json:"bb_lower"`
	VolumeSMA          []*float64 `json:"volume_sma"`
}
