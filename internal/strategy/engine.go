package strategy

import (
	"fmt"
	"math"

	"StockPulse/internal/config"
	"StockPulse/internal/model"
)

// strongTrendThreshold separates a directional market from a ranging one.
const strongTrendThreshold = 0.7

// Score runs the weighted scoring rules over the computed metrics and
// returns the raw score, the annotated reasons, and how many of the
// seven key indicators leaned bullish or bearish. The same metrics and
// config always produce the same result.
func Score(m *model.Metrics, cfg config.Analysis) model.ScoreResult {
	var score float64
	var reasons []model.Reason
	var warnings []model.Reason
	var bullishCount, bearishCount int

	bullish := func(text string) {
		reasons = append(reasons, model.Reason{Kind: model.ReasonBullish, Text: text})
	}
	bearish := func(text string) {
		reasons = append(reasons, model.Reason{Kind: model.ReasonBearish, Text: text})
	}
	neutral := func(text string) {
		reasons = append(reasons, model.Reason{Kind: model.ReasonNeutral, Text: text})
	}
	warn := func(text string) {
		warnings = append(warnings, model.Reason{Kind: model.ReasonWarning, Text: text})
	}

	// 1. Golden Cross / Death Cross
	if m.SMA50 > m.SMA200 {
		score += 15
		bullishCount++
		bullish("Golden Cross: 50-day MA above 200-day MA (bullish)")
	} else {
		score -= 15
		bearishCount++
		bearish("Death Cross: 50-day MA below 200-day MA (bearish)")
	}

	// 2. RSI, dampened when the trend argues against the mean-reversion read
	isStrongUptrend := m.TrendStrength > strongTrendThreshold
	isStrongDowntrend := m.TrendStrength < -strongTrendThreshold

	switch {
	case m.RSI < cfg.RSIOversold:
		// Oversold in a downtrend is less bullish, it can keep falling.
		if isStrongDowntrend {
			score += 8
		} else {
			score += 12
		}
		bullishCount++
		bullish(fmt.Sprintf("RSI oversold at %.1f (potential bounce)", m.RSI))
		if m.RSI < 25 {
			score += 3
			warn(fmt.Sprintf("EXTREME oversold (RSI: %.1f) - high risk/reward", m.RSI))
		}
	case m.RSI > cfg.RSIOverbought:
		// Overbought in a strong uptrend is less bearish, momentum carries.
		if isStrongUptrend {
			score -= 6
		} else {
			score -= 12
			bearishCount++
		}
		bearish(fmt.Sprintf("RSI overbought at %.1f (potential pullback)", m.RSI))
		if m.RSI > 75 {
			if isStrongUptrend {
				warn(fmt.Sprintf("Overbought but in strong uptrend (RSI: %.1f)", m.RSI))
			} else {
				score -= 3
				warn(fmt.Sprintf("EXTREME overbought (RSI: %.1f)", m.RSI))
			}
		}
	case m.RSI >= 45 && m.RSI <= 65:
		score += 3
		bullish(fmt.Sprintf("RSI healthy at %.1f (neutral to bullish)", m.RSI))
	case m.RSI >= 35 && m.RSI < 45:
		neutral(fmt.Sprintf("RSI slightly weak at %.1f", m.RSI))
	case m.RSI > 65 && m.RSI <= 70:
		neutral(fmt.Sprintf("RSI slightly strong at %.1f", m.RSI))
	}

	// 3. MACD, or raw 50-day momentum when the history was too short
	if m.HasMACD {
		switch {
		case m.MACD > m.MACDSignal && m.MACDHistogram > 0:
			score += 20
			bullishCount++
			bullish("MACD bullish crossover (strong momentum)")
		case m.MACD < m.MACDSignal && m.MACDHistogram < 0:
			score -= 20
			bearishCount++
			bearish("MACD bearish crossover (weak momentum)")
		case m.MACD > m.MACDSignal:
			score += 8
			bullish("MACD line above signal (building momentum)")
		case m.MACD < m.MACDSignal:
			score -= 8
			bearish("MACD line below signal (losing momentum)")
		}
	} else {
		if m.PriceChange50d > 10 {
			score += 8
			bullish(fmt.Sprintf("Strong 50-day price momentum (+%.1f%%)", m.PriceChange50d))
		} else if m.PriceChange50d < -10 {
			score -= 8
			bearish(fmt.Sprintf("Weak 50-day price momentum (%.1f%%)", m.PriceChange50d))
		}
	}

	// 4. Price vs 20-day EMA
	if m.CurrentPrice > m.EMA20 {
		score += 12
		bullishCount++
		bullish("Price above 20-day EMA (short-term uptrend)")
	} else {
		score -= 12
		bearishCount++
		bearish("Price below 20-day EMA (short-term downtrend)")
	}

	// 5. Bollinger Band position
	if m.BBPosition < 0.2 {
		score += 10
		bullishCount++
		bullish("Near lower Bollinger Band (oversold)")
		if m.BBPosition < 0.05 {
			score += 5
			warn("Touching lower Bollinger Band (extreme oversold)")
		}
	} else if m.BBPosition > 0.8 {
		score -= 10
		bearishCount++
		bearish("Near upper Bollinger Band (overbought)")
		if m.BBPosition > 0.95 {
			score -= 5
			warn("Touching upper Bollinger Band (extreme overbought)")
		}
	}

	// 6. Volume, supporting only so it never counts toward confirmation
	if m.VolumeRatio > 1.5 {
		score += 10
		bullish(fmt.Sprintf("High volume (%.1fx average) - strong interest", m.VolumeRatio))
		if m.VolumeRatio > 2.5 {
			score += 5
			warn(fmt.Sprintf("VERY high volume (%.1fx) - major move", m.VolumeRatio))
		}
	} else if m.VolumeRatio < 0.5 {
		score -= 5
		bearish(fmt.Sprintf("Low volume (%.1fx average) - weak conviction", m.VolumeRatio))
		if m.VolumeRatio < 0.3 {
			warn(fmt.Sprintf("EXTREMELY low volume (%.1fx) - no interest", m.VolumeRatio))
		}
	}

	// 7. Trend strength
	if m.TrendStrength > strongTrendThreshold {
		score += 15
		bullishCount++
		bullish(fmt.Sprintf("Strong uptrend (strength: %.2f)", m.TrendStrength))
	} else if m.TrendStrength < -strongTrendThreshold {
		score -= 15
		bearishCount++
		bearish(fmt.Sprintf("Strong downtrend (strength: %.2f)", m.TrendStrength))
	} else if math.Abs(m.TrendStrength) < 0.3 {
		warn("Weak/ranging market - choppy conditions")
	}

	// 8. Extended move away from the 200-day MA
	distanceFromSMA200 := (m.CurrentPrice - m.SMA200) / m.SMA200 * 100
	if distanceFromSMA200 > 30 {
		score -= 5
		warn(fmt.Sprintf("Extended above SMA200 (+%.1f%%) - overheated", distanceFromSMA200))
	} else if distanceFromSMA200 < -30 {
		score += 5
		warn(fmt.Sprintf("Extended below SMA200 (%.1f%%) - oversold", distanceFromSMA200))
	}

	// 9. Fundamentals, only when present
	if m.PERatio != nil && *m.PERatio > 0 && m.ForwardPE != nil && *m.ForwardPE > 0 {
		if *m.ForwardPE < 15 && *m.PERatio < 25 {
			score += 10
			bullish(fmt.Sprintf("Attractive valuation (P/E: %.1f, Fwd P/E: %.1f)", *m.PERatio, *m.ForwardPE))
		} else if *m.PERatio > 40 {
			score -= 5
			reasons = append(reasons, model.Reason{
				Kind: model.ReasonWarning,
				Text: fmt.Sprintf("High valuation (P/E: %.1f)", *m.PERatio),
			})
		}
	}
	if m.PegRatio != nil && *m.PegRatio > 0 && *m.PegRatio < 1 {
		score += 5
		bullish(fmt.Sprintf("Excellent PEG ratio: %.2f", *m.PegRatio))
	}

	// 10. Veto: extreme overbought or oversold dampens rather than blocks
	var veto *model.Reason
	if m.RSI > 75 && m.BBPosition > 0.9 && score > 0 {
		reduction := math.Min(score, 15)
		score -= reduction
		veto = &model.Reason{
			Kind: model.ReasonVeto,
			Text: fmt.Sprintf("Extreme overbought (RSI: %.1f, BB: %.0f%%) - reduced score by %g",
				m.RSI, m.BBPosition*100, reduction),
		}
	}
	if m.RSI < 25 && m.BBPosition < 0.1 && score < 0 {
		reduction := math.Min(math.Abs(score), 15)
		score += reduction
		veto = &model.Reason{
			Kind: model.ReasonVeto,
			Text: fmt.Sprintf("Extreme oversold (RSI: %.1f, BB: %.0f%%) - reduced bearish score by %g",
				m.RSI, m.BBPosition*100, reduction),
		}
	}

	// 11. Multi-indicator confirmation: a strong score without broad
	// agreement gets pulled back toward neutral.
	if score > 30 && bullishCount < 4 {
		score -= 5
		warn(fmt.Sprintf("Bullish score lacks confirmation (%d/7 bullish indicators)", bullishCount))
	}
	if score < -30 && bearishCount < 4 {
		score += 5
		warn(fmt.Sprintf("Bearish score lacks confirmation (%d/7 bearish indicators)", bearishCount))
	}

	all := make([]model.Reason, 0, len(reasons)+len(warnings)+1)
	if veto != nil {
		all = append(all, *veto)
	}
	all = append(all, reasons...)
	all = append(all, warnings...)

	return model.ScoreResult{
		Score:        score,
		Reasons:      all,
		BullishCount: bullishCount,
		BearishCount: bearishCount,
	}
}
