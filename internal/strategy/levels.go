package strategy

import (
	"math"

	"StockPulse/internal/model"
)

// Recommend maps a raw score to the five-level recommendation.
func Recommend(score float64) model.Recommendation {
	switch {
	case score >= 35:
		return model.StrongBuy
	case score >= 20:
		return model.Buy
	case score >= -20:
		return model.Hold
	case score >= -35:
		return model.Sell
	default:
		return model.StrongSell
	}
}

// Targets derives the price target and stop loss from the current price
// and ATR. A non-positive ATR falls back to 2% of the price so targets
// always exist.
func Targets(currentPrice, atr float64, rec model.Recommendation) (target, stopLoss float64) {
	effective := atr
	if !(effective > 0) {
		effective = currentPrice * 0.02
	}

	switch rec {
	case model.StrongBuy, model.Buy:
		return currentPrice + 2*effective, currentPrice - 1.5*effective
	case model.StrongSell, model.Sell:
		return currentPrice - 2*effective, currentPrice + 1.5*effective
	default:
		return currentPrice + effective, currentPrice - effective
	}
}

// Confidence estimates how sure the signal is, 0-100, from indicator
// agreement and score decisiveness. With no directional indicators at
// all it returns the neutral 50.
func Confidence(bullishCount, bearishCount int, score float64) float64 {
	total := bullishCount + bearishCount
	if total == 0 {
		return 50
	}

	dominant := bullishCount
	if bearishCount > dominant {
		dominant = bearishCount
	}
	agreementRatio := float64(dominant) / float64(total)

	confidence := 50 + agreementRatio*30

	absScore := math.Abs(score)
	if absScore >= 35 {
		confidence += 15
	} else if absScore >= 20 {
		confidence += 8
	}

	conflicting := bullishCount
	if bearishCount < conflicting {
		conflicting = bearishCount
	}
	confidence -= float64(conflicting) * 3

	return math.Max(0, math.Min(100, math.Round(confidence)))
}
