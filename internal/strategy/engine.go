package strategy

import (
	"math"

	"CryptoSentinel/internal/model"
)

// Position of the price relative to an indicator envelope.
type Position int

const (
	PositionInside Position = iota
	PositionAboveUpper
	PositionBelowLower
)

// BandPosition places price against the Bollinger bands.
func BandPosition(price float64, b *model.IndicatorBundle) Position {
	switch {
	case price > b.Bollinger.Upper:
		return PositionAboveUpper
	case price < b.Bollinger.Lower:
		return PositionBelowLower
	default:
		return PositionInside
	}
}

// Direction thresholds on the weighted score.
const (
	upThreshold   = 0.2
	downThreshold = -0.2
)

func mapDirection(score float64) model.Direction {
	switch {
	case score >= upThreshold:
		return model.DirectionUp
	case score <= downThreshold:
		return model.DirectionDown
	default:
		return model.DirectionNeutral
	}
}

// Evaluate computes the signal for one symbol from its latest market data.
// Data without indicators yields a neutral signal with no factors.
func Evaluate(data *model.MarketData) *model.Signal {
	signal := &model.Signal{
		Symbol:     data.Symbol,
		Interval:   data.Interval,
		Direction:  model.DirectionNeutral,
		Confidence: 50,
	}
	b := data.Indicators
	if b == nil {
		return signal
	}

	factors := []model.FactorScore{
		scoreRSI(b),
		scoreMACD(b),
		scoreBollinger(data.Price, b),
		scoreEMA(data.Price, b),
		scoreTrend(b),
	}

	total := 0.0
	for _, f := range factors {
		total += f.Weighted
	}

	signal.Factors = factors
	signal.TotalScore = total
	signal.Direction = mapDirection(total)
	signal.Confidence = math.Round((50+math.Abs(total)*50)*10) / 10

	switch {
	case b.RSI > 80:
		signal.WarningMsg = "RSI > 80: extremely overbought"
	case b.RSI < 20:
		signal.WarningMsg = "RSI < 20: extremely oversold"
	}
	return signal
}
