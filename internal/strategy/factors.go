package strategy

import (
	"fmt"

	"CryptoSentinel/internal/model"
)

// Factor names, also used as keys by the report formatter.
const (
	FactorRSI       = "RSI"
	FactorMACD      = "MACD"
	FactorBollinger = "BOLL"
	FactorEMA       = "EMA50"
	FactorTrend     = "TREND"
)

func factor(name string, raw, weight float64, commentary string) model.FactorScore {
	cond := model.ConditionNeutral
	switch {
	case raw > 0:
		cond = model.ConditionGood
	case raw < 0:
		cond = model.ConditionBad
	}
	return model.FactorScore{
		Name:       name,
		RawScore:   raw,
		Weight:     weight,
		Weighted:   raw * weight,
		Condition:  cond,
		Commentary: commentary,
	}
}

// scoreRSI: over 70 is overbought, under 30 is oversold.
// Weight: 0.25
func scoreRSI(b *model.IndicatorBundle) model.FactorScore {
	var raw float64
	switch {
	case b.RSI > 70:
		raw = -1
	case b.RSI < 30:
		raw = 1
	}
	return factor(FactorRSI, raw, 0.25, fmt.Sprintf("RSI=%.1f", b.RSI))
}

// scoreMACD: positive histogram is bullish momentum.
// Weight: 0.25
func scoreMACD(b *model.IndicatorBundle) model.FactorScore {
	var raw float64
	switch {
	case b.MACD.Histogram > 0:
		raw = 1
	case b.MACD.Histogram < 0:
		raw = -1
	}
	return factor(FactorMACD, raw, 0.25, fmt.Sprintf("hist=%.4f", b.MACD.Histogram))
}

// scoreBollinger: a close outside the bands is expected to revert.
// Weight: 0.15
func scoreBollinger(price float64, b *model.IndicatorBundle) model.FactorScore {
	if b.Bollinger == (model.Bollinger{}) {
		return factor(FactorBollinger, 0, 0.15, "n/a")
	}
	var raw float64
	switch BandPosition(price, b) {
	case PositionAboveUpper:
		raw = -1
	case PositionBelowLower:
		raw = 1
	}
	return factor(FactorBollinger, raw, 0.15, fmt.Sprintf("%.2f / %.2f", b.Bollinger.Lower, b.Bollinger.Upper))
}

// scoreEMA: price above EMA50 is bullish.
// Weight: 0.15
func scoreEMA(price float64, b *model.IndicatorBundle) model.FactorScore {
	if b.EMA50 == 0 {
		return factor(FactorEMA, 0, 0.15, "n/a")
	}
	raw := -1.0
	if price > b.EMA50 {
		raw = 1
	}
	return factor(FactorEMA, raw, 0.15, fmt.Sprintf("EMA50=%.2f", b.EMA50))
}

// scoreTrend compares EMA50 against EMA200.
// Weight: 0.20
func scoreTrend(b *model.IndicatorBundle) model.FactorScore {
	if b.EMA50 == 0 || b.EMA200 == 0 {
		return factor(FactorTrend, 0, 0.20, "n/a")
	}
	var raw float64
	switch {
	case b.EMA50 > b.EMA200:
		raw = 1
	case b.EMA50 < b.EMA200:
		raw = -1
	}
	return factor(FactorTrend, raw, 0.20, fmt.Sprintf("EMA50=%.2f EMA200=%.2f", b.EMA50, b.EMA200))
}
