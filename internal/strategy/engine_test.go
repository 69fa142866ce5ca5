package strategy

import (
	"math"
	"testing"

	"CryptoSentinel/internal/model"
)

func findFactor(sig *model.Signal, name string) model.FactorScore {
	for _, f := range sig.Factors {
		if f.Name == name {
			return f
		}
	}
	return model.FactorScore{}
}

func TestEvaluate_Bullish(t *testing.T) {
	data := &model.MarketData{
		Symbol: "BTCUSDT",
		Price:  95,
		Indicators: &model.IndicatorBundle{
			RSI:       25,
			MACD:      model.MACD{MACDLine: 1.2, SignalLine: 0.8, Histogram: 0.4},
			Bollinger: model.Bollinger{Upper: 110, Middle: 103, Lower: 96},
			EMA50:     90,
			EMA200:    80,
		},
	}
	sig := Evaluate(data)
	if len(sig.Factors) != 5 {
		t.Fatalf("expected 5 factors, got %d", len(sig.Factors))
	}
	if sig.Direction != model.DirectionUp {
		t.Errorf("expected UP, got %s (score %.3f)", sig.Direction, sig.TotalScore)
	}
	if math.Abs(sig.TotalScore-1.0) > 1e-9 {
		t.Errorf("expected total score 1.0, got %.3f", sig.TotalScore)
	}
	if sig.Confidence != 100 {
		t.Errorf("expected confidence 100, got %.1f", sig.Confidence)
	}
	for _, f := range sig.Factors {
		if f.Condition != model.ConditionGood {
			t.Errorf("factor %s: expected good, got %s", f.Name, f.Condition)
		}
	}
}

func TestEvaluate_Bearish(t *testing.T) {
	data := &model.MarketData{
		Price: 120,
		Indicators: &model.IndicatorBundle{
			RSI:       85,
			MACD:      model.MACD{Histogram: -0.3},
			Bollinger: model.Bollinger{Upper: 110, Middle: 100, Lower: 90},
			EMA50:     125,
			EMA200:    130,
		},
	}
	sig := Evaluate(data)
	if sig.Direction != model.DirectionDown {
		t.Errorf("expected DOWN, got %s", sig.Direction)
	}
	if sig.WarningMsg == "" {
		t.Error("expected overbought warning for RSI > 80")
	}
}

func TestEvaluate_SentinelsAreNeutral(t *testing.T) {
	data := &model.MarketData{
		Price:      100,
		Indicators: &model.IndicatorBundle{RSI: 50},
	}
	sig := Evaluate(data)
	if sig.Direction != model.DirectionNeutral {
		t.Errorf("expected NEUTRAL, got %s", sig.Direction)
	}
	if sig.TotalScore != 0 {
		t.Errorf("expected zero score, got %.3f", sig.TotalScore)
	}
	if sig.Confidence != 50 {
		t.Errorf("expected confidence 50, got %.1f", sig.Confidence)
	}
	for _, f := range sig.Factors {
		if f.Condition != model.ConditionNeutral {
			t.Errorf("factor %s: expected neutral, got %s", f.Name, f.Condition)
		}
	}
}

func TestEvaluate_NoIndicators(t *testing.T) {
	sig := Evaluate(&model.MarketData{Symbol: "ETHUSDT"})
	if sig.Direction != model.DirectionNeutral || len(sig.Factors) != 0 {
		t.Errorf("expected empty neutral signal, got %+v", sig)
	}
}

func TestRSIFactor_Boundaries(t *testing.T) {
	tests := []struct {
		rsi  float64
		want model.Condition
	}{
		{100, model.ConditionBad},
		{70.01, model.ConditionBad},
		{70, model.ConditionNeutral},
		{50, model.ConditionNeutral},
		{30, model.ConditionNeutral},
		{29.99, model.ConditionGood},
		{0, model.ConditionGood},
	}
	for _, tt := range tests {
		f := scoreRSI(&model.IndicatorBundle{RSI: tt.rsi})
		if f.Condition != tt.want {
			t.Errorf("rsi %.2f: expected %s, got %s", tt.rsi, tt.want, f.Condition)
		}
	}
}

func TestMapDirection(t *testing.T) {
	tests := []struct {
		score float64
		want  model.Direction
	}{
		{1, model.DirectionUp},
		{0.2, model.DirectionUp},
		{0.19, model.DirectionNeutral},
		{0, model.DirectionNeutral},
		{-0.19, model.DirectionNeutral},
		{-0.2, model.DirectionDown},
		{-1, model.DirectionDown},
	}
	for _, tt := range tests {
		if got := mapDirection(tt.score); got != tt.want {
			t.Errorf("score %.2f: expected %s, got %s", tt.score, tt.want, got)
		}
	}
}

func TestBandPosition(t *testing.T) {
	b := &model.IndicatorBundle{Bollinger: model.Bollinger{Upper: 110, Middle: 100, Lower: 90}}
	if BandPosition(111, b) != PositionAboveUpper {
		t.Error("expected above upper")
	}
	if BandPosition(89, b) != PositionBelowLower {
		t.Error("expected below lower")
	}
	if BandPosition(110, b) != PositionInside {
		t.Error("expected inside at the upper edge")
	}
}

func TestTrendFactor(t *testing.T) {
	golden := scoreTrend(&model.IndicatorBundle{EMA50: 105, EMA200: 100})
	if golden.RawScore != 1 {
		t.Errorf("expected bullish trend, got %.1f", golden.RawScore)
	}
	death := scoreTrend(&model.IndicatorBundle{EMA50: 95, EMA200: 100})
	if death.RawScore != -1 {
		t.Errorf("expected bearish trend, got %.1f", death.RawScore)
	}
	missing := findFactor(Evaluate(&model.MarketData{Price: 1, Indicators: &model.IndicatorBundle{EMA50: 1}}), FactorTrend)
	if missing.RawScore != 0 {
		t.Errorf("expected neutral trend without EMA200, got %.1f", missing.RawScore)
	}
}
