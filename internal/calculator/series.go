package calculator

import "CryptoSentinel/internal/model"

// Value is an indicator reading that may not be available yet.
// Exported float helpers collapse it back to the literal sentinels.
type Value struct {
	V  float64
	OK bool
}

func valid(v float64) Value { return Value{V: v, OK: true} }

// Or returns the value, or sentinel when there was not enough data.
func (v Value) Or(sentinel float64) float64 {
	if !v.OK {
		return sentinel
	}
	return v.V
}

// ExtractCloses projects candles onto their closing prices, preserving order.
func ExtractCloses(candles []model.Candle) []float64 {
	closes := make([]float64, len(candles))
	for i, c := range candles {
		closes[i] = c.Close
	}
	return closes
}
