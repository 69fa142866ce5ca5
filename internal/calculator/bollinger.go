package calculator

import (
	"math"

	"CryptoSentinel/internal/model"
)

// Bollinger computes the bands over the trailing period using the population
// standard deviation (divide by period). Returns the zero value when there
// are fewer than period prices.
func Bollinger(prices []float64, period int, multiplier float64) model.Bollinger {
	mid := SMAValue(prices, period)
	if !mid.OK {
		return model.Bollinger{}
	}

	variance := 0.0
	for _, p := range prices[len(prices)-period:] {
		d := p - mid.V
		variance += d * d
	}
	variance /= float64(period)
	stdDev := math.Sqrt(variance)

	return model.Bollinger{
		Upper:  mid.V + multiplier*stdDev,
		Middle: mid.V,
		Lower:  mid.V - multiplier*stdDev,
	}
}
