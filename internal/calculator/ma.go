package calculator

// SMAValue computes the simple moving average over the last period prices.
func SMAValue(prices []float64, period int) Value {
	if period <= 0 || len(prices) < period {
		return Value{}
	}
	sum := 0.0
	for i := len(prices) - period; i < len(prices); i++ {
		sum += prices[i]
	}
	return valid(sum / float64(period))
}

// SMA returns the simple moving average of the last period prices, or 0 if
// there are fewer than period prices.
func SMA(prices []float64, period int) float64 {
	return SMAValue(prices, period).Or(0)
}

// EMASeries computes the full exponential moving average series.
//
// The value at period-1 is seeded with the simple average of the first period
// prices, which is what charting platforms do. Earlier indices hold 0, and a
// series shorter than period comes back as all zeros of the same length.
func EMASeries(prices []float64, period int) []float64 {
	ema := make([]float64, len(prices))
	if period <= 0 || len(prices) < period {
		return ema
	}

	sum := 0.0
	for i := 0; i < period; i++ {
		sum += prices[i]
	}
	ema[period-1] = sum / float64(period)

	k := 2.0 / float64(period+1)
	for i := period; i < len(prices); i++ {
		ema[i] = (prices[i]-ema[i-1])*k + ema[i-1]
	}
	return ema
}

// EMAValue returns the most recent EMA reading.
func EMAValue(prices []float64, period int) Value {
	if period <= 0 || len(prices) < period {
		return Value{}
	}
	series := EMASeries(prices, period)
	return valid(series[len(series)-1])
}

// EMA returns the last element of EMASeries, or 0 when it is not yet valid.
func EMA(prices []float64, period int) float64 {
	return EMAValue(prices, period).Or(0)
}
