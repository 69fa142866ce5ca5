package calculator

// RSIValue computes the Wilder-smoothed RSI over the given period.
// Requires at least period+1 prices.
func RSIValue(prices []float64, period int) Value {
	if period <= 0 || len(prices) < period+1 {
		return Value{}
	}

	// Initial average gain/loss over the first `period` changes
	var avgGain, avgLoss float64
	for i := 1; i <= period; i++ {
		change := prices[i] - prices[i-1]
		if change > 0 {
			avgGain += change
		} else {
			avgLoss -= change
		}
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)

	// Wilder smoothing, every remaining change in order
	for i := period + 1; i < len(prices); i++ {
		change := prices[i] - prices[i-1]
		gain, loss := 0.0, 0.0
		if change > 0 {
			gain = change
		} else {
			loss = -change
		}
		avgGain = (avgGain*float64(period-1) + gain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)
	}

	if avgLoss == 0 {
		return valid(100)
	}
	rs := avgGain / avgLoss
	return valid(100.0 - 100.0/(1.0+rs))
}

// RSI returns the relative strength index in [0,100], 50 when data is insufficient.
func RSI(prices []float64, period int) float64 {
	return RSIValue(prices, period).Or(50)
}
