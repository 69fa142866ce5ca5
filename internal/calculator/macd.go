package calculator

import "CryptoSentinel/internal/model"

// MACD computes the latest MACD line, signal line and histogram.
// Returns the zero value when there are fewer than slow+signal prices.
func MACD(prices []float64, fast, slow, signal int) model.MACD {
	if fast <= 0 || slow <= 0 || signal <= 0 || len(prices) < slow+signal {
		return model.MACD{}
	}

	fastEMA := EMASeries(prices, fast)
	slowEMA := EMASeries(prices, slow)

	// The slow EMA only becomes valid at slow-1. Anything earlier would be a
	// difference against the zero sentinel, so it is zeroed instead.
	line := make([]float64, len(prices))
	for i := slow - 1; i < len(prices); i++ {
		line[i] = fastEMA[i] - slowEMA[i]
	}

	// The signal EMA is seeded from where the MACD line becomes valid, so its
	// own index 0 is slow-1 of the price series.
	validLine := line[slow-1:]
	signalSeries := EMASeries(validLine, signal)

	macdLine := validLine[len(validLine)-1]
	signalLine := signalSeries[len(signalSeries)-1]
	return model.MACD{
		MACDLine:   macdLine,
		SignalLine: signalLine,
		Histogram:  macdLine - signalLine,
	}
}
