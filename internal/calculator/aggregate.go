package calculator

import "CryptoSentinel/internal/model"

// Default periods, matching common charting tools.
const (
	RSIPeriod           = 14
	MACDFast            = 12
	MACDSlow            = 26
	MACDSignal          = 9
	BollingerPeriod     = 20
	BollingerMultiplier = 2.0
	EMAShortPeriod      = 50
	EMALongPeriod       = 200
)

// Aggregate computes every indicator for the last candle of the series.
// Engines that lack data leave their sentinel in the bundle.
func Aggregate(candles []model.Candle) model.IndicatorBundle {
	closes := ExtractCloses(candles)
	return model.IndicatorBundle{
		RSI:       RSI(closes, RSIPeriod),
		MACD:      MACD(closes, MACDFast, MACDSlow, MACDSignal),
		Bollinger: Bollinger(closes, BollingerPeriod, BollingerMultiplier),
		EMA50:     EMA(closes, EMAShortPeriod),
		EMA200:    EMA(closes, EMALongPeriod),
	}
}
