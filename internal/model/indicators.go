package model

// MACD holds the latest MACD line, signal line and histogram.
type MACD struct {
	MACDLine   float64 `json:"macdLine"`
	SignalLine float64 `json:"signalLine"`
	Histogram  float64 `json:"histogram"`
}

// Bollinger holds the latest Bollinger Band envelope.
type Bollinger struct {
	Upper  float64 `json:"upper"`
	Middle float64 `json:"middle"`
	Lower  float64 `json:"lower"`
}

// IndicatorBundle is computed relative to the last element of one price series.
// Insufficient data is reported with the literal sentinels: 0 for every field
// except RSI, which uses 50. RSI is exactly 100 when the window had no losses.
type IndicatorBundle struct {
	RSI       float64   `json:"rsi"`
	MACD      MACD      `json:"macd"`
	Bollinger Bollinger `json:"bollinger"`
	EMA50     float64   `json:"ema50"`
	EMA200    float64   `json:"ema200"`
}
