package notifier

import (
	"errors"
	"strings"
	"testing"

	"CryptoSentinel/internal/model"
	"CryptoSentinel/internal/strategy"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleData() *model.MarketData {
	return &model.MarketData{
		Symbol:    "BTCUSDT",
		Price:     64250.5,
		Change24h: -2.5,
		Interval:  model.Interval4h,
		Indicators: &model.IndicatorBundle{
			RSI:       82.4,
			MACD:      model.MACD{MACDLine: 120.1236, SignalLine: 100.5, Histogram: 19.6236},
			Bollinger: model.Bollinger{Upper: 64000, Middle: 62000, Lower: 60000},
			EMA50:     61000,
			EMA200:    58000,
		},
	}
}

func TestFormatReport_English(t *testing.T) {
	data := sampleData()
	sig := strategy.Evaluate(data)
	out := FormatReport(data, sig, model.LangEN)

	assert.Contains(t, out, "BTCUSDT Market Report")
	assert.Contains(t, out, "Price: 64250.50")
	assert.Contains(t, out, "24h Change: -2.50%")
	assert.Contains(t, out, "RSI (14): 82.40")
	assert.Contains(t, out, "Hist: 19.6236")
	assert.Contains(t, out, "Above Upper Band")
	assert.Contains(t, out, "Above EMA50")
	assert.Contains(t, out, "extremely overbought")
	assert.Contains(t, out, "Direction:</b>")
}

func TestFormatReport_Chinese(t *testing.T) {
	data := sampleData()
	out := FormatReport(data, strategy.Evaluate(data), model.LangZH)
	assert.Contains(t, out, "行情报告")
	assert.Contains(t, out, "高于布林上轨")
	assert.Contains(t, out, "极度超买")
}

func TestFormatReport_NoIndicators(t *testing.T) {
	out := FormatReport(&model.MarketData{Symbol: "ETHUSDT"}, nil, model.LangEN)
	assert.Contains(t, out, "indicators not available")
}

func TestFormatReport_UnknownLanguageFallsBack(t *testing.T) {
	data := sampleData()
	out := FormatReport(data, nil, model.Language("fr"))
	assert.Contains(t, out, "Market Report")
}

func TestLabels(t *testing.T) {
	b := &model.IndicatorBundle{Bollinger: model.Bollinger{Upper: 110, Middle: 100, Lower: 90}, EMA50: 100}
	assert.Equal(t, "Inside Bands", BandLabel(100, b, model.LangEN))
	assert.Equal(t, "Below Lower Band", BandLabel(80, b, model.LangEN))
	assert.Equal(t, "Below EMA50", EMALabel(100, b, model.LangEN))
	assert.Equal(t, "高于EMA50", EMALabel(101, b, model.LangZH))
}

func TestFormatSignalChange(t *testing.T) {
	sig := &model.Signal{Symbol: "SOLUSDT", Direction: model.DirectionUp, Confidence: 72.5}
	out := FormatSignalChange(model.DirectionDown, sig, 150.25, model.LangEN)
	assert.Contains(t, out, "SOLUSDT Signal Changed")
	assert.Contains(t, out, "DOWN → 🟢 UP")
	assert.Contains(t, out, "72.5%")
}

func TestFormatStatus(t *testing.T) {
	data := sampleData()
	lines := []StatusLine{
		{Symbol: "BTCUSDT", Data: data, Signal: &model.Signal{Direction: model.DirectionDown}},
		{Symbol: "BADUSDT", Err: errors.New("boom")},
	}
	out := FormatStatus(lines, model.LangEN)
	rows := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, rows, 4)
	assert.Contains(t, rows[2], "BTCUSDT 64250.50 (-2.50%) RSI 82.4 | DOWN")
	assert.Contains(t, rows[3], "BADUSDT: failed")
}

func TestFormatPrompt(t *testing.T) {
	data := sampleData()
	out, err := FormatPrompt(data, model.LangEN)
	require.NoError(t, err)

	assert.Contains(t, out, "for BTCUSDT to predict the price movement for the NEXT 4 HOURS")
	assert.Contains(t, out, "Current Price: $64250.50")
	assert.Contains(t, out, "RSI (14): 82.40")
	assert.Contains(t, out, "MACD Histogram: 19.6236")
	assert.Contains(t, out, "Bollinger Bands: Upper 64000.00, Lower 60000.00")
	assert.Contains(t, out, "EMA (200): 58000.00")
	assert.Contains(t, out, "Price relative to BB: Above Upper Band")
	assert.Contains(t, out, "Price relative to EMA: Above EMA50")
	assert.Contains(t, out, "Provide the response in English.")

	zh, err := FormatPrompt(data, model.LangZH)
	require.NoError(t, err)
	assert.Contains(t, zh, "Simplified Chinese")

	_, err = FormatPrompt(&model.MarketData{Symbol: "X"}, model.LangEN)
	assert.Error(t, err)
}

func TestFormatPrompt_SentinelsPassThrough(t *testing.T) {
	data := &model.MarketData{Symbol: "NEWUSDT", Interval: model.Interval1h, Price: 1, Indicators: &model.IndicatorBundle{RSI: 50}}
	out, err := FormatPrompt(data, model.LangEN)
	require.NoError(t, err)
	assert.Contains(t, out, "RSI (14): 50.00")
	assert.Contains(t, out, "EMA (50): 0.00")
	assert.Contains(t, out, "NEXT 1 HOUR.")
}
