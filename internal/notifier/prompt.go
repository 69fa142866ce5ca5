package notifier

import (
	"fmt"
	"strings"

	"CryptoSentinel/internal/model"
)

// FormatPrompt builds the analyst prompt handed to an external prediction
// service. The service is expected to answer with a JSON object holding
// prediction (UP, DOWN, NEUTRAL), probability, reasoning and keyFactors.
func FormatPrompt(data *model.MarketData, lang model.Language) (string, error) {
	ind := data.Indicators
	if ind == nil {
		return "", fmt.Errorf("no indicators available for %s", data.Symbol)
	}
	interval := data.Interval.Label()

	langInstruction := "Provide the response in English."
	if lang == model.LangZH {
		langInstruction = "IMPORTANT: Provide the 'reasoning' and 'keyFactors' in Simplified Chinese (zh-CN). " +
			"Keep the 'prediction' field as the English enum (UP, DOWN, NEUTRAL)."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Act as a senior financial crypto analyst. Analyze the following real-time data for %s "+
		"to predict the price movement for the NEXT %s.\n\n", data.Symbol, strings.ToUpper(interval))
	fmt.Fprintf(&b, "Current Price: $%.2f\n", data.Price)
	fmt.Fprintf(&b, "24h Change: %.2f%%\n\n", data.Change24h)
	fmt.Fprintf(&b, "Technical Indicators (%s Chart):\n", interval)
	fmt.Fprintf(&b, "- RSI (14): %.2f (Over 70 is overbought, under 30 is oversold)\n", ind.RSI)
	fmt.Fprintf(&b, "- MACD Histogram: %.4f (Positive = Bullish momentum, Negative = Bearish)\n", ind.MACD.Histogram)
	fmt.Fprintf(&b, "- MACD Line: %.4f\n", ind.MACD.MACDLine)
	fmt.Fprintf(&b, "- Signal Line: %.4f\n", ind.MACD.SignalLine)
	fmt.Fprintf(&b, "- Bollinger Bands: Upper %.2f, Lower %.2f\n", ind.Bollinger.Upper, ind.Bollinger.Lower)
	fmt.Fprintf(&b, "- EMA (50): %.2f\n", ind.EMA50)
	fmt.Fprintf(&b, "- EMA (200): %.2f\n\n", ind.EMA200)
	fmt.Fprintf(&b, "Price relative to BB: %s\n", BandLabel(data.Price, ind, model.LangEN))
	fmt.Fprintf(&b, "Price relative to EMA: %s\n\n", EMALabel(data.Price, ind, model.LangEN))
	b.WriteString("Task:\n")
	fmt.Fprintf(&b, "Provide a prediction for the next %s trend.\n", interval)
	b.WriteString("Determine direction (UP/DOWN/NEUTRAL) and a probability score (0-100%).\n")
	b.WriteString("Provide a concise reasoning and list 3 key technical factors influencing this decision.\n")
	b.WriteString(langInstruction + "\n")
	return b.String(), nil
}
