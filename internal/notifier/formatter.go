package notifier

import (
	"fmt"
	"html"
	"strings"

	"CryptoSentinel/internal/model"
	"CryptoSentinel/internal/strategy"
)

type texts struct {
	reportTitle   string
	price         string
	change        string
	indicators    string
	factors       string
	score         string
	direction     string
	confidence    string
	aboveUpper    string
	belowLower    string
	insideBands   string
	aboveEMA      string
	belowEMA      string
	overbought    string
	oversold      string
	signalChanged string
	noIndicators  string
	statusTitle   string
	failed        string
	directions    map[model.Direction]string
	factorNames   map[string]string
}

var locales = map[model.Language]texts{
	model.LangEN: {
		reportTitle:   "Market Report",
		price:         "Price",
		change:        "24h Change",
		indicators:    "Technical Indicators",
		factors:       "Factor Breakdown",
		score:         "Total Score",
		direction:     "Direction",
		confidence:    "Confidence",
		aboveUpper:    "Above Upper Band",
		belowLower:    "Below Lower Band",
		insideBands:   "Inside Bands",
		aboveEMA:      "Above EMA50",
		belowEMA:      "Below EMA50",
		overbought:    "RSI above 80, extremely overbought",
		oversold:      "RSI below 20, extremely oversold",
		signalChanged: "Signal Changed",
		noIndicators:  "indicators not available",
		statusTitle:   "Watchlist Status",
		failed:        "failed",
		directions: map[model.Direction]string{
			model.DirectionUp:      "UP",
			model.DirectionDown:    "DOWN",
			model.DirectionNeutral: "NEUTRAL",
		},
		factorNames: map[string]string{
			strategy.FactorRSI:       "RSI (14)",
			strategy.FactorMACD:      "MACD",
			strategy.FactorBollinger: "Bollinger",
			strategy.FactorEMA:       "EMA50",
			strategy.FactorTrend:     "Trend",
		},
	},
	model.LangZH: {
		reportTitle:   "行情报告",
		price:         "当前价格",
		change:        "24小时涨跌",
		indicators:    "技术指标",
		factors:       "因子评分明细",
		score:         "综合评分",
		direction:     "方向",
		confidence:    "置信度",
		aboveUpper:    "高于布林上轨",
		belowLower:    "低于布林下轨",
		insideBands:   "布林带内",
		aboveEMA:      "高于EMA50",
		belowEMA:      "低于EMA50",
		overbought:    "RSI高于80，极度超买",
		oversold:      "RSI低于20，极度超卖",
		signalChanged: "信号变化",
		noIndicators:  "指标不可用",
		statusTitle:   "关注列表状态",
		failed:        "失败",
		directions: map[model.Direction]string{
			model.DirectionUp:      "看涨",
			model.DirectionDown:    "看跌",
			model.DirectionNeutral: "中性",
		},
		factorNames: map[string]string{
			strategy.FactorRSI:       "RSI (14)",
			strategy.FactorMACD:      "MACD",
			strategy.FactorBollinger: "布林带",
			strategy.FactorEMA:       "EMA50",
			strategy.FactorTrend:     "趋势",
		},
	},
}

func localeFor(lang model.Language) texts {
	if t, ok := locales[lang]; ok {
		return t
	}
	return locales[model.LangEN]
}

var directionIcons = map[model.Direction]string{
	model.DirectionUp:      "🟢",
	model.DirectionDown:    "🔴",
	model.DirectionNeutral: "⚪",
}

// BandLabel describes price relative to the Bollinger bands.
func BandLabel(price float64, b *model.IndicatorBundle, lang model.Language) string {
	t := localeFor(lang)
	switch strategy.BandPosition(price, b) {
	case strategy.PositionAboveUpper:
		return t.aboveUpper
	case strategy.PositionBelowLower:
		return t.belowLower
	default:
		return t.insideBands
	}
}

// EMALabel describes price relative to EMA50.
func EMALabel(price float64, b *model.IndicatorBundle, lang model.Language) string {
	t := localeFor(lang)
	if price > b.EMA50 {
		return t.aboveEMA
	}
	return t.belowEMA
}

// FormatReport formats one symbol's indicators and signal into a Telegram message.
func FormatReport(data *model.MarketData, signal *model.Signal, lang model.Language) string {
	t := localeFor(lang)
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📊 <b>%s %s</b> | %s\n\n", html.EscapeString(data.Symbol), t.reportTitle, data.Interval))
	b.WriteString(fmt.Sprintf("%s: %.2f\n", t.price, data.Price))
	b.WriteString(fmt.Sprintf("%s: %+.2f%%\n\n", t.change, data.Change24h))

	ind := data.Indicators
	if ind == nil {
		b.WriteString(t.noIndicators + "\n")
		return b.String()
	}

	b.WriteString(fmt.Sprintf("📈 <b>%s:</b>\n", t.indicators))
	b.WriteString(fmt.Sprintf("  RSI (14): %.2f\n", ind.RSI))
	b.WriteString(fmt.Sprintf("  MACD: %.4f | Signal: %.4f | Hist: %.4f\n", ind.MACD.MACDLine, ind.MACD.SignalLine, ind.MACD.Histogram))
	b.WriteString(fmt.Sprintf("  BB: %.2f / %.2f / %.2f (%s)\n", ind.Bollinger.Upper, ind.Bollinger.Middle, ind.Bollinger.Lower, BandLabel(data.Price, ind, lang)))
	b.WriteString(fmt.Sprintf("  EMA50: %.2f | EMA200: %.2f (%s)\n\n", ind.EMA50, ind.EMA200, EMALabel(data.Price, ind, lang)))

	if signal == nil {
		return b.String()
	}

	b.WriteString(fmt.Sprintf("🧮 <b>%s:</b>\n", t.factors))
	for _, f := range signal.Factors {
		b.WriteString(fmt.Sprintf("  %s(%s): %+.0f (×%.2f) = %+.3f\n",
			t.factorNames[f.Name], html.EscapeString(f.Commentary), f.RawScore, f.Weight, f.Weighted))
	}
	b.WriteString("  ─────────────────\n")
	b.WriteString(fmt.Sprintf("  %s: %+.3f\n\n", t.score, signal.TotalScore))
	b.WriteString(fmt.Sprintf("%s <b>%s:</b> %s (%s %.1f%%)\n",
		directionIcons[signal.Direction], t.direction, t.directions[signal.Direction], t.confidence, signal.Confidence))

	if w := warningText(ind, t); w != "" {
		b.WriteString(fmt.Sprintf("\n⚠️ %s\n", w))
	}
	return b.String()
}

func warningText(ind *model.IndicatorBundle, t texts) string {
	switch {
	case ind.RSI > 80:
		return t.overbought
	case ind.RSI < 20:
		return t.oversold
	default:
		return ""
	}
}

// FormatSignalChange announces a direction flip for one symbol.
func FormatSignalChange(prev model.Direction, signal *model.Signal, price float64, lang model.Language) string {
	t := localeFor(lang)
	return fmt.Sprintf("🔔 <b>%s %s</b>\n\n%s → %s %s\n%s: %.2f | %s: %.1f%%",
		html.EscapeString(signal.Symbol), t.signalChanged,
		t.directions[prev], directionIcons[signal.Direction], t.directions[signal.Direction],
		t.price, price, t.confidence, signal.Confidence)
}

// StatusLine is one row of the watchlist summary.
type StatusLine struct {
	Symbol string
	Data   *model.MarketData
	Signal *model.Signal
	Err    error
}

// FormatStatus summarizes the whole watchlist, one line per symbol.
func FormatStatus(lines []StatusLine, lang model.Language) string {
	t := localeFor(lang)
	var b strings.Builder
	b.WriteString(fmt.Sprintf("📋 <b>%s</b>\n\n", t.statusTitle))
	for _, l := range lines {
		if l.Err != nil || l.Data == nil || l.Data.Indicators == nil {
			b.WriteString(fmt.Sprintf("❌ %s: %s\n", html.EscapeString(l.Symbol), t.failed))
			continue
		}
		dir := model.DirectionNeutral
		if l.Signal != nil {
			dir = l.Signal.Direction
		}
		b.WriteString(fmt.Sprintf("%s %s %.2f (%+.2f%%) RSI %.1f | %s\n",
			directionIcons[dir], html.EscapeString(l.Symbol), l.Data.Price, l.Data.Change24h,
			l.Data.Indicators.RSI, t.directions[dir]))
	}
	return b.String()
}
