// Package display renders market snapshots for the terminal.
package display

import (
	"fmt"
	"strings"

	"CryptoSentinel/internal/model"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#F8FAFC")).
			Background(lipgloss.Color("#1E293B")).
			Padding(0, 1)

	panelStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#475569")).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#94A3B8")).
			Width(12)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#64748B"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F59E0B")).
			Bold(true)

	badgeBase = lipgloss.NewStyle().Padding(0, 1).Bold(true)

	badgeStyles = map[model.Condition]lipgloss.Style{
		model.ConditionGood:    badgeBase.Foreground(lipgloss.Color("#34D399")).Background(lipgloss.Color("#064E3B")),
		model.ConditionBad:     badgeBase.Foreground(lipgloss.Color("#FB7185")).Background(lipgloss.Color("#4C0519")),
		model.ConditionNeutral: badgeBase.Foreground(lipgloss.Color("#94A3B8")).Background(lipgloss.Color("#1E293B")),
	}

	directionColors = map[model.Direction]lipgloss.Color{
		model.DirectionUp:      lipgloss.Color("#34D399"),
		model.DirectionDown:    lipgloss.Color("#FB7185"),
		model.DirectionNeutral: lipgloss.Color("#94A3B8"),
	}
)

type labels struct {
	price      string
	change     string
	score      string
	direction  string
	confidence string
	noData     string
	conditions map[model.Condition]string
}

var labelSets = map[model.Language]labels{
	model.LangEN: {
		price:      "Price",
		change:     "24h",
		score:      "Score",
		direction:  "Direction",
		confidence: "Confidence",
		noData:     "indicators not available",
		conditions: map[model.Condition]string{
			model.ConditionGood:    "BULLISH",
			model.ConditionBad:     "BEARISH",
			model.ConditionNeutral: "NEUTRAL",
		},
	},
	model.LangZH: {
		price:      "价格",
		change:     "24小时",
		score:      "评分",
		direction:  "方向",
		confidence: "置信度",
		noData:     "指标不可用",
		conditions: map[model.Condition]string{
			model.ConditionGood:    "利好",
			model.ConditionBad:     "利空",
			model.ConditionNeutral: "中性",
		},
	},
}

func labelsFor(lang model.Language) labels {
	if l, ok := labelSets[lang]; ok {
		return l
	}
	return labelSets[model.LangEN]
}

// Badge renders a coloured condition tag.
func Badge(cond model.Condition, lang model.Language) string {
	style, ok := badgeStyles[cond]
	if !ok {
		style = badgeStyles[model.ConditionNeutral]
		cond = model.ConditionNeutral
	}
	return style.Render(labelsFor(lang).conditions[cond])
}

func row(label, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(label), value)
}

// RenderMarket draws a bordered panel with price, one badge per factor and
// the aggregated signal.
func RenderMarket(data *model.MarketData, signal *model.Signal, lang model.Language) string {
	l := labelsFor(lang)
	title := titleStyle.Render(fmt.Sprintf("%s · %s", data.Symbol, data.Interval.Label()))

	changeColor := directionColors[model.DirectionUp]
	if data.Change24h < 0 {
		changeColor = directionColors[model.DirectionDown]
	}
	rows := []string{
		row(l.price, fmt.Sprintf("%.2f", data.Price)),
		row(l.change, lipgloss.NewStyle().Foreground(changeColor).Render(fmt.Sprintf("%+.2f%%", data.Change24h))),
		"",
	}

	if data.Indicators == nil || signal == nil {
		rows = append(rows, mutedStyle.Render(l.noData))
		return lipgloss.JoinVertical(lipgloss.Left, title, panelStyle.Render(strings.Join(rows, "\n")))
	}

	for _, f := range signal.Factors {
		rows = append(rows, row(f.Name, fmt.Sprintf("%s %s", Badge(f.Condition, lang), mutedStyle.Render(f.Commentary))))
	}

	dirStyle := lipgloss.NewStyle().Bold(true).Foreground(directionColors[signal.Direction])
	rows = append(rows,
		"",
		row(l.score, fmt.Sprintf("%+.3f", signal.TotalScore)),
		row(l.direction, dirStyle.Render(string(signal.Direction))),
		row(l.confidence, fmt.Sprintf("%.1f%%", signal.Confidence)),
	)
	if signal.WarningMsg != "" {
		rows = append(rows, "", warningStyle.Render("⚠ "+signal.WarningMsg))
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, panelStyle.Render(strings.Join(rows, "\n")))
}
