package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"CryptoSentinel/internal/collector"
	"CryptoSentinel/internal/display"
	"CryptoSentinel/internal/logger"
	"CryptoSentinel/internal/model"
	"CryptoSentinel/internal/notifier"
	"CryptoSentinel/internal/strategy"

	"github.com/spf13/cobra"
)

type analyzeOptions struct {
	interval string
	lang     string
	prompt   bool
	json     bool
}

func newAnalyzeCmd(cfgPath *string) *cobra.Command {
	var opts analyzeOptions

	cmd := &cobra.Command{
		Use:   "analyze SYMBOL",
		Short: "Fetch one symbol and print its indicators and signal",
		Example: `  sentinel analyze BTCUSDT
  sentinel analyze ethusdt --interval 4h --lang zh
  sentinel analyze SOLUSDT --prompt`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*cfgPath)
			if err != nil {
				return err
			}
			defer logger.Sync()

			if opts.interval == "" {
				opts.interval = string(cfg.Market.Interval)
			}
			if opts.lang == "" {
				opts.lang = string(cfg.Telegram.Language)
			}
			col := collector.NewCollector(newFetcher(cfg), nil, cfg.Market.Interval, cfg.Market.Limit)
			return runAnalyze(cmd.Context(), cmd.OutOrStdout(), col, strings.ToUpper(args[0]), opts)
		},
	}
	cmd.Flags().StringVar(&opts.interval, "interval", "", "kline interval: 15m, 1h, 4h or 1d")
	cmd.Flags().StringVar(&opts.lang, "lang", "", "output language: en or zh")
	cmd.Flags().BoolVar(&opts.prompt, "prompt", false, "print the AI analysis prompt instead of the report")
	cmd.Flags().BoolVar(&opts.json, "json", false, "print indicators and signal as JSON")
	return cmd
}

type analyzeOutput struct {
	Data   *model.MarketData `json:"data"`
	Signal *model.Signal     `json:"signal"`
}

func runAnalyze(ctx context.Context, w io.Writer, col *collector.Collector, symbol string, opts analyzeOptions) error {
	interval := model.Interval(opts.interval)
	if !interval.Valid() {
		return fmt.Errorf("unsupported interval %q", opts.interval)
	}
	lang := model.Language(opts.lang)
	if !lang.Valid() {
		return fmt.Errorf("unsupported language %q", opts.lang)
	}

	data, err := col.CollectInterval(ctx, symbol, interval)
	if err != nil {
		return err
	}
	sig := strategy.Evaluate(data)

	switch {
	case opts.json:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		out := *data
		out.History = nil
		return enc.Encode(analyzeOutput{Data: &out, Signal: sig})
	case opts.prompt:
		prompt, err := notifier.FormatPrompt(data, lang)
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(w, prompt)
		return err
	default:
		_, err = fmt.Fprintln(w, display.RenderMarket(data, sig, lang))
		return err
	}
}
