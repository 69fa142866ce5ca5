package collector

import (
	"context"
	"fmt"
	"sync"
	"time"

	"CryptoSentinel/internal/calculator"
	"CryptoSentinel/internal/logger"
	"CryptoSentinel/internal/metrics"
	"CryptoSentinel/internal/model"

	"go.uber.org/zap"
)

// Result is the outcome of collecting one symbol.
type Result struct {
	Symbol string
	Data   *model.MarketData
	Err    error
}

// Collector orchestrates data fetching and indicator computation.
type Collector struct {
	Fetcher  Fetcher
	Symbols  []string
	Interval model.Interval
	Limit    int

	log *zap.Logger
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher, symbols []string, interval model.Interval, limit int) *Collector {
	return &Collector{
		Fetcher:  fetcher,
		Symbols:  symbols,
		Interval: interval,
		Limit:    limit,
		log:      logger.Named("collector"),
	}
}

// Collect fetches candles and the 24h ticker for symbol and computes the
// indicator bundle for the latest candle.
func (c *Collector) Collect(ctx context.Context, symbol string) (*model.MarketData, error) {
	return c.CollectInterval(ctx, symbol, c.Interval)
}

// CollectInterval is Collect with an explicit kline interval.
func (c *Collector) CollectInterval(ctx context.Context, symbol string, interval model.Interval) (*model.MarketData, error) {
	candles, err := c.Fetcher.FetchKlines(ctx, symbol, interval, c.Limit)
	if err != nil {
		return nil, fmt.Errorf("fetch klines %s: %w", symbol, err)
	}
	ticker, err := c.Fetcher.FetchTicker(ctx, symbol)
	if err != nil {
		return nil, fmt.Errorf("fetch ticker %s: %w", symbol, err)
	}

	start := time.Now()
	bundle := calculator.Aggregate(candles)
	metrics.IndicatorCompute.Observe(time.Since(start).Seconds())

	if len(candles) < calculator.EMALongPeriod {
		c.log.Warn("short history, some indicators carry sentinels",
			zap.String("symbol", symbol),
			zap.Int("candles", len(candles)),
		)
	}

	return &model.MarketData{
		Symbol:     symbol,
		Price:      ticker.LastPrice,
		Change24h:  ticker.PriceChangePercent,
		History:    candles,
		Indicators: &bundle,
		Interval:   interval,
		FetchedAt:  time.Now(),
	}, nil
}

// CollectAll collects every watchlist symbol concurrently. Results keep the
// watchlist order; a failing symbol only affects its own entry.
func (c *Collector) CollectAll(ctx context.Context) []Result {
	results := make([]Result, len(c.Symbols))
	var wg sync.WaitGroup
	for i, sym := range c.Symbols {
		wg.Add(1)
		go func(i int, sym string) {
			defer wg.Done()
			data, err := c.Collect(ctx, sym)
			results[i] = Result{Symbol: sym, Data: data, Err: err}
		}(i, sym)
	}
	wg.Wait()

	for _, r := range results {
		if r.Err != nil {
			metrics.RefreshTotal.WithLabelValues("error").Inc()
			c.log.Warn("collect failed", zap.String("symbol", r.Symbol), zap.Error(r.Err))
			continue
		}
		metrics.RefreshTotal.WithLabelValues("ok").Inc()
		metrics.RSI.WithLabelValues(r.Symbol).Set(r.Data.Indicators.RSI)
		metrics.MACDHistogram.WithLabelValues(r.Symbol).Set(r.Data.Indicators.MACD.Histogram)
	}
	return results
}
