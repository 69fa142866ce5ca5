package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"time"

	"CryptoSentinel/internal/metrics"
	"CryptoSentinel/internal/model"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
)

// binanceInvalidSymbol is the API error code for an unknown trading pair.
const binanceInvalidSymbol = -1121

// BinanceFetcher implements Fetcher using the Binance spot REST API.
type BinanceFetcher struct {
	client *resty.Client
}

// NewBinanceFetcher creates a new fetcher with optional proxy support.
func NewBinanceFetcher(baseURL, proxyURL string, timeout time.Duration) *BinanceFetcher {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")
	if proxyURL != "" {
		client.SetProxy(proxyURL)
	}
	return &BinanceFetcher{client: client}
}

func (f *BinanceFetcher) Name() string { return "binance" }

type binanceError struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
}

type binanceTicker struct {
	LastPrice          string `json:"lastPrice"`
	PriceChangePercent string `json:"priceChangePercent"`
}

func (f *BinanceFetcher) get(ctx context.Context, endpoint string, params map[string]string) ([]byte, error) {
	start := time.Now()
	resp, err := f.client.R().
		SetContext(ctx).
		SetQueryParams(params).
		Get("/" + endpoint)
	metrics.FetchDuration.WithLabelValues(f.Name(), endpoint).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.FetchErrors.WithLabelValues(f.Name(), endpoint).Inc()
		return nil, fmt.Errorf("binance %s: %w", endpoint, err)
	}
	if resp.StatusCode() != http.StatusOK {
		metrics.FetchErrors.WithLabelValues(f.Name(), endpoint).Inc()
		var apiErr binanceError
		if json.Unmarshal(resp.Body(), &apiErr) == nil && apiErr.Code == binanceInvalidSymbol {
			return nil, fmt.Errorf("binance %s %s: %w", endpoint, params["symbol"], ErrUnknownSymbol)
		}
		return nil, fmt.Errorf("binance %s: status %d, body: %s", endpoint, resp.StatusCode(), resp.String())
	}
	return resp.Body(), nil
}

// FetchKlines returns up to limit candles in chronological order.
func (f *BinanceFetcher) FetchKlines(ctx context.Context, symbol string, interval model.Interval, limit int) ([]model.Candle, error) {
	body, err := f.get(ctx, "klines", map[string]string{
		"symbol":   symbol,
		"interval": string(interval),
		"limit":    strconv.Itoa(limit),
	})
	if err != nil {
		return nil, err
	}

	var rows [][]json.RawMessage
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode klines: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("binance klines %s: %w", symbol, ErrEmptyKlines)
	}

	candles := make([]model.Candle, 0, len(rows))
	for i, row := range rows {
		c, err := parseKline(row)
		if err != nil {
			return nil, fmt.Errorf("decode kline %d: %w", i, err)
		}
		candles = append(candles, c)
	}

	// Ensure chronological order
	sort.Slice(candles, func(i, j int) bool { return candles[i].OpenTime.Before(candles[j].OpenTime) })
	return candles, nil
}

// FetchTicker returns the last price and 24h change percentage.
func (f *BinanceFetcher) FetchTicker(ctx context.Context, symbol string) (Ticker, error) {
	body, err := f.get(ctx, "ticker/24hr", map[string]string{"symbol": symbol})
	if err != nil {
		return Ticker{}, err
	}
	var raw binanceTicker
	if err := json.Unmarshal(body, &raw); err != nil {
		return Ticker{}, fmt.Errorf("decode ticker: %w", err)
	}
	price, err := decimal.NewFromString(raw.LastPrice)
	if err != nil {
		return Ticker{}, fmt.Errorf("decode lastPrice: %w", err)
	}
	change, err := decimal.NewFromString(raw.PriceChangePercent)
	if err != nil {
		return Ticker{}, fmt.Errorf("decode priceChangePercent: %w", err)
	}
	return Ticker{
		LastPrice:          price.InexactFloat64(),
		PriceChangePercent: change.InexactFloat64(),
	}, nil
}

// parseKline decodes [openTime, open, high, low, close, volume, closeTime, ...].
func parseKline(row []json.RawMessage) (model.Candle, error) {
	if len(row) < 7 {
		return model.Candle{}, fmt.Errorf("expected at least 7 fields, got %d", len(row))
	}
	var openMs, closeMs int64
	if err := json.Unmarshal(row[0], &openMs); err != nil {
		return model.Candle{}, fmt.Errorf("open time: %w", err)
	}
	if err := json.Unmarshal(row[6], &closeMs); err != nil {
		return model.Candle{}, fmt.Errorf("close time: %w", err)
	}

	var fields [5]float64
	for i := range fields {
		v, err := parseNumber(row[i+1])
		if err != nil {
			return model.Candle{}, fmt.Errorf("field %d: %w", i+1, err)
		}
		fields[i] = v
	}

	return model.Candle{
		OpenTime:  time.UnixMilli(openMs).UTC(),
		Open:      fields[0],
		High:      fields[1],
		Low:       fields[2],
		Close:     fields[3],
		Volume:    fields[4],
		CloseTime: time.UnixMilli(closeMs).UTC(),
	}, nil
}

// parseNumber accepts both the quoted decimals Binance sends and bare numbers.
func parseNumber(raw json.RawMessage) (float64, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		s = string(raw)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, err
	}
	return d.InexactFloat64(), nil
}
