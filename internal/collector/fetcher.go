package collector

import (
	"context"
	"errors"

	"CryptoSentinel/internal/model"
)

var (
	// ErrEmptyKlines is returned when the exchange answers with no candles.
	ErrEmptyKlines = errors.New("no klines returned")
	// ErrUnknownSymbol is returned when the exchange rejects the symbol.
	ErrUnknownSymbol = errors.New("unknown symbol")
)

// Ticker is the 24h rolling statistics of a symbol.
type Ticker struct {
	LastPrice          float64
	PriceChangePercent float64
}

// Fetcher defines the interface for fetching market data.
type Fetcher interface {
	FetchKlines(ctx context.Context, symbol string, interval model.Interval, limit int) ([]model.Candle, error)
	FetchTicker(ctx context.Context, symbol string) (Ticker, error)
	Name() string
}
