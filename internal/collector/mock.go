package collector

import (
	"context"
	"fmt"
	"math"
	"time"

	"CryptoSentinel/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Price   float64
	Candles map[string][]model.Candle
	Tickers map[string]Ticker
	Err     map[string]error
	// Start is the open time of the first generated candle.
	Start time.Time
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchKlines(_ context.Context, symbol string, interval model.Interval, limit int) ([]model.Candle, error) {
	if err := m.Err[symbol]; err != nil {
		return nil, err
	}
	if c, ok := m.Candles[symbol]; ok {
		if len(c) > limit {
			c = c[len(c)-limit:]
		}
		return c, nil
	}
	return GenerateCandles(m.Price, limit, m.Start, intervalDuration(interval)), nil
}

func (m *MockFetcher) FetchTicker(_ context.Context, symbol string) (Ticker, error) {
	if err := m.Err[symbol]; err != nil {
		return Ticker{}, err
	}
	if t, ok := m.Tickers[symbol]; ok {
		return t, nil
	}
	if c, ok := m.Candles[symbol]; ok && len(c) > 0 {
		return Ticker{LastPrice: c[len(c)-1].Close}, nil
	}
	if m.Price == 0 {
		return Ticker{}, fmt.Errorf("mock %s: %w", symbol, ErrUnknownSymbol)
	}
	return Ticker{LastPrice: m.Price}, nil
}

// GenerateCandles produces a deterministic oscillating series around basePrice.
func GenerateCandles(basePrice float64, count int, start time.Time, step time.Duration) []model.Candle {
	if start.IsZero() {
		start = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	}
	if step <= 0 {
		step = time.Hour
	}
	candles := make([]model.Candle, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + 0.05*math.Sin(float64(i)*2*math.Pi/48) + float64(i-count/2)*0.0001)
		open := start.Add(time.Duration(i) * step)
		candles[i] = model.Candle{
			OpenTime:  open,
			Open:      p * 0.999,
			High:      p * 1.005,
			Low:       p * 0.995,
			Close:     p,
			Volume:    1000,
			CloseTime: open.Add(step - time.Millisecond),
		}
	}
	return candles
}

func intervalDuration(i model.Interval) time.Duration {
	switch i {
	case model.Interval15m:
		return 15 * time.Minute
	case model.Interval4h:
		return 4 * time.Hour
	case model.Interval1d:
		return 24 * time.Hour
	default:
		return time.Hour
	}
}
