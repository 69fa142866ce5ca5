package collector

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"CryptoSentinel/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const klinesBody = `[
  [1700003600000, "101.5", "103.0", "100.5", "102.25", "12.5", 1700007199999, "1270.0", 42, "6.0", "600.0", "0"],
  [1700000000000, "100.0", "102.0", "99.0", "101.5", "10.0", 1700003599999, "1000.0", 30, "5.0", "500.0", "0"]
]`

func newBinanceServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v3/klines", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		switch q.Get("symbol") {
		case "BTCUSDT":
			assert.Equal(t, "1h", q.Get("interval"))
			assert.Equal(t, "1000", q.Get("limit"))
			_, _ = w.Write([]byte(klinesBody))
		case "EMPTYUSDT":
			_, _ = w.Write([]byte(`[]`))
		case "BROKEN":
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`upstream down`))
		default:
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"code":-1121,"msg":"Invalid symbol."}`))
		}
	})
	mux.HandleFunc("/api/v3/ticker/24hr", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"symbol":"BTCUSDT","lastPrice":"102.30000000","priceChangePercent":"-1.250"}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestBinanceFetcher_FetchKlines(t *testing.T) {
	srv := newBinanceServer(t)
	f := NewBinanceFetcher(srv.URL+"/api/v3", "", 5*time.Second)

	candles, err := f.FetchKlines(context.Background(), "BTCUSDT", model.Interval1h, 1000)
	require.NoError(t, err)
	require.Len(t, candles, 2)

	// sorted by open time
	assert.Equal(t, time.UnixMilli(1700000000000).UTC(), candles[0].OpenTime)
	assert.Equal(t, time.UnixMilli(1700003599999).UTC(), candles[0].CloseTime)
	assert.Equal(t, 100.0, candles[0].Open)
	assert.Equal(t, 102.0, candles[0].High)
	assert.Equal(t, 99.0, candles[0].Low)
	assert.Equal(t, 101.5, candles[0].Close)
	assert.Equal(t, 10.0, candles[0].Volume)
	assert.Equal(t, 102.25, candles[1].Close)
}

func TestBinanceFetcher_Errors(t *testing.T) {
	srv := newBinanceServer(t)
	f := NewBinanceFetcher(srv.URL+"/api/v3", "", 5*time.Second)
	ctx := context.Background()

	_, err := f.FetchKlines(ctx, "EMPTYUSDT", model.Interval1h, 1000)
	assert.True(t, errors.Is(err, ErrEmptyKlines))

	_, err = f.FetchKlines(ctx, "NOPE", model.Interval1h, 1000)
	assert.True(t, errors.Is(err, ErrUnknownSymbol))

	_, err = f.FetchKlines(ctx, "BROKEN", model.Interval1h, 1000)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestBinanceFetcher_FetchTicker(t *testing.T) {
	srv := newBinanceServer(t)
	f := NewBinanceFetcher(srv.URL+"/api/v3", "", 5*time.Second)

	tk, err := f.FetchTicker(context.Background(), "BTCUSDT")
	require.NoError(t, err)
	assert.Equal(t, 102.3, tk.LastPrice)
	assert.Equal(t, -1.25, tk.PriceChangePercent)
}

func TestParseKline_ShortRow(t *testing.T) {
	_, err := parseKline(nil)
	assert.Error(t, err)
}
