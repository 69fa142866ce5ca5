package model

import "time"

// Candle represents a single candlestick bar as delivered by the exchange.
type Candle struct {
	OpenTime  time.Time `json:"openTime"`
	Open      float64   `json:"open"`
	High      float64   `json:"high"`
	Low       float64   `json:"low"`
	Close     float64   `json:"close"`
	Volume    float64   `json:"volume"`
	CloseTime time.Time `json:"closeTime"`
}

// Interval is a kline interval supported by the watchlist.
type Interval string

const (
	Interval15m Interval = "15m"
	Interval1h  Interval = "1h"
	Interval4h  Interval = "4h"
	Interval1d  Interval = "1d"
)

var intervalLabels = map[Interval]string{
	Interval15m: "15 Minutes",
	Interval1h:  "1 Hour",
	Interval4h:  "4 Hours",
	Interval1d:  "1 Day",
}

// Valid reports whether i is one of the supported intervals.
func (i Interval) Valid() bool {
	_, ok := intervalLabels[i]
	return ok
}

// Label returns a human readable name, falling back to the raw value.
func (i Interval) Label() string {
	if l, ok := intervalLabels[i]; ok {
		return l
	}
	return string(i)
}

// Language selects the locale of outgoing reports.
type Language string

const (
	LangEN Language = "en"
	LangZH Language = "zh"
)

func (l Language) Valid() bool { return l == LangEN || l == LangZH }

// MarketData is one fetch cycle's view of a symbol.
type MarketData struct {
	Symbol     string           `json:"symbol"`
	Price      float64          `json:"price"`
	Change24h  float64          `json:"change24h"`
	History    []Candle         `json:"history,omitempty"`
	Indicators *IndicatorBundle `json:"indicators"`
	Interval   Interval         `json:"interval"`
	FetchedAt  time.Time        `json:"fetchedAt"`
}
