package recorder

import (
	"time"

	"CryptoSentinel/internal/model"
)

// Snapshot holds one symbol's indicators and evaluated signal.
type Snapshot struct {
	Symbol     string
	Interval   model.Interval
	Price      float64
	Change24h  float64
	Indicators model.IndicatorBundle
	Signal     *model.Signal
	At         time.Time
}

// SignalChange records a direction flip for a symbol.
type SignalChange struct {
	Symbol     string          `json:"symbol"`
	Interval   model.Interval  `json:"interval"`
	From       model.Direction `json:"from"`
	To         model.Direction `json:"to"`
	Price      float64         `json:"price"`
	Confidence float64         `json:"confidence"`
	At         time.Time       `json:"at"`
}

// Recorder persists historical data for analysis.
type Recorder interface {
	RecordSnapshot(snap *Snapshot) error
	RecordSignalChange(evt *SignalChange) error
	// LatestDirection returns the direction of the newest snapshot for symbol.
	LatestDirection(symbol string, interval model.Interval) (model.Direction, bool, error)
	Close() error
}
