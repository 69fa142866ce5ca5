package model

// Direction is the expected price movement for the next interval.
type Direction string

const (
	DirectionUp      Direction = "UP"
	DirectionDown    Direction = "DOWN"
	DirectionNeutral Direction = "NEUTRAL"
)

// Condition classifies a single indicator reading.
type Condition string

const (
	ConditionGood    Condition = "good"
	ConditionBad     Condition = "bad"
	ConditionNeutral Condition = "neutral"
)

// FactorScore represents a single factor's scoring result.
type FactorScore struct {
	Name       string    `json:"name"`
	RawScore   float64   `json:"rawScore"` // -1, 0 or +1
	Weight     float64   `json:"weight"`
	Weighted   float64   `json:"weighted"`
	Condition  Condition `json:"condition"`
	Commentary string    `json:"commentary"`
}

// Signal is the final output of the strategy engine for one symbol.
type Signal struct {
	Symbol     string        `json:"symbol"`
	Interval   Interval      `json:"interval"`
	Factors    []FactorScore `json:"factors"`
	TotalScore float64       `json:"totalScore"`
	Direction  Direction     `json:"direction"`
	Confidence float64       `json:"confidence"` // 0 ~ 100
	WarningMsg string        `json:"warning,omitempty"`
}
