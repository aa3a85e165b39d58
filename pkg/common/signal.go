package common

import (
	"time"

	"github.com/mpetrik/apogee/pkg/utility"
)

type SignalDirection int

const (
	SignalLong SignalDirection = iota
	SignalShort
	SignalExit
)

func (d SignalDirection) String() string {
	switch d {
	case SignalLong:
		return "LONG"
	case SignalShort:
		return "SHORT"
	case SignalExit:
		return "EXIT"
	}
	return "UNKNOWN"
}

// Signal is a strategy's trading intent for one symbol. Strength is a
// strategy-defined score, e.g. a calibrated probability.
type Signal struct {
	Source  string          `json:"src,omitempty"`
	Symbol  string          `json:"symbol,omitempty"`
	RunID   utility.RunID   `json:"rid,omitempty"`
	TraceID utility.TraceID `json:"tid,omitempty"`

	TimeStamp time.Time       `json:"ts"`
	Direction SignalDirection `json:"direction"`
	Strength  float64         `json:"strength"`
}
