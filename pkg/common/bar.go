package common

import (
	"time"

	"github.com/mpetrik/apogee/pkg/utility"
	"github.com/mpetrik/apogee/pkg/utility/fixed"
)

// Bar is the market event: one OHLCV row for one symbol. Bars are immutable
// once posted and never persisted by the kernel.
type Bar struct {
	Source  string          `json:"src,omitempty"`
	Symbol  string          `json:"symbol,omitempty"`
	RunID   utility.RunID   `json:"rid,omitempty"`
	TraceID utility.TraceID `json:"tid,omitempty"`

	TimeStamp time.Time   `json:"ts"`
	Open      fixed.Point `json:"open"`
	High      fixed.Point `json:"high"`
	Low       fixed.Point `json:"low"`
	Close     fixed.Point `json:"close"`
	Volume    fixed.Point `json:"volume"`
}
