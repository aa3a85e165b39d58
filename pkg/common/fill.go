package common

import (
	"time"

	"github.com/mpetrik/apogee/pkg/utility"
	"github.com/mpetrik/apogee/pkg/utility/fixed"
)

// Fill is the result of simulated execution: the adjusted price actually
// paid or received, the commission charged, and the per-unit slippage that
// was applied to the reference price.
type Fill struct {
	Source  string          `json:"src,omitempty"`
	Symbol  string          `json:"symbol,omitempty"`
	RunID   utility.RunID   `json:"rid,omitempty"`
	TraceID utility.TraceID `json:"tid,omitempty"`

	TimeStamp  time.Time   `json:"ts"`
	Quantity   uint64      `json:"quantity"`
	Side       OrderSide   `json:"side"`
	FillPrice  fixed.Point `json:"fill_price"`
	Commission fixed.Point `json:"commission"`
	Slippage   fixed.Point `json:"slippage"`
}
