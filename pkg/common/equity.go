package common

import (
	"time"

	"github.com/mpetrik/apogee/pkg/utility"
	"github.com/mpetrik/apogee/pkg/utility/fixed"
)

// EquitySample is one row of the equity curve, appended after every market
// event. Samples are immutable once appended and are the durable output of
// a run together with the fill ledger.
type EquitySample struct {
	Source  string          `json:"src,omitempty"`
	RunID   utility.RunID   `json:"rid,omitempty"`
	TraceID utility.TraceID `json:"tid,omitempty"`

	TimeStamp time.Time   `json:"ts"`
	Cash      fixed.Point `json:"cash"`
	Holdings  fixed.Point `json:"holdings"`
	Equity    fixed.Point `json:"equity"`
}
