package common

import (
	"time"

	"github.com/mpetrik/apogee/pkg/utility"
	"github.com/mpetrik/apogee/pkg/utility/fixed"
)

type OrderType int
type OrderSide int

const (
	OrderTypeMarket OrderType = iota
	OrderTypeLimit
	OrderTypeStop
)

const (
	OrderSideBuy OrderSide = iota
	OrderSideSell
)

func (t OrderType) String() string {
	switch t {
	case OrderTypeMarket:
		return "MARKET"
	case OrderTypeLimit:
		return "LIMIT"
	case OrderTypeStop:
		return "STOP"
	}
	return "UNKNOWN"
}

func (s OrderSide) String() string {
	switch s {
	case OrderSideBuy:
		return "BUY"
	case OrderSideSell:
		return "SELL"
	}
	return "UNKNOWN"
}

// Order is a request for simulated execution. LimitPrice and StopPrice are
// only meaningful for the corresponding order types; the zero Point marks
// them unset.
type Order struct {
	Source  string          `json:"src,omitempty"`
	Symbol  string          `json:"symbol,omitempty"`
	RunID   utility.RunID   `json:"rid,omitempty"`
	TraceID utility.TraceID `json:"tid,omitempty"`

	TimeStamp  time.Time   `json:"ts"`
	Type       OrderType   `json:"type"`
	Side       OrderSide   `json:"side"`
	Quantity   uint64      `json:"quantity"`
	LimitPrice fixed.Point `json:"limit_price,omitempty"`
	StopPrice  fixed.Point `json:"stop_price,omitempty"`
}

// OrderRejected surfaces an order the simulator could not execute. It is a
// structured warning, not an error: the run continues.
type OrderRejected struct {
	Source  string          `json:"src,omitempty"`
	RunID   utility.RunID   `json:"rid,omitempty"`
	TraceID utility.TraceID `json:"tid,omitempty"`

	TimeStamp     time.Time `json:"ts"`
	OriginalOrder Order     `json:"original_order"`
	Reason        string    `json:"reason,omitempty"`
}
