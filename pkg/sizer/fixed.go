package sizer

import (
	"context"
	"log/slog"

	"github.com/mpetrik/apogee/pkg/bus"
	"github.com/mpetrik/apogee/pkg/common"
	"github.com/mpetrik/apogee/pkg/utility"
)

const fixedSizerComponentName = "sizer.fixed"

// Fixed converts signals into market orders of a constant quantity.
//
// Scaffolding: EXIT emits a fixed-size SELL without consulting the open
// position, so it does not flatten a short or an oversized long. A
// position-aware sizer must query the portfolio and emit the exact
// offsetting quantity. Fixtures depend on the current behavior.
type Fixed struct {
	router   *bus.Router
	quantity uint64
}

func NewFixed(router *bus.Router, quantity uint64) *Fixed {
	return &Fixed{
		router:   router,
		quantity: quantity,
	}
}

func (s *Fixed) OnSignal(_ context.Context, signal common.Signal) {
	var side common.OrderSide

	switch signal.Direction {
	case common.SignalLong:
		side = common.OrderSideBuy
	case common.SignalShort, common.SignalExit:
		side = common.OrderSideSell
	default:
		slog.Warn("unknown signal direction, dropping signal",
			"direction", signal.Direction, "symbol", signal.Symbol)
		return
	}

	order := common.Order{
		Source:    fixedSizerComponentName,
		Symbol:    signal.Symbol,
		RunID:     utility.GetRunID(),
		TraceID:   utility.CreateTraceID(),
		TimeStamp: signal.TimeStamp,
		Type:      common.OrderTypeMarket,
		Side:      side,
		Quantity:  s.quantity,
	}

	if err := s.router.Post(bus.OrderEvent, order); err != nil {
		slog.Warn("unable to post order event", "error", err, "symbol", order.Symbol)
	}
}
