package sandbox

import (
	"context"
	"log/slog"

	"github.com/mpetrik/apogee/pkg/bus"
	"github.com/mpetrik/apogee/pkg/common"
	"github.com/mpetrik/apogee/pkg/utility"
)

const simulatorComponentName = "exchange.sandbox.simulator"

// Simulator converts orders into fills against the most recently observed
// bar per symbol. The fill price is the mark's open: an order generated
// while bar T is drained executes at the opening price of the bar that is
// currently marked, never against data the simulator has not seen yet.
type Simulator struct {
	router *bus.Router

	slippage   SlippageModel
	commission CommissionModel

	marks map[string]common.Bar
}

func NewSimulator(router *bus.Router, options ...Option) *Simulator {
	s := &Simulator{
		router:     router,
		slippage:   NoSlippage{},
		commission: NoCommission{},
		marks:      make(map[string]common.Bar),
	}

	for _, option := range options {
		option(s)
	}

	return s
}

// OnBar updates the mark for the bar's symbol.
func (s *Simulator) OnBar(_ context.Context, bar common.Bar) {
	s.marks[bar.Symbol] = bar
}

// OnOrder simulates execution. An order for a symbol without a mark is
// dropped: the warning is logged and surfaced as an OrderRejected event,
// and the run continues. Dropping a capital-affecting order silently would
// hide a data problem, hence the explicit rejection event.
func (s *Simulator) OnOrder(_ context.Context, order common.Order) {
	mark, ok := s.marks[order.Symbol]
	if !ok {
		slog.Warn("no market data for symbol, dropping order",
			"symbol", order.Symbol, "side", order.Side, "quantity", order.Quantity)
		if err := s.router.Post(bus.OrderRejectionEvent, common.OrderRejected{
			Source:        simulatorComponentName,
			RunID:         utility.GetRunID(),
			TraceID:       utility.CreateTraceID(),
			TimeStamp:     order.TimeStamp,
			OriginalOrder: order,
			Reason:        "no market data for symbol",
		}); err != nil {
			slog.Warn("unable to post order rejected event", "error", err)
		}
		return
	}

	basePrice := mark.Open
	fillPrice := s.slippage.Adjust(order, basePrice)
	commission := s.commission.Charge(order.Quantity, fillPrice)

	fill := common.Fill{
		Source:     simulatorComponentName,
		Symbol:     order.Symbol,
		RunID:      utility.GetRunID(),
		TraceID:    utility.CreateTraceID(),
		TimeStamp:  mark.TimeStamp,
		Quantity:   order.Quantity,
		Side:       order.Side,
		FillPrice:  fillPrice,
		Commission: commission,
		Slippage:   fillPrice.Sub(basePrice).Abs(),
	}

	if err := s.router.Post(bus.FillEvent, fill); err != nil {
		slog.Warn("unable to post fill event", "error", err, "symbol", fill.Symbol)
	}
}
