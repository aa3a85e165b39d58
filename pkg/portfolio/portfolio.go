package portfolio

import (
	"context"
	"log/slog"
	"sort"

	"github.com/mpetrik/apogee/pkg/bus"
	"github.com/mpetrik/apogee/pkg/common"
	"github.com/mpetrik/apogee/pkg/utility"
	"github.com/mpetrik/apogee/pkg/utility/fixed"
)

const portfolioComponentName = "portfolio"

// Portfolio owns cash, the per-symbol positions, the last observed close
// per symbol, and the append-only equity curve. All mutation happens on
// the router's dispatch goroutine; position updates are not commutative,
// so any concurrent reimplementation must keep a single writer.
//
// Invariant after every mutation: equity == cash + sum of position market
// values at the last observed prices.
type Portfolio struct {
	router *bus.Router

	initialCash fixed.Point
	cash        fixed.Point
	positions   map[string]*Position
	lastPrice   map[string]fixed.Point
	equityCurve []common.EquitySample
}

func NewPortfolio(router *bus.Router, initialCash fixed.Point) *Portfolio {
	return &Portfolio{
		router:      router,
		initialCash: initialCash,
		cash:        initialCash,
		positions:   make(map[string]*Position),
		lastPrice:   make(map[string]fixed.Point),
	}
}

// OnBar marks the book to market: records the close, appends one equity
// sample, and posts it for downstream consumers.
func (p *Portfolio) OnBar(_ context.Context, bar common.Bar) {
	p.lastPrice[bar.Symbol] = bar.Close

	sample := common.EquitySample{
		Source:    portfolioComponentName,
		RunID:     utility.GetRunID(),
		TraceID:   utility.CreateTraceID(),
		TimeStamp: bar.TimeStamp,
		Cash:      p.cash,
		Holdings:  p.holdings(),
	}
	sample.Equity = sample.Cash.Add(sample.Holdings)
	p.equityCurve = append(p.equityCurve, sample)

	if err := p.router.Post(bus.EquityEvent, sample); err != nil {
		slog.Warn("unable to post equity event", "error", err)
	}
}

// OnFill settles a fill: cash moves by the gross amount (out on a buy, in
// on a sell) minus commission, then the position state machine applies the
// quantity.
func (p *Portfolio) OnFill(_ context.Context, fill common.Fill) {
	gross := fill.FillPrice.MulInt64(int64(fill.Quantity))
	if fill.Side == common.OrderSideBuy {
		p.cash = p.cash.Sub(gross)
	} else {
		p.cash = p.cash.Add(gross)
	}
	p.cash = p.cash.Sub(fill.Commission)

	p.position(fill.Symbol).ApplyFill(fill.Side, fill.Quantity, fill.FillPrice, fill.Commission)
}

// Cash returns the current cash balance.
func (p *Portfolio) Cash() fixed.Point {
	return p.cash
}

// Equity is cash plus holdings at the last observed prices.
func (p *Portfolio) Equity() fixed.Point {
	return p.cash.Add(p.holdings())
}

// Position returns the ledger entry for a symbol, or nil if no fill has
// ever touched it. Positions persist for the run's lifetime, flat or not.
func (p *Portfolio) Position(symbol string) *Position {
	return p.positions[symbol]
}

// EquityCurve returns the append-only equity history, one sample per
// market event processed.
func (p *Portfolio) EquityCurve() []common.EquitySample {
	return p.equityCurve
}

func (p *Portfolio) position(symbol string) *Position {
	pos, ok := p.positions[symbol]
	if !ok {
		pos = NewPosition(symbol)
		p.positions[symbol] = pos
	}
	return pos
}

// holdings sums position market values in sorted symbol order. Iteration
// order must never affect the result; sorting makes that visible.
func (p *Portfolio) holdings() fixed.Point {
	symbols := make([]string, 0, len(p.positions))
	for sym := range p.positions {
		symbols = append(symbols, sym)
	}
	sort.Strings(symbols)

	total := fixed.Zero
	for _, sym := range symbols {
		total = total.Add(p.positions[sym].MarketValue(p.lastPrice[sym]))
	}
	return total
}
