package middleware

import (
	"context"
	"log/slog"

	"github.com/mpetrik/apogee/pkg/bus"
	"github.com/mpetrik/apogee/pkg/common"
)

type MonitorFlags uint8

const (
	MonitorNone MonitorFlags = 1 << iota
	MonitorAll
	MonitorBars
	MonitorSignals
	MonitorOrders
	MonitorOrdersRejected
	MonitorFills
	MonitorEquity
)

// Monitor logs events passing through the handlers it wraps, gated per
// event kind.
type Monitor struct {
	flags MonitorFlags
}

func NewMonitor(flags MonitorFlags) *Monitor {
	return &Monitor{
		flags: flags,
	}
}

func (m *Monitor) WithBar(handler bus.BarEventHandler) bus.BarEventHandler {
	return func(ctx context.Context, bar common.Bar) {
		if m.flags&MonitorBars != 0 || m.flags&MonitorAll != 0 {
			slog.Info("event", "bar", bar)
		}
		handler(ctx, bar)
	}
}

func (m *Monitor) WithSignal(handler bus.SignalEventHandler) bus.SignalEventHandler {
	return func(ctx context.Context, signal common.Signal) {
		if m.flags&MonitorSignals != 0 || m.flags&MonitorAll != 0 {
			slog.Info("event", "signal", signal)
		}
		handler(ctx, signal)
	}
}

func (m *Monitor) WithOrder(handler bus.OrderEventHandler) bus.OrderEventHandler {
	return func(ctx context.Context, order common.Order) {
		if m.flags&MonitorOrders != 0 || m.flags&MonitorAll != 0 {
			slog.Info("event", "order", order)
		}
		handler(ctx, order)
	}
}

func (m *Monitor) WithOrderRejected(handler bus.OrderRejectionEventHandler) bus.OrderRejectionEventHandler {
	return func(ctx context.Context, rejected common.OrderRejected) {
		if m.flags&MonitorOrdersRejected != 0 || m.flags&MonitorAll != 0 {
			slog.Warn("event", "order_rejected", rejected)
		}
		handler(ctx, rejected)
	}
}

func (m *Monitor) WithFill(handler bus.FillEventHandler) bus.FillEventHandler {
	return func(ctx context.Context, fill common.Fill) {
		if m.flags&MonitorFills != 0 || m.flags&MonitorAll != 0 {
			slog.Info("event", "fill", fill)
		}
		handler(ctx, fill)
	}
}

func (m *Monitor) WithEquity(handler bus.EquityEventHandler) bus.EquityEventHandler {
	return func(ctx context.Context, sample common.EquitySample) {
		if m.flags&MonitorEquity != 0 || m.flags&MonitorAll != 0 {
			slog.Info("event", "equity", sample)
		}
		handler(ctx, sample)
	}
}
