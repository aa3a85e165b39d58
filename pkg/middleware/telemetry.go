package middleware

import (
	"context"

	"go.uber.org/zap"

	"github.com/mpetrik/apogee/pkg/bus"
	"github.com/mpetrik/apogee/pkg/common"
)

// Telemetry counts events flowing through the handlers it wraps.
type Telemetry struct {
	logger *zap.Logger

	barEventCounter           uint64
	signalEventCounter        uint64
	orderEventCounter         uint64
	orderRejectedEventCounter uint64
	fillEventCounter          uint64
	equityEventCounter        uint64
}

func NewTelemetry(logger *zap.Logger) *Telemetry {
	return &Telemetry{
		logger: logger,
	}
}

func (t *Telemetry) WithBar(handler bus.BarEventHandler) bus.BarEventHandler {
	return func(ctx context.Context, bar common.Bar) {
		t.barEventCounter++
		handler(ctx, bar)
	}
}

func (t *Telemetry) WithSignal(handler bus.SignalEventHandler) bus.SignalEventHandler {
	return func(ctx context.Context, signal common.Signal) {
		t.signalEventCounter++
		handler(ctx, signal)
	}
}

func (t *Telemetry) WithOrder(handler bus.OrderEventHandler) bus.OrderEventHandler {
	return func(ctx context.Context, order common.Order) {
		t.orderEventCounter++
		handler(ctx, order)
	}
}

func (t *Telemetry) WithOrderRejected(handler bus.OrderRejectionEventHandler) bus.OrderRejectionEventHandler {
	return func(ctx context.Context, rejected common.OrderRejected) {
		t.orderRejectedEventCounter++
		handler(ctx, rejected)
	}
}

func (t *Telemetry) WithFill(handler bus.FillEventHandler) bus.FillEventHandler {
	return func(ctx context.Context, fill common.Fill) {
		t.fillEventCounter++
		handler(ctx, fill)
	}
}

func (t *Telemetry) WithEquity(handler bus.EquityEventHandler) bus.EquityEventHandler {
	return func(ctx context.Context, sample common.EquitySample) {
		t.equityEventCounter++
		handler(ctx, sample)
	}
}

func (t *Telemetry) PrintStatistics() {
	t.logger.Info("telemetry statistics",
		zap.Uint64("bar_events", t.barEventCounter),
		zap.Uint64("signal_events", t.signalEventCounter),
		zap.Uint64("order_events", t.orderEventCounter),
		zap.Uint64("order_rejected_events", t.orderRejectedEventCounter),
		zap.Uint64("fill_events", t.fillEventCounter),
		zap.Uint64("equity_events", t.equityEventCounter))
}
