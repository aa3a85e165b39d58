package middleware

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/mpetrik/apogee/pkg/bus"
	"github.com/mpetrik/apogee/pkg/common"
)

// Performance accumulates wall time spent inside the handlers it wraps.
type Performance struct {
	logger *zap.Logger

	totalBarHandlerDur    time.Duration
	totalSignalHandlerDur time.Duration
	totalOrderHandlerDur  time.Duration
	totalFillHandlerDur   time.Duration
	totalEquityHandlerDur time.Duration
}

func NewPerformance(logger *zap.Logger) *Performance {
	return &Performance{
		logger: logger,
	}
}

func (p *Performance) WithBar(handler bus.BarEventHandler) bus.BarEventHandler {
	return func(ctx context.Context, bar common.Bar) {
		startTime := time.Now()
		handler(ctx, bar)
		p.totalBarHandlerDur += time.Since(startTime)
	}
}

func (p *Performance) WithSignal(handler bus.SignalEventHandler) bus.SignalEventHandler {
	return func(ctx context.Context, signal common.Signal) {
		startTime := time.Now()
		handler(ctx, signal)
		p.totalSignalHandlerDur += time.Since(startTime)
	}
}

func (p *Performance) WithOrder(handler bus.OrderEventHandler) bus.OrderEventHandler {
	return func(ctx context.Context, order common.Order) {
		startTime := time.Now()
		handler(ctx, order)
		p.totalOrderHandlerDur += time.Since(startTime)
	}
}

func (p *Performance) WithFill(handler bus.FillEventHandler) bus.FillEventHandler {
	return func(ctx context.Context, fill common.Fill) {
		startTime := time.Now()
		handler(ctx, fill)
		p.totalFillHandlerDur += time.Since(startTime)
	}
}

func (p *Performance) WithEquity(handler bus.EquityEventHandler) bus.EquityEventHandler {
	return func(ctx context.Context, sample common.EquitySample) {
		startTime := time.Now()
		handler(ctx, sample)
		p.totalEquityHandlerDur += time.Since(startTime)
	}
}

func (p *Performance) PrintStatistics() {
	p.logger.Info("performance statistics",
		zap.Duration("bar_total_duration", p.totalBarHandlerDur),
		zap.Duration("signal_total_duration", p.totalSignalHandlerDur),
		zap.Duration("order_total_duration", p.totalOrderHandlerDur),
		zap.Duration("fill_total_duration", p.totalFillHandlerDur),
		zap.Duration("equity_total_duration", p.totalEquityHandlerDur))
}
