package bus

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/mpetrik/apogee/pkg/common"
)

type event struct {
	id   EventId
	data interface{}
}

// Router is the single-consumer event bus. Producers post tagged events,
// one goroutine drains them and dispatches by kind. All handler state is
// mutated on that goroutine only, so handlers need no synchronization.
type Router struct {
	events chan event

	OnBar           BarEventHandler
	OnSignal        SignalEventHandler
	OnOrder         OrderEventHandler
	OnOrderRejected OrderRejectionEventHandler
	OnFill          FillEventHandler
	OnEquity        EquityEventHandler

	runTime       time.Duration
	postCount     atomic.Uint64
	postFails     atomic.Uint64
	dispatchCount atomic.Uint64
	dispatchFails atomic.Uint64
}

func NewRouter(eventCapacity int) *Router {
	return &Router{
		events: make(chan event, eventCapacity),
	}
}

// Post enqueues an event without blocking. It fails when the queue is at
// capacity, which a caller inside a handler must treat as a dropped event.
func (r *Router) Post(id EventId, data interface{}) error {
	select {
	case r.events <- event{id, data}:
		r.postCount.Add(1)
		return nil
	default:
		r.postFails.Add(1)
		return errors.New("event capacity reached")
	}
}

// Exec drains and dispatches events until the context is cancelled. The
// returned channel yields the terminal error.
func (r *Router) Exec(ctx context.Context) <-chan error {
	done := make(chan error, 1)

	go func() {
		start := time.Now()
		defer func() {
			r.runTime += time.Since(start)
		}()

		for {
			select {
			case <-ctx.Done():
				done <- ctx.Err()
				return
			case ev := <-r.events:
				r.dispatchCount.Add(1)
				if err := r.dispatch(ctx, ev); err != nil {
					r.dispatchFails.Add(1)
					slog.Warn("dispatch failed", "error", err, "event_id", ev.id)
				}
			}
		}
	}()

	return done
}

// ExecLoop drains and dispatches events, calling doOnce only when the queue
// is empty. Since dispatching is synchronous on the loop goroutine, every
// event a handler posts while one doOnce batch is drained - including
// second-order cascades - is itself dispatched before doOnce runs again.
// That is the barrier the feed relies on for causal ordering. The loop
// terminates when doOnce returns an error.
func (r *Router) ExecLoop(ctx context.Context, doOnce func(context.Context) error) <-chan error {
	done := make(chan error, 1)

	go func() {
		start := time.Now()
		defer func() {
			r.runTime += time.Since(start)
		}()

		for {
			select {
			case <-ctx.Done():
				done <- ctx.Err()
				return
			case ev := <-r.events:
				r.dispatchCount.Add(1)
				if err := r.dispatch(ctx, ev); err != nil {
					r.dispatchFails.Add(1)
					slog.Warn("dispatch failed", "error", err, "event_id", ev.id)
				}
			default:
				if err := doOnce(ctx); err != nil {
					done <- err
					return
				}
			}
		}
	}()

	return done
}

func (r *Router) Statistics() Statistics {
	s := Statistics{
		RunTime:       r.runTime,
		PostCount:     r.postCount.Load(),
		PostFails:     r.postFails.Load(),
		DispatchCount: r.dispatchCount.Load(),
		DispatchFails: r.dispatchFails.Load(),
	}
	if r.runTime > 0 {
		s.Throughput = float64(s.PostCount) / r.runTime.Seconds()
	}
	return s
}

func (r *Router) dispatch(ctx context.Context, ev event) error {
	switch ev.id {
	case BarEvent:
		bar, ok := ev.data.(common.Bar)
		if !ok {
			return errors.New("invalid type assertion for bar event")
		}
		if r.OnBar != nil {
			r.OnBar(ctx, bar)
		} else {
			slog.Debug("bar handler is nil")
		}
	case SignalEvent:
		sig, ok := ev.data.(common.Signal)
		if !ok {
			return errors.New("invalid type assertion for signal event")
		}
		if r.OnSignal != nil {
			r.OnSignal(ctx, sig)
		} else {
			slog.Debug("signal handler is nil")
		}
	case OrderEvent:
		order, ok := ev.data.(common.Order)
		if !ok {
			return errors.New("invalid type assertion for order event")
		}
		if r.OnOrder != nil {
			r.OnOrder(ctx, order)
		} else {
			slog.Debug("order handler is nil")
		}
	case OrderRejectionEvent:
		rejected, ok := ev.data.(common.OrderRejected)
		if !ok {
			return errors.New("invalid type assertion for order rejection event")
		}
		if r.OnOrderRejected != nil {
			r.OnOrderRejected(ctx, rejected)
		} else {
			slog.Debug("order rejection handler is nil")
		}
	case FillEvent:
		fill, ok := ev.data.(common.Fill)
		if !ok {
			return errors.New("invalid type assertion for fill event")
		}
		if r.OnFill != nil {
			r.OnFill(ctx, fill)
		} else {
			slog.Debug("fill handler is nil")
		}
	case EquityEvent:
		sample, ok := ev.data.(common.EquitySample)
		if !ok {
			return errors.New("invalid type assertion for equity event")
		}
		if r.OnEquity != nil {
			r.OnEquity(ctx, sample)
		} else {
			slog.Debug("equity handler is nil")
		}
	default:
		return fmt.Errorf("unsupported event id: %v", ev.id)
	}
	return nil
}
