package bus

import (
	"context"

	"github.com/mpetrik/apogee/pkg/common"
)

type EventHandler[T any] = func(context.Context, T)

type BarEventHandler EventHandler[common.Bar]
type SignalEventHandler EventHandler[common.Signal]
type OrderEventHandler EventHandler[common.Order]
type OrderRejectionEventHandler EventHandler[common.OrderRejected]
type FillEventHandler EventHandler[common.Fill]
type EquityEventHandler EventHandler[common.EquitySample]

// MergeHandlers fans one event out to several consumers. Handlers run
// sequentially in argument order, which is how consumers with ordering
// requirements (mark update before strategy evaluation) are composed.
func MergeHandlers[T any](handlers ...EventHandler[T]) EventHandler[T] {
	return func(ctx context.Context, event T) {
		for _, handler := range handlers {
			handler(ctx, event)
		}
	}
}
