package bus

// EventId discriminates the closed set of event kinds the router can carry.
type EventId uint8

const (
	BarEvent EventId = iota
	SignalEvent
	OrderEvent
	OrderRejectionEvent
	FillEvent
	EquityEvent
)

func (id EventId) String() string {
	switch id {
	case BarEvent:
		return "bar"
	case SignalEvent:
		return "signal"
	case OrderEvent:
		return "order"
	case OrderRejectionEvent:
		return "order_rejected"
	case FillEvent:
		return "fill"
	case EquityEvent:
		return "equity"
	}
	return "unknown"
}
