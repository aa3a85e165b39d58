package strategy

import (
	"context"
	"log/slog"

	"github.com/mpetrik/apogee/pkg/bus"
	"github.com/mpetrik/apogee/pkg/common"
)

// Advisor bridges a Strategy onto the router: every signal the strategy
// returns for a bar is posted back to the bus.
type Advisor struct {
	router   *bus.Router
	strategy Strategy
}

func NewAdvisor(router *bus.Router, strategy Strategy) *Advisor {
	return &Advisor{
		router:   router,
		strategy: strategy,
	}
}

func (a *Advisor) OnBar(_ context.Context, bar common.Bar) {
	for _, signal := range a.strategy.OnBar(bar) {
		if err := a.router.Post(bus.SignalEvent, signal); err != nil {
			slog.Warn("unable to post signal event",
				"error", err, "strategy", a.strategy.Name(), "symbol", signal.Symbol)
		}
	}
}
