package datasource

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/mpetrik/apogee/pkg/bus"
	"github.com/mpetrik/apogee/pkg/common"
	"github.com/mpetrik/apogee/pkg/utility"
)

const feedComponentName = "datasource.feed"

// Feed merges per-symbol chronological bar series into a single
// time-ordered stream of bar events. Each Advance emits the bars of every
// symbol sharing the minimum next timestamp; same-timestamp bars are
// simultaneous and are posted in sorted symbol order, never map iteration
// order.
//
// Series must be sorted ascending with unique timestamps per symbol; the
// loaders under this package guarantee that.
type Feed struct {
	router *bus.Router

	symbols []string
	series  map[string][]common.Bar
	cursor  map[string]int
}

func NewFeed(router *bus.Router, series map[string][]common.Bar) *Feed {
	symbols := make([]string, 0, len(series))
	for sym := range series {
		symbols = append(symbols, sym)
	}
	sort.Strings(symbols)

	return &Feed{
		router:  router,
		symbols: symbols,
		series:  series,
		cursor:  make(map[string]int, len(series)),
	}
}

// HasData reports whether any symbol still has an unconsumed bar.
func (f *Feed) HasData() bool {
	for _, sym := range f.symbols {
		if f.cursor[sym] < len(f.series[sym]) {
			return true
		}
	}
	return false
}

// Advance posts one bar event for every symbol whose next bar carries the
// minimum next timestamp and moves only those cursors forward. It returns
// ErrExhausted once all series are consumed, which terminates the run loop.
func (f *Feed) Advance(_ context.Context) error {
	var current time.Time
	found := false

	for _, sym := range f.symbols {
		idx := f.cursor[sym]
		if idx >= len(f.series[sym]) {
			continue
		}
		ts := f.series[sym][idx].TimeStamp
		if !found || ts.Before(current) {
			current = ts
			found = true
		}
	}

	if !found {
		return ErrExhausted
	}

	for _, sym := range f.symbols {
		idx := f.cursor[sym]
		if idx >= len(f.series[sym]) {
			continue
		}

		bar := f.series[sym][idx]
		if !bar.TimeStamp.Equal(current) {
			continue
		}

		bar.Source = feedComponentName
		bar.RunID = utility.GetRunID()
		bar.TraceID = utility.CreateTraceID()

		if err := f.router.Post(bus.BarEvent, bar); err != nil {
			return fmt.Errorf("unable to post bar event for %q: %w", sym, err)
		}
		f.cursor[sym] = idx + 1
	}

	return nil
}
