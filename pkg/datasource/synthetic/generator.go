package synthetic

import (
	"math/rand"
	"time"

	"github.com/mpetrik/apogee/pkg/common"
	"github.com/mpetrik/apogee/pkg/utility/fixed"
)

const (
	priceDigits  = 4
	volumeDigits = 0
)

// BarGenerator produces a deterministic random-walk OHLCV series for smoke
// runs and benchmarks. The same seed always yields the same series.
type BarGenerator struct {
	symbol string
	rng    *rand.Rand

	start  time.Time
	period time.Duration

	price float64
	drift float64
	sigma float64
}

func NewBarGenerator(symbol string, seed int64, start time.Time, period time.Duration,
	startPrice, drift, sigma float64) *BarGenerator {
	return &BarGenerator{
		symbol: symbol,
		rng:    rand.New(rand.NewSource(seed)),
		start:  start,
		period: period,
		price:  startPrice,
		drift:  drift,
		sigma:  sigma,
	}
}

// Generate returns n consecutive bars continuing the walk from the last
// generated price.
func (g *BarGenerator) Generate(n int) []common.Bar {
	bars := make([]common.Bar, 0, n)

	for i := 0; i < n; i++ {
		open := g.price

		a := open * (1 + g.rng.NormFloat64()*g.sigma)
		b := open * (1 + g.rng.NormFloat64()*g.sigma)
		close := open * (1 + g.drift + g.rng.NormFloat64()*g.sigma)

		high := max(open, a, b, close)
		low := min(open, a, b, close)
		volume := float64(100 + g.rng.Intn(900))

		bars = append(bars, common.Bar{
			Symbol:    g.symbol,
			TimeStamp: g.start.Add(time.Duration(i) * g.period),
			Open:      fixed.FromFloat64(open).Rescale(priceDigits),
			High:      fixed.FromFloat64(high).Rescale(priceDigits),
			Low:       fixed.FromFloat64(low).Rescale(priceDigits),
			Close:     fixed.FromFloat64(close).Rescale(priceDigits),
			Volume:    fixed.FromFloat64(volume).Rescale(volumeDigits),
		})

		g.price = close
	}

	g.start = g.start.Add(time.Duration(n) * g.period)
	return bars
}
