package metrics

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Pure functions over an equity series. Degenerate inputs yield NaN or
// infinity sentinels, never errors; callers must treat the sentinels as
// valid, documented outputs.

// Returns derives the simple-return series from consecutive equity ratios.
func Returns(equity []float64) []float64 {
	if len(equity) < 2 {
		return nil
	}
	returns := make([]float64, 0, len(equity)-1)
	for i := 1; i < len(equity); i++ {
		returns = append(returns, equity[i]/equity[i-1]-1)
	}
	return returns
}

// AnnualizedReturn compounds per-period returns to an annual rate.
func AnnualizedReturn(returns []float64, periodsPerYear int) float64 {
	if len(returns) == 0 {
		return 0
	}
	cum := 1.0
	for _, r := range returns {
		cum *= 1 + r
	}
	years := float64(len(returns)) / float64(periodsPerYear)
	return math.Pow(cum, 1/years) - 1
}

// SharpeRatio is mean excess return over its sample standard deviation,
// scaled to annual. rfRate is the annual risk-free rate, converted to
// per-period by simple division. NaN on an empty or zero-variance sample.
func SharpeRatio(returns []float64, rfRate float64, periodsPerYear int) float64 {
	if len(returns) == 0 {
		return math.NaN()
	}

	excess := excessReturns(returns, rfRate, periodsPerYear)
	std := stat.StdDev(excess, nil)
	if std == 0 || math.IsNaN(std) {
		return math.NaN()
	}

	return stat.Mean(excess, nil) / std * math.Sqrt(float64(periodsPerYear))
}

// SortinoRatio replaces the Sharpe denominator with the deviation of the
// losing periods only. +Inf when there are no losing periods.
func SortinoRatio(returns []float64, rfRate float64, periodsPerYear int) float64 {
	if len(returns) == 0 {
		return math.NaN()
	}

	excess := excessReturns(returns, rfRate, periodsPerYear)
	var downside []float64
	for _, e := range excess {
		if e < 0 {
			downside = append(downside, e)
		}
	}
	if len(downside) == 0 {
		return math.Inf(1)
	}

	dd := stat.StdDev(downside, nil)
	if dd == 0 || math.IsNaN(dd) {
		return math.NaN()
	}

	return stat.Mean(excess, nil) / dd * math.Sqrt(float64(periodsPerYear))
}

// MaxDrawdown returns the deepest peak-to-trough decline as a fraction of
// the peak, with the index of the running peak preceding the trough and
// the index of the trough itself. First occurrences win when the extremes
// repeat.
func MaxDrawdown(equity []float64) (drawdown float64, start, end int) {
	if len(equity) == 0 {
		return 0, 0, 0
	}

	runningMax := equity[0]
	for i, value := range equity {
		if value > runningMax {
			runningMax = value
		}
		dd := (value - runningMax) / runningMax
		if dd < drawdown {
			drawdown = dd
			end = i
		}
	}

	peak := equity[0]
	for i := 0; i <= end; i++ {
		if equity[i] > peak {
			peak = equity[i]
			start = i
		}
	}

	return drawdown, start, end
}

// CalmarRatio is the annualized return over the absolute max drawdown,
// +Inf when the curve never drew down.
func CalmarRatio(returns, equity []float64, periodsPerYear int) float64 {
	ann := AnnualizedReturn(returns, periodsPerYear)
	drawdown, _, _ := MaxDrawdown(equity)
	if drawdown == 0 {
		return math.Inf(1)
	}
	return ann / math.Abs(drawdown)
}

func excessReturns(returns []float64, rfRate float64, periodsPerYear int) []float64 {
	rfPerPeriod := rfRate / float64(periodsPerYear)
	excess := make([]float64, len(returns))
	for i, r := range returns {
		excess[i] = r - rfPerPeriod
	}
	return excess
}
