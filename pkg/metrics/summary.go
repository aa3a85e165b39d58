package metrics

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"time"

	"github.com/mpetrik/apogee/pkg/common"
)

// Summary is the performance record of one run.
type Summary struct {
	AnnualizedReturn float64
	Sharpe           float64
	Sortino          float64
	MaxDrawdown      float64
	MaxDrawdownStart time.Time
	MaxDrawdownEnd   time.Time
	Calmar           float64
}

// Summarize derives the full summary from an equity curve. rfRate is the
// annual risk-free rate.
func Summarize(samples []common.EquitySample, rfRate float64, periodsPerYear int) Summary {
	equity := make([]float64, len(samples))
	for i, sample := range samples {
		equity[i], _ = sample.Equity.Float64()
	}

	returns := Returns(equity)
	drawdown, start, end := MaxDrawdown(equity)

	summary := Summary{
		AnnualizedReturn: AnnualizedReturn(returns, periodsPerYear),
		Sharpe:           SharpeRatio(returns, rfRate, periodsPerYear),
		Sortino:          SortinoRatio(returns, rfRate, periodsPerYear),
		MaxDrawdown:      drawdown,
		Calmar:           CalmarRatio(returns, equity, periodsPerYear),
	}
	if len(samples) > 0 {
		summary.MaxDrawdownStart = samples[start].TimeStamp
		summary.MaxDrawdownEnd = samples[end].TimeStamp
	}
	return summary
}

func (s Summary) Print() {
	slog.Info("performance summary",
		"annualized_return", fmt.Sprintf("%.4f", s.AnnualizedReturn),
		"sharpe", fmt.Sprintf("%.4f", s.Sharpe),
		"sortino", fmt.Sprintf("%.4f", s.Sortino),
		"max_drawdown", fmt.Sprintf("%.4f", s.MaxDrawdown),
		"max_drawdown_start", s.MaxDrawdownStart,
		"max_drawdown_end", s.MaxDrawdownEnd,
		"calmar", fmt.Sprintf("%.4f", s.Calmar))
}

// Write emits the summary as a one-row CSV. NaN and infinities are
// formatted by strconv and stay distinguishable in the output.
func (s Summary) Write(w io.Writer) error {
	writer := csv.NewWriter(w)

	if err := writer.Write([]string{
		"annualized_return", "sharpe", "sortino",
		"max_drawdown", "max_drawdown_start", "max_drawdown_end", "calmar",
	}); err != nil {
		return fmt.Errorf("unable to write header: %w", err)
	}

	record := []string{
		formatFloat(s.AnnualizedReturn),
		formatFloat(s.Sharpe),
		formatFloat(s.Sortino),
		formatFloat(s.MaxDrawdown),
		s.MaxDrawdownStart.Format(time.RFC3339),
		s.MaxDrawdownEnd.Format(time.RFC3339),
		formatFloat(s.Calmar),
	}
	if err := writer.Write(record); err != nil {
		return fmt.Errorf("unable to write summary: %w", err)
	}

	writer.Flush()
	return writer.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
