package metrics

import (
	"context"
	"log/slog"

	"github.com/mpetrik/apogee/pkg/common"
)

// Audit is a passive bus consumer: it collects the equity curve, the fill
// ledger, and rejected orders over a run and produces the summary at the
// end.
type Audit struct {
	samples  []common.EquitySample
	fills    []common.Fill
	rejected []common.OrderRejected
}

func NewAudit() *Audit {
	return &Audit{}
}

func (a *Audit) OnEquity(_ context.Context, sample common.EquitySample) {
	a.samples = append(a.samples, sample)
}

func (a *Audit) OnFill(_ context.Context, fill common.Fill) {
	a.fills = append(a.fills, fill)
}

func (a *Audit) OnOrderRejected(_ context.Context, rejected common.OrderRejected) {
	a.rejected = append(a.rejected, rejected)
}

func (a *Audit) Samples() []common.EquitySample {
	return a.samples
}

func (a *Audit) Fills() []common.Fill {
	return a.fills
}

func (a *Audit) Rejected() []common.OrderRejected {
	return a.rejected
}

func (a *Audit) Summarize(rfRate float64, periodsPerYear int) Summary {
	return Summarize(a.samples, rfRate, periodsPerYear)
}

func (a *Audit) PrintStatistics() {
	slog.Info("audit statistics",
		"equity_samples", len(a.samples),
		"fills", len(a.fills),
		"orders_rejected", len(a.rejected))
}
