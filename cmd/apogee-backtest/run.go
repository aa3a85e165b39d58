package main

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/mpetrik/apogee/internal/cfg"
	"github.com/mpetrik/apogee/pkg/bus"
	"github.com/mpetrik/apogee/pkg/common"
	"github.com/mpetrik/apogee/pkg/datasource"
	"github.com/mpetrik/apogee/pkg/exchange/sandbox"
	"github.com/mpetrik/apogee/pkg/metrics"
	"github.com/mpetrik/apogee/pkg/middleware"
	"github.com/mpetrik/apogee/pkg/portfolio"
	"github.com/mpetrik/apogee/pkg/sizer"
	"github.com/mpetrik/apogee/pkg/strategy"
	"github.com/mpetrik/apogee/pkg/utility/fixed"
)

type runResult struct {
	portfolio *portfolio.Portfolio
	audit     *metrics.Audit
	summary   metrics.Summary
	stats     bus.Statistics
}

// run wires the pipeline and replays the series to exhaustion. Bar events
// fan out to the portfolio, then the simulator, then the advisor: the book
// is marked and the execution mark is current before any signal for that
// bar can exist.
func run(ctx context.Context, logger *zap.Logger, config cfg.Config,
	series map[string][]common.Bar, strat strategy.Strategy) (*runResult, error) {

	initialCash, err := fixed.Parse(config.InitialCash)
	if err != nil {
		return nil, fmt.Errorf("invalid initial cash %q: %w", config.InitialCash, err)
	}
	commissionRate, err := fixed.Parse(config.CommissionRate)
	if err != nil {
		return nil, fmt.Errorf("invalid commission rate %q: %w", config.CommissionRate, err)
	}
	slippageBps, err := fixed.Parse(config.SlippageBps)
	if err != nil {
		return nil, fmt.Errorf("invalid slippage bps %q: %w", config.SlippageBps, err)
	}

	router := bus.NewRouter(RouterEventCapacity)

	book := portfolio.NewPortfolio(router, initialCash)
	simulator := sandbox.NewSimulator(router,
		sandbox.WithSlippageModel(sandbox.NewFixedBasisPoints(slippageBps)),
		sandbox.WithCommissionModel(sandbox.NewFixedPercentage(commissionRate)))
	advisor := strategy.NewAdvisor(router, strat)
	orderSizer := sizer.NewFixed(router, config.Quantity)
	audit := metrics.NewAudit()

	monitor := middleware.NewMonitor(MonitorFlags)
	telemetry := middleware.NewTelemetry(logger)
	performance := middleware.NewPerformance(logger)

	fillHandler := bus.MergeHandlers(book.OnFill, audit.OnFill)
	if config.LedgerPath != "" {
		ledger, err := middleware.NewLedger(config.LedgerPath)
		if err != nil {
			return nil, err
		}
		defer ledger.Close()
		fillHandler = ledger.WithFill(fillHandler)
	}

	router.OnBar = telemetry.WithBar(performance.WithBar(
		bus.MergeHandlers(book.OnBar, simulator.OnBar, advisor.OnBar)))
	router.OnSignal = telemetry.WithSignal(monitor.WithSignal(orderSizer.OnSignal))
	router.OnOrder = telemetry.WithOrder(monitor.WithOrder(simulator.OnOrder))
	router.OnOrderRejected = telemetry.WithOrderRejected(monitor.WithOrderRejected(audit.OnOrderRejected))
	router.OnFill = telemetry.WithFill(performance.WithFill(monitor.WithFill(fillHandler)))
	router.OnEquity = telemetry.WithEquity(audit.OnEquity)

	feed := datasource.NewFeed(router, series)

	if err := <-router.ExecLoop(ctx, feed.Advance); !errors.Is(err, datasource.ErrExhausted) {
		return nil, fmt.Errorf("simulation aborted: %w", err)
	}

	telemetry.PrintStatistics()
	performance.PrintStatistics()

	return &runResult{
		portfolio: book,
		audit:     audit,
		summary:   audit.Summarize(config.RiskFreeRate, config.PeriodsPerYear),
		stats:     router.Statistics(),
	}, nil
}
