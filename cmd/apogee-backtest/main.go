package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/mpetrik/apogee/internal/cfg"
	"github.com/mpetrik/apogee/pkg/common"
	"github.com/mpetrik/apogee/pkg/datasource/binary"
	"github.com/mpetrik/apogee/pkg/datasource/csv"
	"github.com/mpetrik/apogee/pkg/datasource/duckdb"
	"github.com/mpetrik/apogee/pkg/strategy"
)

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer func(logger *zap.Logger) {
		_ = logger.Sync()
	}(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	configPath := DefaultConfigPath
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}

	config, err := cfg.Load(configPath)
	if err != nil {
		logger.Fatal("error loading configuration", zap.Error(err))
	}

	series, err := loadSeries(ctx, config)
	if err != nil {
		logger.Fatal("error loading bars", zap.Error(err))
	}

	strat, err := buildStrategy(config)
	if err != nil {
		logger.Fatal("error building strategy", zap.Error(err))
	}

	result, err := run(ctx, logger, config, series, strat)
	if err != nil {
		logger.Fatal("error during simulation", zap.Error(err))
	}

	result.stats.Print()
	result.audit.PrintStatistics()
	result.summary.Print()

	if config.EquityOut != "" {
		if err := writeFile(config.EquityOut, result.portfolio.WriteEquityCurve); err != nil {
			logger.Error("error writing equity curve", zap.Error(err))
		}
	}
	if config.SummaryOut != "" {
		if err := writeFile(config.SummaryOut, result.summary.Write); err != nil {
			logger.Error("error writing summary", zap.Error(err))
		}
	}
}

// loadSeries reads each symbol's bar history from whichever source its
// config names. The windowed loaders get the full range; trimming a replay
// is done by trimming the input, not by a kernel flag.
func loadSeries(ctx context.Context, config cfg.Config) (map[string][]common.Bar, error) {
	from := time.Unix(0, 0).UTC()
	to := time.Date(9999, 1, 1, 0, 0, 0, 0, time.UTC)

	series := make(map[string][]common.Bar, len(config.Symbols))
	for _, symbol := range config.Symbols {
		var bars []common.Bar
		var err error

		switch {
		case symbol.BarsCSV != "":
			bars, err = csv.LoadBars(symbol.BarsCSV, symbol.Name)

		case symbol.BarsDuckDB != "":
			reader := duckdb.NewReader(symbol.BarsDuckDB)
			if err = reader.Connect(); err != nil {
				break
			}
			bars, err = reader.LoadBars(ctx, symbol.Name, from, to)
			reader.Close()

		case symbol.BarsBin != "":
			source := binary.NewSource[binary.BinaryBar](symbol.BarsBin)
			if err = source.Open(); err != nil {
				break
			}
			bars, err = binary.LoadBars(source, symbol.Name, from, to)
			source.Close()

		default:
			err = fmt.Errorf("no bar source configured")
		}
		if err != nil {
			return nil, fmt.Errorf("symbol %q: %w", symbol.Name, err)
		}

		series[symbol.Name] = bars
	}
	return series, nil
}

func buildStrategy(config cfg.Config) (strategy.Strategy, error) {
	switch config.Strategy {
	case "sma_rsi":
		return strategy.NewSmaRsi(config.SmaShort, config.SmaLong,
			config.RsiPeriod, config.RsiLongTh, config.RsiShortTh), nil

	case "dual_proba":
		feeds := make(map[string]strategy.ProbaSeries, len(config.Symbols))
		thrUp := make(map[string]float64)
		thrDn := make(map[string]float64)

		for _, symbol := range config.Symbols {
			if symbol.ProbaCSV == "" {
				continue
			}
			series, err := strategy.LoadProbaSeries(symbol.ProbaCSV)
			if err != nil {
				return nil, err
			}
			feeds[symbol.Name] = series

			if symbol.ThresholdUp != "" {
				threshold, err := strategy.LoadThreshold(symbol.ThresholdUp)
				if err != nil {
					return nil, err
				}
				thrUp[symbol.Name] = threshold
			}
			if symbol.ThresholdDown != "" {
				threshold, err := strategy.LoadThreshold(symbol.ThresholdDown)
				if err != nil {
					return nil, err
				}
				thrDn[symbol.Name] = threshold
			}
		}
		return strategy.NewDualProba(feeds, thrUp, thrDn), nil
	}
	return nil, fmt.Errorf("unknown strategy %q", config.Strategy)
}

func writeFile(path string, write func(w io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("unable to create %q: %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()
	return write(f)
}
