package duckdb

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"time"

	_ "github.com/marcboeker/go-duckdb"

	"github.com/mpetrik/apogee/pkg/common"
	"github.com/mpetrik/apogee/pkg/datasource"
	"github.com/mpetrik/apogee/pkg/utility/fixed"
)

// Reader loads OHLCV bar series from a DuckDB file. One table per symbol,
// named `<symbol>_bars`, with columns ts, open, high, low, close, volume.
type Reader struct {
	dataSourceName string
	db             *sql.DB
}

func NewReader(dataSourceName string) *Reader {
	return &Reader{
		dataSourceName: dataSourceName,
	}
}

func (r *Reader) Connect() error {
	db, err := sql.Open("duckdb", r.dataSourceName)
	if err != nil {
		return fmt.Errorf("unable to open duckdb source %q: %w", r.dataSourceName, err)
	}
	r.db = db
	return nil
}

func (r *Reader) Close() {
	_ = r.db.Close()
}

func (r *Reader) LoadBars(ctx context.Context, symbol string, from, to time.Time) ([]common.Bar, error) {
	query := fmt.Sprintf(
		`SELECT ts, open, high, low, close, volume FROM %s_bars WHERE ts BETWEEN ? AND ?`, symbol)

	rows, err := r.db.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("unable to query bars for %q: %w", symbol, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var bars []common.Bar
	for rows.Next() {
		var (
			ts                             time.Time
			open, high, low, close, volume float64
		)
		if err := rows.Scan(&ts, &open, &high, &low, &close, &volume); err != nil {
			return nil, fmt.Errorf("%w: %v", datasource.ErrMalformedRow, err)
		}
		bars = append(bars, common.Bar{
			Symbol:    symbol,
			TimeStamp: ts,
			Open:      fixed.FromFloat64(open),
			High:      fixed.FromFloat64(high),
			Low:       fixed.FromFloat64(low),
			Close:     fixed.FromFloat64(close),
			Volume:    fixed.FromFloat64(volume),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unable to iterate bars for %q: %w", symbol, err)
	}

	sort.SliceStable(bars, func(i, j int) bool {
		return bars[i].TimeStamp.Before(bars[j].TimeStamp)
	})
	for i := 1; i < len(bars); i++ {
		if bars[i].TimeStamp.Equal(bars[i-1].TimeStamp) {
			return nil, fmt.Errorf("%w: symbol %q at %s",
				datasource.ErrDuplicateTimestamp, symbol, bars[i].TimeStamp)
		}
	}

	return bars, nil
}
