package middleware

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/marcboeker/go-duckdb"

	"github.com/mpetrik/apogee/pkg/bus"
	"github.com/mpetrik/apogee/pkg/common"
)

const createFillsTable = `
CREATE TABLE IF NOT EXISTS fills (
	run_id     VARCHAR NOT NULL,
	trace_id   UBIGINT NOT NULL,
	ts         TIMESTAMP NOT NULL,
	symbol     VARCHAR NOT NULL,
	side       VARCHAR NOT NULL,
	quantity   UBIGINT NOT NULL,
	fill_price VARCHAR NOT NULL,
	commission VARCHAR NOT NULL,
	slippage   VARCHAR NOT NULL
)`

// Ledger persists every fill into a DuckDB table, producing the durable
// per-order record of a run. Inserts run synchronously on the dispatch
// goroutine so the ledger order matches the fill order.
type Ledger struct {
	db *sql.DB
}

func NewLedger(dataSourceName string) (*Ledger, error) {
	db, err := sql.Open("duckdb", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("unable to open ledger %q: %w", dataSourceName, err)
	}
	if _, err := db.Exec(createFillsTable); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("unable to create fills table: %w", err)
	}
	return &Ledger{db: db}, nil
}

func (l *Ledger) Close() {
	_ = l.db.Close()
}

func (l *Ledger) WithFill(handler bus.FillEventHandler) bus.FillEventHandler {
	return func(ctx context.Context, fill common.Fill) {
		if err := l.insertFill(ctx, fill); err != nil {
			slog.Warn("unable to insert fill", "error", err, "symbol", fill.Symbol)
		}
		handler(ctx, fill)
	}
}

func (l *Ledger) insertFill(ctx context.Context, fill common.Fill) error {
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO fills VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		fill.RunID.String(),
		fill.TraceID,
		fill.TimeStamp,
		fill.Symbol,
		fill.Side.String(),
		fill.Quantity,
		fill.FillPrice.String(),
		fill.Commission.String(),
		fill.Slippage.String(),
	)
	return err
}
