package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/mpetrik/apogee/pkg/common"
	"github.com/mpetrik/apogee/pkg/datasource"
	"github.com/mpetrik/apogee/pkg/utility/fixed"
)

// Accepted datetime layouts, tried in order.
var layouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// LoadBars reads one symbol's OHLCV series from a CSV file with a
// `datetime,open,high,low,close,volume` header. Rows need not be
// pre-sorted; they are sorted stably by datetime here. A missing volume
// column defaults to zero, any other unparseable field fails the load.
func LoadBars(path, symbol string) ([]common.Bar, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open %q: %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	return ReadBars(f, symbol)
}

func ReadBars(r io.Reader, symbol string) ([]common.Bar, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("unable to read header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for idx, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = idx
	}
	for _, required := range []string{"datetime", "open", "high", "low", "close"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("%w: missing column %q", datasource.ErrMalformedRow, required)
		}
	}
	volumeIdx, hasVolume := cols["volume"]

	var bars []common.Bar
	line := 1

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("unable to read record: %w", err)
		}
		line++

		ts, err := parseDateTime(record[cols["datetime"]])
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", datasource.ErrMalformedRow, line, err)
		}

		bar := common.Bar{
			Symbol:    symbol,
			TimeStamp: ts,
			Volume:    fixed.Zero,
		}

		fields := []struct {
			name string
			dst  *fixed.Point
		}{
			{"open", &bar.Open},
			{"high", &bar.High},
			{"low", &bar.Low},
			{"close", &bar.Close},
		}
		for _, field := range fields {
			value, err := fixed.Parse(strings.TrimSpace(record[cols[field.name]]))
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: field %q: %v",
					datasource.ErrMalformedRow, line, field.name, err)
			}
			*field.dst = value
		}

		if hasVolume && volumeIdx < len(record) {
			raw := strings.TrimSpace(record[volumeIdx])
			if raw != "" {
				volume, err := fixed.Parse(raw)
				if err != nil {
					return nil, fmt.Errorf("%w: line %d: field \"volume\": %v",
						datasource.ErrMalformedRow, line, err)
				}
				bar.Volume = volume
			}
		}

		bars = append(bars, bar)
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

func parseDateTime(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range layouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable datetime %q", raw)
}
