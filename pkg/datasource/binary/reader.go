package binary

import (
	"errors"
	"fmt"
	"time"

	"github.com/mpetrik/apogee/pkg/common"
	"github.com/mpetrik/apogee/pkg/datasource"
	"github.com/mpetrik/apogee/pkg/utility/fixed"
)

// BinaryBar is the on-disk record layout: one int64 nanosecond timestamp
// followed by five float64 fields, 48 bytes per record, little-endian
// native order.
type BinaryBar struct {
	TimeStamp int64
	Open      float64
	High      float64
	Low       float64
	Close     float64
	Volume    float64
}

func (b BinaryBar) ToBar(symbol string) common.Bar {
	return common.Bar{
		Symbol:    symbol,
		TimeStamp: time.Unix(0, b.TimeStamp).UTC(),
		Open:      fixed.FromFloat64(b.Open),
		High:      fixed.FromFloat64(b.High),
		Low:       fixed.FromFloat64(b.Low),
		Close:     fixed.FromFloat64(b.Close),
		Volume:    fixed.FromFloat64(b.Volume),
	}
}

// LoadBars reads the [from, to] window of a symbol's binary bar file. The
// file must be sorted by timestamp; the start index is found by binary
// search and monotonicity is verified while reading.
func LoadBars(source *Source[BinaryBar], symbol string, from, to time.Time) ([]common.Bar, error) {
	idx, err := lookupStartIndex(source, from.UnixNano())
	if err != nil {
		if errors.Is(err, ErrEof) {
			return nil, nil
		}
		return nil, err
	}

	var bars []common.Bar
	lastTs := int64(0)

	for {
		var record BinaryBar
		if err := source.Read(idx, &record); err != nil {
			if errors.Is(err, ErrEof) {
				break
			}
			return nil, fmt.Errorf("error reading entry at index %d: %w", idx, err)
		}
		idx++

		if record.TimeStamp > to.UnixNano() {
			break
		}
		if len(bars) > 0 && record.TimeStamp <= lastTs {
			return nil, fmt.Errorf("%w: symbol %q at index %d",
				datasource.ErrDuplicateTimestamp, symbol, idx-1)
		}
		lastTs = record.TimeStamp

		bars = append(bars, record.ToBar(symbol))
	}

	return bars, nil
}

func lookupStartIndex(source *Source[BinaryBar], from int64) (int64, error) {
	entryCount, err := source.EntryCount()
	if err != nil {
		return 0, fmt.Errorf("error getting entry count: %w", err)
	}
	if entryCount == 0 {
		return 0, ErrEof
	}

	var entry BinaryBar

	low := int64(0)
	high := entryCount - 1

	for low <= high {
		mid := (low + high) / 2

		if err := source.Read(mid, &entry); err != nil {
			return 0, fmt.Errorf("error reading entry at index %d: %w", mid, err)
		}

		if entry.TimeStamp < from {
			low = mid + 1
		} else {
			high = mid - 1
		}
	}

	if low >= entryCount {
		return 0, ErrEof
	}

	return low, nil
}
