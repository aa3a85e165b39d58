package portfolio

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"
)

// WriteEquityCurve emits the equity curve as flat CSV, the run's durable
// tabular output.
func (p *Portfolio) WriteEquityCurve(w io.Writer) error {
	writer := csv.NewWriter(w)

	if err := writer.Write([]string{"timestamp", "cash", "holdings", "equity"}); err != nil {
		return fmt.Errorf("unable to write header: %w", err)
	}

	for _, sample := range p.equityCurve {
		record := []string{
			sample.TimeStamp.Format(time.RFC3339),
			sample.Cash.String(),
			sample.Holdings.String(),
			sample.Equity.String(),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("unable to write sample at %s: %w", sample.TimeStamp, err)
		}
	}

	writer.Flush()
	return writer.Error()
}
