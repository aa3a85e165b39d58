package strategy

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mpetrik/apogee/pkg/datasource"
)

// Accepted timestamp layouts for the probability artifact, tried in order.
var artifactLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// LoadProbaSeries reads a `timestamp,proba_up,proba_dn` artifact into a
// timestamp-keyed table. The artifact is produced offline by the model
// pipeline; any malformed row fails the load.
func LoadProbaSeries(path string) (ProbaSeries, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open %q: %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	return ReadProbaSeries(f)
}

func ReadProbaSeries(r io.Reader) (ProbaSeries, error) {
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
	for _, required := range []string{"timestamp", "proba_up", "proba_dn"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("%w: missing column %q", datasource.ErrMalformedRow, required)
		}
	}

	series := make(ProbaSeries)
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

		ts, err := parseArtifactTime(record[cols["timestamp"]])
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", datasource.ErrMalformedRow, line, err)
		}
		up, err := strconv.ParseFloat(strings.TrimSpace(record[cols["proba_up"]]), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: field \"proba_up\": %v",
				datasource.ErrMalformedRow, line, err)
		}
		down, err := strconv.ParseFloat(strings.TrimSpace(record[cols["proba_dn"]]), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: field \"proba_dn\": %v",
				datasource.ErrMalformedRow, line, err)
		}

		series[ts.UnixNano()] = Proba{Up: up, Down: down}
	}

	return series, nil
}

// LoadThreshold reads a single scalar threshold from a flat file.
func LoadThreshold(path string) (float64, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("unable to read %q: %w", path, err)
	}
	value, err := strconv.ParseFloat(strings.TrimSpace(string(raw)), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", datasource.ErrMalformedRow, path, err)
	}
	return value, nil
}

func parseArtifactTime(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range artifactLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable timestamp %q", raw)
}
