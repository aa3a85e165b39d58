package datasource

import "errors"

var (
	// ErrExhausted ends a replay cleanly: every symbol ran out of bars.
	ErrExhausted = errors.New("data feed exhausted")

	// ErrMalformedRow marks an input row whose required OHLCV field could
	// not be parsed. Load errors are fatal before the simulation starts.
	ErrMalformedRow = errors.New("malformed row")

	// ErrDuplicateTimestamp marks two bars of one symbol sharing a
	// timestamp. The replay semantics are undefined for such input, so it
	// is rejected at load time.
	ErrDuplicateTimestamp = errors.New("duplicate timestamp")
)
