package csv

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpetrik/apogee/pkg/datasource"
	"github.com/mpetrik/apogee/pkg/utility/fixed"
)

func TestReadBars(t *testing.T) {
	input := `datetime,open,high,low,close,volume
2024-01-02,101.5,103,100,102.25,1500
2024-01-01,100,102,99,101,1000
`
	bars, err := ReadBars(strings.NewReader(input), "AAPL")
	require.NoError(t, err)
	require.Len(t, bars, 2)

	// Rows arrive unsorted and come out chronological.
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), bars[0].TimeStamp)
	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), bars[1].TimeStamp)

	assert.Equal(t, "AAPL", bars[0].Symbol)
	assert.True(t, bars[0].Open.Eq(fixed.FromInt(100, 0)))
	assert.True(t, bars[1].Close.Eq(fixed.MustParse("102.25")))
	assert.True(t, bars[0].Volume.Eq(fixed.FromInt(1000, 0)))
}

func TestReadBars_DatetimeLayouts(t *testing.T) {
	testCases := []struct {
		raw      string
		expected time.Time
	}{
		{"2024-01-01T09:30:00Z", time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC)},
		{"2024-01-01 09:30:00", time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC)},
		{"2024-01-01T09:30:00", time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC)},
		{"2024-01-01", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
	}

	for _, tc := range testCases {
		t.Run(tc.raw, func(t *testing.T) {
			input := "datetime,open,high,low,close,volume\n" +
				tc.raw + ",1,1,1,1,1\n"
			bars, err := ReadBars(strings.NewReader(input), "AAPL")
			require.NoError(t, err)
			require.Len(t, bars, 1)
			assert.True(t, tc.expected.Equal(bars[0].TimeStamp))
		})
	}
}

func TestReadBars_MissingVolumeDefaultsToZero(t *testing.T) {
	input := `datetime,open,high,low,close
2024-01-01,100,102,99,101
`
	bars, err := ReadBars(strings.NewReader(input), "AAPL")
	require.NoError(t, err)
	require.Len(t, bars, 1)
	assert.True(t, bars[0].Volume.IsZero())
}

func TestReadBars_Malformed(t *testing.T) {
	testCases := []struct {
		name  string
		input string
	}{
		{
			name:  "missing required column",
			input: "datetime,open,high,low\n2024-01-01,1,1,1\n",
		},
		{
			name:  "unparseable datetime",
			input: "datetime,open,high,low,close\nnot-a-date,1,1,1,1\n",
		},
		{
			name:  "unparseable price",
			input: "datetime,open,high,low,close\n2024-01-01,oops,1,1,1\n",
		},
		{
			name:  "unparseable volume",
			input: "datetime,open,high,low,close,volume\n2024-01-01,1,1,1,1,oops\n",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ReadBars(strings.NewReader(tc.input), "AAPL")
			assert.ErrorIs(t, err, datasource.ErrMalformedRow)
		})
	}
}

func TestReadBars_DuplicateTimestamp(t *testing.T) {
	input := `datetime,open,high,low,close
2024-01-01,100,102,99,101
2024-01-01,101,103,100,102
`
	_, err := ReadBars(strings.NewReader(input), "AAPL")
	assert.ErrorIs(t, err, datasource.ErrDuplicateTimestamp)
}
