package strategy

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpetrik/apogee/pkg/common"
	"github.com/mpetrik/apogee/pkg/datasource"
	"github.com/mpetrik/apogee/pkg/utility/fixed"
)

var probaBarTime = time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC)

func probaBar(symbol string, ts time.Time) common.Bar {
	price := fixed.FromInt(100, 0)
	return common.Bar{
		Symbol:    symbol,
		TimeStamp: ts,
		Open:      price,
		High:      price,
		Low:       price,
		Close:     price,
	}
}

func TestDualProba_Decisions(t *testing.T) {
	testCases := []struct {
		name      string
		proba     Proba
		thrUp     float64
		thrDn     float64
		direction common.SignalDirection
		strength  float64
		none      bool
	}{
		{
			name:  "neither side clears",
			proba: Proba{Up: 0.5, Down: 0.5},
			thrUp: 0.6, thrDn: 0.6,
			none: true,
		},
		{
			name:  "long side clears",
			proba: Proba{Up: 0.7, Down: 0.1},
			thrUp: 0.6, thrDn: 0.6,
			direction: common.SignalLong,
			strength:  0.7,
		},
		{
			name:  "short side clears",
			proba: Proba{Up: 0.1, Down: 0.8},
			thrUp: 0.6, thrDn: 0.6,
			direction: common.SignalShort,
			strength:  0.8,
		},
		{
			name:  "both clear, short margin larger",
			proba: Proba{Up: 0.65, Down: 0.75},
			thrUp: 0.6, thrDn: 0.6,
			direction: common.SignalShort,
			strength:  0.75,
		},
		{
			name:  "both clear, long margin larger",
			proba: Proba{Up: 0.8, Down: 0.65},
			thrUp: 0.6, thrDn: 0.6,
			direction: common.SignalLong,
			strength:  0.8,
		},
		{
			name:  "exact margin tie goes long",
			proba: Proba{Up: 0.7, Down: 0.7},
			thrUp: 0.6, thrDn: 0.6,
			direction: common.SignalLong,
			strength:  0.7,
		},
		{
			name:  "asymmetric thresholds, tie on margin goes long",
			proba: Proba{Up: 0.6, Down: 0.8},
			thrUp: 0.5, thrDn: 0.7,
			direction: common.SignalLong,
			strength:  0.6,
		},
		{
			name:  "exactly at threshold counts",
			proba: Proba{Up: 0.6, Down: 0.0},
			thrUp: 0.6, thrDn: 0.6,
			direction: common.SignalLong,
			strength:  0.6,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := NewDualProba(
				map[string]ProbaSeries{
					"AAPL": {probaBarTime.UnixNano(): tc.proba},
				},
				map[string]float64{"AAPL": tc.thrUp},
				map[string]float64{"AAPL": tc.thrDn},
			)

			signals := s.OnBar(probaBar("AAPL", probaBarTime))
			if tc.none {
				assert.Empty(t, signals)
				return
			}

			require.Len(t, signals, 1)
			assert.Equal(t, tc.direction, signals[0].Direction)
			assert.InDelta(t, tc.strength, signals[0].Strength, 1e-12)
			assert.Equal(t, "AAPL", signals[0].Symbol)
			assert.Equal(t, probaBarTime, signals[0].TimeStamp)
		})
	}
}

func TestDualProba_NoArtifactRow(t *testing.T) {
	s := NewDualProba(
		map[string]ProbaSeries{
			"AAPL": {probaBarTime.UnixNano(): {Up: 0.9, Down: 0.1}},
		},
		nil, nil,
	)

	// Timestamp without a table row produces nothing.
	assert.Empty(t, s.OnBar(probaBar("AAPL", probaBarTime.Add(time.Minute))))

	// Symbol without a table produces nothing.
	assert.Empty(t, s.OnBar(probaBar("MSFT", probaBarTime)))
}

func TestDualProba_DefaultThreshold(t *testing.T) {
	s := NewDualProba(
		map[string]ProbaSeries{
			"AAPL": {probaBarTime.UnixNano(): {Up: 0.61, Down: 0.0}},
		},
		nil, nil,
	)

	signals := s.OnBar(probaBar("AAPL", probaBarTime))
	require.Len(t, signals, 1)
	assert.Equal(t, common.SignalLong, signals[0].Direction)
}

func TestReadProbaSeries(t *testing.T) {
	input := `timestamp,proba_up,proba_dn
2024-01-01T09:30:00Z,0.7,0.2
2024-01-01T09:31:00Z,0.3,0.8
`
	series, err := ReadProbaSeries(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, series, 2)

	p := series[probaBarTime.UnixNano()]
	assert.InDelta(t, 0.7, p.Up, 1e-12)
	assert.InDelta(t, 0.2, p.Down, 1e-12)
}

func TestReadProbaSeries_Malformed(t *testing.T) {
	testCases := []struct {
		name  string
		input string
	}{
		{
			name:  "missing column",
			input: "timestamp,proba_up\n2024-01-01,0.7\n",
		},
		{
			name:  "bad timestamp",
			input: "timestamp,proba_up,proba_dn\nnope,0.7,0.2\n",
		},
		{
			name:  "bad probability",
			input: "timestamp,proba_up,proba_dn\n2024-01-01,seven,0.2\n",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ReadProbaSeries(strings.NewReader(tc.input))
			assert.ErrorIs(t, err, datasource.ErrMalformedRow)
		})
	}
}
